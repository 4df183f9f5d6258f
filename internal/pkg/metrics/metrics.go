// Package metrics exposes order lifecycle counters to Prometheus.
package metrics

import (
	"context"
	"net/http"

	"orderflow/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orderflow"

// OrderMetrics counts status changes. It implements ports.OrderEventPublisher.
type OrderMetrics struct {
	Created     *prometheus.CounterVec
	Cancelled   prometheus.Counter
	Transitions *prometheus.CounterVec
}

// NewOrderMetrics registers the counters on reg.
func NewOrderMetrics(reg prometheus.Registerer) (*OrderMetrics, error) {
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders placed.",
	}, []string{"delivery_type"})
	cancelled := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_cancelled_total",
		Help:      "Total number of orders cancelled by customers.",
	})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_transitions_total",
		Help:      "Total number of status changes, by the status reached.",
	}, []string{"status"})

	for _, c := range []prometheus.Collector{created, cancelled, transitions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &OrderMetrics{Created: created, Cancelled: cancelled, Transitions: transitions}, nil
}

func (m *OrderMetrics) Publish(_ context.Context, event order.StatusChanged) error {
	if event.From == order.Unknown {
		m.Created.WithLabelValues(event.DeliveryType.String()).Inc()
	}
	if event.To == order.Cancelled {
		m.Cancelled.Inc()
	}
	m.Transitions.WithLabelValues(event.To.String()).Inc()
	return nil
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
