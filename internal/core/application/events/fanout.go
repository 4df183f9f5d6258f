// Package events delivers committed order status changes to every interested sink.
package events

import (
	"context"
	"errors"
	"log/slog"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// Fanout is a ports.OrderEventPublisher that forwards each event to all sinks in
// registration order. A failing sink is logged and does not stop the others.
type Fanout struct {
	sinks  []ports.OrderEventPublisher
	logger *slog.Logger
}

func NewFanout(logger *slog.Logger, sinks ...ports.OrderEventPublisher) *Fanout {
	return &Fanout{
		sinks:  sinks,
		logger: logger.With("component", "event-fanout"),
	}
}

// Add registers another sink. It must be called before events are published.
func (f *Fanout) Add(sink ports.OrderEventPublisher) {
	f.sinks = append(f.sinks, sink)
}

// Publish returns the joined sink errors; callers treat them as non-fatal.
func (f *Fanout) Publish(ctx context.Context, event order.StatusChanged) error {
	var errs []error
	for _, sink := range f.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			f.logger.Warn("order event sink failed",
				"orderId", event.OrderID.String(),
				"status", event.To.String(),
				"error", err,
			)
			errs = append(errs, err)
		}
	}

	f.logger.Debug("order event published",
		"orderId", event.OrderID.String(),
		"from", event.From.String(),
		"to", event.To.String(),
	)
	return errors.Join(errs...)
}
