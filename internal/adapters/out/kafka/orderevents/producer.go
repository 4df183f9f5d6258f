// Package orderevents publishes order status changes to a Kafka topic as JSON,
// keyed by order id so all changes of one order land on the same partition.
package orderevents

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// OrderStatusChanged is the message value.
type OrderStatusChanged struct {
	EventID      string    `json:"eventId"`
	OrderID      string    `json:"orderId"`
	UserID       string    `json:"userId"`
	DeliveryType string    `json:"deliveryType"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	Location     string    `json:"location"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// MessageWriter is the part of *kafka.Writer the producer uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Producer implements ports.OrderEventPublisher.
type Producer struct {
	writer MessageWriter
	topic  string
	newID  func() string
}

func NewProducer(writer MessageWriter, topic string, newID func() string) (*Producer, error) {
	if writer == nil {
		return nil, errs.NewValueIsRequiredError("writer")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	if newID == nil {
		return nil, errs.NewValueIsRequiredError("newID")
	}
	return &Producer{writer: writer, topic: topic, newID: newID}, nil
}

// NewWriter builds a writer for a comma separated broker list.
func NewWriter(brokersCSV string) *kafka.Writer {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}

	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func (p *Producer) Publish(ctx context.Context, event order.StatusChanged) error {
	payload := OrderStatusChanged{
		EventID:      p.newID(),
		OrderID:      event.OrderID.String(),
		UserID:       event.UserID,
		DeliveryType: event.DeliveryType.String(),
		From:         event.From.String(),
		To:           event.To.String(),
		Location:     event.Location,
		OccurredAt:   event.OccurredAt.UTC(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(payload.OrderID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.status_changed")},
		},
		Time: payload.OccurredAt,
	})
}
