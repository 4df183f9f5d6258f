package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// OrderEventPublisher receives committed status changes.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event order.StatusChanged) error
}
