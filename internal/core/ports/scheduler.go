package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// LifecycleScheduler queues the timed status advances of an order.
type LifecycleScheduler interface {
	// Schedule queues the remaining steps of o relative to its creation time. It does
	// not block on the advances themselves.
	Schedule(ctx context.Context, o *order.Order) error

	// Unschedule drops whatever is still queued for the order.
	Unschedule(orderID kernel.UUID)
}
