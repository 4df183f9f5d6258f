// Package ports defines the contracts between the order lifecycle core and its
// adapters: repositories, the durable snapshot store, the scheduler and event sinks.
package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository is the write-side view of the order collection, bound to a unit of
// work. Changes become visible to readers only after the unit of work commits.
type OrderRepository interface {
	// Add stores a new order. Adding an id that already exists fails.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update replaces an existing order and refreshes the owner's active order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with the given id or an errs.ObjectNotFoundError.
	// The returned aggregate may be modified and handed back to Update.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetActiveByUser returns the user's active order or an errs.ObjectNotFoundError.
	GetActiveByUser(ctx context.Context, userID string) (*order.Order, error)
}

// OrderReader serves queries from the last committed state. Returned aggregates are
// copies; modifying them has no effect on the repository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByUser returns every order of the user, newest first.
	GetAllByUser(ctx context.Context, userID string) ([]*order.Order, error)

	// GetActiveByUser returns the user's active order or an errs.ObjectNotFoundError.
	GetActiveByUser(ctx context.Context, userID string) (*order.Order, error)

	// GetAllActive returns every non-terminal order, oldest first.
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}
