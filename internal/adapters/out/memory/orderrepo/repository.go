package orderrepo

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository on a working copy of the
// collection.
type OrderRepository struct {
	working *Collection
	tracker aggregateTracker
}

// aggregateTracker records the orders touched by a unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate *order.Order)
}

func NewOrderRepository(working *Collection, tracker aggregateTracker) *OrderRepository {
	return &OrderRepository{
		working: working,
		tracker: tracker,
	}
}

// Add stores a copy of aggregate.
func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	stored := aggregate.Clone()
	if err := r.working.Add(stored); err != nil {
		return err
	}

	r.tracker.TrackAggregate(stored.ID(), stored)
	return nil
}

// Update replaces the stored order with a copy of aggregate.
func (r *OrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	stored := aggregate.Clone()
	if err := r.working.Replace(stored); err != nil {
		return err
	}

	r.tracker.TrackAggregate(stored.ID(), stored)
	return nil
}

// Get returns a copy of the order.
func (r *OrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	o, found := r.working.Get(id)
	if !found {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o.Clone(), nil
}

// GetActiveByUser returns a copy of the user's active order.
func (r *OrderRepository) GetActiveByUser(ctx context.Context, userID string) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o, found := r.working.ActiveByUser(userID)
	if !found {
		return nil, errs.NewObjectNotFoundError("active order of user", userID)
	}
	return o.Clone(), nil
}
