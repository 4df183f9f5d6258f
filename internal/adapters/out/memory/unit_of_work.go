// Package memory keeps the committed order collection in memory and writes it through
// to an OrderSnapshotStore on every commit.
//
// Units of work are serialized: Begin waits for the single mutation slot, clones the
// committed collection, and the repository works on that clone. Commit saves the full
// clone and swaps it in only after the save succeeded, so a failed save leaves both
// memory and storage as they were.
//
// Example:
//
//	store, err := memory.NewStore(ctx, snapshots, logger)
//	if err != nil {
//	    return err
//	}
//	uow := store.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package memory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"orderflow/internal/adapters/out/memory/orderrepo"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// ErrInvalidUnitOfWork is returned by Commit and Rollback without a preceding Begin.
var ErrInvalidUnitOfWork = errors.New("unit of work is not open")

// trackedAggregate is an order added or updated inside a unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate *order.Order
}

// Store owns the committed collection. It is the UnitOfWorkFactory for commands and
// the OrderReader for queries.
type Store struct {
	snapshots ports.OrderSnapshotStore
	logger    *slog.Logger

	slot chan struct{}

	mu        sync.RWMutex
	committed *orderrepo.Collection
}

// NewStore loads the collection from snapshots.
func NewStore(ctx context.Context, snapshots ports.OrderSnapshotStore, logger *slog.Logger) (*Store, error) {
	if snapshots == nil {
		return nil, errs.NewValueIsRequiredError("snapshots")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	s := &Store{
		snapshots: snapshots,
		logger:    logger.With("component", "order-store"),
		slot:      make(chan struct{}, 1),
		committed: orderrepo.NewCollection(),
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the committed collection with the stored one. It waits for the
// mutation slot like a unit of work.
func (s *Store) Reload(ctx context.Context) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	loaded, err := s.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}

	collection, skipped := orderrepo.CollectionFrom(loaded)
	for _, skipErr := range skipped {
		s.logger.Warn("skipping loaded order", "error", skipErr)
	}

	s.mu.Lock()
	s.committed = collection
	s.mu.Unlock()

	s.logger.Info("orders loaded", "count", collection.Len())
	return nil
}

// Create produces a new UnitOfWork bound to this store.
func (s *Store) Create() ports.UnitOfWork {
	return &UnitOfWork{store: s}
}

func (s *Store) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	o, found := s.committed.Get(id)
	if !found {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o.Clone(), nil
}

func (s *Store) GetAllByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAll(s.committed.AllByUser(userID)), nil
}

func (s *Store) GetActiveByUser(ctx context.Context, userID string) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	o, found := s.committed.ActiveByUser(userID)
	if !found {
		return nil, errs.NewObjectNotFoundError("active order of user", userID)
	}
	return o.Clone(), nil
}

func (s *Store) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAll(s.committed.AllActive()), nil
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.slot
}

func (s *Store) snapshot() *orderrepo.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed.Clone()
}

func (s *Store) swap(working *orderrepo.Collection) {
	s.mu.Lock()
	s.committed = working
	s.mu.Unlock()
}

// UnitOfWork is one serialized read-modify-write over the collection. A UnitOfWork
// must not be shared between goroutines.
type UnitOfWork struct {
	store             *Store
	working           *orderrepo.Collection
	trackedAggregates []trackedAggregate
}

// Begin waits for the mutation slot. Calling Begin on an open unit is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.working != nil {
		return nil
	}

	if err := uow.store.acquire(ctx); err != nil {
		return err
	}

	uow.working = uow.store.snapshot()
	uow.trackedAggregates = nil
	return nil
}

// Commit saves the working copy and publishes it as the committed state. The unit is
// closed afterwards whether or not the save succeeded.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if uow.working == nil {
		return ErrInvalidUnitOfWork
	}
	defer uow.close()

	if len(uow.trackedAggregates) == 0 {
		return nil
	}

	if err := uow.store.snapshots.Save(ctx, uow.working.Orders()); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}

	uow.store.swap(uow.working)
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.working == nil {
		return ErrInvalidUnitOfWork
	}

	uow.close()
	return nil
}

// OrderRepository returns a repository over the working copy. It panics if Begin
// has not been called.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	if uow.working == nil {
		panic(ErrInvalidUnitOfWork)
	}
	return orderrepo.NewOrderRepository(uow.working, uow)
}

// TrackAggregate registers an order changed within this unit of work.
func (uow *UnitOfWork) TrackAggregate(id kernel.UUID, aggregate *order.Order) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *UnitOfWork) close() {
	uow.working = nil
	uow.trackedAggregates = nil
	uow.store.release()
}

func cloneAll(orders []*order.Order) []*order.Order {
	result := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, o.Clone())
	}
	return result
}
