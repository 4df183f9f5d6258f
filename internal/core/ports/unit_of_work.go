package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a read-modify-write transaction over the whole order collection.
// Units of work are serialized: Begin waits until no other unit is open.
//
// Example:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().Get(ctx, id)
//	...
//	return uow.Commit(ctx)
type UnitOfWork interface {
	// Begin waits for exclusive access and opens a working copy of the collection.
	Begin(ctx context.Context) error

	// Commit writes the working copy through to durable storage and, only when that
	// succeeds, makes it the committed state.
	Commit(ctx context.Context) error

	// Rollback discards the working copy. Calling it after Commit is a no-op that
	// returns an error.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the working copy.
	OrderRepository() OrderRepository
}
