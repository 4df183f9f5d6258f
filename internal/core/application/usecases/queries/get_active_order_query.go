package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrGetActiveOrderQueryIsNotConstructed = errors.New(
	"GetActiveOrderQuery must be created via NewGetActiveOrderQuery constructor",
)

// GetActiveOrderQuery asks for the caller's order in progress, if any.
type GetActiveOrderQuery struct {
	identity kernel.Identity

	guard guard.ConstructorGuard
}

func NewGetActiveOrderQuery(identity kernel.Identity) GetActiveOrderQuery {
	return GetActiveOrderQuery{identity: identity, guard: guard.NewConstructorGuard()}
}

func (q GetActiveOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrderQueryIsNotConstructed)
}

func (q GetActiveOrderQuery) Identity() kernel.Identity {
	return q.identity
}
