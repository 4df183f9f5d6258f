package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrGetUserOrdersQueryIsNotConstructed = errors.New(
	"GetUserOrdersQuery must be created via NewGetUserOrdersQuery constructor",
)

// GetUserOrdersQuery lists the caller's order history. Anonymous callers have no
// history.
type GetUserOrdersQuery struct {
	identity kernel.Identity

	guard guard.ConstructorGuard
}

func NewGetUserOrdersQuery(identity kernel.Identity) GetUserOrdersQuery {
	return GetUserOrdersQuery{identity: identity, guard: guard.NewConstructorGuard()}
}

func (q GetUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUserOrdersQueryIsNotConstructed)
}

func (q GetUserOrdersQuery) Identity() kernel.Identity {
	return q.identity
}
