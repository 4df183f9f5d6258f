package order

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

// StatusChanged is raised after a committed status change. A freshly created order is
// reported as a change from Unknown to Pending.
type StatusChanged struct {
	OrderID      kernel.UUID
	UserID       string
	DeliveryType DeliveryType
	From         Status
	To           Status
	Location     string
	OccurredAt   time.Time
}

// NewStatusChanged describes the current state of o as reached from the from status.
func NewStatusChanged(o *Order, from Status, at time.Time) StatusChanged {
	return StatusChanged{
		OrderID:      o.ID(),
		UserID:       o.UserID(),
		DeliveryType: o.DeliveryType(),
		From:         from,
		To:           o.Status(),
		Location:     o.CurrentLocation(),
		OccurredAt:   at,
	}
}
