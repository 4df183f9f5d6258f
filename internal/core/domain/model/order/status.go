package order

import (
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	delivery: Pending ──> Preparing ──> Delivering ──> Completed
//	pickup:   Pending ──> Preparing ──> Completed
//	            │             │
//	            └─────────────┴──> Cancelled (explicit cancellation only)
//
// Completed and Cancelled are terminal. The textual form ("pending", "preparing", ...)
// is what gets persisted.
type Status int

const (
	// Unknown catches uninitialized values and is never valid.
	Unknown Status = iota
	Pending
	Preparing
	Delivering
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Preparing:  "preparing",
		Delivering: "delivering",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// advanceGraph lists, per delivery type, the single status each non-terminal status
// may advance to.
var advanceGraph = map[DeliveryType]map[Status]Status{
	Delivery: {
		Pending:    Preparing,
		Preparing:  Delivering,
		Delivering: Completed,
	},
	Pickup: {
		Pending:   Preparing,
		Preparing: Completed,
	},
}

// ParseStatus converts the persisted textual form back into a Status.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsActive reports whether the order is still in progress.
func (s Status) IsActive() bool {
	return s == Pending || s == Preparing || s == Delivering
}

// ValidateFor checks that an order of deliveryType can be in status s at all. Pickup
// orders are never Delivering.
func (s Status) ValidateFor(deliveryType DeliveryType) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s == Pending || s == Cancelled {
		return nil
	}

	for from, to := range advanceGraph[deliveryType] {
		if from == s || to == s {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%s is not reachable for %s orders", s, deliveryType),
	)
}

// ValidateCancel checks the cancellation window without changing anything.
// Only Pending and Preparing orders can be cancelled.
func (s Status) ValidateCancel() error {
	if s != Pending && s != Preparing {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to cancel", s),
		)
	}
	return nil
}

// Cancel returns Cancelled when the transition is allowed.
func (s Status) Cancel() (Status, error) {
	if err := s.ValidateCancel(); err != nil {
		return Unknown, err
	}
	return Cancelled, nil
}

// AdvanceTo returns target if it is the next step after s for the given delivery type.
// Skipping a step, going backwards and leaving a terminal status are all rejected.
func (s Status) AdvanceTo(target Status, deliveryType DeliveryType) (Status, error) {
	next, ok := advanceGraph[deliveryType][s]
	if !ok || next != target {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s cannot advance to %s for %s orders", s, target, deliveryType),
		)
	}
	return target, nil
}
