package order

import (
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

// DeliveryType selects how the order reaches the customer and, through it, which
// status schedule the order follows.
type DeliveryType int

const (
	UnknownDeliveryType DeliveryType = iota
	Delivery
	Pickup
)

func (t DeliveryType) String() string {
	switch t {
	case Delivery:
		return "delivery"
	case Pickup:
		return "pickup"
	default:
		return "unknown"
	}
}

func (t DeliveryType) Validate() error {
	if t != Delivery && t != Pickup {
		return errs.NewValueIsInvalidErrorWithCause("deliveryType", fmt.Errorf("%d is not a valid delivery type", t))
	}
	return nil
}

func ParseDeliveryType(s string) (DeliveryType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "delivery":
		return Delivery, nil
	case "pickup":
		return Pickup, nil
	default:
		return UnknownDeliveryType, errs.NewValueIsInvalidErrorWithCause(
			"deliveryType",
			fmt.Errorf("%q is not a valid delivery type", s),
		)
	}
}
