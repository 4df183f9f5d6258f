package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// EstimatedDeliveryOffset is added to the creation time to produce the estimate shown
// to the customer.
const EstimatedDeliveryOffset = 40 * time.Minute

var (
	// ErrOrderIsNotConstructed is returned by Validate for orders that did not come
	// from NewOrder or Restore.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrEmptyOrder is returned when an order is created without line items.
	ErrEmptyOrder = errors.New("order must contain at least one item")
)

// Order is the aggregate root of the lifecycle engine. Everything except status and
// current location is fixed at creation; status only moves forward along the graph
// described on Status, and the location label changes together with it.
//
// Invariants:
//   - id is a valid UUID and userID is not blank
//   - items is non-empty and total equals the sum of quantity × unitPrice
//   - deliveryInfo carries an address when deliveryType is Delivery
//   - estimatedDelivery is createdAt + EstimatedDeliveryOffset
type Order struct {
	id                kernel.UUID
	userID            string
	items             []Item
	total             decimal.Decimal
	status            Status
	deliveryType      DeliveryType
	deliveryInfo      DeliveryInfo
	paymentMethod     string
	createdAt         time.Time
	estimatedDelivery time.Time
	currentLocation   string

	isConstructed bool
}

// NewOrder builds a Pending order located at the restaurant. items are copied, so the
// caller's slice (the cart snapshot) can change freely afterwards.
//
// Example:
//
//	burger, _ := order.NewItem("burger", 2, decimal.RequireFromString("18.90"))
//	info, _ := order.NewDeliveryInfo("Ana", "555-0100", "", "", "ASAP")
//	o, err := order.NewOrder(kernel.NewUUID(), "user-1", order.Pickup, info, "card",
//	    []order.Item{burger}, time.Now())
func NewOrder(
	id kernel.UUID,
	userID string,
	deliveryType DeliveryType,
	deliveryInfo DeliveryInfo,
	paymentMethod string,
	items []Item,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:          Pending,
		paymentMethod:   paymentMethod,
		createdAt:       createdAt.UTC(),
		currentLocation: LocationRestaurant,
		isConstructed:   true,
	}
	o.estimatedDelivery = o.createdAt.Add(EstimatedDeliveryOffset)

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setDeliveryType(deliveryType),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if err := deliveryInfo.validateFor(deliveryType); err != nil {
		return nil, err
	}
	o.deliveryInfo = deliveryInfo
	o.total = Total(o.items)

	return o, nil
}

// Snapshot is the flat, exported form of an Order used by persistence adapters.
type Snapshot struct {
	ID                kernel.UUID
	UserID            string
	Items             []Item
	Total             decimal.Decimal
	Status            Status
	DeliveryType      DeliveryType
	DeliveryInfo      DeliveryInfo
	PaymentMethod     string
	CreatedAt         time.Time
	EstimatedDelivery time.Time
	CurrentLocation   string
}

// Restore rebuilds an order read back from storage. It re-checks every invariant that
// NewOrder enforces, including that the stored total matches the items.
func Restore(s Snapshot) (*Order, error) {
	o := &Order{
		paymentMethod:     s.PaymentMethod,
		createdAt:         s.CreatedAt.UTC(),
		estimatedDelivery: s.EstimatedDelivery.UTC(),
		currentLocation:   s.CurrentLocation,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setUserID(s.UserID),
		o.setDeliveryType(s.DeliveryType),
		o.setItems(s.Items),
		s.Status.ValidateFor(s.DeliveryType),
	); err != nil {
		return nil, err
	}

	if err := s.DeliveryInfo.validateFor(s.DeliveryType); err != nil {
		return nil, err
	}

	total := Total(o.items)
	if !total.Equal(s.Total) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"total",
			fmt.Errorf("%s does not match the items sum %s", s.Total, total),
		)
	}

	o.status = s.Status
	o.deliveryInfo = s.DeliveryInfo
	o.total = s.Total
	return o, nil
}

// Snapshot exports the current state. The returned Items slice is a copy.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                o.id,
		UserID:            o.userID,
		Items:             o.Items(),
		Total:             o.total,
		Status:            o.status,
		DeliveryType:      o.deliveryType,
		DeliveryInfo:      o.deliveryInfo,
		PaymentMethod:     o.paymentMethod,
		CreatedAt:         o.createdAt,
		EstimatedDelivery: o.estimatedDelivery,
		CurrentLocation:   o.currentLocation,
	}
}

// Clone returns an independent copy of the order.
func (o *Order) Clone() *Order {
	c := *o
	c.items = o.Items()
	return &c
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID              { return o.id }
func (o *Order) UserID() string               { return o.userID }
func (o *Order) Total() decimal.Decimal       { return o.total }
func (o *Order) Status() Status               { return o.status }
func (o *Order) DeliveryType() DeliveryType   { return o.deliveryType }
func (o *Order) DeliveryInfo() DeliveryInfo   { return o.deliveryInfo }
func (o *Order) PaymentMethod() string        { return o.paymentMethod }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) EstimatedDelivery() time.Time { return o.estimatedDelivery }
func (o *Order) CurrentLocation() string      { return o.currentLocation }
func (o *Order) IsActive() bool               { return o.status.IsActive() }
func (o *Order) BelongsTo(userID string) bool { return o.userID == userID }

// Items returns a copy of the line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Advance moves the order to target and updates the location label. The move must be
// the next step for the order's delivery type; anything else leaves the order as is.
func (o *Order) Advance(target Status, location string) error {
	next, err := o.status.AdvanceTo(target, o.deliveryType)
	if err != nil {
		return err
	}

	o.status = next
	if location != "" {
		o.currentLocation = location
	}
	return nil
}

// Cancel moves a Pending or Preparing order to Cancelled. The location label keeps the
// last place the order reached.
func (o *Order) Cancel() error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = next
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errs.NewValueIsRequiredError("userId")
	}
	o.userID = userID
	return nil
}

func (o *Order) setDeliveryType(deliveryType DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}
	o.deliveryType = deliveryType
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrEmptyOrder
	}

	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
