package commands

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrPaymentMethodIsRequired = errs.NewValueIsRequiredError("paymentMethod")
)

// CreateOrderCommand represents checkout: turning the caller's cart snapshot into a
// new pending order.
//
// Example:
//
//	burger, _ := order.NewItem("burger", 2, decimal.RequireFromString("18.90"))
//	info, _ := order.NewDeliveryInfo("Ana", "555-0100", "Rua A, 100", "", "20:00")
//	cmd, err := NewCreateOrderCommand(kernel.NewIdentity("user-1"), order.Delivery, info,
//	    "card", []order.Item{burger})
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID        string
	deliveryType  order.DeliveryType
	deliveryInfo  order.DeliveryInfo
	paymentMethod string
	items         []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the checkout input. An anonymous identity fails
// with kernel.ErrUnauthenticated before anything else is looked at; an empty cart
// fails with order.ErrEmptyOrder.
func NewCreateOrderCommand(
	identity kernel.Identity,
	deliveryType order.DeliveryType,
	deliveryInfo order.DeliveryInfo,
	paymentMethod string,
	items []order.Item,
) (CreateOrderCommand, error) {
	if err := identity.Require(); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd := CreateOrderCommand{
		userID:       identity.ID(),
		deliveryInfo: deliveryInfo,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItems(items),
		cmd.setDeliveryType(deliveryType),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) UserID() string {
	return c.userID
}

func (c CreateOrderCommand) DeliveryType() order.DeliveryType {
	return c.deliveryType
}

func (c CreateOrderCommand) DeliveryInfo() order.DeliveryInfo {
	return c.deliveryInfo
}

func (c CreateOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

// Items returns a copy of the cart snapshot.
func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return order.ErrEmptyOrder
	}

	c.items = make([]order.Item, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setDeliveryType(deliveryType order.DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}

	c.deliveryType = deliveryType
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod string) error {
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		return ErrPaymentMethodIsRequired
	}

	c.paymentMethod = paymentMethod
	return nil
}
