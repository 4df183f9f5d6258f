// Package facade is the single surface presentation code talks to. It passes calls
// through to the command and query handlers and keeps the active-order watchers.
package facade

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

type (
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (kernel.UUID, error)
	}

	OrderCanceller interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (bool, error)
	}

	OrderFinder interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, bool, error)
	}

	UserOrdersFinder interface {
		Handle(ctx context.Context, query queries.GetUserOrdersQuery) ([]queries.OrderResponse, error)
	}

	ActiveOrderFinder interface {
		Handle(ctx context.Context, query queries.GetActiveOrderQuery) (queries.OrderResponse, bool, error)
	}
)

// Orders exposes the order operations to presentation code. It holds no business
// rules of its own.
type Orders struct {
	creator     OrderCreator
	canceller   OrderCanceller
	finder      OrderFinder
	userOrders  UserOrdersFinder
	activeOrder ActiveOrderFinder

	watchers *watchHub
	logger   *slog.Logger
}

func NewOrders(
	creator OrderCreator,
	canceller OrderCanceller,
	finder OrderFinder,
	userOrders UserOrdersFinder,
	activeOrder ActiveOrderFinder,
	logger *slog.Logger,
) (*Orders, error) {
	switch {
	case creator == nil:
		return nil, errs.NewValueIsRequiredError("creator")
	case canceller == nil:
		return nil, errs.NewValueIsRequiredError("canceller")
	case finder == nil:
		return nil, errs.NewValueIsRequiredError("finder")
	case userOrders == nil:
		return nil, errs.NewValueIsRequiredError("userOrders")
	case activeOrder == nil:
		return nil, errs.NewValueIsRequiredError("activeOrder")
	case logger == nil:
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Orders{
		creator:     creator,
		canceller:   canceller,
		finder:      finder,
		userOrders:  userOrders,
		activeOrder: activeOrder,
		watchers:    newWatchHub(),
		logger:      logger.With("component", "orders-facade"),
	}, nil
}

// CreateOrder places an order for identity from a snapshot of its cart.
func (f *Orders) CreateOrder(
	ctx context.Context,
	identity kernel.Identity,
	deliveryType order.DeliveryType,
	deliveryInfo order.DeliveryInfo,
	paymentMethod string,
	cartItems []order.Item,
) (kernel.UUID, error) {
	cmd, err := commands.NewCreateOrderCommand(identity, deliveryType, deliveryInfo, paymentMethod, cartItems)
	if err != nil {
		return kernel.UUID{}, err
	}
	return f.creator.Handle(ctx, cmd)
}

// CancelOrder reports whether the order was cancelled. An id that names no order,
// the zero id included, is not cancelled.
func (f *Orders) CancelOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	if orderID.Validate() != nil {
		return false, nil
	}
	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return false, err
	}
	return f.canceller.Handle(ctx, cmd)
}

// GetOrderByID reports found == false for the zero id.
func (f *Orders) GetOrderByID(ctx context.Context, orderID kernel.UUID) (queries.OrderResponse, bool, error) {
	if orderID.Validate() != nil {
		return queries.OrderResponse{}, false, nil
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return queries.OrderResponse{}, false, err
	}
	return f.finder.Handle(ctx, query)
}

// GetOrdersForUser returns the orders of identity, newest first.
func (f *Orders) GetOrdersForUser(ctx context.Context, identity kernel.Identity) ([]queries.OrderResponse, error) {
	return f.userOrders.Handle(ctx, queries.NewGetUserOrdersQuery(identity))
}

func (f *Orders) ActiveOrder(ctx context.Context, identity kernel.Identity) (queries.OrderResponse, bool, error) {
	return f.activeOrder.Handle(ctx, queries.NewGetActiveOrderQuery(identity))
}
