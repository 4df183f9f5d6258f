package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"orderflow/internal/core/application/facade"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// OrderService is the order surface the server exposes. facade.Orders implements it.
type OrderService interface {
	CreateOrder(
		ctx context.Context,
		identity kernel.Identity,
		deliveryType order.DeliveryType,
		deliveryInfo order.DeliveryInfo,
		paymentMethod string,
		cartItems []order.Item,
	) (kernel.UUID, error)
	CancelOrder(ctx context.Context, orderID kernel.UUID) (bool, error)
	GetOrderByID(ctx context.Context, orderID kernel.UUID) (queries.OrderResponse, bool, error)
	GetOrdersForUser(ctx context.Context, identity kernel.Identity) ([]queries.OrderResponse, error)
	ActiveOrder(ctx context.Context, identity kernel.Identity) (queries.OrderResponse, bool, error)
	WatchActiveOrder(ctx context.Context, identity kernel.Identity) (<-chan facade.ActiveOrderUpdate, error)
}

// Server translates HTTP requests into order operations. Every route except /health
// and /metrics runs behind IdentityMiddleware.
type Server struct {
	orders  OrderService
	metrics http.Handler
	secret  []byte
	logger  *slog.Logger
}

// NewServer creates a new HTTP server over orders. metrics serves /metrics.
func NewServer(orders OrderService, metrics http.Handler, secret []byte, logger *slog.Logger) (*Server, error) {
	switch {
	case orders == nil:
		return nil, errs.NewValueIsRequiredError("orders")
	case metrics == nil:
		return nil, errs.NewValueIsRequiredError("metrics")
	case len(secret) == 0:
		return nil, ErrSecretIsRequired
	case logger == nil:
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Server{
		orders:  orders,
		metrics: metrics,
		secret:  secret,
		logger:  logger.With("component", "http"),
	}, nil
}

// Register mounts the routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(s.metrics))

	api := e.Group("/api/v1", IdentityMiddleware(s.secret))
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/active", s.GetActiveOrder)
	api.GET("/orders/active/stream", s.StreamActiveOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
}

// CreateOrder handles POST /api/v1/orders - checks out the caller's cart.
func (s *Server) CreateOrder(ctx echo.Context) error {
	identity := IdentityFrom(ctx)
	if err := identity.Require(); err != nil {
		return s.writeError(ctx, err, "Failed to create order")
	}

	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	deliveryType, deliveryInfo, items, err := request.toDomain()
	if err != nil {
		return s.writeError(ctx, err, "Invalid order data")
	}

	orderID, err := s.orders.CreateOrder(
		ctx.Request().Context(), identity, deliveryType, deliveryInfo, request.PaymentMethod, items,
	)
	if err != nil {
		return s.writeError(ctx, err, "Failed to create order")
	}

	ctx.Response().Header().Set(echo.HeaderLocation, "/api/v1/orders/"+orderID.String())
	return ctx.JSON(http.StatusCreated, CreatedOrderDTO{ID: orderID.String()})
}

// GetOrders handles GET /api/v1/orders - the caller's orders, newest first.
// Anonymous callers get an empty list.
func (s *Server) GetOrders(ctx echo.Context) error {
	views, err := s.orders.GetOrdersForUser(ctx.Request().Context(), IdentityFrom(ctx))
	if err != nil {
		return s.writeError(ctx, err, "Failed to retrieve orders")
	}

	response := make([]OrderDTO, 0, len(views))
	for _, view := range views {
		response = append(response, newOrderDTO(view))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetActiveOrder handles GET /api/v1/orders/active. The order is null when the caller
// has nothing in progress.
func (s *Server) GetActiveOrder(ctx echo.Context) error {
	view, found, err := s.orders.ActiveOrder(ctx.Request().Context(), IdentityFrom(ctx))
	if err != nil {
		return s.writeError(ctx, err, "Failed to retrieve active order")
	}
	return ctx.JSON(http.StatusOK, newActiveOrderDTO(view, found))
}

// GetOrder handles GET /api/v1/orders/:id. Orders of other users are reported as not
// found.
func (s *Server) GetOrder(ctx echo.Context) error {
	view, err := s.ownedOrder(ctx)
	if err != nil {
		return s.writeError(ctx, err, "Failed to retrieve order")
	}
	return ctx.JSON(http.StatusOK, newOrderDTO(view))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel. An order past the cancellation
// window answers 200 with cancelled = false.
func (s *Server) CancelOrder(ctx echo.Context) error {
	view, err := s.ownedOrder(ctx)
	if err != nil {
		return s.writeError(ctx, err, "Failed to cancel order")
	}

	cancelled, err := s.orders.CancelOrder(ctx.Request().Context(), view.ID)
	if err != nil {
		return s.writeError(ctx, err, "Failed to cancel order")
	}
	return ctx.JSON(http.StatusOK, CancelOrderDTO{Cancelled: cancelled})
}

func (s *Server) ownedOrder(ctx echo.Context) (queries.OrderResponse, error) {
	identity := IdentityFrom(ctx)
	if err := identity.Require(); err != nil {
		return queries.OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return queries.OrderResponse{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}

	view, found, err := s.orders.GetOrderByID(ctx.Request().Context(), orderID)
	if err != nil {
		return queries.OrderResponse{}, err
	}
	if !found || view.UserID != identity.ID() {
		return queries.OrderResponse{}, errs.NewObjectNotFoundError("order", orderID)
	}
	return view, nil
}

func (r CreateOrderRequest) toDomain() (order.DeliveryType, order.DeliveryInfo, []order.Item, error) {
	deliveryType, typeErr := order.ParseDeliveryType(r.DeliveryType)
	deliveryInfo, infoErr := order.NewDeliveryInfo(
		r.DeliveryInfo.Name,
		r.DeliveryInfo.Phone,
		r.DeliveryInfo.Address,
		r.DeliveryInfo.Complement,
		r.DeliveryInfo.Time,
	)

	items := make([]order.Item, 0, len(r.Items))
	itemErrs := make([]error, 0)
	for _, dto := range r.Items {
		item, err := order.NewItem(dto.ProductRef, dto.Quantity, dto.UnitPrice)
		if err != nil {
			itemErrs = append(itemErrs, err)
			continue
		}
		items = append(items, item)
	}

	if err := errors.Join(typeErr, infoErr, errors.Join(itemErrs...)); err != nil {
		return order.UnknownDeliveryType, order.DeliveryInfo{}, nil, err
	}
	return deliveryType, deliveryInfo, items, nil
}
