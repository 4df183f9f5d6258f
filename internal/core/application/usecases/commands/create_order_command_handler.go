package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/clock"
	"orderflow/internal/pkg/errs"
)

// ErrActiveOrderExists is returned when the caller still has an order in progress.
var ErrActiveOrderExists = errors.New("user already has an active order")

// CreateOrderCommandHandler places orders. After the order is committed it becomes
// the user's active order, its lifecycle steps are scheduled and a StatusChanged
// event (Unknown → Pending) is published.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, scheduler, publisher,
//	    clock.NewReal(), time.Second, logger)
//	orderID, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrActiveOrderExists) {
//	    // show the active order instead
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	scheduler  ports.LifecycleScheduler
	publisher  ports.OrderEventPublisher
	clock      clock.Clock
	latency    time.Duration
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for checkout. latency is waited
// before the order is placed so clients always observe a pending state.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	scheduler ports.LifecycleScheduler,
	publisher ports.OrderEventPublisher,
	clk clock.Clock,
	latency time.Duration,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		publisher:  publisher,
		clock:      clk,
		latency:    latency,
		logger:     logger.With("component", "create-order"),
	}
}

// Handle places the order and returns its id.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	if err := h.clock.Sleep(ctx, h.latency); err != nil {
		return kernel.UUID{}, err
	}

	created, err := h.place(ctx, cmd)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.scheduler.Schedule(ctx, created); err != nil {
		h.logger.Error("failed to schedule order", "orderId", created.ID().String(), "error", err)
	}

	event := order.NewStatusChanged(created, order.Unknown, created.CreatedAt())
	if err = h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish order event", "orderId", created.ID().String(), "error", err)
	}

	return created.ID(), nil
}

func (h *CreateOrderCommandHandler) place(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	_, err := orderRepo.GetActiveByUser(ctx, cmd.UserID())
	switch {
	case err == nil:
		return nil, ErrActiveOrderExists
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	created, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.UserID(),
		cmd.DeliveryType(),
		cmd.DeliveryInfo(),
		cmd.PaymentMethod(),
		cmd.Items(),
		h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
