package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/clock"
	"orderflow/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels orders. An unknown order or one that is past the
// cancellation window is reported as false, not as an error; errors are reserved for
// failures of the unit of work.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	scheduler  ports.LifecycleScheduler
	publisher  ports.OrderEventPublisher
	clock      clock.Clock
	latency    time.Duration
	logger     *slog.Logger
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	scheduler ports.LifecycleScheduler,
	publisher ports.OrderEventPublisher,
	clk clock.Clock,
	latency time.Duration,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		publisher:  publisher,
		clock:      clk,
		latency:    latency,
		logger:     logger.With("component", "cancel-order"),
	}
}

// Handle reports whether the order was cancelled.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	if err := h.clock.Sleep(ctx, h.latency); err != nil {
		return false, err
	}

	cancelled, from, err := h.cancel(ctx, cmd)
	if err != nil || cancelled == nil {
		return false, err
	}

	h.scheduler.Unschedule(cancelled.ID())

	event := order.NewStatusChanged(cancelled, from, h.clock.Now())
	if err = h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish order event", "orderId", cancelled.ID().String(), "error", err)
	}

	return true, nil
}

// cancel returns a nil order when there is nothing to cancel.
func (h *CancelOrderCommandHandler) cancel(
	ctx context.Context,
	cmd CancelOrderCommand,
) (*order.Order, order.Status, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, order.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, order.Unknown, nil
	}
	if err != nil {
		return nil, order.Unknown, err
	}

	from := o.Status()
	if err = o.Cancel(); err != nil {
		h.logger.Info("order cannot be cancelled", "orderId", o.ID().String(), "status", from.String())
		return nil, order.Unknown, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, order.Unknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, order.Unknown, err
	}

	return o, from, nil
}
