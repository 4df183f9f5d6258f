package commands

import (
	"context"
	"errors"
	"log/slog"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/clock"
	"orderflow/internal/pkg/errs"
)

// AdvanceOrderStatusCommandHandler applies a scheduled step. The order status is
// re-read inside the unit of work, so a step for an order that was cancelled,
// already completed or already past the target is a no-op.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	clock      clock.Clock
	logger     *slog.Logger
}

func NewAdvanceOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
		logger:     logger.With("component", "advance-order-status"),
	}
}

// Handle reports whether the order moved.
func (h *AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	advanced, from, err := h.advance(ctx, cmd)
	if err != nil || advanced == nil {
		return false, err
	}

	event := order.NewStatusChanged(advanced, from, h.clock.Now())
	if err = h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish order event", "orderId", advanced.ID().String(), "error", err)
	}

	return true, nil
}

func (h *AdvanceOrderStatusCommandHandler) advance(
	ctx context.Context,
	cmd AdvanceOrderStatusCommand,
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
		h.logger.Debug("skipping step for unknown order", "orderId", cmd.OrderID().String())
		return nil, order.Unknown, nil
	}
	if err != nil {
		return nil, order.Unknown, err
	}

	from := o.Status()
	if err = o.Advance(cmd.Target(), cmd.Location()); err != nil {
		h.logger.Debug("skipping stale step",
			"orderId", o.ID().String(), "status", from.String(), "target", cmd.Target().String())
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
