package commands_test

import (
	"errors"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/clock"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCancelHandler(
	factory *MockOrderUoWFactory,
	scheduler *MockScheduler,
	publisher *MockPublisher,
) commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(
		factory, scheduler, publisher, clock.NewFake(now), time.Second, discardLogger(),
	)
}

func TestNewCancelOrderCommand_InvalidID(t *testing.T) {
	_, err := commands.NewCancelOrderCommand(kernel.UUID{})

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestCancelOrderCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name   string
		status order.Status
	}{
		{name: "pending", status: order.Pending},
		{name: "preparing", status: order.Preparing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			existing := existingOrder(t, order.Delivery)
			if tt.status == order.Preparing {
				require.NoError(t, existing.Advance(order.Preparing, order.LocationKitchen))
			}
			cmd, err := commands.NewCancelOrderCommand(existing.ID())
			require.NoError(t, err)

			repo := new(MockOrderRepository)
			uow := new(MockOrderUoW)
			factory := new(MockOrderUoWFactory)
			scheduler := new(MockScheduler)
			publisher := new(MockPublisher)
			factory.On("Create").Return(uow).Once()
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("OrderRepository").Return(repo).Once(),
				repo.On("Get", ctx, existing.ID()).Return(existing, nil).Once(),
				repo.On("Update", ctx, mock.MatchedBy(func(o *order.Order) bool {
					return o.Status() == order.Cancelled
				})).Return(nil).Once(),
				uow.On("Commit", ctx).Return(nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
				scheduler.On("Unschedule", existing.ID()).Return().Once(),
				publisher.On("Publish", ctx, mock.MatchedBy(func(e order.StatusChanged) bool {
					return e.From == tt.status && e.To == order.Cancelled
				})).Return(nil).Once(),
			)

			h := newCancelHandler(factory, scheduler, publisher)
			cancelled, err := h.Handle(ctx, cmd)

			require.NoError(t, err)
			assert.True(t, cancelled)
			repo.AssertExpectations(t)
			uow.AssertExpectations(t)
			scheduler.AssertExpectations(t)
			publisher.AssertExpectations(t)
		})
	}
}

func TestCancelOrderCommandHandler_Handle_NotCancellable(t *testing.T) {
	ctx := t.Context()
	existing := existingOrder(t, order.Delivery)
	require.NoError(t, existing.Advance(order.Preparing, order.LocationKitchen))
	require.NoError(t, existing.Advance(order.Delivering, order.LocationEnRoute))
	cmd, err := commands.NewCancelOrderCommand(existing.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	scheduler := new(MockScheduler)
	publisher := new(MockPublisher)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, existing.ID()).Return(existing, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := newCancelHandler(factory, scheduler, publisher)
	cancelled, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, cancelled)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	scheduler.AssertNotCalled(t, "Unschedule", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewCancelOrderCommand(id)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := newCancelHandler(factory, new(MockScheduler), new(MockPublisher))
	cancelled, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, cancelled)
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	existing := existingOrder(t, order.Pickup)
	cmd, err := commands.NewCancelOrderCommand(existing.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	scheduler := new(MockScheduler)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, existing.ID()).Return(existing, nil).Once()
	repo.On("Update", ctx, mock.Anything).Return(errors.New("update error")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := newCancelHandler(factory, scheduler, new(MockPublisher))
	cancelled, err := h.Handle(ctx, cmd)

	require.ErrorContains(t, err, "update error")
	assert.False(t, cancelled)
	scheduler.AssertNotCalled(t, "Unschedule", mock.Anything)
}
