package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetActiveByUser(ctx context.Context, userID string) (*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockScheduler struct{ mock.Mock }

func (m *MockScheduler) Schedule(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockScheduler) Unschedule(orderID kernel.UUID) {
	m.Called(orderID)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, event order.StatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

var now = time.Date(2025, 4, 12, 19, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func cartItems(t *testing.T) []order.Item {
	t.Helper()
	burger, err := order.NewItem("burger", 2, decimal.RequireFromString("18.90"))
	require.NoError(t, err)
	fries, err := order.NewItem("fries", 1, decimal.RequireFromString("15.60"))
	require.NoError(t, err)
	return []order.Item{burger, fries}
}

func pickupInfo(t *testing.T) order.DeliveryInfo {
	t.Helper()
	info, err := order.NewDeliveryInfo("Ana", "555-0100", "", "", "ASAP")
	require.NoError(t, err)
	return info
}

func existingOrder(t *testing.T, deliveryType order.DeliveryType) *order.Order {
	t.Helper()
	info := pickupInfo(t)
	if deliveryType == order.Delivery {
		var err error
		info, err = order.NewDeliveryInfo("Ana", "555-0100", "Rua A, 100", "", "20:00")
		require.NoError(t, err)
	}
	o, err := order.NewOrder(kernel.NewUUID(), "user-1", deliveryType, info, "card", cartItems(t), now)
	require.NoError(t, err)
	return o
}
