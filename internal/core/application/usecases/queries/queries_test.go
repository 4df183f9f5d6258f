package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"orderflow/internal/adapters/out/memory"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) GetAllByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderReader) GetActiveByUser(ctx context.Context, userID string) (*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

// OrderQueriesTestSuite runs the query handlers against a store seeded with
// pending, completed and cancelled orders of two users.
type OrderQueriesTestSuite struct {
	suite.Suite
	store *memory.Store

	pending   *order.Order
	completed *order.Order
	cancelled *order.Order
	other     *order.Order
}

func (suite *OrderQueriesTestSuite) SetupTest() {
	ctx := context.Background()
	base := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	suite.completed = suite.newOrder("user-1", order.Pickup, base)
	suite.Require().NoError(suite.completed.Advance(order.Preparing, order.LocationKitchen))
	suite.Require().NoError(suite.completed.Advance(order.Completed, order.LocationReadyForPickup))
	suite.cancelled = suite.newOrder("user-1", order.Delivery, base.Add(time.Hour))
	suite.Require().NoError(suite.cancelled.Cancel())
	suite.pending = suite.newOrder("user-1", order.Delivery, base.Add(2*time.Hour))
	suite.other = suite.newOrder("user-2", order.Pickup, base.Add(3*time.Hour))

	snapshots := memory.NewSnapshotStore(logger)
	suite.Require().NoError(snapshots.Save(ctx,
		[]*order.Order{suite.completed, suite.pending, suite.cancelled, suite.other}))

	store, err := memory.NewStore(ctx, snapshots, logger)
	suite.Require().NoError(err)
	suite.store = store
}

func (suite *OrderQueriesTestSuite) newOrder(userID string, deliveryType order.DeliveryType, at time.Time) *order.Order {
	item, err := order.NewItem("burger", 2, decimal.RequireFromString("18.90"))
	suite.Require().NoError(err)
	address := ""
	if deliveryType == order.Delivery {
		address = "Rua A, 100"
	}
	info, err := order.NewDeliveryInfo("Ana", "555-0100", address, "", "ASAP")
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), userID, deliveryType, info, "card", []order.Item{item}, at)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderQueriesTestSuite) TestGetOrder() {
	handler := queries.NewGetOrderQueryHandler(suite.store)
	query, err := queries.NewGetOrderQuery(suite.pending.ID())
	suite.Require().NoError(err)

	response, found, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().True(found)
	suite.True(response.ID.IsEqual(suite.pending.ID()))
	suite.Equal(order.Pending, response.Status)
	suite.Equal("Rua A, 100", response.DeliveryInfo.Address)
	suite.Require().Len(response.Items, 1)
	suite.Equal("37.8", response.Items[0].Subtotal.String())
	suite.True(response.IsActive())
	suite.True(response.CanBeCancelled())
}

func (suite *OrderQueriesTestSuite) TestGetOrder_NotFound() {
	handler := queries.NewGetOrderQueryHandler(suite.store)
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, found, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.False(found)
}

func (suite *OrderQueriesTestSuite) TestGetOrder_NotConstructed() {
	handler := queries.NewGetOrderQueryHandler(suite.store)

	_, _, err := handler.Handle(context.Background(), queries.GetOrderQuery{})

	suite.ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)
}

func (suite *OrderQueriesTestSuite) TestGetUserOrders_NewestFirst() {
	handler := queries.NewGetUserOrdersQueryHandler(suite.store)

	responses, err := handler.Handle(context.Background(), queries.NewGetUserOrdersQuery(kernel.NewIdentity("user-1")))

	suite.Require().NoError(err)
	suite.Require().Len(responses, 3)
	suite.True(responses[0].ID.IsEqual(suite.pending.ID()))
	suite.True(responses[1].ID.IsEqual(suite.cancelled.ID()))
	suite.True(responses[2].ID.IsEqual(suite.completed.ID()))
	suite.False(responses[1].CanBeCancelled())
}

func (suite *OrderQueriesTestSuite) TestGetUserOrders_Anonymous() {
	handler := queries.NewGetUserOrdersQueryHandler(suite.store)

	responses, err := handler.Handle(context.Background(), queries.NewGetUserOrdersQuery(kernel.Anonymous()))

	suite.Require().NoError(err)
	suite.NotNil(responses)
	suite.Empty(responses)
}

func (suite *OrderQueriesTestSuite) TestGetActiveOrder() {
	handler := queries.NewGetActiveOrderQueryHandler(suite.store)

	response, found, err := handler.Handle(context.Background(), queries.NewGetActiveOrderQuery(kernel.NewIdentity("user-1")))

	suite.Require().NoError(err)
	suite.Require().True(found)
	suite.True(response.ID.IsEqual(suite.pending.ID()))
}

func (suite *OrderQueriesTestSuite) TestGetActiveOrder_None() {
	handler := queries.NewGetActiveOrderQueryHandler(suite.store)

	for _, identity := range []kernel.Identity{kernel.NewIdentity("user-3"), kernel.Anonymous()} {
		_, found, err := handler.Handle(context.Background(), queries.NewGetActiveOrderQuery(identity))

		suite.Require().NoError(err)
		suite.False(found)
	}
}

func (suite *OrderQueriesTestSuite) TestReaderErrorsPropagate() {
	reader := new(MockOrderReader)
	reader.On("GetActiveByUser", mock.Anything, "user-1").Return(nil, errors.New("store unavailable"))
	reader.On("GetAllByUser", mock.Anything, "user-1").Return(nil, errors.New("store unavailable"))
	identity := kernel.NewIdentity("user-1")

	_, _, err := queries.NewGetActiveOrderQueryHandler(reader).
		Handle(context.Background(), queries.NewGetActiveOrderQuery(identity))
	suite.ErrorContains(err, "store unavailable")

	_, err = queries.NewGetUserOrdersQueryHandler(reader).
		Handle(context.Background(), queries.NewGetUserOrdersQuery(identity))
	suite.ErrorContains(err, "store unavailable")
}

func TestOrderQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesTestSuite))
}
