package facade_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"orderflow/internal/adapters/out/memory"
	"orderflow/internal/core/application/events"
	"orderflow/internal/core/application/facade"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/jobs"
	"orderflow/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedActiveOrderFinder answers the n-th call with replies[n]. A reply with a
// non-nil gate blocks until the gate is closed.
type scriptedActiveOrderFinder struct {
	mu      sync.Mutex
	calls   int
	entered chan int
	replies []scriptedReply
}

type scriptedReply struct {
	gate   chan struct{}
	status order.Status
	found  bool
}

func (f *scriptedActiveOrderFinder) Handle(_ context.Context, _ queries.GetActiveOrderQuery) (queries.OrderResponse, bool, error) {
	f.mu.Lock()
	reply := f.replies[f.calls]
	f.calls++
	n := f.calls
	f.mu.Unlock()

	f.entered <- n
	if reply.gate != nil {
		<-reply.gate
	}
	return queries.OrderResponse{Status: reply.status}, reply.found, nil
}

func newFacadeWithActiveFinder(t *testing.T, activeOrder facade.ActiveOrderFinder) *facade.Orders {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewFake(start)

	store, err := memory.NewStore(ctx, memory.NewSnapshotStore(logger), logger)
	require.NoError(t, err)
	uowFactory := storeUoWFactory{store: store}
	fanout := events.NewFanout(logger)
	advance := commands.NewAdvanceOrderStatusCommandHandler(uowFactory, fanout, clk, logger)
	scheduler := jobs.NewLifecycleScheduler(&advance, clk, logger)
	create := commands.NewCreateOrderCommandHandler(uowFactory, scheduler, fanout, clk, 0, logger)
	cancel := commands.NewCancelOrderCommandHandler(uowFactory, scheduler, fanout, clk, 0, logger)

	orders, err := facade.NewOrders(
		&create,
		&cancel,
		queries.NewGetOrderQueryHandler(store),
		queries.NewGetUserOrdersQueryHandler(store),
		activeOrder,
		logger,
	)
	require.NoError(t, err)
	return orders
}

func TestPublish_StaleReadIsNotOfferedLast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slowRead := make(chan struct{})
	finder := &scriptedActiveOrderFinder{
		entered: make(chan int, 3),
		replies: []scriptedReply{
			{status: order.Preparing, found: true},
			{status: order.Preparing, found: true, gate: slowRead},
			{found: false},
		},
	}
	orders := newFacadeWithActiveFinder(t, finder)

	updates, err := orders.WatchActiveOrder(ctx, kernel.NewIdentity("U1"))
	require.NoError(t, err)
	require.Equal(t, 1, <-finder.entered)
	require.Equal(t, order.Preparing, (<-updates).Order.Status)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, orders.Publish(ctx, order.StatusChanged{UserID: "U1", To: order.Preparing}))
	}()
	require.Equal(t, 2, <-finder.entered)

	go func() {
		defer wg.Done()
		assert.NoError(t, orders.Publish(ctx, order.StatusChanged{UserID: "U1", To: order.Cancelled}))
	}()
	select {
	case n := <-finder.entered:
		t.Fatalf("read %d started while an earlier publish was still reading", n)
	case <-time.After(50 * time.Millisecond):
	}

	close(slowRead)
	wg.Wait()

	select {
	case update := <-updates:
		assert.False(t, update.Found)
	case <-time.After(time.Second):
		t.Fatal("no active order update")
	}
}

func TestPublish_IgnoresUsersWithoutWatchers(t *testing.T) {
	finder := &scriptedActiveOrderFinder{entered: make(chan int, 1)}
	orders := newFacadeWithActiveFinder(t, finder)

	require.NoError(t, orders.Publish(context.Background(), order.StatusChanged{UserID: "U9"}))
	assert.Zero(t, finder.calls)
}
