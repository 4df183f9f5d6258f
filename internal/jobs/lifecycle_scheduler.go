package jobs

import (
	"container/heap"
	"context"
	"log/slog"
	"sync"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/clock"
)

// StatusAdvancer applies one scheduled step.
type StatusAdvancer interface {
	Handle(ctx context.Context, cmd commands.AdvanceOrderStatusCommand) (bool, error)
}

// LifecycleScheduler holds the timed status advances of every order in progress.
// Steps are keyed by (order, target status); scheduling the same step twice keeps
// the first. Nothing happens on its own: RunDue fires whatever is due, and
// LifecycleJob calls it every second.
type LifecycleScheduler struct {
	advancer StatusAdvancer
	clock    clock.Clock
	logger   *slog.Logger

	mu    sync.Mutex
	queue stepQueue
	keys  map[stepKey]*scheduledStep
	seq   uint64

	runMu sync.Mutex
}

type stepKey struct {
	orderID string
	target  order.Status
}

type scheduledStep struct {
	orderID  kernel.UUID
	step     order.Step
	dueAt    time.Time
	seq      uint64
	index    int
	removed  bool
	attempts int
}

func NewLifecycleScheduler(advancer StatusAdvancer, clk clock.Clock, logger *slog.Logger) *LifecycleScheduler {
	return &LifecycleScheduler{
		advancer: advancer,
		clock:    clk,
		logger:   logger.With("component", "lifecycle-scheduler"),
		keys:     make(map[stepKey]*scheduledStep),
	}
}

// Schedule queues the steps o has not reached yet, each due at createdAt + offset.
// Steps already overdue fire on the next run.
func (s *LifecycleScheduler) Schedule(_ context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	steps := o.RemainingSteps()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, step := range steps {
		key := stepKey{orderID: o.ID().String(), target: step.Target}
		if _, queued := s.keys[key]; queued {
			continue
		}

		s.seq++
		entry := &scheduledStep{
			orderID: o.ID(),
			step:    step,
			dueAt:   o.CreatedAt().Add(step.Offset),
			seq:     s.seq,
		}
		heap.Push(&s.queue, entry)
		s.keys[key] = entry
	}
	return nil
}

// Unschedule drops the queued steps of the order.
func (s *LifecycleScheduler) Unschedule(orderID kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := orderID.String()
	for key, entry := range s.keys {
		if key.orderID == id {
			entry.removed = true
			delete(s.keys, key)
		}
	}
}

// Resume queues the remaining steps of orders loaded after a restart.
func (s *LifecycleScheduler) Resume(ctx context.Context, orders []*order.Order) int {
	resumed := 0
	for _, o := range orders {
		if !o.IsActive() {
			continue
		}
		if err := s.Schedule(ctx, o); err != nil {
			s.logger.Warn("cannot resume order", "orderId", o.ID().String(), "error", err)
			continue
		}
		resumed++
	}

	s.logger.Info("lifecycle resumed", "orders", resumed)
	return resumed
}

// Pending returns the number of queued steps.
func (s *LifecycleScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

// NextDue returns the due time of the earliest queued step.
func (s *LifecycleScheduler) NextDue() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropRemovedHead()
	if s.queue.Len() == 0 {
		return time.Time{}, false
	}
	return s.queue[0].dueAt, true
}

// RunDue fires every step due at the current clock time, earliest first, and returns
// how many orders moved. A step whose advance fails is queued again for the next
// run; runs never overlap.
func (s *LifecycleScheduler) RunDue(ctx context.Context) int {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	now := s.clock.Now()
	var failed []*scheduledStep
	advanced := 0

	for ctx.Err() == nil {
		entry := s.popDue(now)
		if entry == nil {
			break
		}

		cmd, err := commands.NewAdvanceOrderStatusCommand(entry.orderID, entry.step.Target, entry.step.Location)
		if err != nil {
			s.logger.Error("invalid scheduled step", "orderId", entry.orderID.String(), "error", err)
			continue
		}

		moved, err := s.advancer.Handle(ctx, cmd)
		if err != nil {
			s.logger.Error("scheduled advance failed",
				"orderId", entry.orderID.String(),
				"target", entry.step.Target.String(),
				"attempt", entry.attempts+1,
				"error", err,
			)
			failed = append(failed, entry)
			continue
		}

		if moved {
			advanced++
			s.logger.Info("order advanced",
				"orderId", entry.orderID.String(),
				"status", entry.step.Target.String(),
				"location", entry.step.Location,
			)
		}
	}

	s.requeue(failed)
	return advanced
}

func (s *LifecycleScheduler) popDue(now time.Time) *scheduledStep {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropRemovedHead()
	if s.queue.Len() == 0 || s.queue[0].dueAt.After(now) {
		return nil
	}

	entry := heap.Pop(&s.queue).(*scheduledStep)
	delete(s.keys, stepKey{orderID: entry.orderID.String(), target: entry.step.Target})
	return entry
}

func (s *LifecycleScheduler) requeue(failed []*scheduledStep) {
	if len(failed) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range failed {
		key := stepKey{orderID: entry.orderID.String(), target: entry.step.Target}
		if _, queued := s.keys[key]; queued {
			continue
		}
		entry.attempts++
		heap.Push(&s.queue, entry)
		s.keys[key] = entry
	}
}

func (s *LifecycleScheduler) dropRemovedHead() {
	for s.queue.Len() > 0 && s.queue[0].removed {
		heap.Pop(&s.queue)
	}
}

// stepQueue is a min-heap on (dueAt, seq).
type stepQueue []*scheduledStep

func (q stepQueue) Len() int { return len(q) }

func (q stepQueue) Less(i, j int) bool {
	if q[i].dueAt.Equal(q[j].dueAt) {
		return q[i].seq < q[j].seq
	}
	return q[i].dueAt.Before(q[j].dueAt)
}

func (q stepQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *stepQueue) Push(x any) {
	entry := x.(*scheduledStep)
	entry.index = len(*q)
	*q = append(*q, entry)
}

func (q *stepQueue) Pop() any {
	old := *q
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	entry.index = -1
	*q = old[:n-1]
	return entry
}
