package facade

import (
	"context"
	"sync"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// ActiveOrderUpdate is the active order of a user at some point in time. Found is
// false once the user has no order in progress.
type ActiveOrderUpdate struct {
	Order queries.OrderResponse
	Found bool
}

// WatchActiveOrder streams the active order of identity. The current value is sent
// first, then a new value after every committed change to one of the user's orders.
// A slow reader only ever sees the latest value. The channel is closed when ctx is
// done.
func (f *Orders) WatchActiveOrder(ctx context.Context, identity kernel.Identity) (<-chan ActiveOrderUpdate, error) {
	if err := identity.Require(); err != nil {
		return nil, err
	}

	w := newWatcher(identity)
	f.watchers.add(w)

	unlock := f.watchers.lockUser(identity.ID())
	current, err := f.currentActive(ctx, identity)
	if err != nil {
		unlock()
		f.watchers.remove(w)
		return nil, err
	}
	w.offer(current)
	unlock()

	go func() {
		<-ctx.Done()
		f.watchers.remove(w)
		w.close()
	}()

	return w.updates, nil
}

// Publish refreshes the watchers of the user the event belongs to. It implements
// ports.OrderEventPublisher. Reads and offers for one user happen one publish at a
// time, so the last offer always carries the latest committed state.
func (f *Orders) Publish(ctx context.Context, event order.StatusChanged) error {
	unlock := f.watchers.lockUser(event.UserID)
	defer unlock()

	watchers := f.watchers.forUser(event.UserID)
	if len(watchers) == 0 {
		return nil
	}

	update, err := f.currentActive(ctx, watchers[0].identity)
	if err != nil {
		return err
	}
	for _, w := range watchers {
		w.offer(update)
	}
	return nil
}

func (f *Orders) currentActive(ctx context.Context, identity kernel.Identity) (ActiveOrderUpdate, error) {
	active, found, err := f.ActiveOrder(ctx, identity)
	if err != nil {
		return ActiveOrderUpdate{}, err
	}
	return ActiveOrderUpdate{Order: active, Found: found}, nil
}

type watcher struct {
	identity kernel.Identity
	updates  chan ActiveOrderUpdate

	mu     sync.Mutex
	closed bool
}

func newWatcher(identity kernel.Identity) *watcher {
	return &watcher{
		identity: identity,
		updates:  make(chan ActiveOrderUpdate, 1),
	}
}

// offer replaces an unread value with update.
func (w *watcher) offer(update ActiveOrderUpdate) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	select {
	case <-w.updates:
	default:
	}
	w.updates <- update
}

func (w *watcher) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.updates)
	}
}

type watchHub struct {
	mu     sync.RWMutex
	byUser map[string]map[*watcher]struct{}

	publishMu sync.Mutex
	publishes map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newWatchHub() *watchHub {
	return &watchHub{
		byUser:    make(map[string]map[*watcher]struct{}),
		publishes: make(map[string]*userLock),
	}
}

// lockUser serializes read-then-offer sequences for userID. The returned func
// releases the lock.
func (h *watchHub) lockUser(userID string) func() {
	h.publishMu.Lock()
	l, exists := h.publishes[userID]
	if !exists {
		l = &userLock{}
		h.publishes[userID] = l
	}
	l.refs++
	h.publishMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		h.publishMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(h.publishes, userID)
		}
		h.publishMu.Unlock()
	}
}

func (h *watchHub) add(w *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := w.identity.ID()
	if h.byUser[userID] == nil {
		h.byUser[userID] = make(map[*watcher]struct{})
	}
	h.byUser[userID][w] = struct{}{}
}

func (h *watchHub) remove(w *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := w.identity.ID()
	delete(h.byUser[userID], w)
	if len(h.byUser[userID]) == 0 {
		delete(h.byUser, userID)
	}
}

func (h *watchHub) forUser(userID string) []*watcher {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*watcher, 0, len(h.byUser[userID]))
	for w := range h.byUser[userID] {
		out = append(out, w)
	}
	return out
}
