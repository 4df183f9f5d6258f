package memory

import (
	"context"
	"log/slog"
	"sync"

	"orderflow/internal/adapters/out/snapshot"
	"orderflow/internal/core/domain/model/order"
)

// SnapshotStore is a volatile OrderSnapshotStore. It keeps the encoded document so
// loads go through the same codec and recovery rules as the durable stores.
type SnapshotStore struct {
	mu     sync.RWMutex
	data   []byte
	logger *slog.Logger
}

func NewSnapshotStore(logger *slog.Logger) *SnapshotStore {
	return &SnapshotStore{logger: logger.With("component", "memory-snapshot-store")}
}

// NewSnapshotStoreWithDocument starts from an existing encoded document.
func NewSnapshotStoreWithDocument(data []byte, logger *slog.Logger) *SnapshotStore {
	s := NewSnapshotStore(logger)
	s.data = append([]byte(nil), data...)
	return s
}

func (s *SnapshotStore) Load(_ context.Context) ([]*order.Order, error) {
	s.mu.RLock()
	data := s.data
	s.mu.RUnlock()

	return snapshot.Read(data, s.logger), nil
}

func (s *SnapshotStore) Save(_ context.Context, orders []*order.Order) error {
	data, err := snapshot.Encode(orders)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Document returns a copy of the stored document.
func (s *SnapshotStore) Document() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.data...)
}
