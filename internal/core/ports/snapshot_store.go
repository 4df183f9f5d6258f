package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// SnapshotKey is the fixed key the whole order collection is stored under.
const SnapshotKey = "orders"

// OrderSnapshotStore is the durable medium. It always loads and saves the complete
// collection.
type OrderSnapshotStore interface {
	// Load returns the persisted collection. Missing or unreadable content yields an
	// empty collection and no error; errors are reserved for an unreachable medium.
	Load(ctx context.Context) ([]*order.Order, error)

	// Save replaces the persisted collection. Readers never observe a partial write.
	Save(ctx context.Context, orders []*order.Order) error
}
