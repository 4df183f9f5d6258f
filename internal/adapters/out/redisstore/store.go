// Package redisstore keeps the order document as a single Redis string.
package redisstore

import (
	"context"
	"errors"
	"log/slog"

	"orderflow/internal/adapters/out/snapshot"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// Store implements ports.OrderSnapshotStore. SET replaces the value atomically, so a
// reader sees either the previous or the new document.
type Store struct {
	rdb    redis.Cmdable
	key    string
	logger *slog.Logger
}

// New returns a store writing under prefix + ports.SnapshotKey. An empty prefix uses
// the bare key.
func New(rdb redis.Cmdable, prefix string, logger *slog.Logger) (*Store, error) {
	if rdb == nil {
		return nil, errs.NewValueIsRequiredError("rdb")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Store{
		rdb:    rdb,
		key:    prefix + ports.SnapshotKey,
		logger: logger.With("component", "redis-store"),
	}, nil
}

func (s *Store) Key() string {
	return s.key
}

func (s *Store) Load(ctx context.Context) ([]*order.Order, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []*order.Order{}, nil
	}
	if err != nil {
		return nil, err
	}

	return snapshot.Read(data, s.logger), nil
}

func (s *Store) Save(ctx context.Context, orders []*order.Order) error {
	data, err := snapshot.Encode(orders)
	if err != nil {
		return err
	}

	return s.rdb.Set(ctx, s.key, data, 0).Err()
}
