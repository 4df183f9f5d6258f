package gormstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"orderflow/internal/adapters/out/snapshot"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store implements ports.OrderSnapshotStore on a GORM connection.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// New migrates the documents table and returns a store bound to db.
func New(db *gorm.DB, logger *slog.Logger) (*Store, error) {
	if db == nil {
		return nil, errs.NewValueIsRequiredError("db")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	if err := db.AutoMigrate(&DocumentDTO{}); err != nil {
		return nil, fmt.Errorf("migrate documents table: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With("component", "gorm-store", "dialect", db.Dialector.Name()),
	}, nil
}

// Load reads the order document. A missing row is an empty collection.
func (s *Store) Load(ctx context.Context) ([]*order.Order, error) {
	var dto DocumentDTO
	err := s.db.WithContext(ctx).First(&dto, "doc_key = ?", ports.SnapshotKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []*order.Order{}, nil
	}
	if err != nil {
		return nil, err
	}

	return snapshot.Read([]byte(dto.Value), s.logger), nil
}

// Save replaces the order document in a single upsert.
func (s *Store) Save(ctx context.Context, orders []*order.Order) error {
	data, err := snapshot.Encode(orders)
	if err != nil {
		return err
	}

	dto := DocumentDTO{
		Key:   ports.SnapshotKey,
		Value: string(data),
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doc_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&dto).Error
	})
}
