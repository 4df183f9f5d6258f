// Package gormstore keeps the order document in a SQL key/value table through GORM.
// The same code serves SQLite (github.com/glebarez/sqlite, pure Go) and PostgreSQL
// (gorm.io/driver/postgres).
package gormstore

import "time"

// DocumentDTO is one row of the key/value table. The order collection lives in a
// single row keyed by ports.SnapshotKey.
type DocumentDTO struct {
	Key       string `gorm:"column:doc_key;primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming.
func (DocumentDTO) TableName() string {
	return "documents"
}
