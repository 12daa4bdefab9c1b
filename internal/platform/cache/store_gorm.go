package cache

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EntryModel is the stock_cache row. Data is JSONB on Postgres and JSON text on sqlite.
type EntryModel struct {
	ID        uint           `gorm:"primaryKey"`
	Symbol    string         `gorm:"size:128;not null;index:idx_stock_cache_key,priority:1"`
	DataType  string         `gorm:"size:16;not null;index:idx_stock_cache_key,priority:2"`
	Data      datatypes.JSON `gorm:"not null"`
	FetchedAt time.Time      `gorm:"not null"`
	ExpiresAt time.Time      `gorm:"not null;index"`
}

func (EntryModel) TableName() string { return "stock_cache" }

type gormStore struct {
	db *gorm.DB
}

var (
	_ Store  = (*gormStore)(nil)
	_ Pruner = (*gormStore)(nil)
)

// NewGormStore returns a Store backed by the stock_cache table.
func NewGormStore(db *gorm.DB) *gormStore {
	return &gormStore{db: db}
}

func (s *gormStore) Find(ctx context.Context, key Key, now time.Time) (*Entry, error) {
	var m EntryModel
	err := s.db.WithContext(ctx).
		Where("symbol = ? AND data_type = ? AND expires_at > ?", key.Symbol, string(key.DataType), now).
		Order("expires_at DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Entry{
		Symbol:    m.Symbol,
		DataType:  DataType(m.DataType),
		Payload:   []byte(m.Data),
		FetchedAt: m.FetchedAt,
		ExpiresAt: m.ExpiresAt,
	}, nil
}

// Replace runs delete-then-insert without a transaction. A failure between the
// two statements leaves the key absent, which the next read treats as a miss.
func (s *gormStore) Replace(ctx context.Context, e Entry) error {
	db := s.db.WithContext(ctx)
	if err := db.
		Where("symbol = ? AND data_type = ?", e.Symbol, string(e.DataType)).
		Delete(&EntryModel{}).Error; err != nil {
		return err
	}
	return db.Create(&EntryModel{
		Symbol:    e.Symbol,
		DataType:  string(e.DataType),
		Data:      datatypes.JSON(e.Payload),
		FetchedAt: e.FetchedAt,
		ExpiresAt: e.ExpiresAt,
	}).Error
}

func (s *gormStore) PruneExpired(ctx context.Context, before time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&EntryModel{})
	return res.RowsAffected, res.Error
}
