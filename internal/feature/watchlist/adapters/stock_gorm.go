// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"stock_dashboard/internal/feature/watchlist/domain/entity"
	"stock_dashboard/internal/feature/watchlist/usecase"
)

// pgUniqueViolation is the Postgres SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// StockModel は stocks テーブルの行です。
type StockModel struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"not null;uniqueIndex"`
	Name      string    `gorm:"not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (StockModel) TableName() string { return "stocks" }

func (m StockModel) toEntity() entity.Stock {
	return entity.Stock{
		ID:        m.ID,
		Symbol:    m.Symbol,
		Name:      m.Name,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// stockGorm はStockRepositoryインターフェースのgorm実装です。
type stockGorm struct {
	db *gorm.DB
}

var _ usecase.StockRepository = (*stockGorm)(nil)

// NewStockRepository は指定されたDB接続でstockGormリポジトリの新しいインスタンスを生成します。
func NewStockRepository(db *gorm.DB) *stockGorm {
	return &stockGorm{db: db}
}

// ListActive はsymbol順にすべてのアクティブな銘柄を返します。
func (r *stockGorm) ListActive(ctx context.Context) ([]entity.Stock, error) {
	var rows []StockModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("symbol ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Stock, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// Add は銘柄を追加します。既存行があれば再有効化し、重複行は作りません。
func (r *stockGorm) Add(ctx context.Context, symbol, name string) (*entity.Stock, error) {
	db := r.db.WithContext(ctx)

	existing, err := r.find(db, symbol)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return r.activate(db, existing)
	}

	row := StockModel{Symbol: symbol, Name: name, IsActive: true}
	if err := db.Create(&row).Error; err != nil {
		if !isUniqueViolation(err) {
			return nil, err
		}
		// 同時追加に負けた場合は勝った行を読み直す
		existing, err = r.find(db, symbol)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, gorm.ErrRecordNotFound
		}
		return r.activate(db, existing)
	}
	s := row.toEntity()
	return &s, nil
}

// Remove は is_active を false にします。行は削除しません。
func (r *stockGorm) Remove(ctx context.Context, symbol string) error {
	return r.db.WithContext(ctx).
		Model(&StockModel{}).
		Where("symbol = ?", symbol).
		Update("is_active", false).Error
}

// Seed は未登録のデフォルト銘柄を追加し、無効なものを再有効化します。
// 変更した行数を返します。
func (r *stockGorm) Seed(ctx context.Context, defaults []entity.Stock) (int, error) {
	db := r.db.WithContext(ctx)
	changed := 0
	for _, d := range defaults {
		existing, err := r.find(db, d.Symbol)
		if err != nil {
			return changed, err
		}
		if existing != nil && existing.IsActive {
			continue
		}
		if _, err := r.Add(ctx, d.Symbol, d.Name); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

func (r *stockGorm) find(db *gorm.DB, symbol string) (*StockModel, error) {
	var m StockModel
	err := db.Where("symbol = ?", symbol).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *stockGorm) activate(db *gorm.DB, m *StockModel) (*entity.Stock, error) {
	if !m.IsActive {
		if err := db.Model(m).Update("is_active", true).Error; err != nil {
			return nil, err
		}
		m.IsActive = true
	}
	s := m.toEntity()
	return &s, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
