package usecase

import (
	"context"

	"stock_dashboard/internal/feature/stocks/domain/entity"
)

// MarketData is the upstream market-data provider.
// Goの慣例に従い、インターフェースは利用者側（usecase）で定義します。
type MarketData interface {
	// Quote returns nil, nil when the provider knows no such symbol.
	Quote(ctx context.Context, symbol string) (*entity.QuoteSnapshot, error)
	Fundamentals(ctx context.Context, symbol string) (*entity.Fundamentals, error)
	Profile(ctx context.Context, symbol string) (*entity.ProfileModules, error)
	Chart(ctx context.Context, symbol string, window entity.ChartWindow) ([]entity.Bar, error)
	Search(ctx context.Context, query string, quotesCount, newsCount int) (*entity.SearchResponse, error)
	// Headlines reads the dedicated news feed for symbol.
	Headlines(ctx context.Context, symbol string) ([]entity.Headline, error)
}
