// Package usecase implements the business logic for the watchlist.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	stocksentity "stock_dashboard/internal/feature/stocks/domain/entity"
	"stock_dashboard/internal/feature/watchlist/domain/entity"
)

var (
	// ErrSymbolRequired is returned when the symbol is blank.
	ErrSymbolRequired = errors.New("stock symbol is required")
	// ErrStockNotFound is returned when the provider does not know the symbol.
	ErrStockNotFound = errors.New("stock not found")
)

// quoteConcurrency bounds parallel quote lookups while listing.
const quoteConcurrency = 4

// StockRepository abstracts the persistence layer for watchlist rows.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type StockRepository interface {
	ListActive(ctx context.Context) ([]entity.Stock, error)
	Add(ctx context.Context, symbol, name string) (*entity.Stock, error)
	Remove(ctx context.Context, symbol string) error
	Seed(ctx context.Context, defaults []entity.Stock) (int, error)
}

// QuoteFinder looks up a live quote. found is false only when the provider
// has no data for the symbol.
type QuoteFinder interface {
	FindQuote(ctx context.Context, symbol string) (q stocksentity.Quote, found bool)
}

// WatchlistUsecase provides business logic for the watchlist.
type WatchlistUsecase struct {
	repo   StockRepository
	quotes QuoteFinder
}

// NewWatchlistUsecase creates a new WatchlistUsecase.
func NewWatchlistUsecase(r StockRepository, q QuoteFinder) *WatchlistUsecase {
	return &WatchlistUsecase{repo: r, quotes: q}
}

// ListWithQuotes returns every active stock merged with its quote, ordered by symbol.
func (u *WatchlistUsecase) ListWithQuotes(ctx context.Context) ([]entity.Item, error) {
	stocks, err := u.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}

	items := make([]entity.Item, len(stocks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(quoteConcurrency)
	for i, s := range stocks {
		g.Go(func() error {
			q, _ := u.quotes.FindQuote(gctx, s.Symbol)
			items[i] = entity.Merge(s, q)
			return nil
		})
	}
	_ = g.Wait()
	return items, nil
}

// ListSymbols returns the active symbols only.
func (u *WatchlistUsecase) ListSymbols(ctx context.Context) ([]string, error) {
	stocks, err := u.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, s.Symbol)
	}
	return out, nil
}

// AddSymbol verifies the symbol against the provider and adds or reactivates it.
// It returns the normalized symbol.
func (u *WatchlistUsecase) AddSymbol(ctx context.Context, symbol string) (string, error) {
	symbol = normalize(symbol)
	if symbol == "" {
		return "", ErrSymbolRequired
	}
	q, found := u.quotes.FindQuote(ctx, symbol)
	if !found {
		return "", ErrStockNotFound
	}
	if _, err := u.repo.Add(ctx, symbol, q.Name); err != nil {
		return "", fmt.Errorf("add %s: %w", symbol, err)
	}
	return symbol, nil
}

// RemoveSymbol deactivates symbol. Unknown symbols are not an error.
func (u *WatchlistUsecase) RemoveSymbol(ctx context.Context, symbol string) (string, error) {
	symbol = normalize(symbol)
	if symbol == "" {
		return "", ErrSymbolRequired
	}
	if err := u.repo.Remove(ctx, symbol); err != nil {
		return "", fmt.Errorf("remove %s: %w", symbol, err)
	}
	return symbol, nil
}

// SeedDefaults installs the default watchlist and returns how many rows changed.
func (u *WatchlistUsecase) SeedDefaults(ctx context.Context) (int, error) {
	return u.repo.Seed(ctx, entity.DefaultStocks)
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
