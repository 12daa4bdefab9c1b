package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"stock_dashboard/internal/feature/stocks/domain/entity"
	"stock_dashboard/internal/platform/cache"
)

// newsLimit caps the number of items served per symbol.
const newsLimit = 5

// GetNews returns up to five recent headlines for symbol. It tries the search
// endpoint first and falls back to the headline feed. It never fails; when
// both sources error the empty result is not cached.
func (u *StocksUsecase) GetNews(ctx context.Context, symbol string) []entity.NewsItem {
	symbol = normalizeSymbol(symbol)

	items, err := cache.Resolve(ctx, u.engine, newsKind, symbol, func(ctx context.Context) ([]entity.NewsItem, error) {
		return u.fetchNews(ctx, symbol)
	})
	if err != nil {
		slog.Error("news fetch failed", "symbol", symbol, "error", err)
		return []entity.NewsItem{}
	}
	if items == nil {
		return []entity.NewsItem{}
	}
	return items
}

func (u *StocksUsecase) fetchNews(ctx context.Context, symbol string) ([]entity.NewsItem, error) {
	res, searchErr := u.market.Search(ctx, symbol, 0, newsLimit)
	if searchErr == nil && res != nil && len(res.Headlines) > 0 {
		return u.toNewsItems(res.Headlines), nil
	}
	if searchErr != nil {
		slog.Warn("news via search failed, falling back to headline feed", "symbol", symbol, "error", searchErr)
	}

	headlines, feedErr := u.market.Headlines(ctx, symbol)
	if feedErr == nil && len(headlines) > 0 {
		return u.toNewsItems(headlines), nil
	}
	if feedErr != nil {
		slog.Warn("headline feed failed", "symbol", symbol, "error", feedErr)
	}

	if searchErr != nil && feedErr != nil {
		return nil, errors.Join(searchErr, feedErr)
	}
	return []entity.NewsItem{}, nil
}

func (u *StocksUsecase) toNewsItems(hs []entity.Headline) []entity.NewsItem {
	if len(hs) > newsLimit {
		hs = hs[:newsLimit]
	}
	out := make([]entity.NewsItem, 0, len(hs))
	for _, h := range hs {
		published := u.now()
		if h.PublishTime > 0 {
			published = time.Unix(h.PublishTime, 0)
		}
		out = append(out, entity.NewsItem{
			Title:       h.Title,
			Summary:     h.Summary,
			URL:         h.Link,
			PublishedAt: isoTime(published),
			Source:      h.Publisher,
		})
	}
	return out
}
