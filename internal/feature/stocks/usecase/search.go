package usecase

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"stock_dashboard/internal/feature/stocks/domain/entity"
	"stock_dashboard/internal/platform/cache"
)

const (
	// MinQueryLength is the shortest query sent upstream.
	MinQueryLength = 2

	searchQuotesCount = 10
	equityQuoteType   = "EQUITY"
)

// Search returns equity matches for query. Queries shorter than
// MinQueryLength return an empty result without touching the cache or the
// provider. Failures also yield an empty, uncached result.
func (u *StocksUsecase) Search(ctx context.Context, query string) []entity.SearchResult {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return []entity.SearchResult{}
	}

	results, err := cache.Resolve(ctx, u.engine, searchKind, query, func(ctx context.Context) ([]entity.SearchResult, error) {
		res, err := u.market.Search(ctx, query, searchQuotesCount, 0)
		if err != nil {
			return nil, err
		}
		return toSearchResults(res), nil
	})
	if err != nil {
		slog.Error("search failed", "query", query, "error", err)
		return []entity.SearchResult{}
	}
	if results == nil {
		return []entity.SearchResult{}
	}
	return results
}

func toSearchResults(res *entity.SearchResponse) []entity.SearchResult {
	out := []entity.SearchResult{}
	if res == nil {
		return out
	}
	for _, h := range res.Hits {
		if h.QuoteType != equityQuoteType {
			continue
		}
		out = append(out, entity.SearchResult{
			Symbol:   h.Symbol,
			Name:     firstNonEmpty(h.ShortName, h.LongName),
			Exchange: h.Exchange,
		})
	}
	return out
}
