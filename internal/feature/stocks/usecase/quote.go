package usecase

import (
	"context"
	"errors"
	"log/slog"

	"stock_dashboard/internal/feature/stocks/domain/entity"
	"stock_dashboard/internal/platform/cache"
)

// errNoQuote marks a provider response with no result for the symbol.
var errNoQuote = errors.New("no quote data returned")

const defaultCurrency = "USD"

// GetQuote returns the normalized quote for symbol. It never fails: when the
// provider errors or knows nothing, a placeholder carrying only the symbol is
// returned, and the placeholder is not cached.
func (u *StocksUsecase) GetQuote(ctx context.Context, symbol string) entity.Quote {
	q, _ := u.FindQuote(ctx, symbol)
	return q
}

// FindQuote is GetQuote that also reports whether the provider recognized the
// symbol. A transport failure counts as recognized, since nothing says otherwise.
func (u *StocksUsecase) FindQuote(ctx context.Context, symbol string) (entity.Quote, bool) {
	symbol = normalizeSymbol(symbol)

	q, err := cache.Resolve(ctx, u.engine, quoteKind, symbol, func(ctx context.Context) (entity.Quote, error) {
		snap, err := u.market.Quote(ctx, symbol)
		if err != nil {
			return entity.Quote{}, err
		}
		if snap == nil {
			return entity.Quote{}, errNoQuote
		}
		return toQuote(symbol, snap), nil
	})
	if err != nil {
		if errors.Is(err, errNoQuote) {
			slog.Warn("no quote data returned", "symbol", symbol)
			return placeholderQuote(symbol), false
		}
		slog.Error("quote fetch failed, serving placeholder", "symbol", symbol, "error", err)
		return placeholderQuote(symbol), true
	}
	return q, true
}

func toQuote(symbol string, s *entity.QuoteSnapshot) entity.Quote {
	sym := firstNonEmpty(s.Symbol, symbol)
	return entity.Quote{
		Symbol:        sym,
		Name:          firstNonEmpty(s.LongName, s.ShortName, sym),
		Price:         s.RegularMarketPrice,
		Change:        s.RegularMarketChange,
		ChangePercent: s.RegularMarketChangePercent,
		Currency:      firstNonEmpty(s.Currency, defaultCurrency),
		ExchangeName:  optionalString(s.FullExchangeName),
		MarketState:   optionalString(s.MarketState),
	}
}

func placeholderQuote(symbol string) entity.Quote {
	return entity.Quote{
		Symbol:   symbol,
		Name:     symbol,
		Currency: defaultCurrency,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
