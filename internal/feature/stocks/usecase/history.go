package usecase

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"stock_dashboard/internal/feature/stocks/domain/entity"
	"stock_dashboard/internal/platform/cache"
)

// DefaultPeriod is used for unknown period tokens.
const DefaultPeriod = "1M"

type periodSpec struct {
	rangeName string
	interval  string
	// start returns the window's lower bound, or the zero time for unbounded.
	start func(now time.Time) time.Time
}

var periods = map[string]periodSpec{
	"1D":  {rangeName: "1d", interval: "1h", start: func(n time.Time) time.Time { return n.AddDate(0, 0, -1) }},
	"1W":  {rangeName: "5d", interval: "1d", start: func(n time.Time) time.Time { return n.AddDate(0, 0, -7) }},
	"1M":  {rangeName: "1mo", interval: "1d", start: func(n time.Time) time.Time { return n.AddDate(0, -1, 0) }},
	"3M":  {rangeName: "3mo", interval: "1d", start: func(n time.Time) time.Time { return n.AddDate(0, -3, 0) }},
	"1Y":  {rangeName: "1y", interval: "1d", start: func(n time.Time) time.Time { return n.AddDate(-1, 0, 0) }},
	"All": {rangeName: "max", interval: "1d", start: func(time.Time) time.Time { return time.Time{} }},
}

// ChartWindowFor maps a UI period token to the provider range and window ending at now.
func ChartWindowFor(period string, now time.Time) entity.ChartWindow {
	spec, ok := periods[period]
	if !ok {
		spec = periods[DefaultPeriod]
	}
	return entity.ChartWindow{
		Range:    spec.rangeName,
		Start:    spec.start(now),
		End:      now,
		Interval: spec.interval,
	}
}

// GetHistory returns closing prices for the period in ascending date order.
// It never returns nil; provider failures yield an empty, uncached result.
func (u *StocksUsecase) GetHistory(ctx context.Context, symbol, period string) []entity.PricePoint {
	symbol = normalizeSymbol(symbol)
	window := ChartWindowFor(period, u.now())
	key := symbol + "_" + window.Range

	points, err := cache.Resolve(ctx, u.engine, historyKind, key, func(ctx context.Context) ([]entity.PricePoint, error) {
		bars, err := u.market.Chart(ctx, symbol, window)
		if err != nil {
			return nil, err
		}
		if len(bars) == 0 {
			slog.Warn("no historical data returned", "symbol", symbol, "range", window.Range)
		}
		return toPricePoints(bars), nil
	})
	if err != nil {
		slog.Error("history fetch failed", "symbol", symbol, "range", window.Range, "error", err)
		return []entity.PricePoint{}
	}
	if points == nil {
		return []entity.PricePoint{}
	}
	return points
}

// toPricePoints drops bars without a usable close and orders by time.
func toPricePoints(bars []entity.Bar) []entity.PricePoint {
	sorted := make([]entity.Bar, 0, len(bars))
	for _, b := range bars {
		if b.Close == nil || math.IsNaN(*b.Close) || math.IsInf(*b.Close, 0) {
			continue
		}
		sorted = append(sorted, b)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	out := make([]entity.PricePoint, 0, len(sorted))
	for _, b := range sorted {
		out = append(out, entity.PricePoint{Date: isoTime(b.Time), Value: *b.Close})
	}
	return out
}
