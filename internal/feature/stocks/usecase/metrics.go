package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"stock_dashboard/internal/feature/stocks/domain/entity"
	"stock_dashboard/internal/platform/cache"
)

// Assessment thresholds.
const (
	strongMarketCap = 1e11
	highPE          = 30
	strongEPS       = 3
	highDividend    = 0.02
)

// Synthetic sector-average multipliers.
const (
	sectorMarketCap = 0.45
	sectorPE        = 0.8
	sectorEPS       = 0.75
	sectorDividend  = 2
	sectorVolume    = 0.6
)

// GetMetrics returns the seven fundamentals rows for symbol. Missing upstream
// figures become "N/A"; a failed provider call is returned as an error.
func (u *StocksUsecase) GetMetrics(ctx context.Context, symbol string) ([]entity.Metric, error) {
	symbol = normalizeSymbol(symbol)

	return cache.Resolve(ctx, u.engine, metricsKind, symbol, func(ctx context.Context) ([]entity.Metric, error) {
		var (
			snap *entity.QuoteSnapshot
			fund *entity.Fundamentals
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			snap, err = u.market.Quote(gctx, symbol)
			if err != nil {
				return fmt.Errorf("quote: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			fund, err = u.market.Fundamentals(gctx, symbol)
			if err != nil {
				return fmt.Errorf("fundamentals: %w", err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("metrics for %s: %w", symbol, err)
		}
		return buildMetrics(snap, fund), nil
	})
}

func buildMetrics(q *entity.QuoteSnapshot, f *entity.Fundamentals) []entity.Metric {
	if q == nil {
		q = &entity.QuoteSnapshot{}
	}
	if f == nil {
		f = &entity.Fundamentals{}
	}

	return []entity.Metric{
		marketCapMetric(f.MarketCap),
		peMetric(f.TrailingPE),
		epsMetric(f.TrailingEPS),
		dividendMetric(f.DividendYield),
		rangeMetric("52W High", q.RegularMarketPrice, f.FiftyTwoWeekHigh, ""),
		rangeMetric("52W Low", q.RegularMarketPrice, f.FiftyTwoWeekLow, "+"),
		volumeMetric(q.RegularMarketVolume, q.AverageDailyVolume3Month),
	}
}

func marketCapMetric(mc *float64) entity.Metric {
	assessment := "Moderate"
	if present(mc) && *mc > strongMarketCap {
		assessment = "Strong"
	}
	return entity.Metric{
		Name:       "Market Cap",
		Value:      formatLargeNumber(mc),
		SectorAvg:  strPtr(formatLargeNumber(scaled(mc, sectorMarketCap))),
		Assessment: assessment,
	}
}

func peMetric(pe *float64) entity.Metric {
	m := entity.Metric{Name: "P/E Ratio", Value: notAvailable, SectorAvg: strPtr(notAvailable), Assessment: "Moderate"}
	if pe != nil {
		m.Value = fixed(*pe, 2)
	}
	if present(pe) {
		m.SectorAvg = strPtr(fixed(*pe*sectorPE, 2))
		if *pe > highPE {
			m.Assessment = "High"
		}
	}
	return m
}

func epsMetric(eps *float64) entity.Metric {
	m := entity.Metric{Name: "EPS (TTM)", Value: notAvailable, SectorAvg: strPtr(notAvailable), Assessment: "Moderate"}
	if present(eps) {
		m.Value = "$" + fixed(*eps, 2)
		m.SectorAvg = strPtr("$" + fixed(*eps*sectorEPS, 2))
		if *eps > strongEPS {
			m.Assessment = "Strong"
		}
	}
	return m
}

func dividendMetric(y *float64) entity.Metric {
	m := entity.Metric{Name: "Dividend Yield", Value: notAvailable, SectorAvg: strPtr(notAvailable), Assessment: notAvailable}
	if present(y) {
		m.Value = fixed(*y*100, 2) + "%"
		m.SectorAvg = strPtr(fixed(*y*100*sectorDividend, 2) + "%")
		m.Assessment = "Low"
		if *y > highDividend {
			m.Assessment = "High"
		}
	}
	return m
}

// rangeMetric reports a 52-week bound and how far the price sits from it.
func rangeMetric(name string, price, bound *float64, sign string) entity.Metric {
	m := entity.Metric{Name: name, Value: notAvailable, Assessment: notAvailable}
	if present(bound) {
		m.Value = "$" + fixed(*bound, 2)
	}
	if present(price) && present(bound) {
		ratio := *price / *bound
		m.Assessment = sign + fixed((ratio-1)*100, 1) + "%"
	}
	return m
}

func volumeMetric(vol, avg3m *float64) entity.Metric {
	m := entity.Metric{Name: "Volume (Avg)", Value: notAvailable, SectorAvg: strPtr(notAvailable), Assessment: "Normal"}
	if present(vol) {
		m.Value = fixed(*vol/1e6, 1) + "M"
		m.SectorAvg = strPtr(fixed(*vol*sectorVolume/1e6, 1) + "M")
		if present(avg3m) && *vol > *avg3m {
			m.Assessment = "High"
		}
	}
	return m
}
