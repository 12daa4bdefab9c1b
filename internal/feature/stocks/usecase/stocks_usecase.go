// Package usecase implements the per-data-type adapters that sit between the
// HTTP handlers and the fetch-or-cache engine.
package usecase

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"stock_dashboard/internal/feature/stocks/domain/entity"
	"stock_dashboard/internal/platform/cache"
)

// isoLayout matches JavaScript's Date.toISOString output, which the UI parses.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Payload kinds, one per cached data type.
var (
	quoteKind   = cache.NewKind[entity.Quote](cache.DataQuote)
	historyKind = cache.NewKind[[]entity.PricePoint](cache.DataHistory)
	metricsKind = cache.NewKind[[]entity.Metric](cache.DataMetrics)
	companyKind = cache.NewKind[*entity.CompanyInfo](cache.DataCompany)
	signalsKind = cache.NewKind[entity.TradingSignal](cache.DataSignals)
	newsKind    = cache.NewKind[[]entity.NewsItem](cache.DataNews)
	searchKind  = cache.NewKind[[]entity.SearchResult](cache.DataSearch)
)

// randSource is the subset of *rand.Rand the signal synthesizer draws from.
type randSource interface {
	IntN(n int) int
	Float64() float64
}

// globalRand draws from the goroutine-safe top-level math/rand/v2 functions.
type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// lockedRand serializes access to a caller-supplied *rand.Rand.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// StocksUsecase serves every stock data type through one shared engine.
type StocksUsecase struct {
	engine *cache.Engine
	market MarketData
	now    func() time.Time
	rand   randSource
}

// Option configures a StocksUsecase.
type Option func(*StocksUsecase)

// WithClock overrides the clock used for history windows and news timestamps.
func WithClock(now func() time.Time) Option {
	return func(u *StocksUsecase) { u.now = now }
}

// WithRand makes signal synthesis draw from r.
func WithRand(r *rand.Rand) Option {
	return func(u *StocksUsecase) { u.rand = &lockedRand{r: r} }
}

// NewStocksUsecase は StocksUsecase を生成します。
func NewStocksUsecase(engine *cache.Engine, market MarketData, opts ...Option) *StocksUsecase {
	u := &StocksUsecase{
		engine: engine,
		market: market,
		now:    time.Now,
		rand:   globalRand{},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// normalizeSymbol upper-cases and trims a ticker so cache keys do not fork on case.
func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func isoTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}
