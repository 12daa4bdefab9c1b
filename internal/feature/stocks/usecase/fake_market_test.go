package usecase

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"stock_dashboard/internal/feature/stocks/domain/entity"
	"stock_dashboard/internal/platform/cache"
)

var fixedNow = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

// fakeMarket は呼び出し回数を記録する MarketData のテストダブルです。
type fakeMarket struct {
	mu    sync.Mutex
	calls map[string]int

	quote        *entity.QuoteSnapshot
	quoteErr     error
	fundamentals *entity.Fundamentals
	fundErr      error
	profile      *entity.ProfileModules
	profileErr   error
	bars         []entity.Bar
	chartErr     error
	lastWindow   entity.ChartWindow
	search       *entity.SearchResponse
	searchErr    error
	lastSearch   [3]any
	headlines    []entity.Headline
	headlineErr  error
}

func (f *fakeMarket) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeMarket) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeMarket) Quote(context.Context, string) (*entity.QuoteSnapshot, error) {
	f.record("quote")
	return f.quote, f.quoteErr
}

func (f *fakeMarket) Fundamentals(context.Context, string) (*entity.Fundamentals, error) {
	f.record("fundamentals")
	return f.fundamentals, f.fundErr
}

func (f *fakeMarket) Profile(context.Context, string) (*entity.ProfileModules, error) {
	f.record("profile")
	return f.profile, f.profileErr
}

func (f *fakeMarket) Chart(_ context.Context, _ string, w entity.ChartWindow) ([]entity.Bar, error) {
	f.record("chart")
	f.mu.Lock()
	f.lastWindow = w
	f.mu.Unlock()
	return f.bars, f.chartErr
}

func (f *fakeMarket) Search(_ context.Context, q string, quotesCount, newsCount int) (*entity.SearchResponse, error) {
	f.record("search")
	f.mu.Lock()
	f.lastSearch = [3]any{q, quotesCount, newsCount}
	f.mu.Unlock()
	return f.search, f.searchErr
}

func (f *fakeMarket) Headlines(context.Context, string) ([]entity.Headline, error) {
	f.record("headlines")
	return f.headlines, f.headlineErr
}

var _ MarketData = (*fakeMarket)(nil)

// newTestUsecase はメモリストアと固定時計で StocksUsecase を組み立てます。
func newTestUsecase(t *testing.T, m *fakeMarket) (*StocksUsecase, *cache.MemoryStore) {
	t.Helper()
	store := cache.NewMemoryStore()
	clock := func() time.Time { return fixedNow }
	engine := cache.NewEngine(store, cache.WithClock(clock))
	u := NewStocksUsecase(engine, m, WithClock(clock), WithRand(rand.New(rand.NewPCG(1, 2))))
	return u, store
}

func f64(v float64) *float64 { return &v }
