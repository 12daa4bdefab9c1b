package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	stocksentity "stock_dashboard/internal/feature/stocks/domain/entity"
	stockshandler "stock_dashboard/internal/feature/stocks/transport/handler"
	watchlistentity "stock_dashboard/internal/feature/watchlist/domain/entity"
	watchlisthandler "stock_dashboard/internal/feature/watchlist/transport/handler"
	"stock_dashboard/internal/platform/http/handler"
	"stock_dashboard/internal/platform/http/middleware"
)

// stubStocks はルーティング確認用のスタブです。
type stubStocks struct{}

func (stubStocks) Search(context.Context, string) []stocksentity.SearchResult {
	return []stocksentity.SearchResult{{Symbol: "SEARCH"}}
}
func (stubStocks) GetQuote(_ context.Context, s string) stocksentity.Quote {
	return stocksentity.Quote{Symbol: s, Name: "quote"}
}
func (stubStocks) GetHistory(context.Context, string, string) []stocksentity.PricePoint {
	return []stocksentity.PricePoint{}
}
func (stubStocks) GetMetrics(context.Context, string) ([]stocksentity.Metric, error) {
	return []stocksentity.Metric{}, nil
}
func (stubStocks) GetCompanyInfo(context.Context, string) (*stocksentity.CompanyInfo, error) {
	return nil, nil
}
func (stubStocks) GetTradingSignals(context.Context, string) (stocksentity.TradingSignal, error) {
	return stocksentity.TradingSignal{}, nil
}
func (stubStocks) GetNews(context.Context, string) []stocksentity.NewsItem {
	return []stocksentity.NewsItem{}
}

type stubWatchlist struct{}

func (stubWatchlist) ListWithQuotes(context.Context) ([]watchlistentity.Item, error) {
	return []watchlistentity.Item{{Symbol: "WATCH"}}, nil
}
func (stubWatchlist) AddSymbol(_ context.Context, s string) (string, error)    { return s, nil }
func (stubWatchlist) RemoveSymbol(_ context.Context, s string) (string, error) { return s, nil }

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(
		Options{CORSAllowedOrigins: []string{"*"}},
		handler.NewHealthHandler(nil),
		stockshandler.NewStocksHandler(stubStocks{}),
		watchlisthandler.NewWatchlistHandler(stubWatchlist{}),
	)
}

// TestNewRouter は静的パスとパラメータパスの振り分けを検証します。
func TestNewRouter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		method       string
		url          string
		wantStatus   int
		wantContains string
	}{
		{"healthz", http.MethodGet, "/healthz", http.StatusOK, `"status":"ok"`},
		{"search is not a quote", http.MethodGet, "/api/stocks/search?q=ap", http.StatusOK, `"SEARCH"`},
		{"watchlist is not a quote", http.MethodGet, "/api/stocks/watchlist", http.StatusOK, `"WATCH"`},
		{"quote", http.MethodGet, "/api/stocks/AAPL", http.StatusOK, `"name":"quote"`},
		{"history", http.MethodGet, "/api/stocks/history/AAPL", http.StatusOK, `[]`},
		{"company null", http.MethodGet, "/api/stocks/company/AAPL", http.StatusOK, `null`},
		{"remove", http.MethodDelete, "/api/stocks/watchlist/AAPL", http.StatusOK, `AAPL removed from watchlist`},
		{"unknown route", http.MethodGet, "/api/unknown/x", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := newTestRouter()
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.url, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantContains)
			assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
		})
	}
}

// TestNewRouter_CORS はCORSヘッダーが付与されることを検証します。
func TestNewRouter_CORS(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/stocks/AAPL", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
