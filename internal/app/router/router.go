// Package router はアプリケーション全体のルーティングを定義します。
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	stockshandler "stock_dashboard/internal/feature/stocks/transport/handler"
	watchlisthandler "stock_dashboard/internal/feature/watchlist/transport/handler"
	"stock_dashboard/internal/platform/http/handler"
	"stock_dashboard/internal/platform/http/middleware"
)

// Options はルーター全体に効く設定です。
type Options struct {
	CORSAllowedOrigins []string
	Logger             *slog.Logger
}

func NewRouter(opts Options, health *handler.HealthHandler, stocks *stockshandler.StocksHandler,
	watchlist *watchlisthandler.WatchlistHandler) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(opts.Logger),
		gin.Recovery(),
		middleware.CORS(opts.CORSAllowedOrigins),
	)

	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)

	api := r.Group("/api/stocks")
	{
		api.GET("/search", stocks.Search)

		// ウォッチリスト（論理削除）
		api.GET("/watchlist", watchlist.List)
		api.POST("/watchlist", watchlist.Add)
		api.DELETE("/watchlist/:symbol", watchlist.Remove)

		api.GET("/history/:symbol", stocks.History)
		api.GET("/metrics/:symbol", stocks.Metrics)
		api.GET("/company/:symbol", stocks.Company)
		api.GET("/trading-signals/:symbol", stocks.Signals)
		api.GET("/news/:symbol", stocks.News)

		// 静的パスより後に登録する
		api.GET("/:symbol", stocks.Quote)
	}

	return r
}
