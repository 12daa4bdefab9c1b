// Package handler はstocksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/feature/stocks/domain/entity"
)

// DefaultHistoryPeriod はperiod未指定時に使う期間です。
const DefaultHistoryPeriod = "1mo"

// StocksUsecase は銘柄データ取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type StocksUsecase interface {
	Search(ctx context.Context, query string) []entity.SearchResult
	GetQuote(ctx context.Context, symbol string) entity.Quote
	GetHistory(ctx context.Context, symbol, period string) []entity.PricePoint
	GetMetrics(ctx context.Context, symbol string) ([]entity.Metric, error)
	GetCompanyInfo(ctx context.Context, symbol string) (*entity.CompanyInfo, error)
	GetTradingSignals(ctx context.Context, symbol string) (entity.TradingSignal, error)
	GetNews(ctx context.Context, symbol string) []entity.NewsItem
}

// StocksHandler は銘柄データのHTTPリクエストを処理します。
type StocksHandler struct {
	uc StocksUsecase
}

// NewStocksHandler は新しい StocksHandler を作成します。
func NewStocksHandler(uc StocksUsecase) *StocksHandler {
	return &StocksHandler{uc: uc}
}

// errorJSON は {"error": msg} を返します。
func errorJSON(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// symbolParam はパスの銘柄コードを取り出します。空なら400を返してfalse。
func symbolParam(c *gin.Context) (string, bool) {
	symbol := strings.TrimSpace(c.Param("symbol"))
	if symbol == "" {
		errorJSON(c, http.StatusBadRequest, "Stock symbol is required")
		return "", false
	}
	return symbol, true
}

// Search は銘柄検索APIです。
//
// GET /api/stocks/search?q=apple
func (h *StocksHandler) Search(c *gin.Context) {
	c.JSON(http.StatusOK, h.uc.Search(c.Request.Context(), c.Query("q")))
}

// Quote は現在値を返します。
//
// GET /api/stocks/:symbol
func (h *StocksHandler) Quote(c *gin.Context) {
	symbol, ok := symbolParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.uc.GetQuote(c.Request.Context(), symbol))
}

// History は終値の履歴を返します。
//
// GET /api/stocks/history/:symbol?period=1M
func (h *StocksHandler) History(c *gin.Context) {
	symbol, ok := symbolParam(c)
	if !ok {
		return
	}
	period := c.DefaultQuery("period", DefaultHistoryPeriod)
	c.JSON(http.StatusOK, h.uc.GetHistory(c.Request.Context(), symbol, period))
}

func (h *StocksHandler) Metrics(c *gin.Context) {
	symbol, ok := symbolParam(c)
	if !ok {
		return
	}
	metrics, err := h.uc.GetMetrics(c.Request.Context(), symbol)
	if err != nil {
		slog.Error("failed to fetch stock metrics", "symbol", symbol, "error", err)
		errorJSON(c, http.StatusInternalServerError, "Failed to fetch stock metrics")
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// Company は企業プロファイルを返します。プロファイルが無い銘柄は null。
func (h *StocksHandler) Company(c *gin.Context) {
	symbol, ok := symbolParam(c)
	if !ok {
		return
	}
	info, err := h.uc.GetCompanyInfo(c.Request.Context(), symbol)
	if err != nil {
		slog.Error("failed to fetch company info", "symbol", symbol, "error", err)
		errorJSON(c, http.StatusInternalServerError, "Failed to fetch company info")
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *StocksHandler) Signals(c *gin.Context) {
	symbol, ok := symbolParam(c)
	if !ok {
		return
	}
	signals, err := h.uc.GetTradingSignals(c.Request.Context(), symbol)
	if err != nil {
		slog.Error("failed to fetch trading signals", "symbol", symbol, "error", err)
		errorJSON(c, http.StatusInternalServerError, "Failed to fetch trading signals")
		return
	}
	c.JSON(http.StatusOK, signals)
}

func (h *StocksHandler) News(c *gin.Context) {
	symbol, ok := symbolParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.uc.GetNews(c.Request.Context(), symbol))
}
