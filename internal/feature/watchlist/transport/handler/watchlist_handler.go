// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/feature/watchlist/domain/entity"
	"stock_dashboard/internal/feature/watchlist/transport/http/dto"
	"stock_dashboard/internal/feature/watchlist/usecase"
)

// WatchlistUsecase はウォッチリスト操作のユースケースインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type WatchlistUsecase interface {
	ListWithQuotes(ctx context.Context) ([]entity.Item, error)
	AddSymbol(ctx context.Context, symbol string) (string, error)
	RemoveSymbol(ctx context.Context, symbol string) (string, error)
}

// WatchlistHandler はウォッチリストのHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler は新しい WatchlistHandler を作成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// List はアクティブな銘柄を気配値付きで返します。
func (h *WatchlistHandler) List(c *gin.Context) {
	items, err := h.uc.ListWithQuotes(c.Request.Context())
	if err != nil {
		slog.Error("failed to fetch watchlist", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch watchlist"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Add は銘柄をウォッチリストに追加します。
//
// POST /api/stocks/watchlist {"symbol":"AAPL"}
func (h *WatchlistHandler) Add(c *gin.Context) {
	var req dto.AddRequest
	// ボディが壊れていても symbol 未指定として扱う
	_ = c.ShouldBindJSON(&req)

	symbol, err := h.uc.AddSymbol(c.Request.Context(), req.Symbol)
	switch {
	case errors.Is(err, usecase.ErrSymbolRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock symbol is required"})
		return
	case errors.Is(err, usecase.ErrStockNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Stock not found"})
		return
	case err != nil:
		slog.Error("failed to add stock to watchlist", "symbol", req.Symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add stock to watchlist"})
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Message: symbol + " added to watchlist"})
}

// Remove は銘柄を論理削除します。
//
// DELETE /api/stocks/watchlist/:symbol
func (h *WatchlistHandler) Remove(c *gin.Context) {
	symbol, err := h.uc.RemoveSymbol(c.Request.Context(), c.Param("symbol"))
	switch {
	case errors.Is(err, usecase.ErrSymbolRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock symbol is required"})
		return
	case err != nil:
		slog.Error("failed to remove stock from watchlist", "symbol", c.Param("symbol"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove stock from watchlist"})
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Message: symbol + " removed from watchlist"})
}
