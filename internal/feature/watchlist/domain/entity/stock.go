// Package entity defines the domain models for the watchlist feature.
package entity

import (
	"time"

	stocksentity "stock_dashboard/internal/feature/stocks/domain/entity"
)

// Stock is a tracked ticker. Removing it from the watchlist only clears
// IsActive, so a later re-add brings the same row back.
type Stock struct {
	ID        uint      `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Item is a watchlist row with its live quote merged in.
type Item struct {
	ID            uint      `json:"id"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Price         *float64  `json:"price"`
	Change        *float64  `json:"change"`
	ChangePercent *float64  `json:"changePercent"`
	Currency      string    `json:"currency"`
	ExchangeName  *string   `json:"exchangeName"`
	MarketState   *string   `json:"marketState"`
}

// Merge overlays q onto s. A placeholder quote (no price) keeps the stored name.
func Merge(s Stock, q stocksentity.Quote) Item {
	name := s.Name
	if q.Price != nil && q.Name != "" {
		name = q.Name
	}
	return Item{
		ID:            s.ID,
		Symbol:        s.Symbol,
		Name:          name,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		Price:         q.Price,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
		Currency:      q.Currency,
		ExchangeName:  q.ExchangeName,
		MarketState:   q.MarketState,
	}
}

// DefaultStocks is the watchlist installed by the seed command.
var DefaultStocks = []Stock{
	{Symbol: "AAPL", Name: "Apple Inc."},
	{Symbol: "MSFT", Name: "Microsoft Corporation"},
	{Symbol: "GOOGL", Name: "Alphabet Inc."},
	{Symbol: "AMZN", Name: "Amazon.com, Inc."},
	{Symbol: "TSLA", Name: "Tesla, Inc."},
	{Symbol: "META", Name: "Meta Platforms, Inc."},
	{Symbol: "NVDA", Name: "NVIDIA Corporation"},
	{Symbol: "BRK-B", Name: "Berkshire Hathaway Inc."},
	{Symbol: "JPM", Name: "JPMorgan Chase & Co."},
	{Symbol: "V", Name: "Visa Inc."},
}
