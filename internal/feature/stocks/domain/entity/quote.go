// Package entity holds the value objects served by the stocks API and the
// provider-neutral shapes the market-data client returns.
package entity

// Quote is the normalized quote. Nil pointers serialize as null, the
// "unavailable" sentinel the UI checks for.
type Quote struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Price         *float64 `json:"price"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"changePercent"`
	Currency      string   `json:"currency"`
	ExchangeName  *string  `json:"exchangeName"`
	MarketState   *string  `json:"marketState"`
}

// QuoteSnapshot is a raw quote as reported upstream. Absent numeric fields are nil.
type QuoteSnapshot struct {
	Symbol                     string
	LongName                   string
	ShortName                  string
	Currency                   string
	FullExchangeName           string
	MarketState                string
	RegularMarketPrice         *float64
	RegularMarketChange        *float64
	RegularMarketChangePercent *float64
	RegularMarketVolume        *float64
	AverageDailyVolume3Month   *float64
}
