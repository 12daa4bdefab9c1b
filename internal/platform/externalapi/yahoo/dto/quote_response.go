package dto

// QuoteResponse is the v7 quote payload.
type QuoteResponse struct {
	QuoteResponse struct {
		Result []QuoteResult `json:"result"`
		Error  *Error        `json:"error"`
	} `json:"quoteResponse"`
}

type QuoteResult struct {
	Symbol                     string   `json:"symbol"`
	ShortName                  string   `json:"shortName"`
	LongName                   string   `json:"longName"`
	QuoteType                  string   `json:"quoteType"`
	Currency                   string   `json:"currency"`
	FullExchangeName           string   `json:"fullExchangeName"`
	MarketState                string   `json:"marketState"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketChange        *float64 `json:"regularMarketChange"`
	RegularMarketChangePercent *float64 `json:"regularMarketChangePercent"`
	RegularMarketVolume        *float64 `json:"regularMarketVolume"`
	AverageDailyVolume3Month   *float64 `json:"averageDailyVolume3Month"`
}
