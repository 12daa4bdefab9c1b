package entity

// Metric is one fundamentals row. SectorAvg is omitted for rows without a comparator.
type Metric struct {
	Name       string  `json:"name"`
	Value      string  `json:"value"`
	SectorAvg  *string `json:"sectorAvg,omitempty"`
	Assessment string  `json:"assessment"`
}

// Fundamentals flattens the quoteSummary modules the metrics derive from.
type Fundamentals struct {
	MarketCap        *float64 // price
	TrailingPE       *float64 // summaryDetail
	DividendYield    *float64 // summaryDetail
	FiftyTwoWeekHigh *float64 // summaryDetail
	FiftyTwoWeekLow  *float64 // summaryDetail
	TrailingEPS      *float64 // defaultKeyStatistics
}
