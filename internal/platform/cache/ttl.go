package cache

import "time"

// DataType identifies the shape of a cached payload.
type DataType string

const (
	DataQuote   DataType = "quote"
	DataHistory DataType = "history"
	DataMetrics DataType = "metrics"
	DataCompany DataType = "company"
	DataSignals DataType = "signals"
	DataNews    DataType = "news"
	DataSearch  DataType = "search"
)

// Freshness window per data type. Added to the fetch time to compute expires_at.
const (
	TTLQuote   = 5 * time.Minute
	TTLHistory = time.Hour
	TTLMetrics = time.Hour
	TTLCompany = 24 * time.Hour
	TTLSignals = time.Hour // the synthesized draw is reused for this long
	TTLNews    = 30 * time.Minute
	TTLSearch  = 10 * time.Minute

	// defaultTTL applies to data types outside the table.
	defaultTTL = 5 * time.Minute
)

var ttls = map[DataType]time.Duration{
	DataQuote:   TTLQuote,
	DataHistory: TTLHistory,
	DataMetrics: TTLMetrics,
	DataCompany: TTLCompany,
	DataSignals: TTLSignals,
	DataNews:    TTLNews,
	DataSearch:  TTLSearch,
}

// TTL returns the freshness window for dt.
func TTL(dt DataType) time.Duration {
	if d, ok := ttls[dt]; ok {
		return d
	}
	return defaultTTL
}

// DataTypes lists every known data type in a stable order.
func DataTypes() []DataType {
	return []DataType{DataQuote, DataHistory, DataMetrics, DataCompany, DataSignals, DataNews, DataSearch}
}
