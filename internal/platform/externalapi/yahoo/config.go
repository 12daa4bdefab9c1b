// Package yahoo is a client for the Yahoo Finance JSON endpoints and the
// Yahoo Finance headline RSS feed.
package yahoo

import "time"

// Config holds configuration for the Yahoo Finance client.
type Config struct {
	BaseURL        string        // quote, chart and search (e.g., "https://query1.finance.yahoo.com")
	SummaryBaseURL string        // quoteSummary; falls back to BaseURL
	RSSURL         string        // headline feed (e.g., "https://feeds.finance.yahoo.com/rss/2.0/headline")
	Timeout        time.Duration // HTTP request timeout
}

func (c Config) summaryBase() string {
	if c.SummaryBaseURL != "" {
		return c.SummaryBaseURL
	}
	return c.BaseURL
}
