// Package di provides dependency injection factories for creating application components.
package di

import (
	"stock_dashboard/internal/platform/config"
	"stock_dashboard/internal/platform/externalapi/yahoo"
	infrahttp "stock_dashboard/internal/platform/http"
	"stock_dashboard/internal/shared/ratelimiter"
)

// NewMarket creates a fully configured Yahoo Finance client with HTTP client and rate limiter.
func NewMarket(cfg config.YahooConfig) *yahoo.Client {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout, cfg.UserAgent)
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimit, cfg.RateInterval)
	return yahoo.NewClient(yahoo.Config{
		BaseURL:        cfg.BaseURL,
		SummaryBaseURL: cfg.SummaryBaseURL,
		RSSURL:         cfg.RSSURL,
		Timeout:        cfg.Timeout,
	}, httpClient, limiter)
}
