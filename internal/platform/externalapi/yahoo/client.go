package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mmcdole/gofeed"

	"stock_dashboard/internal/feature/stocks/usecase"
	"stock_dashboard/internal/shared/ratelimiter"
)

// Client はYahoo Financeから株価データを取得するMarketData実装です。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
	feed    *gofeed.Parser
}

// ClientがMarketDataを実装していることをコンパイル時に検証します。
var _ usecase.MarketData = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
// limiter が nil の場合は呼び出し頻度を制限しません。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	return &Client{
		cfg:     cfg,
		client:  client,
		limiter: limiter,
		feed:    gofeed.NewParser(),
	}
}

// get は rawURL にGETし、ステータスを検査したうえでボディを返します。
func (c *Client) get(ctx context.Context, endpoint, rawURL string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/rss+xml;q=0.9, */*;q=0.8")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo %s: %w", endpoint, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, &UpstreamError{Endpoint: endpoint, StatusCode: res.StatusCode}
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo %s: read body: %w", endpoint, err)
	}
	return body, nil
}

// getJSON は get した結果を dest にデコードします。
func (c *Client) getJSON(ctx context.Context, endpoint, rawURL string, dest any) error {
	body, err := c.get(ctx, endpoint, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("yahoo %s: decode: %w", endpoint, err)
	}
	return nil
}
