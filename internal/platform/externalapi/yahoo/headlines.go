package yahoo

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"stock_dashboard/internal/feature/stocks/domain/entity"
)

const defaultPublisher = "Yahoo Finance"

// Headlines は銘柄別のRSSヘッドラインフィードを取得します。
func (c *Client) Headlines(ctx context.Context, symbol string) ([]entity.Headline, error) {
	if c.cfg.RSSURL == "" {
		return []entity.Headline{}, nil
	}
	q := url.Values{}
	q.Set("s", symbol)
	q.Set("region", "US")
	q.Set("lang", "en-US")
	u := fmt.Sprintf("%s?%s", c.cfg.RSSURL, q.Encode())

	body, err := c.get(ctx, "headlines", u)
	if err != nil {
		return nil, err
	}
	feed, err := c.feed.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("yahoo headlines: parse feed: %w", err)
	}

	out := make([]entity.Headline, 0, len(feed.Items))
	for _, item := range feed.Items {
		h := entity.Headline{
			Title:     strings.TrimSpace(item.Title),
			Summary:   cleanHTML(item.Description),
			Link:      item.Link,
			Publisher: defaultPublisher,
		}
		if len(item.Authors) > 0 && item.Authors[0].Name != "" {
			h.Publisher = item.Authors[0].Name
		}
		if item.PublishedParsed != nil {
			h.PublishTime = item.PublishedParsed.Unix()
		}
		out = append(out, h)
	}
	return out, nil
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
