package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"stock_dashboard/internal/feature/stocks/domain/entity"
	"stock_dashboard/internal/platform/externalapi/yahoo/dto"
)

// Search は v1 search エンドポイントで銘柄とニュースを検索します。
func (c *Client) Search(ctx context.Context, query string, quotesCount, newsCount int) (*entity.SearchResponse, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("quotesCount", strconv.Itoa(quotesCount))
	q.Set("newsCount", strconv.Itoa(newsCount))
	q.Set("enableFuzzyQuery", "false")
	u := fmt.Sprintf("%s/v1/finance/search?%s", c.cfg.BaseURL, q.Encode())

	var body dto.SearchResponse
	if err := c.getJSON(ctx, "search", u, &body); err != nil {
		return nil, err
	}

	out := &entity.SearchResponse{
		Hits:      make([]entity.SearchHit, 0, len(body.Quotes)),
		Headlines: make([]entity.Headline, 0, len(body.News)),
	}
	for _, r := range body.Quotes {
		out.Hits = append(out.Hits, entity.SearchHit{
			Symbol:    r.Symbol,
			ShortName: r.ShortName,
			LongName:  r.LongName,
			Exchange:  r.Exchange,
			QuoteType: r.QuoteType,
		})
	}
	for _, n := range body.News {
		out.Headlines = append(out.Headlines, entity.Headline{
			Title:       n.Title,
			Summary:     cleanHTML(n.Summary),
			Link:        n.Link,
			Publisher:   n.Publisher,
			PublishTime: n.ProviderPublishTime,
		})
	}
	return out, nil
}
