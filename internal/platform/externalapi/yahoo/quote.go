package yahoo

import (
	"context"
	"fmt"
	"net/url"

	"stock_dashboard/internal/feature/stocks/domain/entity"
	"stock_dashboard/internal/platform/externalapi/yahoo/dto"
)

// Quote は v7 quote エンドポイントからスナップショットを取得します。
// 該当銘柄がない場合は nil, nil を返します。
func (c *Client) Quote(ctx context.Context, symbol string) (*entity.QuoteSnapshot, error) {
	q := url.Values{}
	q.Set("symbols", symbol)
	u := fmt.Sprintf("%s/v7/finance/quote?%s", c.cfg.BaseURL, q.Encode())

	var body dto.QuoteResponse
	if err := c.getJSON(ctx, "quote", u, &body); err != nil {
		return nil, err
	}
	if e := body.QuoteResponse.Error; e != nil {
		return nil, &APIError{Endpoint: "quote", Code: e.Code, Description: e.Description}
	}
	if len(body.QuoteResponse.Result) == 0 {
		return nil, nil
	}

	r := body.QuoteResponse.Result[0]
	return &entity.QuoteSnapshot{
		Symbol:                     r.Symbol,
		LongName:                   r.LongName,
		ShortName:                  r.ShortName,
		Currency:                   r.Currency,
		FullExchangeName:           r.FullExchangeName,
		MarketState:                r.MarketState,
		RegularMarketPrice:         r.RegularMarketPrice,
		RegularMarketChange:        r.RegularMarketChange,
		RegularMarketChangePercent: r.RegularMarketChangePercent,
		RegularMarketVolume:        r.RegularMarketVolume,
		AverageDailyVolume3Month:   r.AverageDailyVolume3Month,
	}, nil
}
