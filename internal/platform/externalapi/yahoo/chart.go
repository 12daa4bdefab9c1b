package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"stock_dashboard/internal/feature/stocks/domain/entity"
	"stock_dashboard/internal/platform/externalapi/yahoo/dto"
)

// Chart は v8 chart エンドポイントから終値の系列を時刻昇順で取得します。
func (c *Client) Chart(ctx context.Context, symbol string, w entity.ChartWindow) ([]entity.Bar, error) {
	q := url.Values{}
	q.Set("interval", w.Interval)
	q.Set("includePrePost", "false")
	if w.Unbounded() {
		q.Set("range", "max")
	} else {
		q.Set("period1", strconv.FormatInt(w.Start.Unix(), 10))
		q.Set("period2", strconv.FormatInt(w.End.Unix(), 10))
	}
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	var body dto.ChartResponse
	if err := c.getJSON(ctx, "chart", u, &body); err != nil {
		return nil, err
	}
	if e := body.Chart.Error; e != nil {
		return nil, &APIError{Endpoint: "chart", Code: e.Code, Description: e.Description}
	}
	if len(body.Chart.Result) == 0 {
		return []entity.Bar{}, nil
	}

	r := body.Chart.Result[0]
	var closes []*float64
	if len(r.Indicators.Quote) > 0 {
		closes = r.Indicators.Quote[0].Close
	}

	bars := make([]entity.Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		var cl *float64
		if i < len(closes) {
			cl = closes[i]
		}
		bars = append(bars, entity.Bar{Time: time.Unix(ts, 0).UTC(), Close: cl})
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
