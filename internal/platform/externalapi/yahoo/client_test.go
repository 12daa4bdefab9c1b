package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_dashboard/internal/feature/stocks/domain/entity"
)

// newTestClient は handler を返す httptest サーバーに向けた Client を生成します。
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := Config{
		BaseURL:        server.URL,
		SummaryBaseURL: server.URL,
		RSSURL:         server.URL + "/rss/2.0/headline",
		Timeout:        5 * time.Second,
	}
	return NewClient(cfg, server.Client(), nil)
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func TestClient_Quote(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v7/finance/quote", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbols"))
		writeJSON(w, `{"quoteResponse":{"result":[{
			"symbol":"AAPL","longName":"Apple Inc.","shortName":"Apple",
			"currency":"USD","fullExchangeName":"NasdaqGS","marketState":"REGULAR",
			"regularMarketPrice":187.44,"regularMarketChange":-1.2,"regularMarketChangePercent":-0.64,
			"regularMarketVolume":52000000,"averageDailyVolume3Month":48000000}],"error":null}}`)
	})

	q, err := c.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "Apple Inc.", q.LongName)
	assert.Equal(t, "NasdaqGS", q.FullExchangeName)
	require.NotNil(t, q.RegularMarketPrice)
	assert.Equal(t, 187.44, *q.RegularMarketPrice)
	require.NotNil(t, q.AverageDailyVolume3Month)
	assert.Equal(t, 48000000.0, *q.AverageDailyVolume3Month)
}

func TestClient_Quote_NoResult(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"quoteResponse":{"result":[],"error":null}}`)
	})

	q, err := c.Quote(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestClient_Quote_MissingFieldsAreNil(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"quoteResponse":{"result":[{"symbol":"XYZ"}]}}`)
	})

	q, err := c.Quote(context.Background(), "XYZ")
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Nil(t, q.RegularMarketPrice)
	assert.Nil(t, q.RegularMarketChange)
	assert.Empty(t, q.Currency)
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"bad request", http.StatusBadRequest},
		{"unauthorized", http.StatusUnauthorized},
		{"not found", http.StatusNotFound},
		{"too many requests", http.StatusTooManyRequests},
		{"internal server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			})

			_, err := c.Quote(context.Background(), "AAPL")
			require.Error(t, err)

			var ue *UpstreamError
			require.True(t, errors.As(err, &ue))
			assert.Equal(t, tt.statusCode, ue.StatusCode)
			assert.Equal(t, "quote", ue.Endpoint)
		})
	}
}

func TestClient_APIErrorInBody(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	})

	_, err := c.Chart(context.Background(), "GONE", entity.ChartWindow{Interval: "1d"})
	require.Error(t, err)
	var ae *APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "Not Found", ae.Code)
}

func TestClient_InvalidJSON(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{not json`)
	})

	_, err := c.Search(context.Background(), "apple", 10, 0)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "decode"))
}

func TestClient_Chart_Range(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		window entity.ChartWindow
		check  func(t *testing.T, r *http.Request)
	}{
		{
			name:   "bounded window uses period1/period2",
			window: entity.ChartWindow{Range: "1mo", Start: start, End: end, Interval: "1d"},
			check: func(t *testing.T, r *http.Request) {
				assert.Equal(t, "1735689600", r.URL.Query().Get("period1"))
				assert.Equal(t, "1738368000", r.URL.Query().Get("period2"))
				assert.Empty(t, r.URL.Query().Get("range"))
				assert.Equal(t, "1d", r.URL.Query().Get("interval"))
			},
		},
		{
			name:   "unbounded window uses range=max",
			window: entity.ChartWindow{Range: "max", End: end, Interval: "1d"},
			check: func(t *testing.T, r *http.Request) {
				assert.Equal(t, "max", r.URL.Query().Get("range"))
				assert.Empty(t, r.URL.Query().Get("period1"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
				tt.check(t, r)
				writeJSON(w, `{"chart":{"result":[],"error":null}}`)
			})

			bars, err := c.Chart(context.Background(), "AAPL", tt.window)
			require.NoError(t, err)
			assert.Empty(t, bars)
		})
	}
}

func TestClient_Chart_BarsSortedWithNulls(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"chart":{"result":[{
			"meta":{"symbol":"AAPL","currency":"USD"},
			"timestamp":[1736208000,1736121600,1736294400],
			"indicators":{"quote":[{"close":[242.2,245.0,null]}]}}],"error":null}}`)
	})

	bars, err := c.Chart(context.Background(), "AAPL", entity.ChartWindow{Interval: "1d"})
	require.NoError(t, err)
	require.Len(t, bars, 3)

	assert.Equal(t, int64(1736121600), bars[0].Time.Unix())
	require.NotNil(t, bars[0].Close)
	assert.Equal(t, 245.0, *bars[0].Close)
	assert.Equal(t, int64(1736208000), bars[1].Time.Unix())
	assert.Nil(t, bars[2].Close)
}

func TestClient_Fundamentals(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v10/finance/quoteSummary/MSFT", r.URL.Path)
		assert.Equal(t, "price,summaryDetail,defaultKeyStatistics,financialData", r.URL.Query().Get("modules"))
		writeJSON(w, `{"quoteSummary":{"result":[{
			"price":{"marketCap":{"raw":3100000000000,"fmt":"3.1T"}},
			"summaryDetail":{"trailingPE":{"raw":36.5,"fmt":"36.50"},"dividendYield":{},
				"fiftyTwoWeekHigh":{"raw":468.35},"fiftyTwoWeekLow":{"raw":309.45}},
			"defaultKeyStatistics":{"trailingEps":{"raw":11.8}}}],"error":null}}`)
	})

	f, err := c.Fundamentals(context.Background(), "MSFT")
	require.NoError(t, err)
	require.NotNil(t, f.MarketCap)
	assert.Equal(t, 3.1e12, *f.MarketCap)
	require.NotNil(t, f.TrailingPE)
	assert.Equal(t, 36.5, *f.TrailingPE)
	assert.Nil(t, f.DividendYield, "an empty {} value is absent")
	require.NotNil(t, f.TrailingEPS)
	assert.Equal(t, 11.8, *f.TrailingEPS)
}

// TestClient_Fundamentals_NonNumericRaw は raw に "Infinity" などの文字列が入っても
// デコードに失敗せず、その項目だけが欠損扱いになることを確認します。
func TestClient_Fundamentals_NonNumericRaw(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"quoteSummary":{"result":[{
			"price":{"marketCap":{"raw":2000000000,"fmt":"2B"}},
			"summaryDetail":{"trailingPE":{"raw":"Infinity","fmt":"∞"},
				"dividendYield":{"raw":"NaN"},"fiftyTwoWeekHigh":{"raw":"-Infinity"},
				"fiftyTwoWeekLow":{"raw":null}},
			"defaultKeyStatistics":{"trailingEps":{"raw":-0.5,"fmt":"-0.50"}}}],"error":null}}`)
	})

	f, err := c.Fundamentals(context.Background(), "LOSS")
	require.NoError(t, err)
	require.NotNil(t, f.MarketCap)
	assert.Equal(t, 2e9, *f.MarketCap)
	assert.Nil(t, f.TrailingPE)
	assert.Nil(t, f.DividendYield)
	assert.Nil(t, f.FiftyTwoWeekHigh)
	assert.Nil(t, f.FiftyTwoWeekLow)
	require.NotNil(t, f.TrailingEPS)
	assert.Equal(t, -0.5, *f.TrailingEPS)
}

func TestClient_Profile(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "assetProfile,summaryProfile", r.URL.Query().Get("modules"))
		writeJSON(w, `{"quoteSummary":{"result":[{
			"assetProfile":{"sector":"Technology","industry":"Consumer Electronics","fullTimeEmployees":164000,
				"city":"Cupertino","state":"CA","country":"United States","website":"https://www.apple.com",
				"longBusinessSummary":"Apple designs phones.",
				"companyOfficers":[{"name":"Mr. Timothy D. Cook","title":"CEO & Director"}]}}],"error":null}}`)
	})

	p, err := c.Profile(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, p.AssetProfile)
	assert.Nil(t, p.SummaryProfile)
	assert.Equal(t, "Technology", p.AssetProfile.Sector)
	require.NotNil(t, p.AssetProfile.FullTimeEmployees)
	assert.Equal(t, int64(164000), *p.AssetProfile.FullTimeEmployees)
	require.Len(t, p.AssetProfile.Officers, 1)
	assert.Equal(t, "CEO & Director", p.AssetProfile.Officers[0].Title)
}

func TestClient_Search(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/finance/search", r.URL.Path)
		assert.Equal(t, "apple", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("newsCount"))
		writeJSON(w, `{"quotes":[
			{"symbol":"AAPL","shortname":"Apple Inc.","exchange":"NMS","quoteType":"EQUITY"},
			{"symbol":"APLE","longname":"Apple Hospitality REIT","exchange":"NYQ","quoteType":"EQUITY"},
			{"symbol":"AAPL250117C00150000","exchange":"OPR","quoteType":"OPTION"}],
			"news":[{"title":"Apple beats","publisher":"Reuters","link":"https://x/1","providerPublishTime":1736121600,
				"summary":"<p>Strong <b>quarter</b></p>"}]}`)
	})

	res, err := c.Search(context.Background(), "apple", 10, 5)
	require.NoError(t, err)
	require.Len(t, res.Hits, 3)
	assert.Equal(t, "Apple Hospitality REIT", res.Hits[1].LongName)
	assert.Equal(t, "OPTION", res.Hits[2].QuoteType)
	require.Len(t, res.Headlines, 1)
	assert.Equal(t, "Strong quarter", res.Headlines[0].Summary)
	assert.Equal(t, int64(1736121600), res.Headlines[0].PublishTime)
}

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Yahoo! Finance: AAPL News</title>
  <item>
    <title>Apple unveils new chips</title>
    <description><![CDATA[<p>The company <a href="#">announced</a> M5.</p>]]></description>
    <link>https://finance.yahoo.com/news/apple-chips</link>
    <pubDate>Mon, 06 Jan 2025 00:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Undated item</title>
    <link>https://finance.yahoo.com/news/undated</link>
  </item>
</channel>
</rss>`

func TestClient_Headlines(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rss/2.0/headline", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("s"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssFeed))
	})

	items, err := c.Headlines(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Apple unveils new chips", items[0].Title)
	assert.Equal(t, "The company announced M5.", items[0].Summary)
	assert.Equal(t, defaultPublisher, items[0].Publisher)
	assert.Equal(t, int64(1736121600), items[0].PublishTime)
	assert.Zero(t, items[1].PublishTime)
}

func TestClient_Headlines_Disabled(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{BaseURL: "http://unused"}, http.DefaultClient, nil)
	items, err := c.Headlines(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Empty(t, items)
}

// countingLimiter は Wait の呼び出し回数を数えるリミッターです。
type countingLimiter struct {
	calls int32
	err   error
}

func (l *countingLimiter) Wait(context.Context) error {
	atomic.AddInt32(&l.calls, 1)
	return l.err
}

func TestClient_UsesLimiter(t *testing.T) {
	t.Parallel()

	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeJSON(w, `{"quoteResponse":{"result":[]}}`)
	}))
	defer server.Close()

	limiter := &countingLimiter{}
	c := NewClient(Config{BaseURL: server.URL}, server.Client(), limiter)
	_, err := c.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&limiter.calls))

	limiter.err = context.Canceled
	_, err = c.Quote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "a refused reservation must not reach upstream")
}
