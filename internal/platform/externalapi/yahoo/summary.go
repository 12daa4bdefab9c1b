package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"stock_dashboard/internal/feature/stocks/domain/entity"
	"stock_dashboard/internal/platform/externalapi/yahoo/dto"
)

var (
	fundamentalsModules = []string{"price", "summaryDetail", "defaultKeyStatistics", "financialData"}
	profileModules      = []string{"assetProfile", "summaryProfile"}
)

// Fundamentals は metrics の算出に使う quoteSummary モジュールを取得します。
func (c *Client) Fundamentals(ctx context.Context, symbol string) (*entity.Fundamentals, error) {
	r, err := c.quoteSummary(ctx, symbol, fundamentalsModules)
	if err != nil {
		return nil, err
	}

	f := &entity.Fundamentals{}
	if r.Price != nil {
		f.MarketCap = r.Price.MarketCap.Value()
	}
	if sd := r.SummaryDetail; sd != nil {
		f.TrailingPE = sd.TrailingPE.Value()
		f.DividendYield = sd.DividendYield.Value()
		f.FiftyTwoWeekHigh = sd.FiftyTwoWeekHigh.Value()
		f.FiftyTwoWeekLow = sd.FiftyTwoWeekLow.Value()
	}
	if ks := r.DefaultKeyStatistics; ks != nil {
		f.TrailingEPS = ks.TrailingEps.Value()
	}
	return f, nil
}

// Profile は assetProfile と summaryProfile を取得します。どちらも欠けることがあります。
func (c *Client) Profile(ctx context.Context, symbol string) (*entity.ProfileModules, error) {
	r, err := c.quoteSummary(ctx, symbol, profileModules)
	if err != nil {
		return nil, err
	}
	return &entity.ProfileModules{
		AssetProfile:   toProfile(r.AssetProfile),
		SummaryProfile: toProfile(r.SummaryProfile),
	}, nil
}

func (c *Client) quoteSummary(ctx context.Context, symbol string, modules []string) (*dto.QuoteSummaryResult, error) {
	q := url.Values{}
	q.Set("modules", strings.Join(modules, ","))
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.cfg.summaryBase(), url.PathEscape(symbol), q.Encode())

	var body dto.QuoteSummaryResponse
	if err := c.getJSON(ctx, "quoteSummary", u, &body); err != nil {
		return nil, err
	}
	if e := body.QuoteSummary.Error; e != nil {
		return nil, &APIError{Endpoint: "quoteSummary", Code: e.Code, Description: e.Description}
	}
	if len(body.QuoteSummary.Result) == 0 {
		return &dto.QuoteSummaryResult{}, nil
	}
	return &body.QuoteSummary.Result[0], nil
}

func toProfile(p *dto.Profile) *entity.Profile {
	if p == nil {
		return nil
	}
	officers := make([]entity.Officer, 0, len(p.CompanyOfficers))
	for _, o := range p.CompanyOfficers {
		officers = append(officers, entity.Officer{Name: o.Name, Title: o.Title})
	}
	return &entity.Profile{
		LongBusinessSummary: p.LongBusinessSummary,
		Sector:              p.Sector,
		Industry:            p.Industry,
		FullTimeEmployees:   p.FullTimeEmployees,
		FoundedYear:         p.FoundedYear,
		City:                p.City,
		State:               p.State,
		Country:             p.Country,
		Website:             p.Website,
		Officers:            officers,
	}
}
