package usecase

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"stock_dashboard/internal/feature/stocks/domain/entity"
	"stock_dashboard/internal/platform/cache"
)

var numberPrinter = message.NewPrinter(language.English)

// GetCompanyInfo returns the company profile, or nil when the provider has
// neither profile module. Provider failures are returned as errors.
func (u *StocksUsecase) GetCompanyInfo(ctx context.Context, symbol string) (*entity.CompanyInfo, error) {
	symbol = normalizeSymbol(symbol)

	return cache.Resolve(ctx, u.engine, companyKind, symbol, func(ctx context.Context) (*entity.CompanyInfo, error) {
		modules, err := u.market.Profile(ctx, symbol)
		if err != nil {
			return nil, err
		}
		return toCompanyInfo(modules), nil
	})
}

func toCompanyInfo(m *entity.ProfileModules) *entity.CompanyInfo {
	if m == nil {
		return nil
	}
	p := m.AssetProfile
	if p == nil {
		p = m.SummaryProfile
	}
	if p == nil {
		return nil
	}

	info := &entity.CompanyInfo{
		Description:  p.LongBusinessSummary,
		Sector:       orNA(p.Sector),
		Industry:     orNA(p.Industry),
		Employees:    notAvailable,
		Founded:      notAvailable,
		CEO:          notAvailable,
		Headquarters: orNA(joinNonEmpty(", ", p.City, p.State, p.Country)),
		Website:      orNA(p.Website),
	}
	if p.FullTimeEmployees != nil && *p.FullTimeEmployees > 0 {
		info.Employees = numberPrinter.Sprintf("%d", *p.FullTimeEmployees)
	}
	if p.FoundedYear != nil && *p.FoundedYear > 0 {
		info.Founded = strconv.Itoa(*p.FoundedYear)
	}
	for _, o := range p.Officers {
		if strings.Contains(o.Title, "CEO") {
			info.CEO = orNA(o.Name)
			break
		}
	}
	return info
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
