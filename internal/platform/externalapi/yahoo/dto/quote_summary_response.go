package dto

// QuoteSummaryResponse is the v10 quoteSummary payload. Only requested modules are present.
type QuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []QuoteSummaryResult `json:"result"`
		Error  *Error               `json:"error"`
	} `json:"quoteSummary"`
}

type QuoteSummaryResult struct {
	Price                *Price                `json:"price"`
	SummaryDetail        *SummaryDetail        `json:"summaryDetail"`
	DefaultKeyStatistics *DefaultKeyStatistics `json:"defaultKeyStatistics"`
	AssetProfile         *Profile              `json:"assetProfile"`
	SummaryProfile       *Profile              `json:"summaryProfile"`
}

type Price struct {
	MarketCap *FinVal `json:"marketCap"`
}

type SummaryDetail struct {
	TrailingPE       *FinVal `json:"trailingPE"`
	DividendYield    *FinVal `json:"dividendYield"`
	FiftyTwoWeekHigh *FinVal `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  *FinVal `json:"fiftyTwoWeekLow"`
}

type DefaultKeyStatistics struct {
	TrailingEps *FinVal `json:"trailingEps"`
}

// Profile covers both assetProfile and summaryProfile, which share these fields.
type Profile struct {
	LongBusinessSummary string    `json:"longBusinessSummary"`
	Sector              string    `json:"sector"`
	Industry            string    `json:"industry"`
	FullTimeEmployees   *int64    `json:"fullTimeEmployees"`
	FoundedYear         *int      `json:"foundedYear"`
	City                string    `json:"city"`
	State               string    `json:"state"`
	Country             string    `json:"country"`
	Website             string    `json:"website"`
	CompanyOfficers     []Officer `json:"companyOfficers"`
}

type Officer struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}
