package entity

// CompanyInfo is the normalized company profile. Unknown fields hold "N/A",
// except Description which is empty.
type CompanyInfo struct {
	Description  string `json:"description"`
	Sector       string `json:"sector"`
	Industry     string `json:"industry"`
	Employees    string `json:"employees"`
	Founded      string `json:"founded"`
	CEO          string `json:"ceo"`
	Headquarters string `json:"headquarters"`
	Website      string `json:"website"`
}

// Officer is a company officer listed in a profile.
type Officer struct {
	Name  string
	Title string
}

// Profile is one upstream profile module.
type Profile struct {
	LongBusinessSummary string
	Sector              string
	Industry            string
	FullTimeEmployees   *int64
	FoundedYear         *int
	City                string
	State               string
	Country             string
	Website             string
	Officers            []Officer
}

// ProfileModules carries both profile modules; either may be nil.
type ProfileModules struct {
	AssetProfile   *Profile
	SummaryProfile *Profile
}
