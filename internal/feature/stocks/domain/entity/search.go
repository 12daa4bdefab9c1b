package entity

// SearchResult is one equity match.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// SearchHit is an upstream search match of any instrument type.
type SearchHit struct {
	Symbol    string
	ShortName string
	LongName  string
	Exchange  string
	QuoteType string
}

// SearchResponse is the combined upstream search result.
type SearchResponse struct {
	Hits      []SearchHit
	Headlines []Headline
}
