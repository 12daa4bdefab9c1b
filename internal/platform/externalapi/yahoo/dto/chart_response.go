package dto

// ChartResponse is the v8 chart payload.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *Error        `json:"error"`
	} `json:"chart"`
}

type ChartResult struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Currency string `json:"currency"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}
