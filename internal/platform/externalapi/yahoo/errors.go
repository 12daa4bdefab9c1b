package yahoo

import "fmt"

// UpstreamError reports a non-success HTTP status from Yahoo.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("yahoo %s: http %d", e.Endpoint, e.StatusCode)
}

// APIError is the error object Yahoo embeds in an otherwise successful response.
type APIError struct {
	Endpoint    string
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yahoo %s: %s: %s", e.Endpoint, e.Code, e.Description)
}
