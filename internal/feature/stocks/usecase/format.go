package usecase

import (
	"math"

	"github.com/shopspring/decimal"
)

const notAvailable = "N/A"

// present mirrors the provider's convention that a zero figure means "not reported".
func present(v *float64) bool {
	return v != nil && *v != 0 && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// fixed formats v with exactly places decimals. Rounding is half away from zero
// on the exact binary value, so 1.005 (stored as 1.00499...) gives "1.00".
func fixed(v float64, places int32) string {
	return decimal.NewFromFloatWithExponent(v, -places).StringFixed(places)
}

// formatLargeNumber renders a dollar amount with a T/B/M suffix.
func formatLargeNumber(v *float64) string {
	if v == nil {
		return notAvailable
	}
	n := *v
	switch {
	case n >= 1e12:
		return "$" + fixed(n/1e12, 2) + "T"
	case n >= 1e9:
		return "$" + fixed(n/1e9, 2) + "B"
	case n >= 1e6:
		return "$" + fixed(n/1e6, 2) + "M"
	default:
		return "$" + fixed(n, 2)
	}
}

func scaled(v *float64, factor float64) *float64 {
	if !present(v) {
		return nil
	}
	s := *v * factor
	return &s
}

func strPtr(s string) *string { return &s }
