package entity

import "time"

// PricePoint is one closing price. Date is ISO-8601 in UTC.
type PricePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Bar is one upstream chart bar. Close is nil when the provider reported null.
type Bar struct {
	Time  time.Time
	Close *float64
}

// ChartWindow describes the requested range. A zero Start means unbounded,
// which the client requests as Range "max".
type ChartWindow struct {
	Range    string
	Start    time.Time
	End      time.Time
	Interval string
}

// Unbounded reports whether the window has no lower bound.
func (w ChartWindow) Unbounded() bool { return w.Start.IsZero() }
