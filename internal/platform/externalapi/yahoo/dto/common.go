// Package dto mirrors the Yahoo Finance JSON payloads.
package dto

import (
	"bytes"
	"encoding/json"
)

// Error is the error object embedded in Yahoo responses.
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// FinVal is Yahoo's {raw, fmt} number wrapper. Missing values arrive as {}.
type FinVal struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// UnmarshalJSON accepts a numeric raw value. Non-numeric raws such as
// "Infinity" or "NaN" decode as absent.
func (v *FinVal) UnmarshalJSON(data []byte) error {
	var w struct {
		Raw json.RawMessage `json:"raw"`
		Fmt string          `json:"fmt"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	v.Fmt = w.Fmt
	v.Raw = nil

	raw := bytes.TrimSpace(w.Raw)
	if len(raw) == 0 || raw[0] == '"' || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return err
	}
	v.Raw = &f
	return nil
}

// Value returns the raw number, or nil when absent.
func (v *FinVal) Value() *float64 {
	if v == nil {
		return nil
	}
	return v.Raw
}
