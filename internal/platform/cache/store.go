// Package cache implements the fetch-or-cache engine and the stores behind it.
//
// A cache entry is keyed by (symbol, data type). At most one entry exists per
// key: every refresh deletes the previous entry before inserting the new one.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Key identifies a cache entry. Symbol may also be a search query or a
// symbol_period composite; the engine treats it as opaque.
type Key struct {
	Symbol   string
	DataType DataType
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s", k.DataType, k.Symbol)
}

// Entry is one cached payload.
type Entry struct {
	Symbol    string          `json:"symbol"`
	DataType  DataType        `json:"dataType"`
	Payload   json.RawMessage `json:"data"`
	FetchedAt time.Time       `json:"fetchedAt"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// Key returns the entry's key.
func (e Entry) Key() Key {
	return Key{Symbol: e.Symbol, DataType: e.DataType}
}

// Store persists cache entries.
type Store interface {
	// Find returns the entry for key whose ExpiresAt is strictly after now,
	// or (nil, nil) when there is none.
	Find(ctx context.Context, key Key, now time.Time) (*Entry, error)
	// Replace deletes any entry for e's key and then inserts e.
	Replace(ctx context.Context, e Entry) error
}

// Pruner is implemented by stores that can drop expired rows in bulk.
type Pruner interface {
	// PruneExpired deletes entries that expired before the given time and
	// returns how many were removed.
	PruneExpired(ctx context.Context, before time.Time) (int64, error)
}
