package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

// Engine resolves values through a Store: cached when fresh, fetched otherwise.
// One Engine is constructed per process and shared by every adapter.
type Engine struct {
	store Store
	now   func() time.Time
	group *singleflight.Group
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for freshness checks and expiry.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithSingleflight makes concurrent misses for the same key within this
// process share one fetch. Without it, each miss fetches and writes on its own.
func WithSingleflight() Option {
	return func(e *Engine) { e.group = &singleflight.Group{} }
}

// NewEngine returns an Engine over store.
func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{store: store, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Kind binds a DataType to the Go type of its payload, so a cached row is
// always decoded into the type it was written from.
type Kind[T any] struct {
	dataType DataType
}

// NewKind declares the payload type for dt.
func NewKind[T any](dt DataType) Kind[T] {
	return Kind[T]{dataType: dt}
}

func (k Kind[T]) DataType() DataType { return k.dataType }

// Resolve returns the cached payload for (symbol, kind) if it has not expired.
// Otherwise it calls fetch, stores the result with the kind's TTL and returns it.
//
// Fetch errors are returned unchanged and nothing is cached. Store errors on
// either side are logged and never reach the caller.
func Resolve[T any](ctx context.Context, e *Engine, kind Kind[T], symbol string, fetch func(context.Context) (T, error)) (T, error) {
	key := Key{Symbol: symbol, DataType: kind.dataType}

	if v, ok := lookup[T](ctx, e, key); ok {
		return v, nil
	}

	if e.group == nil {
		return fetchAndStore(ctx, e, key, fetch)
	}
	v, err, _ := e.group.Do(key.String(), func() (any, error) {
		return fetchAndStore(ctx, e, key, fetch)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func lookup[T any](ctx context.Context, e *Engine, key Key) (T, bool) {
	var out T

	entry, err := e.store.Find(ctx, key, e.now().UTC())
	if err != nil {
		slog.Warn("cache read failed", "symbol", key.Symbol, "dataType", key.DataType, "error", err)
		return out, false
	}
	if entry == nil {
		return out, false
	}
	if err := json.Unmarshal(entry.Payload, &out); err != nil {
		slog.Warn("discarding undecodable cache entry", "symbol", key.Symbol, "dataType", key.DataType, "error", err)
		var zero T
		return zero, false
	}
	return out, true
}

func fetchAndStore[T any](ctx context.Context, e *Engine, key Key, fetch func(context.Context) (T, error)) (T, error) {
	v, err := fetch(ctx)
	if err != nil {
		return v, err
	}

	payload, err := json.Marshal(v)
	if err != nil {
		slog.Warn("cache encode failed", "symbol", key.Symbol, "dataType", key.DataType, "error", err)
		return v, nil
	}

	now := e.now().UTC()
	entry := Entry{
		Symbol:    key.Symbol,
		DataType:  key.DataType,
		Payload:   payload,
		FetchedAt: now,
		ExpiresAt: now.Add(TTL(key.DataType)),
	}
	if err := e.store.Replace(ctx, entry); err != nil {
		slog.Warn("cache write failed", "symbol", key.Symbol, "dataType", key.DataType, "error", err)
	}
	return v, nil
}

// Prune drops entries that expired before the given time, when the store supports it.
func (e *Engine) Prune(ctx context.Context, before time.Time) (int64, error) {
	p, ok := e.store.(Pruner)
	if !ok {
		return 0, nil
	}
	return p.PruneExpired(ctx, before.UTC())
}

// Now exposes the engine clock so maintenance jobs share it.
func (e *Engine) Now() time.Time { return e.now() }
