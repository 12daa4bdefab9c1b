package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTier decorates a Store with a Redis read-through layer. The inner store
// stays the source of truth; Redis failures are ignored.
type RedisTier struct {
	inner     Store
	rdb       *redis.Client
	namespace string
}

var (
	_ Store  = (*RedisTier)(nil)
	_ Pruner = (*RedisTier)(nil)
)

// NewRedisTier wraps inner. A nil rdb turns the tier into a pass-through.
// If namespace is empty, it uses "stock_cache".
func NewRedisTier(rdb *redis.Client, inner Store, namespace string) *RedisTier {
	if namespace == "" {
		namespace = "stock_cache"
	}
	return &RedisTier{inner: inner, rdb: rdb, namespace: namespace}
}

// Find checks Redis first, then the inner store, populating Redis on an inner hit.
func (r *RedisTier) Find(ctx context.Context, key Key, now time.Time) (*Entry, error) {
	// Bypass cache if Redis is not configured
	if r.rdb == nil {
		return r.inner.Find(ctx, key, now)
	}

	rk := r.redisKey(key)

	// 1) Check Redis
	if b, err := r.rdb.Get(ctx, rk).Bytes(); err == nil && len(b) > 0 {
		var e Entry
		if err := json.Unmarshal(b, &e); err == nil && e.ExpiresAt.After(now) {
			return &e, nil
		}
		// Corrupt, or outlived its expiry under a skewed clock
		_ = r.rdb.Del(ctx, rk).Err()
	}

	// 2) Fallback to the inner store
	e, err := r.inner.Find(ctx, key, now)
	if err != nil || e == nil {
		return e, err
	}

	// 3) Populate Redis for the remaining lifetime (best effort)
	r.set(ctx, rk, *e, e.ExpiresAt.Sub(now))
	return e, nil
}

// Replace writes through to the inner store, then refreshes Redis.
func (r *RedisTier) Replace(ctx context.Context, e Entry) error {
	if err := r.inner.Replace(ctx, e); err != nil {
		return err
	}
	if r.rdb == nil {
		return nil
	}
	r.set(ctx, r.redisKey(e.Key()), e, e.ExpiresAt.Sub(e.FetchedAt))
	return nil
}

// PruneExpired delegates to the inner store. Redis expires its own keys.
func (r *RedisTier) PruneExpired(ctx context.Context, before time.Time) (int64, error) {
	p, ok := r.inner.(Pruner)
	if !ok {
		return 0, nil
	}
	return p.PruneExpired(ctx, before)
}

func (r *RedisTier) set(ctx context.Context, rk string, e Entry, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if b, err := json.Marshal(e); err == nil {
		_ = r.rdb.Set(ctx, rk, b, ttl).Err()
	}
}

// redisKey generates a Redis key for a cache key.
func (r *RedisTier) redisKey(key Key) string {
	return fmt.Sprintf("%s:%s:%s", r.namespace, safe(string(key.DataType)), safe(key.Symbol))
}

// safe escapes the key separator and whitespace. Query escaping keeps distinct
// search queries ("a b" vs "a_b") on distinct keys.
func safe(s string) string {
	return url.QueryEscape(s)
}
