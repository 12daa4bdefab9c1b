package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stock_dashboard/internal/platform/cache"
	"stock_dashboard/internal/platform/config"
	"stock_dashboard/internal/platform/db"
	infraredis "stock_dashboard/internal/platform/redis"
)

// DBConfig maps the loaded configuration onto db.Config.
func DBConfig(cfg config.DBConfig) db.Config {
	return db.Config{
		Driver:     cfg.Driver,
		URL:        cfg.URL,
		User:       cfg.User,
		Password:   cfg.Password,
		Name:       cfg.Name,
		Host:       cfg.Host,
		Port:       cfg.Port,
		SSLMode:    cfg.SSLMode,
		SQLitePath: cfg.SQLitePath,
	}
}

// OpenDB opens the relational store and runs migrations when enabled.
func OpenDB(cfg config.DBConfig) (*gorm.DB, error) {
	gdb, err := db.Open(DBConfig(cfg), cfg.ConnectTimeout)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if cfg.RunMigrations || cfg.Driver == "memory" {
		if err := db.Migrate(gdb); err != nil {
			db.Close(gdb)
			return nil, err
		}
	}
	return gdb, nil
}

// NewRedis connects to Redis. It returns nil when Redis is not configured or
// unreachable, in which case the cache runs without the hot tier.
func NewRedis(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	rdb, err := infraredis.NewRedisClient(ctx, infraredis.Config{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		slog.Warn("redis unavailable, running without hot tier", "addr", cfg.Addr, "error", err)
		return nil
	}
	return rdb
}

// CacheStore is a Store that can also prune expired rows.
type CacheStore interface {
	cache.Store
	cache.Pruner
}

// NewCacheStore returns the cache store for driver: in-process for memory,
// the SQL table otherwise. If rdb is non-nil, Redis fronts it.
func NewCacheStore(driver string, gdb *gorm.DB, rdb *redis.Client) CacheStore {
	var inner CacheStore
	if driver == "memory" || gdb == nil {
		inner = cache.NewMemoryStore()
	} else {
		inner = cache.NewGormStore(gdb)
	}
	if rdb == nil {
		return inner
	}
	return cache.NewRedisTier(rdb, inner, "")
}

// NewEngine creates the fetch-or-cache engine shared by all adapters.
func NewEngine(store cache.Store, cfg config.CacheConfig) *cache.Engine {
	var opts []cache.Option
	if cfg.Singleflight {
		opts = append(opts, cache.WithSingleflight())
	}
	return cache.NewEngine(store, opts...)
}
