// Package config loads process configuration from defaults, an optional YAML
// file, a .env file and environment variables (highest precedence).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the root configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Yahoo  YahooConfig  `mapstructure:"yahoo"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Addr               string        `mapstructure:"addr"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
}

// DBConfig selects the relational store. Driver is one of postgres, sqlite or memory.
// With memory, the cache lives in-process and the watchlist uses an in-memory sqlite database.
type DBConfig struct {
	Driver         string        `mapstructure:"driver"`
	URL            string        `mapstructure:"url"`
	Host           string        `mapstructure:"host"`
	Port           string        `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	Name           string        `mapstructure:"name"`
	SSLMode        string        `mapstructure:"sslmode"`
	SQLitePath     string        `mapstructure:"sqlite_path"`
	RunMigrations  bool          `mapstructure:"run_migrations"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// RedisConfig is optional. An empty Addr disables the Redis hot tier.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type YahooConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	SummaryBaseURL string        `mapstructure:"summary_base_url"`
	RSSURL         string        `mapstructure:"rss_url"`
	UserAgent      string        `mapstructure:"user_agent"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RateLimit      int           `mapstructure:"rate_limit"`
	RateInterval   time.Duration `mapstructure:"rate_interval"`
}

type CacheConfig struct {
	Singleflight  bool          `mapstructure:"singleflight"`
	PruneSchedule string        `mapstructure:"prune_schedule"`
	PruneGrace    time.Duration `mapstructure:"prune_grace"`
	WarmWatchlist bool          `mapstructure:"warm_watchlist"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// envAliases binds keys to the shorter variable names operators already use.
var envAliases = map[string][]string{
	"server.addr":                 {"SERVER_ADDR", "ADDR"},
	"server.cors_allowed_origins": {"CORS_ALLOWED_ORIGINS"},
	"db.url":                      {"DATABASE_URL", "DB_URL"},
	"db.sqlite_path":              {"SQLITE_PATH", "DB_SQLITE_PATH"},
	"db.run_migrations":           {"RUN_MIGRATIONS", "DB_RUN_MIGRATIONS"},
}

// Load reads configuration. configFile may be empty; when set, it must exist.
// A .env file in the working directory is loaded first if present.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.url", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "stock_dashboard")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.sqlite_path", "stock_dashboard.db")
	v.SetDefault("db.run_migrations", true)
	v.SetDefault("db.connect_timeout", 60*time.Second)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("yahoo.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("yahoo.summary_base_url", "https://query2.finance.yahoo.com")
	v.SetDefault("yahoo.rss_url", "https://feeds.finance.yahoo.com/rss/2.0/headline")
	v.SetDefault("yahoo.user_agent", "")
	v.SetDefault("yahoo.timeout", 10*time.Second)
	v.SetDefault("yahoo.rate_limit", 8)
	v.SetDefault("yahoo.rate_interval", time.Second)

	v.SetDefault("cache.singleflight", false)
	v.SetDefault("cache.prune_schedule", "")
	v.SetDefault("cache.prune_grace", 24*time.Hour)
	v.SetDefault("cache.warm_watchlist", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate rejects settings that would fail later in less obvious ways.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite", "memory":
	default:
		return fmt.Errorf("config: unsupported db driver %q", c.DB.Driver)
	}
	if c.Yahoo.BaseURL == "" {
		return errors.New("config: yahoo base url is required")
	}
	if c.Yahoo.Timeout <= 0 {
		return errors.New("config: yahoo timeout must be positive")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: unsupported log format %q", c.Log.Format)
	}
	return nil
}

// SlogLevel maps Log.Level to a slog.Level, defaulting to Info.
func (c LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
