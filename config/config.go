// Package config loads service settings from the environment, reading a
// .env file first when one exists.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type Config struct {
	Port            int           `env:"PORT" envDefault:"5200"`
	StoreBackend    string        `env:"STORE_BACKEND" envDefault:"postgres"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	RedisURL        string        `env:"REDIS_URL"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	RelevelInterval time.Duration `env:"RELEVEL_INTERVAL" envDefault:"1h"`
	DefaultPageSize int           `env:"DEFAULT_PAGE_SIZE" envDefault:"3"`

	ObjectStore ObjectStoreConfig
}

// ObjectStoreConfig points at the S3-compatible bucket snapshots are written to.
type ObjectStoreConfig struct {
	AccountID       string `env:"CLOUDFLARE_ACCOUNT_ID"`
	AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	AccessKeySecret string `env:"R2_ACCESS_KEY_SECRET"`
	Bucket          string `env:"R2_BUCKET_NAME"`
	Endpoint        string `env:"R2_ENDPOINT"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, reading environment variables directly")
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	for i, origin := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL environment variable not set")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when STORE_BACKEND=redis")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (use: postgres, redis, memory)", c.StoreBackend)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.DefaultPageSize < 1 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be positive, got %d", c.DefaultPageSize)
	}
	if c.RelevelInterval < 0 {
		return fmt.Errorf("RELEVEL_INTERVAL must not be negative, got %s", c.RelevelInterval)
	}
	return nil
}

// Validate checks that a snapshot can be uploaded.
func (o ObjectStoreConfig) Validate() error {
	if o.Bucket == "" {
		return errors.New("R2_BUCKET_NAME environment variable not set")
	}
	if o.AccountID == "" && o.Endpoint == "" {
		return errors.New("either CLOUDFLARE_ACCOUNT_ID or R2_ENDPOINT must be set")
	}
	return nil
}

// EndpointURL is the S3 API endpoint for the bucket.
func (o ObjectStoreConfig) EndpointURL() string {
	if o.Endpoint != "" {
		return o.Endpoint
	}
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", o.AccountID)
}

// SlogLevel converts LogLevel to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
