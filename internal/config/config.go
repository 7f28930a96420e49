// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend names accepted by GOLEARN_BACKEND and --backend.
const (
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	Backend     string
	DBPath      string // sqlite file; empty resolves store.DefaultDBPath
	RedisURL    string
	PostgresURL string
	BankPath    string // YAML question bank; empty uses the built-in bank

	ProgressKey string
	TabKey      string

	HTTP HTTPConfig
	Log  LogConfig
}

// HTTPConfig controls the JSON API server.
type HTTPConfig struct {
	Addr            string
	CORSOrigins     []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or text
	File   string // empty logs to stderr
}

// LoadDotEnv loads a .env file from the working directory when present.
// It reports whether a file was loaded.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Backend:     strings.ToLower(getEnv("GOLEARN_BACKEND", BackendSQLite)),
		DBPath:      getEnv("GOLEARN_DB", ""),
		RedisURL:    getEnv("GOLEARN_REDIS_URL", ""),
		PostgresURL: getEnv("GOLEARN_POSTGRES_URL", ""),
		BankPath:    getEnv("GOLEARN_BANK", ""),
		ProgressKey: getEnv("GOLEARN_PROGRESS_KEY", "goLearningProgress"),
		TabKey:      getEnv("GOLEARN_TAB_KEY", "currentTab"),
		HTTP: HTTPConfig{
			Addr:            getEnv("GOLEARN_HTTP_ADDR", ":8080"),
			CORSOrigins:     getEnvList("GOLEARN_CORS_ORIGINS", []string{"*"}),
			RequestTimeout:  getEnvDuration("GOLEARN_HTTP_TIMEOUT", 30*time.Second),
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("GOLEARN_LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("GOLEARN_LOG_FORMAT", "json")),
			File:   getEnv("GOLEARN_LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the selected backend is usable and the remaining
// fields are well formed.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("GOLEARN_REDIS_URL is required for the redis backend")
		}
	case BackendPostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("GOLEARN_POSTGRES_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("GOLEARN_BACKEND %q is not one of sqlite, redis, postgres, memory", c.Backend)
	}

	if c.ProgressKey == "" {
		return fmt.Errorf("GOLEARN_PROGRESS_KEY cannot be empty")
	}
	if c.TabKey == "" {
		return fmt.Errorf("GOLEARN_TAB_KEY cannot be empty")
	}
	if c.ProgressKey == c.TabKey {
		return fmt.Errorf("GOLEARN_PROGRESS_KEY and GOLEARN_TAB_KEY must differ")
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("GOLEARN_HTTP_ADDR cannot be empty")
	}
	if c.HTTP.RequestTimeout <= 0 {
		return fmt.Errorf("GOLEARN_HTTP_TIMEOUT must be > 0")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("GOLEARN_LOG_LEVEL %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("GOLEARN_LOG_FORMAT %q is not one of json, text", c.Log.Format)
	}
	return nil
}

// getEnv treats an empty variable as unset.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
