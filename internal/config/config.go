package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the MobileSiteCheck server.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Audit    AuditConfig
	Render   RenderConfig
	Preview  PreviewConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type StoreConfig struct {
	// Backend selects report persistence: "memory" (default) or "postgres".
	Backend string
	// Freshness is how long a report is served as a cache hit for its URL.
	Freshness time.Duration
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	// URL is optional; when empty, rate limiting and preview caching are
	// disabled rather than failing startup.
	URL string
}

type AuditConfig struct {
	// Engine is the Lighthouse CLI binary name or path.
	Engine string
	// Timeout bounds one primary-provider invocation. The simulated
	// fallback completes immediately and has no timeout of its own.
	Timeout time.Duration
}

type RenderConfig struct {
	// ChromePath overrides browser discovery when set.
	ChromePath string
	Timeout    time.Duration
}

type PreviewConfig struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

var validBackends = map[string]bool{
	"memory":   true,
	"postgres": true,
}

// Load reads configuration from environment variables and returns a
// validated Config. Returns an error if any required value is missing or
// invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("MOBILECHECK_PORT", 8080),
			Env:  envString("MOBILECHECK_ENV", "development"),
		},
		Store: StoreConfig{
			Backend:   envString("STORE_BACKEND", "memory"),
			Freshness: envDuration("CACHE_FRESHNESS", 24*time.Hour),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Audit: AuditConfig{
			Engine:  envString("LIGHTHOUSE_BIN", "lighthouse"),
			Timeout: envDurationSecs("AUDIT_TIMEOUT_SECS", 60*time.Second),
		},
		Render: RenderConfig{
			ChromePath: os.Getenv("CHROME_PATH"),
			Timeout:    envDurationSecs("RENDER_TIMEOUT_SECS", 30*time.Second),
		},
		Preview: PreviewConfig{
			Timeout:  envDurationSecs("PREVIEW_TIMEOUT_SECS", 30*time.Second),
			CacheTTL: envDuration("PREVIEW_CACHE_TTL", 1*time.Hour),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if !validBackends[c.Store.Backend] {
		return fmt.Errorf("STORE_BACKEND must be one of memory, postgres; got %q", c.Store.Backend)
	}
	if c.Store.Backend == "postgres" && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required when STORE_BACKEND is postgres")
	}
	if c.Store.Freshness <= 0 {
		return fmt.Errorf("CACHE_FRESHNESS must be positive, got %s", c.Store.Freshness)
	}
	if c.Audit.Timeout <= 0 {
		return fmt.Errorf("AUDIT_TIMEOUT_SECS must be positive, got %s", c.Audit.Timeout)
	}
	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}
