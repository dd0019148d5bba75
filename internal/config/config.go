package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds runtime settings for the console.
//
// SessionID is empty unless a previous session is resumed; the app then
// generates a fresh one. SessionTTL bounds how long a session's cached data
// survives in the store. RequestTimeout of zero disables the transport
// timeout.
type Config struct {
	APIBaseURL     string        `mapstructure:"api_base_url" validate:"required,url"`
	APIKey         string        `mapstructure:"api_key"`
	StoreBackend   string        `mapstructure:"store_backend" validate:"oneof=sqlite redis memory"`
	SQLitePath     string        `mapstructure:"sqlite_path" validate:"required_if=StoreBackend sqlite"`
	RedisAddr      string        `mapstructure:"redis_addr" validate:"required_if=StoreBackend redis"`
	RedisPassword  string        `mapstructure:"redis_password"`
	SessionID      string        `mapstructure:"session_id"`
	SessionTTL     time.Duration `mapstructure:"session_ttl" validate:"gt=0"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gte=0"`
	LogLevel       string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://reqres.in/api"
	c.StoreBackend = StoreSQLite
	c.SQLitePath = "session.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.SessionTTL = 24 * time.Hour
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "warn"
}

// Validate checks field constraints after all sources are applied.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
