package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://reqres.in/api", c.APIBaseURL)
	assert.Equal(t, StoreSQLite, c.StoreBackend)
	assert.Equal(t, 24*time.Hour, c.SessionTTL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "https://reqres.in/api", cfg.APIBaseURL)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, ok: true},
		{name: "memory store", mutate: func(c *Config) { c.StoreBackend = StoreMemory; c.SQLitePath = "" }, ok: true},
		{name: "unknown store", mutate: func(c *Config) { c.StoreBackend = "etcd" }},
		{name: "bad url", mutate: func(c *Config) { c.APIBaseURL = "not a url" }},
		{name: "redis without addr", mutate: func(c *Config) { c.StoreBackend = StoreRedis; c.RedisAddr = "" }},
		{name: "zero ttl", mutate: func(c *Config) { c.SessionTTL = 0 }},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			if tt.ok {
				assert.NoError(t, c.Validate())
			} else {
				assert.Error(t, c.Validate())
			}
		})
	}
}
