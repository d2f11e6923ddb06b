package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
[server]
http_port = 9090

[booking]
lead_time_minutes = 30

[discovery]
fetch_timeout_ms = 500

[redis]
enabled = true
addr = "cache:6379"
`)
	t.Setenv(envDBPassword, "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Booking.LeadTimeMinutes)
	assert.Equal(t, 500*time.Millisecond, cfg.Discovery.FetchTimeout())
	assert.Equal(t, 8, cfg.Discovery.MaxConcurrency, "untouched values keep defaults")
	assert.Equal(t, 60*time.Second, cfg.Redis.TTL())
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "sslmode=disable")
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "")
	writeFile(t, dir, ".env", "REDIS_PASSWORD=from-dotenv\n")
	t.Cleanup(func() { os.Unsetenv(envRedisPassword) })

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.Redis.Password)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := writeFile(t, t.TempDir(), "config.toml", "[server\n")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "port", mutate: func(c *Config) { c.Server.HTTPPort = 0 }},
		{name: "lead time", mutate: func(c *Config) { c.Booking.LeadTimeMinutes = 20000 }},
		{name: "concurrency", mutate: func(c *Config) { c.Discovery.MaxConcurrency = 0 }},
		{name: "redis ttl", mutate: func(c *Config) { c.Redis.Enabled = true; c.Redis.TTLSeconds = 0 }},
		{name: "cron", mutate: func(c *Config) { c.Jobs.CompleteBookingsCron = "every minute" }},
		{name: "timezone", mutate: func(c *Config) { c.Jobs.Timezone = "Mars/Olympus" }},
	}

	assert.NoError(t, Default().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
