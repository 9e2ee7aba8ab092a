package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()

	assert.Equal(t, "8080", Cfg.Port)
	assert.Equal(t, "info", Cfg.LogLevel)
	assert.Equal(t, "memory", Cfg.StorageBackend)
	assert.True(t, Cfg.SeedDemoData)
	assert.Equal(t, 100*time.Millisecond, Cfg.RateLimitInterval)
	assert.Equal(t, 30, Cfg.RateLimitBurst)
	assert.Equal(t, "demo", Cfg.DefaultUsername)
	assert.Equal(t, "Subveris", Cfg.TOTPIssuer)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "SQLite")
	t.Setenv("SEED_DEMO_DATA", "false")
	t.Setenv("RATE_LIMIT_INTERVAL", "250ms")
	t.Setenv("RATE_LIMIT_BURST", "5")

	LoadConfig()

	assert.Equal(t, "9090", Cfg.Port)
	assert.Equal(t, "sqlite", Cfg.StorageBackend)
	assert.False(t, Cfg.SeedDemoData)
	assert.Equal(t, 250*time.Millisecond, Cfg.RateLimitInterval)
	assert.Equal(t, 5, Cfg.RateLimitBurst)
}

func TestGetEnvAsIntInvalidFallsBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")
	assert.Equal(t, 30, getEnvAsInt("RATE_LIMIT_BURST", 30))
}

func TestGetEnvAsDurationInvalidFallsBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_INTERVAL", "soon")
	assert.Equal(t, time.Second, getEnvAsDuration("RATE_LIMIT_INTERVAL", time.Second))
}
