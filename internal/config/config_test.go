package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_DRIVER", "STORAGE_KEY", "FLUSH_INTERVAL", "BREAKER_FAILURES", "APP_ENV"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "file", cfg.StoreDriver)
	assert.Equal(t, "tasks", cfg.StorageKey)
	assert.Equal(t, 5*time.Second, cfg.FlushInterval)
	assert.Equal(t, 3, cfg.BreakerFailures)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("FLUSH_INTERVAL", "250ms")
	t.Setenv("BREAKER_FAILURES", "7")
	t.Setenv("APP_ENV", "development")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, 250*time.Millisecond, cfg.FlushInterval)
	assert.Equal(t, 7, cfg.BreakerFailures)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("FLUSH_INTERVAL", "soon")
	t.Setenv("BREAKER_FAILURES", "many")

	cfg := Load()

	assert.Equal(t, 5*time.Second, cfg.FlushInterval)
	assert.Equal(t, 3, cfg.BreakerFailures)
}
