package config

import (
	"os"
	"testing"
	"time"

	"hrdash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedKeys = []string{
	"PORT", "GIN_MODE", "STATIC_DIR", "CORS_ALLOWED_ORIGINS", "SHUTDOWN_TIMEOUT",
	"DATA_SOURCE", "DATA_PATH", "CACHE_ENABLED",
	"DATABASE_URL", "DATABASE_TABLE",
	"OPS_ENABLED", "OPS_PORT", "LOG_LEVEL",
}

// clearEnv unsets every key Load reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range managedKeys {
		if old, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { os.Setenv(key, old) })
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, SourceFile, cfg.Data.Source)
	assert.Equal(t, "data.csv", cfg.Data.Path)
	assert.False(t, cfg.Data.CacheEnabled)
	assert.Equal(t, "employees", cfg.Database.Table)
	assert.True(t, cfg.Ops.Enabled)
	assert.Equal(t, "6060", cfg.Ops.Port)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_SOURCE", " Postgres ")
	t.Setenv("DATABASE_URL", "postgres://hr@localhost/hr?sslmode=disable")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example,http://b.example")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, SourcePostgres, cfg.Data.Source)
	assert.Equal(t, "postgres://hr@localhost/hr?sslmode=disable", cfg.Database.URL)
	assert.True(t, cfg.Data.CacheEnabled)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown source", map[string]string{"DATA_SOURCE": "s3"}},
		{"postgres without url", map[string]string{"DATA_SOURCE": "postgres"}},
		{"ops port clash", map[string]string{"PORT": "7000", "OPS_PORT": "7000"}},
		{"non-positive timeout", map[string]string{"SHUTDOWN_TIMEOUT": "0s"}},
		{"bad bool", map[string]string{"CACHE_ENABLED": "maybe"}},
		{"unknown gin mode", map[string]string{"GIN_MODE": "prod"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid), "got %v", err)
		})
	}
}

func TestLoad_OpsPortMayMatchWhenDisabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("OPS_PORT", "7000")
	t.Setenv("OPS_ENABLED", "false")

	_, err := Load()
	assert.NoError(t, err)
}
