package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, CacheMemory, cfg.CacheDriver)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, time.Minute, cfg.AnnouncementInterval)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, uint(5), cfg.Tasks.MaxAttempts)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.MetricsEnabled)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE_DRIVER", "dynamodb")
	t.Setenv("DYNAMODB_TABLE", "confs")
	t.Setenv("CACHE_DRIVER", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("GO_ENV", "production")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, StorageDynamoDB, cfg.StorageDriver)
	assert.Equal(t, "confs", cfg.DynamoDB.Table)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "missing jwt secret", env: map[string]string{}, want: "JWT_SECRET"},
		{name: "bad storage driver", env: map[string]string{"JWT_SECRET": "s", "STORAGE_DRIVER": "mysql"}, want: "STORAGE_DRIVER"},
		{name: "bad cache driver", env: map[string]string{"JWT_SECRET": "s", "CACHE_DRIVER": "memcached"}, want: "CACHE_DRIVER"},
		{name: "unparsable duration", env: map[string]string{"JWT_SECRET": "s", "CACHE_TTL": "soon"}, want: "parse env:"},
		{name: "zero workers", env: map[string]string{"JWT_SECRET": "s", "TASK_WORKERS": "0"}, want: "TASK_WORKERS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Parse()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production", "warn")
	logger.Info("dropped")
	logger.Warn("kept", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "v", line["k"])

	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
