package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
env: "prod"
storage_path: "/tmp/ideas.db"
http:
  port: "8081"
rate_limit:
  window_ms: 60000
  max_requests: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "/tmp/ideas.db", cfg.StoragePath)
	assert.Equal(t, "8081", cfg.HTTP.Port)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window())
	assert.Equal(t, 5, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
http:
  port: "8081"
`)
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "7")
	t.Setenv("HTTP_TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.1/32")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, 7, cfg.RateLimit.MaxRequests)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1/32"}, cfg.HTTP.TrustedProxies)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestLoadEnv_Defaults(t *testing.T) {
	cfg, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, "3000", cfg.HTTP.Port)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window())
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
	assert.Empty(t, cfg.Redis.RedisAddr)
}

func TestMustLoadPath_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustLoadPath(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}
