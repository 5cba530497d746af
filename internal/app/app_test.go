package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casa_criativa/internal/config"
)

type countingCloser struct {
	calls int
}

func (c *countingCloser) Close() error {
	c.calls++
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Env:          "local",
		StoragePath:  filepath.Join(t.TempDir(), "db", "ideas.db"),
		QueryTimeout: time.Second,
		HTTP: config.HTTPConfig{
			Host:            "127.0.0.1",
			Port:            "0",
			ShutdownTimeout: time.Second,
			BodyLimit:       "1M",
		},
		RateLimit: config.RateLimitConfig{WindowMS: 60000, MaxRequests: 10},
	}
}

func TestApp_StopClosesLogSinks(t *testing.T) {
	sinks := &countingCloser{}

	a, err := New(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)), testConfig(t), sinks)
	require.NoError(t, err)
	require.NotNil(t, a.HTTPServer)

	a.Stop()

	assert.Equal(t, 1, sinks.calls)
}

func TestApp_InvalidTrustedProxy(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTP.TrustedProxies = []string{"not-a-cidr"}

	sinks := &countingCloser{}

	_, err := New(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)), cfg, sinks)
	assert.ErrorContains(t, err, "invalid trusted proxy")
}
