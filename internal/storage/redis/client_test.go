package storage_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"casa_criativa/internal/repository"
	redisapp "casa_criativa/internal/storage/redis"
)

func setupTestRedis(t *testing.T) *redisapp.Client {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redisapp.NewClient(redisapp.Options{
		Addr:      fmt.Sprintf("%s:%s", host, port.Port()),
		KeyPrefix: "casa_criativa_test",
	})

	t.Cleanup(func() {
		client.Stop()
		container.Terminate(ctx)
	})

	return client
}

func TestClient_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()
	client := setupTestRedis(t)

	require.NoError(t, client.HealthCheck(ctx))

	repo := repository.NewRedisHitRepo(client)

	for want := int64(1); want <= 3; want++ {
		n, err := repo.Hit(ctx, "192.0.2.1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	ttl, err := client.TTL(ctx, "casa_criativa_test:ratelimit:192.0.2.1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
