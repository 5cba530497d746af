package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	redisapp "casa_criativa/internal/storage/redis"
)

// RedisHitRepo keeps window counters in redis so several instances share them.
type RedisHitRepo struct {
	Client *redisapp.Client
}

func NewRedisHitRepo(client *redisapp.Client) *RedisHitRepo {
	return &RedisHitRepo{Client: client}
}

// Hit increments the counter for key and returns the new value.
// The first hit of a window sets its expiry.
func (r *RedisHitRepo) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	const op = "repository.hit_repository.Hit"

	k := r.Client.Key(hitKeyspace, key)

	n, err := r.Client.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if n == 1 {
		if err := r.Client.Expire(ctx, k, window).Err(); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	return n, nil
}

const hitKeyspace = "ratelimit"

func hitKey(key string) string {
	return hitKeyspace + ":" + key
}

// MemoryHitRepo is the single-instance counterpart of RedisHitRepo.
type MemoryHitRepo struct {
	c *cache.Cache
}

func NewMemoryHitRepo(cleanup time.Duration) *MemoryHitRepo {
	return &MemoryHitRepo{c: cache.New(cache.NoExpiration, cleanup)}
}

func (m *MemoryHitRepo) Hit(_ context.Context, key string, window time.Duration) (int64, error) {
	k := hitKey(key)

	// Add fails when a live counter exists; Increment fails when it has
	// just expired. Loop until one of them lands.
	for {
		if err := m.c.Add(k, int64(1), window); err == nil {
			return 1, nil
		}

		n, err := m.c.IncrementInt64(k, 1)
		if err == nil {
			return n, nil
		}
	}
}
