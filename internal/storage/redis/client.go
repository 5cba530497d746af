// Package storage wraps the redis connection that backs shared rate limit
// counters.
package storage

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout = 2 * time.Second
	ioTimeout   = time.Second
)

type Options struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix namespaces every key so instances of different apps can
	// share one redis database.
	KeyPrefix string
}

// Client is a redis client whose keys are built under a common prefix.
type Client struct {
	*redis.Client
	prefix string
}

func NewClient(opts Options) *Client {
	return Wrap(redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	}), opts.KeyPrefix)
}

// Wrap adopts an existing connection, mostly for mocks.
func Wrap(rdb *redis.Client, keyPrefix string) *Client {
	return &Client{
		Client: rdb,
		prefix: strings.Trim(keyPrefix, ":"),
	}
}

// Key joins parts with ':' under the client prefix.
func (c *Client) Key(parts ...string) string {
	k := strings.Join(parts, ":")
	if c.prefix == "" {
		return k
	}

	return c.prefix + ":" + k
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Stop() error {
	return c.Client.Close()
}
