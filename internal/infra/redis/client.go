// Package redis wraps the Redis connection used to ship telemetry records
// off the hot path.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps Redis operations for telemetry shipping.
type Client struct {
	rdb *redis.Client
}

// Config holds Redis connection configuration. An empty URL disables the
// Redis sink entirely.
type Config struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	Key      string `yaml:"key"`      // list key for telemetry records
	MaxLen   int64  `yaml:"max_len"`  // cap on the list length, 0 = default
}

// DefaultMaxLen caps the telemetry list when no explicit limit is set.
const DefaultMaxLen = 10000

// NewClient creates a new Redis client and verifies connectivity.
func NewClient(cfg Config) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Push appends a payload to the given list and trims it to maxLen. Used for
// fire-and-forget telemetry delivery; callers ignore the error beyond
// logging it.
func (c *Client) Push(ctx context.Context, key string, payload []byte, maxLen int64) error {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	pipe := c.rdb.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, maxLen-1)
	_, err := pipe.Exec(ctx)
	return err
}
