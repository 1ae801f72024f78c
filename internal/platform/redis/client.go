// Package redis wraps the go-redis client with configuration and health
// checking for the eligibility report cache.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"yojana/internal/platform/config"
)

// Client is the shared Redis connection. It embeds the go-redis client so
// cache code can issue commands directly.
type Client struct {
	*redis.Client
}

// New connects to Redis and verifies the connection before returning. An
// empty URL means caching is not configured and New returns (nil, nil); the
// rest of the service must treat a nil client as cache-disabled.
func New(ctx context.Context, cfg config.Redis) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Client{Client: client}, nil
}

// Health reports whether Redis is reachable. Used by the /health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
