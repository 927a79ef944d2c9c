package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-delivery/internal/logger"

	"github.com/go-redis/redis/v8"
)

// Client wraps Redis for the two things this service caches: geocoding
// results and the fixed-window counter guarding the keyless geocoding
// provider. A nil *Client is valid and disables both.
type Client struct {
	client *redis.Client
	log    *logger.Logger
}

// Connect dials Redis and verifies the connection.
func Connect(ctx context.Context, addr, password string, db int, log *logger.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("cache: connect: %w", err)
	}

	log.Info("Connected to Redis")
	return &Client{client: rdb, log: log}, nil
}

func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// Get unmarshals the cached JSON value for key into dest. The bool reports
// whether the key existed; transport errors are returned as errors.
func (c *Client) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c == nil {
		return false, nil
	}
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache: get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("cache: unmarshal %s: %w", key, err)
	}
	return true, nil
}

// Set marshals value as JSON and stores it under key with a TTL.
func (c *Client) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

// Allow implements a fixed-window rate check: it increments the window
// counter for key and reports whether the count is still within limit. With
// no Redis configured every call is allowed.
func (c *Client) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if c == nil {
		return true, nil
	}
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("cache: incr %s: %w", key, err)
	}
	if count == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("cache: expire %s: %w", key, err)
		}
	}
	return count <= int64(limit), nil
}

// Health pings Redis for the readiness endpoint.
func (c *Client) Health(ctx context.Context) error {
	if c == nil {
		return nil
	}
	_, err := c.client.Ping(ctx).Result()
	return err
}
