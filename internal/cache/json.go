package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"TripPlanner/storage/redis"
)

// JSONCache stores JSON-encoded values under a key prefix.
type JSONCache struct {
	client    func() *goredis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewJSONCache(keyPrefix string, ttl time.Duration) *JSONCache {
	return &JSONCache{
		client:    redis.Client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (c *JSONCache) key(key string) string {
	return redis.Key(c.keyPrefix, key)
}

func (c *JSONCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return c.client().Set(ctx, c.key(key), data, c.ttl).Err()
}

// Get decodes the cached value into dest. A miss returns false with a nil error.
func (c *JSONCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client().Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (c *JSONCache) Delete(ctx context.Context, key string) error {
	return c.client().Del(ctx, c.key(key)).Err()
}
