package compiler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheName = "compiled"

// ScriptCache stores canonical compiled scripts keyed by the digest of the
// editor script they were compiled from
type ScriptCache struct {
	redisClient *redis.Client
	keyPrefix   string
	ttl         time.Duration
}

// NewScriptCache creates a new compiled script cache. keyPrefix is prepended
// to every digest, e.g. "annotator:compiled:".
func NewScriptCache(redisClient *redis.Client, keyPrefix string, ttl time.Duration) *ScriptCache {
	return &ScriptCache{
		redisClient: redisClient,
		keyPrefix:   keyPrefix,
		ttl:         ttl,
	}
}

// Key returns the Redis key for digest
func (c *ScriptCache) Key(digest string) string {
	return c.keyPrefix + digest
}

// Get retrieves a cached canonical script. A miss returns nil data and no error.
func (c *ScriptCache) Get(ctx context.Context, digest string) ([]byte, error) {
	data, err := c.redisClient.Get(ctx, c.Key(digest)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}

		return nil, fmt.Errorf("failed to read cached script: %w", err)
	}

	return data, nil
}

// Set stores a canonical script
func (c *ScriptCache) Set(ctx context.Context, digest string, data []byte) error {
	return c.redisClient.Set(ctx, c.Key(digest), data, c.ttl).Err()
}

// Invalidate removes a cached script
func (c *ScriptCache) Invalidate(ctx context.Context, digest string) error {
	return c.redisClient.Del(ctx, c.Key(digest)).Err()
}
