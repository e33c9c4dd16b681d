package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSessionTTL = 15 * time.Minute

// SessionCache keeps token -> user id pairs in Redis in front of the session
// store. Sessions never change owner, so entries only expire to bound memory.
// Key format: session:<token>
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a SessionCache wrapping the given Redis client.
func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionCache{client: client, ttl: ttl}
}

// Get returns the cached owner of token, if any.
func (c *SessionCache) Get(ctx context.Context, token string) (string, bool, error) {
	userID, err := c.client.Get(ctx, key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session cache get: %w", err)
	}
	return userID, true, nil
}

// Set caches the owner of token for the configured TTL.
func (c *SessionCache) Set(ctx context.Context, token, userID string) error {
	if err := c.client.Set(ctx, key(token), userID, c.ttl).Err(); err != nil {
		return fmt.Errorf("session cache set: %w", err)
	}
	return nil
}

func key(token string) string {
	return "session:" + token
}
