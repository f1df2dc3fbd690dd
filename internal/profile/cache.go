package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultCacheTTL = 5 * time.Minute
	keyPrefix       = "doctorat:profile:"
)

// RedisCache stores directory profiles as JSON strings with a TTL.
// Placeholders are never cached.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get reports ok=false on a miss.
func (c *RedisCache) Get(ctx context.Context, profileID uuid.UUID) (Profile, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(profileID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, fmt.Errorf("read cached profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, false, fmt.Errorf("decode cached profile: %w", err)
	}
	return p, true, nil
}

func (c *RedisCache) Set(ctx context.Context, p Profile) error {
	if p.Placeholder {
		return nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(p.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache profile: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, profileID uuid.UUID) error {
	return c.client.Del(ctx, cacheKey(profileID)).Err()
}

func cacheKey(profileID uuid.UUID) string {
	return keyPrefix + profileID.String()
}
