// File: utils/auth_cache.go
package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL bounds how long a revoked ID token can still be accepted.
const AuthCacheTTL = 2 * time.Minute

// ErrAuthCacheMiss is returned by AuthCache.Get for unknown tokens.
var ErrAuthCacheMiss = errors.New("auth cache miss")

// AuthCache remembers which user an ID token resolved to.
type AuthCache interface {
	Get(ctx context.Context, token string) (string, error)
	Set(ctx context.Context, token, uid string) error
	Delete(ctx context.Context, token string) error
}

// HashToken computes a SHA256 hash of the token so raw tokens never land in Redis.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

type redisAuthCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisAuthCache stores token hashes under AuthCachePrefix.
func NewRedisAuthCache(client *redis.Client, ttl time.Duration) AuthCache {
	if ttl <= 0 {
		ttl = AuthCacheTTL
	}
	return &redisAuthCache{client: client, ttl: ttl}
}

func (c *redisAuthCache) Get(ctx context.Context, token string) (string, error) {
	uid, err := c.client.Get(ctx, AuthCachePrefix+HashToken(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrAuthCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("failed to read auth cache: %w", err)
	}
	return uid, nil
}

func (c *redisAuthCache) Set(ctx context.Context, token, uid string) error {
	if err := c.client.Set(ctx, AuthCachePrefix+HashToken(token), uid, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save auth cache entry: %w", err)
	}
	return nil
}

func (c *redisAuthCache) Delete(ctx context.Context, token string) error {
	return c.client.Del(ctx, AuthCachePrefix+HashToken(token)).Err()
}
