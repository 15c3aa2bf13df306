package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"gebedsrooster/utils"
)

type mapCache struct {
	entries map[string]string
	err     error
}

func (c *mapCache) Get(ctx context.Context, token string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	uid, ok := c.entries[utils.HashToken(token)]
	if !ok {
		return "", utils.ErrAuthCacheMiss
	}
	return uid, nil
}

func (c *mapCache) Set(ctx context.Context, token, uid string) error {
	if c.err != nil {
		return c.err
	}
	c.entries[utils.HashToken(token)] = uid
	return nil
}

func (c *mapCache) Delete(ctx context.Context, token string) error {
	delete(c.entries, utils.HashToken(token))
	return nil
}

type countingVerifier struct {
	staticVerifier
	calls int
}

func (v *countingVerifier) VerifyToken(ctx context.Context, idToken string) (string, error) {
	v.calls++
	return v.staticVerifier.VerifyToken(ctx, idToken)
}

func TestCachedTokenVerifier(t *testing.T) {
	utils.SetLogger(zaptest.NewLogger(t))
	ctx := context.Background()
	next := &countingVerifier{staticVerifier: staticVerifier{"good": "u1"}}
	cache := &mapCache{entries: map[string]string{}}
	v := NewCachedTokenVerifier(next, cache)

	for range 3 {
		uid, err := v.VerifyToken(ctx, "good")
		require.NoError(t, err)
		assert.Equal(t, "u1", uid)
	}
	assert.Equal(t, 1, next.calls)
	assert.NotContains(t, cache.entries, "good")

	_, err := v.VerifyToken(ctx, "bad")
	assert.Error(t, err)
	assert.Len(t, cache.entries, 1)

	require.NoError(t, v.Forget(ctx, "good"))
	_, err = v.VerifyToken(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, 3, next.calls)
}

func TestCachedTokenVerifierFallsThroughOnCacheError(t *testing.T) {
	utils.SetLogger(zaptest.NewLogger(t))
	next := &countingVerifier{staticVerifier: staticVerifier{"good": "u1"}}
	v := NewCachedTokenVerifier(next, &mapCache{err: errors.New("redis down")})

	uid, err := v.VerifyToken(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)
	assert.Equal(t, 1, next.calls)
}
