package middleware

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"gebedsrooster/utils"
)

// CachedTokenVerifier consults Cache before asking Next. Cache failures fall
// through to Next.
type CachedTokenVerifier struct {
	Next  TokenVerifier
	Cache utils.AuthCache
}

func NewCachedTokenVerifier(next TokenVerifier, cache utils.AuthCache) *CachedTokenVerifier {
	return &CachedTokenVerifier{Next: next, Cache: cache}
}

func (v *CachedTokenVerifier) VerifyToken(ctx context.Context, idToken string) (string, error) {
	uid, err := v.Cache.Get(ctx, idToken)
	if err == nil && uid != "" {
		return uid, nil
	}
	if err != nil && !errors.Is(err, utils.ErrAuthCacheMiss) {
		utils.GetLogger().Warn("auth cache unavailable", zap.Error(err))
	}

	uid, err = v.Next.VerifyToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	if err := v.Cache.Set(ctx, idToken, uid); err != nil {
		utils.GetLogger().Warn("failed to cache verified token", zap.Error(err))
	}
	return uid, nil
}

// Forget drops idToken from the cache, so a signed-out token is checked
// against the identity service again.
func (v *CachedTokenVerifier) Forget(ctx context.Context, idToken string) error {
	return v.Cache.Delete(ctx, idToken)
}
