package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// TokenDenylist remembers signed-out bearer tokens until they expire.
// Tokens are stored hashed.
type TokenDenylist struct {
	helper *CacheHelper
}

func NewTokenDenylist(cm *CacheManager) *TokenDenylist {
	return &TokenDenylist{helper: cm.Session}
}

func (d *TokenDenylist) Enabled() bool {
	return d != nil && d.helper.Enabled()
}

// Revoke stores the token until expiresAt. Already expired tokens are ignored.
func (d *TokenDenylist) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	if !d.Enabled() {
		return ErrCacheNotAvailable
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return d.helper.Set(ctx, tokenKey(token), true, ttl)
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	if !d.Enabled() {
		return false, nil
	}
	return d.helper.Exists(ctx, tokenKey(token))
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
