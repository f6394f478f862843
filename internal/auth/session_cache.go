package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	sessionCacheNamespace = "session_tokens"
	// revokedMarker is cached on logout. A miss-path fill uses SETNX and so cannot overwrite it.
	revokedMarker = "revoked"
)

// CachedSessionStore answers liveness checks from Redis before falling back to the backing store.
// Logins are written through. Logouts replace the entry with a revoked marker that lives for the
// cache TTL, so a lookup racing a logout cannot put the token back. Lookup and fill failures are
// logged and fall through to the backing store.
type CachedSessionStore struct {
	backing SessionStore
	client  redis.Cmdable
	ttl     time.Duration
	logger  *zap.Logger
}

// NewCachedSessionStore wraps backing with a Redis cache.
func NewCachedSessionStore(backing SessionStore, client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *CachedSessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSessionStore{backing: backing, client: client, ttl: ttl, logger: logger}
}

func (s *CachedSessionStore) RecordLogin(ctx context.Context, userID int64, token string) error {
	if err := s.backing.RecordLogin(ctx, userID, token); err != nil {
		return err
	}
	if err := s.client.Set(ctx, cacheKey(token), userID, s.ttl).Err(); err != nil {
		s.logger.Warn("session cache write failed", zap.Error(err))
	}
	return nil
}

// RecordLogout marks the token revoked in the cache before deleting the backing session. It fails
// when the marker cannot be written, since the token would otherwise stay live in the cache.
func (s *CachedSessionStore) RecordLogout(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, cacheKey(token), revokedMarker, s.ttl).Err(); err != nil {
		return fmt.Errorf("revoke cached session: %w", err)
	}
	return s.backing.RecordLogout(ctx, token)
}

func (s *CachedSessionStore) IsActive(ctx context.Context, token string) (bool, error) {
	cached, err := s.client.Get(ctx, cacheKey(token)).Result()
	switch {
	case err == nil:
		return cached != revokedMarker, nil
	case errors.Is(err, redis.Nil):
	default:
		s.logger.Warn("session cache lookup failed", zap.Error(err))
	}

	active, err := s.backing.IsActive(ctx, token)
	if err != nil {
		return false, err
	}
	if active {
		if err := s.client.SetNX(ctx, cacheKey(token), 0, s.ttl).Err(); err != nil {
			s.logger.Warn("session cache write failed", zap.Error(err))
		}
	}
	return active, nil
}

func cacheKey(token string) string {
	return sessionCacheNamespace + ":" + Fingerprint(token)
}
