package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/pizza-service/internal/config"
)

// Redis holds the optional session-cache client. A zero Redis means caching is off and
// sessions are read straight from Postgres.
type Redis struct {
	Client     *redis.Client
	SessionTTL time.Duration
}

// NewRedis builds the cache client. An unreachable server is logged but not fatal:
// cache misses fall back to the session table.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	if cfg.Addr == "" {
		logger.Info("REDIS_ADDR not set, session cache disabled")
		return &Redis{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, sessions will be read from postgres until it recovers",
			zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("session cache connected", zap.String("addr", cfg.Addr), zap.Duration("ttl", cfg.SessionCacheTTL))
	}

	return &Redis{Client: client, SessionTTL: cfg.SessionCacheTTL}
}

func (r *Redis) Enabled() bool {
	return r != nil && r.Client != nil
}

func (r *Redis) Close() {
	if r.Enabled() {
		_ = r.Client.Close()
	}
}

// Ping backs the readiness probe.
func (r *Redis) Ping(ctx context.Context) error {
	if !r.Enabled() {
		return errors.New("session cache disabled")
	}
	return r.Client.Ping(ctx).Err()
}
