package cache

import (
	"context"

	appdonation "github.com/NapatKulnarong/ReMeals/internal/application/donation"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/auth"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Stores bundles the cache-backed stores the server needs
type Stores struct {
	Summary   appdonation.SummaryCache
	Blacklist auth.TokenBlacklist
	client    *redis.Client
}

// Redis returns the shared client, nil when running on in-memory stores
func (s *Stores) Redis() *redis.Client {
	return s.client
}

// Close releases the Redis connection if one was opened
func (s *Stores) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Open builds Redis-backed stores when Redis is enabled and reachable, and
// in-memory stores otherwise. In-memory stores do not share state across
// instances.
func Open(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Stores {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Enabled {
		client, err := NewRedisClient(ctx, cfg)
		if err == nil {
			logger.Info("Using Redis cache", zap.String("addr", cfg.Addr()))
			return &Stores{
				Summary:   NewRedisSummaryCache(client, cfg.SummaryTTL),
				Blacklist: auth.NewRedisTokenBlacklist(client),
				client:    client,
			}
		}
		logger.Warn("Redis unavailable, falling back to in-memory cache. "+
			"Token revocations will not be shared between instances.",
			zap.Error(err))
	}
	return &Stores{
		Summary:   NewInMemorySummaryCache(cfg.SummaryTTL),
		Blacklist: auth.NewInMemoryTokenBlacklist(),
	}
}
