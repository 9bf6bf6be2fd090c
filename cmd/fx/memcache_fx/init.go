package memcache_fx

import (
	"context"
	"fmt"

	"github.com/fatihtunali/travelquotebot/internal/config"
	"github.com/fatihtunali/travelquotebot/internal/infra"
	mem "github.com/fatihtunali/travelquotebot/pkg/memcache"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Provide(provideCatalogStore)

// provideCatalogStore keeps the catalog in process by default; CACHE_BACKEND=redis
// shares it between replicas.
func provideCatalogStore(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (mem.CatalogStore, error) {
	switch cfg.CacheBackend {
	case "", "memory":
		log.Info("Using in-memory catalog cache", zap.Duration("ttl", cfg.CatalogCacheTTL))
		return mem.NewTTLStore(cfg.CatalogCacheTTL), nil
	case "redis":
		client, err := infra.InitRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			},
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		log.Info("Using redis catalog cache", zap.Duration("ttl", cfg.CatalogCacheTTL))
		return mem.NewRedisStore(client, cfg.CatalogCacheTTL, log), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s. Use 'memory' or 'redis'", cfg.CacheBackend)
	}
}
