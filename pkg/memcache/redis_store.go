package memcache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore keeps catalog payloads in Redis so several replicas share one
// cache. Expiry is left to Redis.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		prefix: "tqb:catalog:",
		logger: logger,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return payload, true
}

func (s *RedisStore) Set(ctx context.Context, key string, payload []byte) {
	if err := s.client.Set(ctx, s.prefix+key, payload, s.ttl).Err(); err != nil {
		s.logger.Warn("Catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
