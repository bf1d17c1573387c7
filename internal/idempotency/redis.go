package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veltra/pos-admin-service/pkg/cache"
)

const redisKeyPrefix = "idempotency:"

// RedisStore is the shared-store variant for multi-instance deployments.
// TTL handling is delegated to redis key expiry; there is no entry cap.
type RedisStore struct {
	client *cache.RedisClient
	ttl    time.Duration
}

func NewRedisStore(client *cache.RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Lookup(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := s.client.Client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, body []byte) error {
	return s.client.Client.Set(ctx, redisKeyPrefix+key, body, s.ttl).Err()
}
