package revocation

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "revoked:"

type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRegistry connects a registry to Redis. Entries expire after ttl,
// which should be at least the maximum token lifetime so a revoked token can
// never outlive its denylist entry.
func NewRedisRegistry(addr, password string, db int, ttl time.Duration) (*RedisRegistry, error) {
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisRegistry{client: client, ttl: ttl}, nil
}

func (r *RedisRegistry) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, redisKeyPrefix+hashToken(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisRegistry) Revoke(ctx context.Context, token string) error {
	return r.client.Set(ctx, redisKeyPrefix+hashToken(token), 1, r.ttl).Err()
}

func (r *RedisRegistry) Close() error {
	return r.client.Close()
}
