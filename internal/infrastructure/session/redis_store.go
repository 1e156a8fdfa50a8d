package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	repo "github.com/oksasatya/yatter-client/internal/domain/repository"
)

var _ repo.SessionStore = (*RedisStore)(nil)

const DefaultRedisKey = "yatter:session:username"

// RedisStore shares one session between processes pointed at the same Redis.
type RedisStore struct {
	Redis *redis.Client
	Key   string
}

func NewRedisStore(rdb *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{Redis: rdb, Key: key}
}

func (s *RedisStore) GetUsername(ctx context.Context) (string, bool, error) {
	v, err := s.Redis.Get(ctx, s.Key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get session: %w", err)
	}
	return v, true, nil
}

func (s *RedisStore) PutUsername(ctx context.Context, username string) error {
	if err := s.Redis.Set(ctx, s.Key, username, 0).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.Redis.Del(ctx, s.Key).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
