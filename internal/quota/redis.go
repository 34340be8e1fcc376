package quota

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "tikscope:quota:"

// RedisStore backs the counters with Redis. INCR is atomic server-side, so
// concurrent increments for the same user never lose updates.
type RedisStore struct {
	client *redis.Client
	vips   VIPList
}

func NewRedisStore(addr, password string, vips VIPList) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &RedisStore{client: client, vips: vips}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (int, error) {
	count, err := s.client.Get(ctx, redisKeyPrefix+userID).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read quota count: %w", err)
	}
	return count, nil
}

func (s *RedisStore) IsVIP(userID string) bool {
	return s.vips.Contains(userID)
}

func (s *RedisStore) Increment(ctx context.Context, userID string) (int, error) {
	count, err := s.client.Incr(ctx, redisKeyPrefix+userID).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment quota count: %w", err)
	}
	return int(count), nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
