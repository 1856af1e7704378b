package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/domino14/trailbot/move"
)

// DecisionTTL is how long a decision stays in redis.
const DecisionTTL = 24 * time.Hour

// RedisStore shares decisions between every process pointed at the same
// redis server.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (move.Direction, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	d, err := move.FromString(val)
	if err != nil {
		return 0, false, err
	}
	return d, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, d move.Direction) error {
	return s.client.Set(ctx, key, d.String(), DecisionTTL).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
