package sitestore

import (
	"context"
	"fmt"

	redis "github.com/redis/go-redis/v9"
)

// RedisStore keeps each site's readings in a Redis list under
// <prefix>:<site_id>.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Append(ctx context.Context, siteID string, value []byte) error {
	if err := s.client.RPush(ctx, s.key(siteID), value).Err(); err != nil {
		return fmt.Errorf("append reading for site %s: %w", siteID, err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, siteID string) ([][]byte, error) {
	raw, err := s.client.LRange(ctx, s.key(siteID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list readings for site %s: %w", siteID, err)
	}

	values := make([][]byte, 0, len(raw))
	for _, v := range raw {
		values = append(values, []byte(v))
	}
	return values, nil
}

func (s *RedisStore) key(siteID string) string {
	return s.prefix + ":" + siteID
}
