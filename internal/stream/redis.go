package stream

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisLog implements Log on a single named Redis stream.
type RedisLog struct {
	client *redis.Client
	stream string
}

// NewRedisLog wires a Log backed by the given Redis stream name.
func NewRedisLog(client *redis.Client, stream string) *RedisLog {
	return &RedisLog{client: client, stream: stream}
}

func (l *RedisLog) Append(ctx context.Context, fields map[string]string) (string, error) {
	values := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		values[k] = v
	}

	id, err := l.client.XAdd(ctx, &redis.XAddArgs{
		Stream: l.stream,
		Values: values,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("append stream %s: %w", l.stream, err)
	}
	return id, nil
}

func (l *RedisLog) EnsureGroup(ctx context.Context, group string) error {
	// "0" so a fresh group sees the whole stream, MKSTREAM so the group can
	// be created before the first append.
	err := l.client.XGroupCreateMkStream(ctx, l.stream, group, "0").Err()
	if err != nil && !isBusyGroup(err) {
		return fmt.Errorf("create group %s: %w", group, err)
	}
	return nil
}

func (l *RedisLog) Claim(ctx context.Context, group, consumer string, count int64, block time.Duration) ([]Record, error) {
	streams, err := l.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{l.stream, ">"},
		Count:    count,
		Block:    block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Block timeout with nothing new.
			return nil, nil
		}
		return nil, fmt.Errorf("claim from %s: %w", l.stream, err)
	}

	var records []Record
	for _, s := range streams {
		for _, msg := range s.Messages {
			records = append(records, Record{
				ID:     msg.ID,
				Fields: stringValues(msg.Values),
			})
		}
	}
	return records, nil
}

func (l *RedisLog) Ack(ctx context.Context, group, id string) error {
	if err := l.client.XAck(ctx, l.stream, group, id).Err(); err != nil {
		return fmt.Errorf("ack %s: %w", id, err)
	}
	return nil
}

func (l *RedisLog) Len(ctx context.Context) (int64, error) {
	n, err := l.client.XLen(ctx, l.stream).Result()
	if err != nil {
		return 0, fmt.Errorf("len of %s: %w", l.stream, err)
	}
	return n, nil
}

func (l *RedisLog) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func isBusyGroup(err error) bool {
	return err != nil && strings.Contains(err.Error(), "BUSYGROUP")
}

func stringValues(values map[string]interface{}) map[string]string {
	fields := make(map[string]string, len(values))
	for k, v := range values {
		switch val := v.(type) {
		case string:
			fields[k] = val
		case []byte:
			fields[k] = string(val)
		default:
			fields[k] = fmt.Sprint(val)
		}
	}
	return fields
}
