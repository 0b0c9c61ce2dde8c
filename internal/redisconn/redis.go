package redisconn

import (
	"context"

	"github.com/gridstream/gridstream/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewClient builds the shared Redis client backing both the durable log and
// the site readings store.
func NewClient(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr(),
	})
}

func registerHooks(lc fx.Lifecycle, client *redis.Client, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				// The process still starts; the consumer loop and the
				// health endpoint surface an unreachable Redis on their own.
				log.Warn("redis unreachable at startup", zap.Error(err))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			_ = ctx
			return client.Close()
		},
	})
}

// Module wires the Redis client with lifecycle management.
var Module = fx.Module("redisconn",
	fx.Provide(NewClient),
	fx.Invoke(registerHooks),
)
