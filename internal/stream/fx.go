package stream

import (
	"github.com/gridstream/gridstream/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

func newLog(client *redis.Client, cfg config.Config) Log {
	return NewRedisLog(client, cfg.StreamName)
}

// Module binds the Log contract to the configured Redis stream.
var Module = fx.Module("stream",
	fx.Provide(newLog),
)
