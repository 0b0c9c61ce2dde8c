package sitestore

import (
	"github.com/gridstream/gridstream/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

func newStore(client *redis.Client, cfg config.Config) Store {
	return NewRedisStore(client, cfg.SiteReadingsPrefix)
}

// Module binds the Store contract to Redis lists under the configured prefix.
var Module = fx.Module("sitestore",
	fx.Provide(newStore),
)
