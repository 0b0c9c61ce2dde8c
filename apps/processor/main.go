package main

import (
	"github.com/gridstream/gridstream/internal/config"
	"github.com/gridstream/gridstream/internal/consumer"
	"github.com/gridstream/gridstream/internal/logger"
	"github.com/gridstream/gridstream/internal/metrics"
	"github.com/gridstream/gridstream/internal/reading"
	"github.com/gridstream/gridstream/internal/redisconn"
	"github.com/gridstream/gridstream/internal/server"
	"github.com/gridstream/gridstream/internal/sitestore"
	"github.com/gridstream/gridstream/internal/stream"
	"go.uber.org/fx"
)

// Processing service: runs the consumer loop and serves the materialized
// per-site read view.
func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		metrics.Module,
		redisconn.Module,
		stream.Module,
		sitestore.Module,
		reading.Module,
		consumer.Module,
		server.Module,

		fx.Provide(processorAddr),
		fx.Invoke(func(s *server.Server) {
			s.RegisterQueryRoutes()
		}),
	)
	app.Run()
}

func processorAddr(cfg config.Config) server.Addr {
	return server.Addr(cfg.ProcessorAddr)
}
