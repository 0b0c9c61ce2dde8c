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

// Monolith: both pipeline roles in one process, one listener.
func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		metrics.Module,
		redisconn.Module,
		stream.Module,
		sitestore.Module,

		// Functional domains
		reading.Module,
		consumer.Module,
		server.Module,

		fx.Provide(listenAddr),
		fx.Invoke(func(s *server.Server) {
			s.RegisterIngestRoutes()
			s.RegisterQueryRoutes()
		}),
	)
	app.Run()
}

func listenAddr(cfg config.Config) server.Addr {
	return server.Addr(cfg.IngestAddr)
}
