package main

import (
	"github.com/gridstream/gridstream/internal/config"
	"github.com/gridstream/gridstream/internal/logger"
	"github.com/gridstream/gridstream/internal/metrics"
	"github.com/gridstream/gridstream/internal/reading"
	"github.com/gridstream/gridstream/internal/redisconn"
	"github.com/gridstream/gridstream/internal/server"
	"github.com/gridstream/gridstream/internal/sitestore"
	"github.com/gridstream/gridstream/internal/stream"
	"go.uber.org/fx"
)

// Ingestion service: accepts readings over HTTP and appends them to the
// durable log.
func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		metrics.Module,
		redisconn.Module,
		stream.Module,
		sitestore.Module,
		reading.Module,
		server.Module,

		fx.Provide(ingestAddr),
		fx.Invoke(func(s *server.Server) {
			s.RegisterIngestRoutes()
		}),
	)
	app.Run()
}

func ingestAddr(cfg config.Config) server.Addr {
	return server.Addr(cfg.IngestAddr)
}
