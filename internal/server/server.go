package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gridstream/gridstream/internal/config"
	"github.com/gridstream/gridstream/internal/consumer"
	"github.com/gridstream/gridstream/internal/metrics"
	readingdomain "github.com/gridstream/gridstream/internal/reading/domain"
	"github.com/gridstream/gridstream/internal/stream"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Addr is the listen address of the role's HTTP server; each app provides
// its own from config.
type Addr string

func NewEngine(m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/metrics", gin.WrapH(m.Handler()))

	return r
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	log        *zap.Logger
	readingsvc readingdomain.Service
	stream     stream.Log
	worker     *consumer.Worker
}

type Params struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	ReadingSvc readingdomain.Service
	Stream     stream.Log
	Worker     *consumer.Worker `optional:"true"`
}

func NewServer(p Params) *Server {
	s := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		log:        p.Log.Named("http"),
		readingsvc: p.ReadingSvc,
		stream:     p.Stream,
		worker:     p.Worker,
	}

	s.engine.GET("/health", s.Health)

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// RegisterIngestRoutes mounts the producer side.
func (s *Server) RegisterIngestRoutes() {
	s.engine.POST("/readings", s.CreateReading)
}

// RegisterQueryRoutes mounts the materialized-view side.
func (s *Server) RegisterQueryRoutes() {
	s.engine.GET("/sites/:site_id/readings", s.ListSiteReadings)
}

func run(lc fx.Lifecycle, r *gin.Engine, addr Addr, log *zap.Logger) {
	srv := &http.Server{
		Addr:    string(addr),
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", string(addr)))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

// Module wires the engine and the HTTP server lifecycle; the app composes
// routes via RegisterIngestRoutes / RegisterQueryRoutes.
var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(run),
)
