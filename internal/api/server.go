package api

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"glint/internal/storage"
)

// Config configures the query API server.
type Config struct {
	Port int
}

// Server wraps the query API's gin engine and lifecycle.
type Server struct {
	config   *Config
	logger   *slog.Logger
	handlers *Handlers
	engine   *gin.Engine
	server   *http.Server
	serveErr chan error
}

// NewServer builds the REST/JSON query API server.
func NewServer(cfg *Config, store *storage.Store, logger *slog.Logger) *Server {
	return &Server{
		config:   cfg,
		logger:   logger,
		handlers: NewHandlers(store),
		serveErr: make(chan error, 1),
	}
}

// Start binds the listener and begins serving in a background goroutine. It
// returns once the listener is bound; Serve's eventual result (nil
// on graceful stop, otherwise the failure) is delivered on ServeErr.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	s.engine = gin.New()
	s.engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = false
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.MaxAge = 5 * time.Minute
	s.engine.Use(cors.New(corsConfig))

	s.engine.GET("/health", s.handlers.Health)

	api := s.engine.Group("/api")
	{
		api.GET("/traces", s.handlers.ListTraces)
		api.GET("/traces/:id", s.handlers.GetTrace)
		api.GET("/logs", s.handlers.ListLogs)
		api.GET("/services", s.handlers.ListServices)
	}

	s.engine.NoRoute(staticHandler(staticAssets()))

	s.server = &http.Server{
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.config.Port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", s.config.Port, err)
	}

	s.logger.Info("starting query API server", "port", s.config.Port)

	go func() {
		if err := s.server.Serve(lis); err != nil && err != http.ErrServerClosed {
			s.serveErr <- err
			return
		}
		s.serveErr <- nil
	}()

	return nil
}

// ServeErr delivers Serve's terminal result: nil after a graceful stop,
// otherwise the error that ended it.
func (s *Server) ServeErr() <-chan error {
	return s.serveErr
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
