package http

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

// Server wraps the OTLP/HTTP receiver's gin engine and lifecycle.
type Server struct {
	config *Config
	logger *slog.Logger
	engine *gin.Engine
	server *http.Server
	serveErr chan error

	otlpHandler *OTLPHandler
}

// Config configures the OTLP/HTTP receiver.
type Config struct {
	Port int
}

// NewServer builds the OTLP/HTTP receiver: a single POST /v1/traces route
// behind request-ID, logging and recovery middleware (spec §4.5).
func NewServer(cfg *Config, store *storage.Store, logger *slog.Logger) *Server {
	return &Server{
		config:      cfg,
		logger:      logger,
		otlpHandler: NewOTLPHandler(store, logger),
		serveErr:    make(chan error, 1),
	}
}

// Start binds the listener and begins serving in a background goroutine. It
// returns once the listener is bound; Serve's eventual result (nil
// on graceful stop, otherwise the failure) is delivered on ServeErr.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	s.engine = gin.New()
	s.engine.Use(RequestID())
	s.engine.Use(Logger(s.logger))
	s.engine.Use(Recovery(s.logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = false
	corsConfig.MaxAge = 5 * time.Minute
	s.engine.Use(cors.New(corsConfig))

	s.otlpHandler.Register(s.engine)

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

	s.logger.Info("starting OTLP/HTTP server", "port", s.config.Port)

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
