// Package bootstrap wires glint's storage layer and its three network
// listeners (OTLP gRPC, OTLP/HTTP, REST query API) into a single process
// lifecycle, the way brokle's internal/app package wires its own HTTP and
// gRPC servers behind one Start/Shutdown pair.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"glint/internal/api"
	"glint/internal/config"
	"glint/internal/storage"
	grpctransport "glint/internal/transport/grpc"
	httptransport "glint/internal/transport/http"
	"glint/pkg/logging"
)

const shutdownTimeout = 30 * time.Second

// App wires together storage and every listener glint exposes.
type App struct {
	logger *slog.Logger
	store  *storage.Store
	dbPath string

	grpcServer *grpctransport.Server
	otlpServer *httptransport.Server
	apiServer  *api.Server

	shutdownOnce sync.Once
}

// New opens the project database and constructs every listener, but starts
// nothing yet.
func New(cfg *config.Config) (*App, error) {
	logger := logging.NewLoggerWithFormat(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	dbPath, err := storage.ResolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}

	store, err := storage.Open(context.Background(), dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	traceHandler := grpctransport.NewOTLPHandler(store, logger)
	logsHandler := grpctransport.NewOTLPLogsHandler(store, logger)
	metricsHandler := grpctransport.NewOTLPMetricsHandler(store, logger)

	return &App{
		logger:     logger,
		store:      store,
		dbPath:     dbPath,
		grpcServer: grpctransport.NewServer(cfg.OTLPGRPCPort, traceHandler, logsHandler, metricsHandler, logger),
		otlpServer: httptransport.NewServer(&httptransport.Config{Port: cfg.OTLPHTTPPort}, store, logger),
		apiServer:  api.NewServer(&api.Config{Port: cfg.QueryAPIPort}, store, logger),
	}, nil
}

// DBPath returns the database file the app opened, for callers (e.g. the
// CLI's info command) that want to report it.
func (a *App) DBPath() string {
	return a.dbPath
}

// Run starts every listener, then blocks until an OS interrupt/terminate
// signal arrives or one of the listeners fails, then performs a graceful
// shutdown bounded by shutdownTimeout.
func (a *App) Run() error {
	if err := a.grpcServer.Start(); err != nil {
		return fmt.Errorf("failed to start gRPC OTLP server: %w", err)
	}
	if err := a.otlpServer.Start(); err != nil {
		return fmt.Errorf("failed to start OTLP/HTTP server: %w", err)
	}
	if err := a.apiServer.Start(); err != nil {
		return fmt.Errorf("failed to start query API server: %w", err)
	}

	a.logger.Info("glint started", "db_path", a.dbPath)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-a.grpcServer.ServeErr():
		if err != nil {
			a.logger.Error("gRPC OTLP server failed unexpectedly", "error", err)
		}
	case err := <-a.otlpServer.ServeErr():
		if err != nil {
			a.logger.Error("OTLP/HTTP server failed unexpectedly", "error", err)
		}
	case err := <-a.apiServer.ServeErr():
		if err != nil {
			a.logger.Error("query API server failed unexpectedly", "error", err)
		}
	case <-quit:
		a.logger.Info("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Shutdown(ctx)
}

// Shutdown gracefully stops every listener and closes storage. Safe to call
// more than once; only the first call does any work.
func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error
	a.shutdownOnce.Do(func() {
		shutdownErr = a.doShutdown(ctx)
	})
	return shutdownErr
}

func (a *App) doShutdown(ctx context.Context) error {
	a.logger.Info("shutting down glint")

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		if err := a.grpcServer.Shutdown(ctx); err != nil {
			a.logger.Error("failed to shut down gRPC OTLP server", "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := a.otlpServer.Shutdown(ctx); err != nil {
			a.logger.Error("failed to shut down OTLP/HTTP server", "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := a.apiServer.Shutdown(ctx); err != nil {
			a.logger.Error("failed to shut down query API server", "error", err)
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		a.logger.Warn("shutdown timeout exceeded, forcing close")
	}

	if err := a.store.Close(); err != nil {
		a.logger.Error("failed to close storage", "error", err)
		return err
	}

	a.logger.Info("glint stopped")
	return nil
}
