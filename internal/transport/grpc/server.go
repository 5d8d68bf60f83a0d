// Package grpc hosts glint's binary-RPC OTLP receiver: the gRPC server
// registering TraceService, LogsService and MetricsService, and the
// handlers that convert + persist each export request (spec §4.4).
package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"

	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	colmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
)

// Server wraps the gRPC server with lifecycle management.
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	logger     *slog.Logger
	port       int
	serveErr   chan error
}

// NewServer builds the gRPC server for OTLP ingestion: a memory-limiter
// interceptor guards against unbounded growth under load, then every call
// is logged, then the three OTLP collector services are registered
// (spec §4.4).
func NewServer(port int, traceHandler coltracepb.TraceServiceServer, logsHandler collogspb.LogsServiceServer, metricsHandler colmetricspb.MetricsServiceServer, logger *slog.Logger) *Server {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			MemoryLimiterInterceptor(DefaultMemoryLimiterConfig(), logger),
			LoggingInterceptor(logger),
		),
		grpc.MaxRecvMsgSize(10*1024*1024),
		grpc.MaxSendMsgSize(10*1024*1024),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    1 * time.Minute,
			Timeout: 20 * time.Second,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             30 * time.Second,
			PermitWithoutStream: true,
		}),
	)

	coltracepb.RegisterTraceServiceServer(grpcServer, traceHandler)
	collogspb.RegisterLogsServiceServer(grpcServer, logsHandler)
	colmetricspb.RegisterMetricsServiceServer(grpcServer, metricsHandler)

	return &Server{
		grpcServer: grpcServer,
		logger:     logger,
		port:       port,
		serveErr:   make(chan error, 1),
	}
}

// Start binds the listener and begins serving in a background goroutine.
// It returns once the listener is bound; Serve's eventual result (nil on
// graceful stop, otherwise the failure) is delivered on ServeErr.
func (s *Server) Start() error {
	if s.serveErr == nil {
		s.serveErr = make(chan error, 1)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", s.port, err)
	}
	s.listener = lis

	s.logger.Info("starting gRPC OTLP server", "port", s.port)

	go func() {
		if err := s.grpcServer.Serve(lis); err != nil {
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

// Shutdown gracefully stops the server, forcing a hard stop if ctx expires
// first.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("gracefully stopping gRPC server")

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-ctx.Done():
		s.logger.Warn("graceful shutdown timeout, forcing stop")
		s.grpcServer.Stop()
		return ctx.Err()
	case <-stopped:
		s.logger.Info("gRPC server stopped gracefully")
		return nil
	}
}
