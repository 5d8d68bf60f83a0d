package grpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
)

// LoggingInterceptor logs every unary RPC at Info (success) or Error
// (failure) with the method name and call duration.
func LoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		duration := time.Since(start)
		if err != nil {
			logger.Error("gRPC request failed", "method", info.FullMethod, "duration_ms", duration.Milliseconds(), "error", err)
		} else {
			logger.Info("gRPC request completed", "method", info.FullMethod, "duration_ms", duration.Milliseconds())
		}
		return resp, err
	}
}
