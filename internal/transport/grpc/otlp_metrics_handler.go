package grpc

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"

	colmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"

	"glint/internal/converter"
	"glint/internal/storage"
)

// OTLPMetricsHandler implements OTLP MetricsService: convert each export
// request to internal metric data points and persist them (spec §4.4).
type OTLPMetricsHandler struct {
	colmetricspb.UnimplementedMetricsServiceServer

	store  *storage.Store
	logger *slog.Logger
}

// NewOTLPMetricsHandler creates a new gRPC OTLP metrics handler.
func NewOTLPMetricsHandler(store *storage.Store, logger *slog.Logger) *OTLPMetricsHandler {
	return &OTLPMetricsHandler{store: store, logger: logger}
}

// Export implements MetricsService.Export (standard OTLP gRPC method). Each
// converted row is one data point, so a failed row insert rejects exactly
// one data point.
func (h *OTLPMetricsHandler) Export(ctx context.Context, req *colmetricspb.ExportMetricsServiceRequest) (*colmetricspb.ExportMetricsServiceResponse, error) {
	metrics := converter.ConvertResourceMetrics(req)

	h.logger.Debug("received gRPC OTLP metrics request",
		"resource_metrics", len(req.ResourceMetrics),
		"converted_points", len(metrics),
	)

	errs := h.store.InsertMetrics(ctx, metrics)
	for _, err := range errs {
		h.logger.Error("failed to insert metric data point", "error", err)
	}

	resp := &colmetricspb.ExportMetricsServiceResponse{}
	if len(errs) > 0 {
		resp.PartialSuccess = &colmetricspb.ExportMetricsPartialSuccess{
			RejectedDataPoints: int64(len(errs)),
			ErrorMessage:       joinErrors(errs),
		}
	}
	return resp, nil
}

// RegisterOTLPMetricsService registers the metrics handler with a gRPC server.
func RegisterOTLPMetricsService(server *grpc.Server, handler colmetricspb.MetricsServiceServer) {
	colmetricspb.RegisterMetricsServiceServer(server, handler)
}
