package grpc

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"

	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"

	"glint/internal/converter"
	"glint/internal/storage"
)

// OTLPLogsHandler implements OTLP LogsService: convert each export request
// to internal log records and persist them (spec §4.4).
type OTLPLogsHandler struct {
	collogspb.UnimplementedLogsServiceServer

	store  *storage.Store
	logger *slog.Logger
}

// NewOTLPLogsHandler creates a new gRPC OTLP logs handler.
func NewOTLPLogsHandler(store *storage.Store, logger *slog.Logger) *OTLPLogsHandler {
	return &OTLPLogsHandler{store: store, logger: logger}
}

// Export implements LogsService.Export (standard OTLP gRPC method).
func (h *OTLPLogsHandler) Export(ctx context.Context, req *collogspb.ExportLogsServiceRequest) (*collogspb.ExportLogsServiceResponse, error) {
	logs := converter.ConvertResourceLogs(req)

	h.logger.Debug("received gRPC OTLP logs request",
		"resource_logs", len(req.ResourceLogs),
		"converted_logs", len(logs),
	)

	errs := h.store.InsertLogs(ctx, logs)
	for _, err := range errs {
		h.logger.Error("failed to insert log record", "error", err)
	}

	resp := &collogspb.ExportLogsServiceResponse{}
	if len(errs) > 0 {
		resp.PartialSuccess = &collogspb.ExportLogsPartialSuccess{
			RejectedLogRecords: int64(len(errs)),
			ErrorMessage:       joinErrors(errs),
		}
	}
	return resp, nil
}

// RegisterOTLPLogsService registers the logs handler with a gRPC server.
func RegisterOTLPLogsService(server *grpc.Server, handler collogspb.LogsServiceServer) {
	collogspb.RegisterLogsServiceServer(server, handler)
}
