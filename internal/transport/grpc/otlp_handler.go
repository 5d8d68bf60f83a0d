package grpc

import (
	"context"
	"log/slog"
	"strings"

	"google.golang.org/grpc"

	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"

	"glint/internal/converter"
	"glint/internal/storage"
)

// OTLPHandler implements OTLP TraceService: convert each export request to
// internal spans and persist them, reporting any rejections via
// PartialSuccess (spec §4.4).
type OTLPHandler struct {
	coltracepb.UnimplementedTraceServiceServer

	store  *storage.Store
	logger *slog.Logger
}

// NewOTLPHandler creates a new gRPC OTLP trace handler.
func NewOTLPHandler(store *storage.Store, logger *slog.Logger) *OTLPHandler {
	return &OTLPHandler{store: store, logger: logger}
}

// Export implements TraceService.Export (standard OTLP gRPC method).
func (h *OTLPHandler) Export(ctx context.Context, req *coltracepb.ExportTraceServiceRequest) (*coltracepb.ExportTraceServiceResponse, error) {
	spans := converter.ConvertResourceSpans(req)

	h.logger.Debug("received gRPC OTLP trace request",
		"resource_spans", len(req.ResourceSpans),
		"converted_spans", len(spans),
	)

	errs := h.store.InsertSpans(ctx, spans)
	for _, err := range errs {
		h.logger.Error("failed to insert span", "error", err)
	}

	resp := &coltracepb.ExportTraceServiceResponse{}
	if len(errs) > 0 {
		resp.PartialSuccess = &coltracepb.ExportTracePartialSuccess{
			RejectedSpans: int64(len(errs)),
			ErrorMessage:  joinErrors(errs),
		}
	}
	return resp, nil
}

// RegisterOTLPTraceService registers the trace handler with a gRPC server.
func RegisterOTLPTraceService(server *grpc.Server, handler coltracepb.TraceServiceServer) {
	coltracepb.RegisterTraceServiceServer(server, handler)
}

const maxJoinedErrors = 5

func joinErrors(errs []error) string {
	n := len(errs)
	if n > maxJoinedErrors {
		n = maxJoinedErrors
	}
	msgs := make([]string, n)
	for i := 0; i < n; i++ {
		msgs[i] = errs[i].Error()
	}
	joined := strings.Join(msgs, "; ")
	if len(errs) > maxJoinedErrors {
		joined += "; ..."
	}
	return joined
}
