// Package http hosts glint's HTTP/1.1 OTLP receiver: a single binary-POST
// /v1/traces endpoint for SDKs and collectors that speak OTLP/HTTP instead
// of gRPC (spec §4.5).
package http

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"google.golang.org/protobuf/proto"

	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"

	"glint/internal/converter"
	"glint/internal/storage"
)

// OTLPHandler decodes binary-protobuf OTLP export requests posted over
// plain HTTP and persists them through the same converter/store path as
// the gRPC receiver.
type OTLPHandler struct {
	store  *storage.Store
	logger *slog.Logger
}

// NewOTLPHandler creates an OTLP/HTTP trace receiver.
func NewOTLPHandler(store *storage.Store, logger *slog.Logger) *OTLPHandler {
	return &OTLPHandler{store: store, logger: logger}
}

// Register mounts the receiver's routes on engine.
func (h *OTLPHandler) Register(engine *gin.Engine) {
	engine.POST("/v1/traces", h.exportTraces)
}

// exportTraces decodes the posted ExportTraceServiceRequest and inserts its
// spans. A decode failure is a bare 400; any insertion rejection is a bare
// 500 carrying the joined error string; otherwise 200 with no body (spec
// §4.4-§4.5).
func (h *OTLPHandler) exportTraces(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req coltracepb.ExportTraceServiceRequest
	if err := proto.Unmarshal(body, &req); err != nil {
		h.logger.Error("failed to decode OTLP/HTTP trace payload", "error", err)
		c.Status(http.StatusBadRequest)
		return
	}

	spans := converter.ConvertResourceSpans(&req)
	h.logger.Debug("received OTLP/HTTP trace request",
		"resource_spans", len(req.ResourceSpans),
		"converted_spans", len(spans),
	)

	errs := h.store.InsertSpans(c.Request.Context(), spans)
	for _, err := range errs {
		h.logger.Error("failed to insert span", "error", err)
	}

	if len(errs) > 0 {
		c.String(http.StatusInternalServerError, joinErrors(errs))
		return
	}
	c.Status(http.StatusOK)
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
