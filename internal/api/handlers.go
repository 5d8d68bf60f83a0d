// Package api implements glint's REST/JSON query API: health, trace
// listing/lookup, log listing, service discovery, and a static-asset
// fallback for a co-located browser UI (spec §4.5).
package api

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"glint/internal/model"
	"glint/internal/storage"
)

const (
	defaultLimit   = 100
	maxLimit       = 1000
	serviceListCap = 1000
)

// Handlers backs every query-API route with a storage handle.
type Handlers struct {
	store *storage.Store
}

// NewHandlers builds the query API's route handlers.
func NewHandlers(store *storage.Store) *Handlers {
	return &Handlers{store: store}
}

// traceInfo is the summary shape listed by GET /api/traces.
type traceInfo struct {
	TraceID     string `json:"trace_id"`
	ServiceName string `json:"service_name,omitempty"`
	DurationMs  float64 `json:"duration_ms"`
	SpanCount   int     `json:"span_count"`
	HasErrors   bool    `json:"has_errors"`
	StartTime   int64   `json:"start_time"`
}

func toTraceInfo(t model.Trace) traceInfo {
	return traceInfo{
		TraceID:     t.TraceID,
		ServiceName: t.ServiceName(),
		DurationMs:  t.DurationMillis(),
		SpanCount:   t.SpanCount(),
		HasErrors:   t.HasErrors(),
		StartTime:   t.StartTime(),
	}
}

// Health reports service liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "glint-api"})
}

// ListTraces implements GET /api/traces: storage-level service filter and
// limit, then an in-memory duration-range filter, then an offset skip, with
// total counted after the offset (spec §4.5's exact filter pipeline order).
func (h *Handlers) ListTraces(c *gin.Context) {
	service, hasService := c.GetQuery("service")
	limit := clampLimit(queryInt(c, "limit", defaultLimit))
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	traces, err := h.store.ListTraces(c.Request.Context(), service, hasService, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	infos := make([]traceInfo, 0, len(traces))
	for _, t := range traces {
		infos = append(infos, toTraceInfo(t))
	}

	if minStr, ok := c.GetQuery("min_duration"); ok {
		if min, err := strconv.ParseFloat(minStr, 64); err == nil {
			infos = filterTraceInfo(infos, func(ti traceInfo) bool { return ti.DurationMs >= min })
		}
	}
	if maxStr, ok := c.GetQuery("max_duration"); ok {
		if max, err := strconv.ParseFloat(maxStr, 64); err == nil {
			infos = filterTraceInfo(infos, func(ti traceInfo) bool { return ti.DurationMs <= max })
		}
	}

	if offset > len(infos) {
		offset = len(infos)
	}
	infos = infos[offset:]

	c.JSON(http.StatusOK, gin.H{"traces": infos, "total": len(infos)})
}

func filterTraceInfo(infos []traceInfo, keep func(traceInfo) bool) []traceInfo {
	out := infos[:0]
	for _, ti := range infos {
		if keep(ti) {
			out = append(out, ti)
		}
	}
	return out
}

// traceJSON is the full shape returned by GET /api/traces/{id}.
type traceJSON struct {
	TraceID     string       `json:"trace_id"`
	Spans       []model.Span `json:"spans"`
	ServiceName string       `json:"service_name,omitempty"`
}

// GetTrace implements GET /api/traces/{id}.
func (h *Handlers) GetTrace(c *gin.Context) {
	id := c.Param("id")
	trace, err := h.store.GetTraceByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "trace not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, traceJSON{TraceID: trace.TraceID, Spans: trace.Spans, ServiceName: trace.ServiceName()})
}

// ListLogs implements GET /api/logs.
func (h *Handlers) ListLogs(c *gin.Context) {
	service, hasService := c.GetQuery("service")
	limit := clampLimit(queryInt(c, "limit", defaultLimit))

	var level model.SeverityLevel
	hasLevel := false
	if levelStr, ok := c.GetQuery("level"); ok {
		if n, err := strconv.Atoi(levelStr); err == nil {
			level = model.SeverityLevel(n)
			hasLevel = true
		}
	}

	logs, err := h.store.ListLogs(c.Request.Context(), service, hasService, level, hasLevel, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// ListServices implements GET /api/services: unique, sorted, non-empty
// service names drawn from up to the most recent 1000 traces.
func (h *Handlers) ListServices(c *gin.Context) {
	traces, err := h.store.ListTraces(c.Request.Context(), "", false, serviceListCap)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	seen := make(map[string]struct{})
	for _, t := range traces {
		if name := t.ServiceName(); name != "" {
			seen[name] = struct{}{}
		}
	}

	services := make([]string, 0, len(seen))
	for name := range seen {
		services = append(services, name)
	}
	sort.Strings(services)
	c.JSON(http.StatusOK, services)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
