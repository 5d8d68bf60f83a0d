package storage

import (
	"context"
	"fmt"

	"glint/internal/model"
)

// GetTraceByID selects every span for traceID ordered by ascending start
// time and materializes a Trace. Returns ErrNotFound if no spans match
// (spec §4.3, §8 invariant 4).
func (s *Store) GetTraceByID(ctx context.Context, traceID string) (model.Trace, error) {
	s.mu.Lock()
	var rows []spanRow
	err := s.db.WithContext(ctx).Raw(
		`SELECT span_id, trace_id, parent_span_id, name, kind, start_time_unix_nano, end_time_unix_nano, attributes, status, service_name
		 FROM spans WHERE trace_id = ? ORDER BY start_time_unix_nano ASC`,
		traceID,
	).Scan(&rows).Error
	s.mu.Unlock()
	if err != nil {
		return model.Trace{}, fmt.Errorf("query spans for trace %s: %w", traceID, err)
	}
	if len(rows) == 0 {
		return model.Trace{}, ErrNotFound
	}

	spans := make([]model.Span, 0, len(rows))
	for _, row := range rows {
		span, err := row.toModel()
		if err != nil {
			return model.Trace{}, fmt.Errorf("decode span row: %w", err)
		}
		spans = append(spans, span)
	}
	return model.NewTrace(traceID, spans), nil
}

// ListTraces returns up to limit traces, most-recent-first by start time,
// optionally filtered to a single service. Traces whose hydration fails are
// silently skipped (spec §4.3).
func (s *Store) ListTraces(ctx context.Context, service string, hasService bool, limit int) ([]model.Trace, error) {
	var traceIDs []string

	s.mu.Lock()
	var err error
	if hasService {
		err = s.db.WithContext(ctx).Raw(
			`SELECT trace_id FROM spans WHERE service_name = ?
			 GROUP BY trace_id ORDER BY MAX(start_time_unix_nano) DESC LIMIT ?`,
			service, limit,
		).Scan(&traceIDs).Error
	} else {
		err = s.db.WithContext(ctx).Raw(
			`SELECT trace_id FROM spans
			 GROUP BY trace_id ORDER BY MAX(start_time_unix_nano) DESC LIMIT ?`,
			limit,
		).Scan(&traceIDs).Error
	}
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("list trace ids: %w", err)
	}

	traces := make([]model.Trace, 0, len(traceIDs))
	for _, id := range traceIDs {
		trace, err := s.GetTraceByID(ctx, id)
		if err != nil {
			continue
		}
		traces = append(traces, trace)
	}
	return traces, nil
}
