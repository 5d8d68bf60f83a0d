package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"glint/internal/model"
)

type spanStatus struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

func statusToJSON(s model.Status) (string, error) {
	b, err := json.Marshal(spanStatus{Code: int(s.Code), Message: s.Message})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func statusFromJSON(text string) (model.Status, error) {
	var s spanStatus
	if text == "" {
		return model.Status{Code: model.StatusCodeUnset}, nil
	}
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return model.Status{}, err
	}
	return model.Status{Code: model.StatusCode(s.Code), Message: s.Message}, nil
}

// InsertSpan inserts a single span row. A primary-key collision on
// (span_id, trace_id) surfaces as an error for the caller to count as a
// rejected record (spec §4.3, §7).
func (s *Store) InsertSpan(ctx context.Context, span model.Span) error {
	attrsJSON, err := span.Attributes.ToJSON()
	if err != nil {
		return fmt.Errorf("encode span attributes: %w", err)
	}
	statusJSON, err := statusToJSON(span.Status)
	if err != nil {
		return fmt.Errorf("encode span status: %w", err)
	}

	var parentID, serviceName sql.NullString
	if span.HasParent {
		parentID = sql.NullString{String: span.ParentSpanID, Valid: true}
	}
	if span.HasServiceName {
		serviceName = sql.NullString{String: span.ServiceName, Valid: true}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.WithContext(ctx).Exec(
		`INSERT INTO spans (span_id, trace_id, parent_span_id, name, kind, start_time_unix_nano, end_time_unix_nano, attributes, status, service_name)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		span.SpanID, span.TraceID, parentID, span.Name, int32(span.Kind),
		span.StartTimeUnixNano, span.EndTimeUnixNano, attrsJSON, statusJSON, serviceName,
	).Error
}

// InsertSpans inserts each span via the single-row path, continuing past
// per-record failures (spec §4.3 batch variants, §7 partial-success).
// Returns one error per span that failed to insert, each naming the span's
// trace and span id.
func (s *Store) InsertSpans(ctx context.Context, spans []model.Span) []error {
	var errs []error
	for _, span := range spans {
		if err := s.InsertSpan(ctx, span); err != nil {
			errs = append(errs, fmt.Errorf("span %s/%s: %w", span.TraceID, span.SpanID, err))
		}
	}
	return errs
}

// CountSpans returns the total number of span rows.
func (s *Store) CountSpans(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	err := s.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM spans`).Scan(&count).Error
	return count, err
}

type spanRow struct {
	SpanID            string
	TraceID           string
	ParentSpanID      sql.NullString
	Name              string
	Kind              int32
	StartTimeUnixNano int64
	EndTimeUnixNano   int64
	Attributes        string
	Status            string
	ServiceName       sql.NullString
}

func (r spanRow) toModel() (model.Span, error) {
	attrs, err := model.AttributesFromJSON(r.Attributes)
	if err != nil {
		return model.Span{}, fmt.Errorf("decode attributes: %w", err)
	}
	status, err := statusFromJSON(r.Status)
	if err != nil {
		return model.Span{}, fmt.Errorf("decode status: %w", err)
	}
	span := model.Span{
		SpanID:            r.SpanID,
		TraceID:           r.TraceID,
		Name:              r.Name,
		Kind:              model.SpanKind(r.Kind),
		StartTimeUnixNano: r.StartTimeUnixNano,
		EndTimeUnixNano:   r.EndTimeUnixNano,
		Attributes:        attrs,
		Status:            status,
	}
	if r.ParentSpanID.Valid {
		span.ParentSpanID = r.ParentSpanID.String
		span.HasParent = true
	}
	if r.ServiceName.Valid {
		span.ServiceName = r.ServiceName.String
		span.HasServiceName = true
	}
	return span, nil
}
