package storage

import (
	"context"
	"database/sql"
	"fmt"

	"glint/internal/model"
)

// InsertLog inserts a single log row.
func (s *Store) InsertLog(ctx context.Context, log model.Log) error {
	attrsJSON, err := log.Attributes.ToJSON()
	if err != nil {
		return fmt.Errorf("encode log attributes: %w", err)
	}

	var severityText, traceID, spanID, serviceName sql.NullString
	if log.HasSeverityText {
		severityText = sql.NullString{String: log.SeverityText, Valid: true}
	}
	if log.HasTraceID {
		traceID = sql.NullString{String: log.TraceID, Valid: true}
	}
	if log.HasSpanID {
		spanID = sql.NullString{String: log.SpanID, Valid: true}
	}
	if log.HasServiceName {
		serviceName = sql.NullString{String: log.ServiceName, Valid: true}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.WithContext(ctx).Exec(
		`INSERT INTO logs (time_unix_nano, severity_level, severity_text, body, attributes, trace_id, span_id, service_name)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		log.TimeUnixNano, int32(log.Severity), severityText, log.Body, attrsJSON, traceID, spanID, serviceName,
	).Error
}

// InsertLogs inserts each log via the single-row path, continuing past
// per-record failures.
func (s *Store) InsertLogs(ctx context.Context, logs []model.Log) []error {
	var errs []error
	for _, log := range logs {
		if err := s.InsertLog(ctx, log); err != nil {
			errs = append(errs, fmt.Errorf("log at %d: %w", log.TimeUnixNano, err))
		}
	}
	return errs
}

// CountLogs returns the total number of log rows.
func (s *Store) CountLogs(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	err := s.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM logs`).Scan(&count).Error
	return count, err
}

type logRow struct {
	TimeUnixNano int64
	SeverityLevel int32
	SeverityText  sql.NullString
	Body          string
	Attributes    string
	TraceID       sql.NullString
	SpanID        sql.NullString
	ServiceName   sql.NullString
}

func (r logRow) toModel() (model.Log, error) {
	attrs, err := model.AttributesFromJSON(r.Attributes)
	if err != nil {
		return model.Log{}, fmt.Errorf("decode attributes: %w", err)
	}
	log := model.Log{
		TimeUnixNano: r.TimeUnixNano,
		Severity:     model.SeverityLevel(r.SeverityLevel),
		Body:         r.Body,
		Attributes:   attrs,
	}
	if r.SeverityText.Valid {
		log.SeverityText = r.SeverityText.String
		log.HasSeverityText = true
	}
	if r.TraceID.Valid {
		log.TraceID = r.TraceID.String
		log.HasTraceID = true
	}
	if r.SpanID.Valid {
		log.SpanID = r.SpanID.String
		log.HasSpanID = true
	}
	if r.ServiceName.Valid {
		log.ServiceName = r.ServiceName.String
		log.HasServiceName = true
	}
	return log, nil
}

// ListLogs returns up to limit log rows, newest-first by time_unix_nano,
// optionally filtered to a single service and/or severity level.
func (s *Store) ListLogs(ctx context.Context, service string, hasService bool, level model.SeverityLevel, hasLevel bool, limit int) ([]model.Log, error) {
	query := `SELECT time_unix_nano, severity_level, severity_text, body, attributes, trace_id, span_id, service_name FROM logs WHERE 1=1`
	var args []interface{}
	if hasService {
		query += ` AND service_name = ?`
		args = append(args, service)
	}
	if hasLevel {
		query += ` AND severity_level = ?`
		args = append(args, int32(level))
	}
	query += ` ORDER BY time_unix_nano DESC LIMIT ?`
	args = append(args, limit)

	s.mu.Lock()
	var rows []logRow
	err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	logs := make([]model.Log, 0, len(rows))
	for _, row := range rows {
		log, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("decode log row: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, nil
}
