package storage

import (
	"context"
	"database/sql"
	"fmt"

	"glint/internal/model"
)

// InsertMetric inserts a single metric data-point row.
func (s *Store) InsertMetric(ctx context.Context, m model.Metric) error {
	attrsJSON, err := m.Point.Attributes.ToJSON()
	if err != nil {
		return fmt.Errorf("encode metric attributes: %w", err)
	}

	var description, unit, serviceName sql.NullString
	var startTime sql.NullInt64
	if m.HasDescription {
		description = sql.NullString{String: m.Description, Valid: true}
	}
	if m.HasUnit {
		unit = sql.NullString{String: m.Unit, Valid: true}
	}
	if m.HasServiceName {
		serviceName = sql.NullString{String: m.ServiceName, Valid: true}
	}
	if m.Point.HasStartTime {
		startTime = sql.NullInt64{Int64: m.Point.StartTimeUnixNano, Valid: true}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.WithContext(ctx).Exec(
		`INSERT INTO metrics (name, description, unit, metric_type, temporality, time_unix_nano, start_time_unix_nano, value, attributes, service_name)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Name, description, unit, int32(m.Type), int32(m.Temporality),
		m.Point.TimeUnixNano, startTime, m.Point.Value, attrsJSON, serviceName,
	).Error
}

// InsertMetrics inserts each metric row via the single-row path (spec
// §4.3: "one row per data point for metrics"), continuing past per-record
// failures.
func (s *Store) InsertMetrics(ctx context.Context, metrics []model.Metric) []error {
	var errs []error
	for _, m := range metrics {
		if err := s.InsertMetric(ctx, m); err != nil {
			errs = append(errs, fmt.Errorf("metric %s: %w", m.Name, err))
		}
	}
	return errs
}

// CountMetrics returns the total number of metric rows.
func (s *Store) CountMetrics(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	err := s.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM metrics`).Scan(&count).Error
	return count, err
}
