package storage

import "context"

// schemaStatements are executed in order on every Open. Every statement is
// idempotent (`IF NOT EXISTS`), so running schema init N times on the same
// database is equivalent to running it once (spec §8 idempotence property),
// mirroring the batch-statement init_schema of the reference implementation.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS spans (
		span_id TEXT NOT NULL,
		trace_id TEXT NOT NULL,
		parent_span_id TEXT,
		name TEXT NOT NULL,
		kind INTEGER NOT NULL,
		start_time_unix_nano INTEGER NOT NULL,
		end_time_unix_nano INTEGER NOT NULL,
		attributes TEXT NOT NULL,
		status TEXT NOT NULL,
		service_name TEXT,
		PRIMARY KEY (span_id, trace_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_spans_trace_id ON spans (trace_id)`,
	`CREATE INDEX IF NOT EXISTS idx_spans_service_name ON spans (service_name)`,
	`CREATE INDEX IF NOT EXISTS idx_spans_start_time ON spans (start_time_unix_nano)`,

	`CREATE TABLE IF NOT EXISTS logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		time_unix_nano INTEGER NOT NULL,
		severity_level INTEGER NOT NULL,
		severity_text TEXT,
		body TEXT NOT NULL,
		attributes TEXT NOT NULL,
		trace_id TEXT,
		span_id TEXT,
		service_name TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_time ON logs (time_unix_nano)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_trace_id ON logs (trace_id)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_service_name ON logs (service_name)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_severity_level ON logs (severity_level)`,

	`CREATE TABLE IF NOT EXISTS metrics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		unit TEXT,
		metric_type INTEGER NOT NULL,
		temporality INTEGER NOT NULL,
		time_unix_nano INTEGER NOT NULL,
		start_time_unix_nano INTEGER,
		value DOUBLE NOT NULL,
		attributes TEXT NOT NULL,
		service_name TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_metrics_name ON metrics (name)`,
	`CREATE INDEX IF NOT EXISTS idx_metrics_time ON metrics (time_unix_nano)`,
	`CREATE INDEX IF NOT EXISTS idx_metrics_service_name ON metrics (service_name)`,
}

// initSchema runs every schema statement against the store's connection.
func initSchema(ctx context.Context, s *Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stmt := range schemaStatements {
		if err := s.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
