// Package storage implements glint's embedded SQL store: per-project
// database-file routing, idempotent schema init, and the insert/query
// operations backing the receivers and query API. Grounded on the
// connection-setup idiom of the reference Postgres opener, adapted to an
// embedded SQLite engine per spec §4.3.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store wraps a single *gorm.DB connection guarded by a mutex. All query
// construction against the telemetry tables uses parameterized raw SQL
// (db.Exec/.Raw(...).Scan) — GORM itself is used only as a connection/pool
// manager here, never for struct-tag auto-migration (spec §9).
type Store struct {
	db *gorm.DB
	mu *sync.Mutex
}

// Open opens (creating if missing) the SQLite database at path and runs
// schema init. path's parent directory must already exist; callers resolve
// it via ResolveDBPath before calling Open.
func Open(ctx context.Context, path string) (*Store, error) {
	return open(ctx, fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path))
}

var inMemoryCounter int64

// OpenInMemory opens a private in-memory database — for tests only (spec
// §4.3: "An in-memory variant is provided for tests only"). Each call gets
// its own uniquely-named database so concurrent tests never share state.
func OpenInMemory(ctx context.Context) (*Store, error) {
	n := atomic.AddInt64(&inMemoryCounter, 1)
	dsn := fmt.Sprintf("file:glint_test_%d?mode=memory&cache=shared", n)
	return open(ctx, dsn)
}

func open(ctx context.Context, dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	// SQLite allows only one writer at a time; the store's own mutex
	// already serializes access, so a single connection is sufficient and
	// avoids SQLITE_BUSY under concurrent readers.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	store := &Store{db: db, mu: &sync.Mutex{}}
	if err := initSchema(ctx, store); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

// Clone returns a shallow copy of the Store sharing both the underlying
// *gorm.DB connection and the mutex pointer — clones observe every write
// made through the original (spec §5 clone-shares-state requirement).
func (s *Store) Clone() *Store {
	return &Store{db: s.db, mu: s.mu}
}

// Close releases the underlying connection. Safe to call once per distinct
// connection; clones share one connection, so only the owner should close.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health pings the underlying connection.
func (s *Store) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Stats exposes the underlying connection pool statistics.
func (s *Store) Stats() sql.DBStats {
	sqlDB, _ := s.db.DB()
	if sqlDB == nil {
		return sql.DBStats{}
	}
	return sqlDB.Stats()
}
