package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS audit_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	type TEXT NOT NULL,
	request_id TEXT NOT NULL DEFAULT '',
	case_id TEXT NOT NULL DEFAULT '',
	reviewer TEXT NOT NULL DEFAULT '',
	correlation_id TEXT NOT NULL DEFAULT '',
	reason TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_events_request ON audit_events(request_id)`,
}

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
}

// SQLiteStore persists audit events in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
	mu     sync.Mutex
	closed bool
}

// OpenSQLite opens (creating if needed) the audit database at path.
// Use ":memory:" for a throwaway store.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range pragmas {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configure audit db: %w", err)
		}
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate audit db: %w", err)
		}
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

// Record inserts event. Failures are logged, never returned.
func (s *SQLiteStore) Record(ctx context.Context, event Event) {
	if err := s.Insert(ctx, event); err != nil && s.logger != nil {
		s.logger.Warn("audit insert failed", "type", event.Type, "error", err)
	}
}

// Insert stores event.
func (s *SQLiteStore) Insert(ctx context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("audit store is closed")
	}
	at := event.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_events (type, request_id, case_id, reviewer, correlation_id, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.Type, event.RequestID, event.CaseID, event.Reviewer, event.CorrelationID, event.Reason, at.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByRequest returns events recorded for requestID, oldest first.
func (s *SQLiteStore) ListByRequest(ctx context.Context, requestID string) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, fmt.Errorf("audit store is closed")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT type, request_id, case_id, reviewer, correlation_id, reason, created_at
		 FROM audit_events WHERE request_id = ? ORDER BY id`, requestID)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		var createdAt int64
		if err := rows.Scan(&event.Type, &event.RequestID, &event.CaseID, &event.Reviewer, &event.CorrelationID, &event.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.At = time.UnixMilli(createdAt)
		events = append(events, event)
	}
	return events, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
