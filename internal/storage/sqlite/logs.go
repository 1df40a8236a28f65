// ABOUTME: Audit log storage operations for SQLite
// ABOUTME: Append-only inserts and a newest-first read path
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/harper/actionbrief/internal/logging"
	"github.com/harper/actionbrief/internal/models"
)

// DefaultRecentLimit is the number of rows shown on the admin page
const DefaultRecentLimit = 50

// LogStore handles audit log persistence
type LogStore struct {
	db     *DB
	logger logging.Logger
}

// NewLogStore creates a new LogStore
func NewLogStore(db *DB, logger logging.Logger) *LogStore {
	if logger == nil {
		logger = logging.Nop()
	}
	return &LogStore{db: db, logger: logger}
}

// Append inserts one row and returns it with its assigned id
func (s *LogStore) Append(ctx context.Context, level models.LogLevel, message string) (*models.LogEntry, error) {
	entry, err := models.NewLogEntry(level, message)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO logs (timestamp, level, message) VALUES (?, ?, ?)`,
		entry.Timestamp.Format(time.RFC3339Nano), string(entry.Level), entry.Message)
	if err != nil {
		return nil, fmt.Errorf("insert log row: %w", err)
	}

	entry.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read log row id: %w", err)
	}
	return entry, nil
}

// Record appends a row and swallows failures after reporting them to the
// process logger. Audit writes never fail the caller's request.
func (s *LogStore) Record(ctx context.Context, level models.LogLevel, message string) {
	if _, err := s.Append(ctx, level, message); err != nil {
		s.logger.Errorf("Database error: %v", err)
	}
}

// Recent returns up to limit rows, newest first
func (s *LogStore) Recent(ctx context.Context, limit int) ([]models.LogEntry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, level, message FROM logs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []models.LogEntry
	for rows.Next() {
		var (
			entry models.LogEntry
			ts    string
			level string
		)
		if err := rows.Scan(&entry.ID, &ts, &level, &entry.Message); err != nil {
			return nil, err
		}
		entry.Level = models.LogLevel(level)
		if entry.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("log row %d has bad timestamp %q: %w", entry.ID, ts, err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Count returns the total number of stored rows
func (s *LogStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM logs`).Scan(&n)
	return n, err
}
