// Package history records checklist executions in a per-project
// SQLite database so past validation runs can be reviewed.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hugo-lorenzo-mato/docgate/internal/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS executions (
	id            TEXT PRIMARY KEY,
	checklist     TEXT NOT NULL,
	mode          TEXT NOT NULL,
	total_items   INTEGER NOT NULL,
	passed_items  INTEGER NOT NULL,
	failed_items  INTEGER NOT NULL,
	na_items      INTEGER NOT NULL,
	pass_rate     REAL NOT NULL,
	executed_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_executions_checklist ON executions(checklist);
CREATE INDEX IF NOT EXISTS idx_executions_executed_at ON executions(executed_at);
`

// Entry is one recorded checklist execution.
type Entry struct {
	ID          string    `json:"id"`
	Checklist   string    `json:"checklist"`
	Mode        string    `json:"mode"`
	TotalItems  int       `json:"total_items"`
	PassedItems int       `json:"passed_items"`
	FailedItems int       `json:"failed_items"`
	NAItems     int       `json:"na_items"`
	PassRate    float64   `json:"pass_rate"`
	ExecutedAt  time.Time `json:"executed_at"`
}

// DB is the execution history database.
type DB struct {
	db  *sql.DB
	now func() time.Time
}

// Option configures the history database.
type Option func(*DB)

// WithClock overrides the clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(h *DB) {
		h.now = now
	}
}

// Open opens (creating if needed) the history database at dbPath.
func Open(dbPath string, opts ...Option) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, core.ErrStorage(core.CodeWriteFailed, "creating history directory").WithCause(err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, core.ErrStorage(core.CodeHistoryUnavailable, "opening history database").WithCause(err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, core.ErrStorage(core.CodeHistoryUnavailable, "initializing history schema").WithCause(err)
	}

	h := &DB{db: db, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Close releases the underlying database handle.
func (h *DB) Close() error {
	return h.db.Close()
}

// Record stores one execution result.
func (h *DB) Record(ctx context.Context, result *core.ExecutionResult, mode core.Mode) (*Entry, error) {
	entry := &Entry{
		ID:          uuid.NewString(),
		Checklist:   result.ChecklistName,
		Mode:        string(mode),
		TotalItems:  result.TotalItems,
		PassedItems: result.PassedItems,
		FailedItems: result.FailedItems,
		NAItems:     result.NAItems,
		PassRate:    result.PassRate(),
		ExecutedAt:  h.now().UTC(),
	}

	_, err := h.db.ExecContext(ctx, `
		INSERT INTO executions (id, checklist, mode, total_items, passed_items, failed_items, na_items, pass_rate, executed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Checklist, entry.Mode,
		entry.TotalItems, entry.PassedItems, entry.FailedItems, entry.NAItems,
		entry.PassRate, entry.ExecutedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, core.ErrStorage(core.CodeHistoryUnavailable, "recording execution").WithCause(err)
	}
	return entry, nil
}

// List returns the most recent executions, newest first.
func (h *DB) List(ctx context.Context, limit int) ([]Entry, error) {
	return h.query(ctx, `
		SELECT id, checklist, mode, total_items, passed_items, failed_items, na_items, pass_rate, executed_at
		FROM executions ORDER BY executed_at DESC LIMIT ?`, limit)
}

// ForChecklist returns the most recent executions of one checklist,
// newest first.
func (h *DB) ForChecklist(ctx context.Context, name string, limit int) ([]Entry, error) {
	return h.query(ctx, `
		SELECT id, checklist, mode, total_items, passed_items, failed_items, na_items, pass_rate, executed_at
		FROM executions WHERE checklist = ? ORDER BY executed_at DESC LIMIT ?`, name, limit)
}

func (h *DB) query(ctx context.Context, q string, args ...interface{}) ([]Entry, error) {
	rows, err := h.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, core.ErrStorage(core.CodeHistoryUnavailable, "querying history").WithCause(err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var executedAt string
		if err := rows.Scan(&e.ID, &e.Checklist, &e.Mode,
			&e.TotalItems, &e.PassedItems, &e.FailedItems, &e.NAItems,
			&e.PassRate, &executedAt); err != nil {
			return nil, core.ErrStorage(core.CodeHistoryUnavailable, "scanning history row").WithCause(err)
		}
		t, parseErr := time.Parse(time.RFC3339Nano, executedAt)
		if parseErr != nil {
			return nil, core.ErrState(core.CodeMetaCorrupted,
				fmt.Sprintf("invalid timestamp in history row %s", e.ID)).WithCause(parseErr)
		}
		e.ExecutedAt = t
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, core.ErrStorage(core.CodeHistoryUnavailable, "iterating history rows").WithCause(err)
	}
	return entries, nil
}
