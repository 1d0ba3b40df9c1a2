// Package sqlite provides a SQLite-backed implementation of
// runlog.Repository. It usually shares the report store's handle.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jcmexdev/pizza-sales/internal/runlog"
)

// schema is append-only: each row is an immutable event in a run's
// lifecycle.
const schema = `
CREATE TABLE IF NOT EXISTS report_runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id      TEXT    NOT NULL,
    status      TEXT    NOT NULL,
    report      TEXT    NOT NULL DEFAULT '',
    row_count   INTEGER NOT NULL DEFAULT 0,
    error       TEXT,
    trace_id    TEXT    NOT NULL DEFAULT '',
    span_id     TEXT    NOT NULL DEFAULT '',
    elapsed_ns  INTEGER NOT NULL DEFAULT 0,
    updated_at  TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_report_runs_run_id ON report_runs(run_id, updated_at);
CREATE INDEX IF NOT EXISTS idx_report_runs_trace_id ON report_runs(trace_id);
`

var _ runlog.Repository = (*Repository)(nil)

type Repository struct {
	db *sql.DB
}

// New applies the schema on db and returns a repository using it. The
// caller keeps ownership of db.
func New(db *sql.DB) (*Repository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlite: apply run log schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// Save inserts a new entry. It is safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *runlog.Entry) error {
	const q = `
		INSERT INTO report_runs
			(run_id, status, report, row_count, error, trace_id, span_id, elapsed_ns, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.RunID,
		string(entry.Status),
		entry.Report,
		entry.Rows,
		nullableString(entry.Error),
		entry.TraceID,
		entry.SpanID,
		entry.Elapsed.Nanoseconds(),
		formatTime(entry.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save run log for %q: %w", entry.RunID, err)
	}
	return nil
}

// List returns every entry of a run in insertion order.
func (r *Repository) List(ctx context.Context, runID string) ([]runlog.Entry, error) {
	const q = `
		SELECT run_id, status, report, row_count, COALESCE(error, ''),
		       trace_id, span_id, elapsed_ns, updated_at
		FROM   report_runs
		WHERE  run_id = ?
		ORDER  BY id`

	rows, err := r.db.QueryContext(ctx, q, runID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list run %q: %w", runID, err)
	}
	defer rows.Close()

	var out []runlog.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: list run %q: %w", runID, err)
		}
		out = append(out, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list run %q: %w", runID, err)
	}
	return out, nil
}

// LatestRunID returns the id of the most recently started run, or
// runlog.ErrNoRuns when the log is empty.
func (r *Repository) LatestRunID(ctx context.Context) (string, error) {
	const q = `SELECT run_id FROM report_runs ORDER BY id DESC LIMIT 1`

	var runID string
	err := r.db.QueryRowContext(ctx, q).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", runlog.ErrNoRuns
	}
	if err != nil {
		return "", fmt.Errorf("sqlite: latest run: %w", err)
	}
	return runID, nil
}

// GetLatest returns the most recent entry for a run.
func (r *Repository) GetLatest(ctx context.Context, runID string) (*runlog.Entry, error) {
	const q = `
		SELECT run_id, status, report, row_count, COALESCE(error, ''),
		       trace_id, span_id, elapsed_ns, updated_at
		FROM   report_runs
		WHERE  run_id = ?
		ORDER  BY updated_at DESC, id DESC
		LIMIT  1`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, q, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlite: run %q not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get latest for %q: %w", runID, err)
	}
	return entry, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*runlog.Entry, error) {
	var entry runlog.Entry
	var elapsed int64
	var updatedAt string
	err := row.Scan(
		&entry.RunID,
		&entry.Status,
		&entry.Report,
		&entry.Rows,
		&entry.Error,
		&entry.TraceID,
		&entry.SpanID,
		&elapsed,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Elapsed = time.Duration(elapsed)
	if entry.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &entry, nil
}

// nullableString stores NULL instead of empty TEXT for rows without an
// error.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
