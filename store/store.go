// Package store persists scan summaries to SQLite.
//
// Each scan becomes one row in the runs table plus one row per distinct
// type value in the run_types table, all written in a single transaction.
// The database file is created and migrated on Open, so repeated runs
// append to the same history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/adrianbenavides/word-counter/scan"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	input      TEXT NOT NULL,
	workers    INTEGER NOT NULL,
	file_size  INTEGER NOT NULL,
	bytes_read INTEGER NOT NULL,
	lines      INTEGER NOT NULL,
	malformed  INTEGER NOT NULL,
	missing    INTEGER NOT NULL,
	elapsed_ns INTEGER NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS run_types (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	type       TEXT NOT NULL,
	count      INTEGER NOT NULL,
	size_bytes INTEGER NOT NULL,
	PRIMARY KEY (run_id, type)
);
`

// Store is an open scan history database.
type Store struct {
	db *sql.DB
}

// Run is one persisted scan summary.
type Run struct {
	ID        string
	Input     string
	Workers   int
	FileSize  int64
	BytesRead int64
	Lines     uint64
	Malformed uint64
	Missing   uint64
	Elapsed   time.Duration
	CreatedAt time.Time
}

// TypeRow is one persisted per-type tally.
type TypeRow struct {
	Type  string
	Count uint64
	Bytes uint64
}

// Open opens or creates the SQLite database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()

		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun persists one scan summary and its per-type tallies in a single
// transaction. It returns the generated run ID.
func (s *Store) SaveRun(ctx context.Context, input string, sum *scan.Summary) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	res := sum.Result

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, input, workers, file_size, bytes_read, lines, malformed, missing, elapsed_ns, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, input, sum.Workers, sum.FileSize, sum.BytesRead,
		int64(res.Lines()), int64(res.Malformed()), int64(res.Missing()),
		sum.Elapsed.Nanoseconds(), now)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	ins, err := tx.PrepareContext(ctx,
		`INSERT INTO run_types (run_id, type, count, size_bytes) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare type insert: %w", err)
	}
	defer ins.Close()

	for _, row := range res.Sorted() {
		if _, err := ins.ExecContext(ctx, id, row.Name, int64(row.Count), int64(row.Bytes)); err != nil {
			return "", fmt.Errorf("insert type %q: %w", row.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}

	return id, nil
}

// Run fetches one persisted run by ID.
func (s *Store) Run(ctx context.Context, id string) (*Run, error) {
	var (
		r       Run
		elapsed int64
		lines   int64
		malf    int64
		miss    int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, input, workers, file_size, bytes_read, lines, malformed, missing, elapsed_ns, created_at
		 FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &r.Input, &r.Workers, &r.FileSize, &r.BytesRead,
			&lines, &malf, &miss, &elapsed, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("select run %s: %w", id, err)
	}

	r.Lines = uint64(lines)
	r.Malformed = uint64(malf)
	r.Missing = uint64(miss)
	r.Elapsed = time.Duration(elapsed)

	return &r, nil
}

// RunTypes fetches the per-type tallies of one run, ordered by count
// descending, ties broken by type name.
func (s *Store) RunTypes(ctx context.Context, id string) ([]TypeRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type, count, size_bytes FROM run_types
		 WHERE run_id = ? ORDER BY count DESC, type ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("select run types: %w", err)
	}
	defer rows.Close()

	var out []TypeRow
	for rows.Next() {
		var (
			row   TypeRow
			count int64
			size  int64
		)
		if err := rows.Scan(&row.Type, &count, &size); err != nil {
			return nil, fmt.Errorf("scan type row: %w", err)
		}
		row.Count = uint64(count)
		row.Bytes = uint64(size)
		out = append(out, row)
	}

	return out, rows.Err()
}

// ListRuns returns all persisted runs, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, workers, file_size, bytes_read, lines, malformed, missing, elapsed_ns, created_at
		 FROM runs ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r       Run
			elapsed int64
			lines   int64
			malf    int64
			miss    int64
		)
		err := rows.Scan(&r.ID, &r.Input, &r.Workers, &r.FileSize, &r.BytesRead,
			&lines, &malf, &miss, &elapsed, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		r.Lines = uint64(lines)
		r.Malformed = uint64(malf)
		r.Missing = uint64(miss)
		r.Elapsed = time.Duration(elapsed)
		out = append(out, r)
	}

	return out, rows.Err()
}
