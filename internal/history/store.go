// Package history records import runs and their per-line outcomes in a
// local SQLite database so past runs can be reviewed.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/vmunix/arrimport/internal/importer"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP,
	mode        TEXT NOT NULL,
	input_file  TEXT NOT NULL,
	processed   INTEGER NOT NULL DEFAULT 0,
	added       INTEGER NOT NULL DEFAULT 0,
	would_add   INTEGER NOT NULL DEFAULT 0,
	duplicates  INTEGER NOT NULL DEFAULT 0,
	misses      INTEGER NOT NULL DEFAULT 0,
	skipped     INTEGER NOT NULL DEFAULT 0,
	errors      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_lines (
	run_id      TEXT NOT NULL REFERENCES runs(id),
	line        INTEGER NOT NULL,
	term        TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	tmdb_id     INTEGER,
	title       TEXT,
	year        INTEGER,
	detail      TEXT,
	recorded_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_run_lines_run ON run_lines(run_id);
`

// Store provides access to run-history data.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run is one import run.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt *time.Time
	Mode       string // "live" or "dry-run"
	InputFile  string
	Stats      importer.Stats
}

// StartRun creates a run row and returns its ID.
func (s *Store) StartRun(ctx context.Context, mode, inputFile string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, mode, input_file) VALUES (?, ?, ?, ?)`,
		id, time.Now().UTC(), mode, inputFile)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// FinishRun stamps the run's end time and final counters.
func (s *Store) FinishRun(ctx context.Context, id string, stats importer.Stats) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, processed = ?, added = ?, would_add = ?,
		        duplicates = ?, misses = ?, skipped = ?, errors = ?
		 WHERE id = ?`,
		time.Now().UTC(), stats.Processed, stats.Added, stats.WouldAdd,
		stats.Duplicates, stats.Misses, stats.Skipped, stats.Errors, id)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// Recorder returns an importer.Recorder bound to a run.
func (s *Store) Recorder(runID string) *RunRecorder {
	return &RunRecorder{store: s, runID: runID}
}

// RunRecorder writes line outcomes for one run.
type RunRecorder struct {
	store *Store
	runID string
}

// RecordLine implements importer.Recorder.
func (r *RunRecorder) RecordLine(ctx context.Context, rec importer.LineRecord) error {
	_, err := r.store.db.ExecContext(ctx,
		`INSERT INTO run_lines (run_id, line, term, outcome, tmdb_id, title, year, detail, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.runID, rec.Line, rec.Term, string(rec.Outcome), rec.TMDBID, rec.Title, rec.Year, rec.Detail, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert line record: %w", err)
	}
	return nil
}

// Runs lists the most recent runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, mode, input_file,
		        processed, added, would_add, duplicates, misses, skipped, errors
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var finished sql.NullTime
		if err := rows.Scan(&r.ID, &r.StartedAt, &finished, &r.Mode, &r.InputFile,
			&r.Stats.Processed, &r.Stats.Added, &r.Stats.WouldAdd,
			&r.Stats.Duplicates, &r.Stats.Misses, &r.Stats.Skipped, &r.Stats.Errors); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Lines lists a run's recorded line outcomes in input order.
func (s *Store) Lines(ctx context.Context, runID string) ([]importer.LineRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT line, term, outcome, tmdb_id, title, year, detail
		 FROM run_lines WHERE run_id = ? ORDER BY line`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run lines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recs []importer.LineRecord
	for rows.Next() {
		var rec importer.LineRecord
		var outcome string
		if err := rows.Scan(&rec.Line, &rec.Term, &outcome, &rec.TMDBID, &rec.Title, &rec.Year, &rec.Detail); err != nil {
			return nil, fmt.Errorf("scan line record: %w", err)
		}
		rec.Outcome = importer.Outcome(outcome)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
