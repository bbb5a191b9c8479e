// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists conversion runs and the converted constellation
// records in a local SQLite database so they can be queried without
// re-reading the JSON output.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/seiza-catalog/internal/convert"
	"github.com/pdiddy/seiza-catalog/pkg/types"
)

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the catalog database at cfg.Path and creates the
// schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = types.DefaultStorePath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			encoding TEXT,
			converted INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS conversions (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			status TEXT NOT NULL,
			records INTEGER NOT NULL,
			error TEXT,
			PRIMARY KEY (run_id, kind)
		)`,
		`CREATE TABLE IF NOT EXISTS line_segments (
			seq INTEGER PRIMARY KEY,
			ra1 REAL NOT NULL,
			dec1 REAL NOT NULL,
			ra2 REAL NOT NULL,
			dec2 REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS labels (
			seq INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			ra REAL NOT NULL,
			dec REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_labels_ra ON labels(ra)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun stores a conversion run and its per-catalog outcomes. The
// records of each catalog that converted replace the stored ones; a failed
// catalog keeps whatever was stored by an earlier run.
func (s *Store) RecordRun(ctx context.Context, sum convert.Summary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, encoding, converted, failed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sum.RunID, formatTime(sum.StartedAt), formatTime(sum.FinishedAt),
		sum.Encoding, sum.Converted, sum.Failed,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, r := range sum.Results {
		var errText sql.NullString
		if r.Err != nil {
			errText = sql.NullString{String: r.Err.Error(), Valid: true}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO conversions (run_id, kind, input, output, status, records, error)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sum.RunID, string(r.Job.Kind), r.Job.Input, r.Job.Output,
			string(r.Status), r.Records, errText,
		)
		if err != nil {
			return fmt.Errorf("inserting %s conversion: %w", r.Job.Kind, err)
		}

		if r.Status != types.ConversionDone {
			continue
		}
		switch r.Job.Kind {
		case types.KindLines:
			err = replaceLines(ctx, tx, r.Lines)
		case types.KindLabels:
			err = replaceLabels(ctx, tx, r.Labels)
		}
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func replaceLines(ctx context.Context, tx *sql.Tx, lines []types.LineSegment) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM line_segments`); err != nil {
		return fmt.Errorf("clearing line segments: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO line_segments (seq, ra1, dec1, ra2, dec2) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, l := range lines {
		if _, err := stmt.ExecContext(ctx, i, float64(l.RA1), float64(l.Dec1), float64(l.RA2), float64(l.Dec2)); err != nil {
			return fmt.Errorf("inserting line segment %d: %w", i, err)
		}
	}
	return nil
}

func replaceLabels(ctx context.Context, tx *sql.Tx, labels []types.Label) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM labels`); err != nil {
		return fmt.Errorf("clearing labels: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO labels (seq, name, ra, dec) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, l := range labels {
		if _, err := stmt.ExecContext(ctx, i, l.Name, float64(l.RA), float64(l.Dec)); err != nil {
			return fmt.Errorf("inserting label %q: %w", l.Name, err)
		}
	}
	return nil
}

// timeLayout is fixed width so stored timestamps sort lexically in time
// order. RFC3339Nano trims trailing zeros and would not.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
