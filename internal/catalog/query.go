// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/seiza-catalog/pkg/types"
)

// LabelQuery filters stored labels. Zero values mean "no filter".
type LabelQuery struct {
	// Name matches labels whose name contains this substring.
	Name string

	// RA restricts right ascension when non-nil.
	RA *RAWindow

	// MaxResults limits the number of rows returned.
	MaxResults int
}

// RAWindow bounds right ascension in degrees, inclusive at both ends. When
// Min is greater than Max the window wraps through 0°, so {Min: 350, Max: 10}
// covers 350° to 360° and 0° to 10°.
type RAWindow struct {
	Min float64
	Max float64
}

func (w RAWindow) clause() (string, []any) {
	if w.Min <= w.Max {
		return `ra BETWEEN ? AND ?`, []any{w.Min, w.Max}
	}
	return `(ra >= ? OR ra <= ?)`, []any{w.Min, w.Max}
}

// RunRecord is a stored conversion run with its per-catalog outcomes.
type RunRecord struct {
	ID          string           `json:"id"`
	StartedAt   time.Time        `json:"started_at"`
	FinishedAt  time.Time        `json:"finished_at"`
	Encoding    string           `json:"encoding"`
	Converted   int              `json:"converted"`
	Failed      int              `json:"failed"`
	Conversions []ConversionInfo `json:"conversions"`
}

// ConversionInfo is the stored outcome of one catalog within a run.
type ConversionInfo struct {
	Kind    types.CatalogKind      `json:"kind"`
	Input   string                 `json:"input"`
	Output  string                 `json:"output"`
	Status  types.ConversionStatus `json:"status"`
	Records int                    `json:"records"`
	Error   string                 `json:"error,omitempty"`
}

// Labels returns stored labels matching q in catalog order.
func (s *Store) Labels(ctx context.Context, q LabelQuery) ([]types.Label, error) {
	var (
		where []string
		args  []any
	)
	if q.Name != "" {
		where = append(where, `name LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(q.Name)+"%")
	}
	if q.RA != nil {
		clause, bounds := q.RA.clause()
		where = append(where, clause)
		args = append(args, bounds...)
	}

	query := `SELECT name, ra, dec FROM labels`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY seq LIMIT ?`
	args = append(args, s.limit(q.MaxResults))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying labels: %w", err)
	}
	defer rows.Close()

	var out []types.Label
	for rows.Next() {
		var (
			l       types.Label
			ra, dec float64
		)
		if err := rows.Scan(&l.Name, &ra, &dec); err != nil {
			return nil, fmt.Errorf("scanning label: %w", err)
		}
		l.RA, l.Dec = types.Degrees(ra), types.Degrees(dec)
		out = append(out, l)
	}
	return out, rows.Err()
}

// Lines returns up to maxResults stored line segments in catalog order.
func (s *Store) Lines(ctx context.Context, maxResults int) ([]types.LineSegment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ra1, dec1, ra2, dec2 FROM line_segments ORDER BY seq LIMIT ?`, s.limit(maxResults))
	if err != nil {
		return nil, fmt.Errorf("querying line segments: %w", err)
	}
	defer rows.Close()

	var out []types.LineSegment
	for rows.Next() {
		var v [4]float64
		if err := rows.Scan(&v[0], &v[1], &v[2], &v[3]); err != nil {
			return nil, fmt.Errorf("scanning line segment: %w", err)
		}
		out = append(out, types.LineSegment{
			RA1: types.Degrees(v[0]), Dec1: types.Degrees(v[1]),
			RA2: types.Degrees(v[2]), Dec2: types.Degrees(v[3]),
		})
	}
	return out, rows.Err()
}

// Counts returns the number of stored line segments and labels.
func (s *Store) Counts(ctx context.Context) (lines, labels int, err error) {
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM line_segments`).Scan(&lines); err != nil {
		return 0, 0, fmt.Errorf("counting line segments: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM labels`).Scan(&labels); err != nil {
		return 0, 0, fmt.Errorf("counting labels: %w", err)
	}
	return lines, labels, nil
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(ctx context.Context, maxResults int) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, encoding, converted, failed
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, s.limit(maxResults))
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}

	var out []RunRecord
	for rows.Next() {
		var (
			r                 RunRecord
			started, finished string
		)
		if err := rows.Scan(&r.ID, &started, &finished, &r.Encoding, &r.Converted, &r.Failed); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.StartedAt, err = parseTime(started); err == nil {
			r.FinishedAt, err = parseTime(finished)
		}
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("run %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range out {
		conv, err := s.conversions(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Conversions = conv
	}
	return out, nil
}

func (s *Store) conversions(ctx context.Context, runID string) ([]ConversionInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, input, output, status, records, COALESCE(error, '')
		 FROM conversions WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying conversions for %s: %w", runID, err)
	}
	defer rows.Close()

	var out []ConversionInfo
	for rows.Next() {
		var c ConversionInfo
		var kind, status string
		if err := rows.Scan(&kind, &c.Input, &c.Output, &status, &c.Records, &c.Error); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		c.Kind = types.CatalogKind(kind)
		c.Status = types.ConversionStatus(status)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) limit(n int) int {
	if n <= 0 {
		return s.maxResults
	}
	return n
}

// escapeLike escapes LIKE wildcards so name filters match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
