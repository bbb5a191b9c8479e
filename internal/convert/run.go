// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/text/encoding"

	"github.com/pdiddy/seiza-catalog/pkg/types"
)

// ErrEmptyCatalog is returned for a source file with no rows. The existing
// JSON output is left in place.
var ErrEmptyCatalog = errors.New("catalog has no rows")

// Job is one catalog conversion: a source CSV and its JSON destination.
type Job struct {
	Kind   types.CatalogKind
	Input  string
	Output string
}

// Jobs returns the line and label jobs described by cfg, in that order.
func Jobs(cfg types.ConversionConfig) []Job {
	return []Job{
		{
			Kind:   types.KindLines,
			Input:  filepath.Join(cfg.InputDir, cfg.LinesInput),
			Output: filepath.Join(cfg.OutputDir, cfg.LinesOutput),
		},
		{
			Kind:   types.KindLabels,
			Input:  filepath.Join(cfg.InputDir, cfg.LabelsInput),
			Output: filepath.Join(cfg.OutputDir, cfg.LabelsOutput),
		},
	}
}

// Result holds the outcome of one job. Lines or Labels is populated
// according to the job kind, and only when the job succeeded.
type Result struct {
	Job        Job
	Status     types.ConversionStatus
	Records    int
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time

	Lines  []types.LineSegment
	Labels []types.Label
}

// Summary holds the outcome of a conversion run.
type Summary struct {
	RunID      string
	Encoding   string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
	Converted  int
	Failed     int
}

// Total returns the number of jobs processed.
func (s Summary) Total() int {
	return s.Converted + s.Failed
}

// HasFailures reports whether any job failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Runner converts catalog jobs with a fixed source encoding.
type Runner struct {
	cfg   types.ConversionConfig
	enc   encoding.Encoding
	clock clockwork.Clock
}

// NewRunner resolves the configured encoding and returns a Runner. An
// Indent of zero writes compact JSON; negative values are rejected.
func NewRunner(cfg types.ConversionConfig) (*Runner, error) {
	enc, err := LookupEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	if cfg.Encoding == "" {
		cfg.Encoding = types.DefaultEncoding
	}
	if cfg.Indent < 0 {
		return nil, fmt.Errorf("indent must not be negative, got %d", cfg.Indent)
	}
	return &Runner{cfg: cfg, enc: enc, clock: clockwork.NewRealClock()}, nil
}

// WithClock replaces the time source used for run timestamps.
func (r *Runner) WithClock(c clockwork.Clock) *Runner {
	r.clock = c
	return r
}

// RunJob converts a single catalog. Any failure is captured in the Result;
// no output file is written unless every row converted.
func (r *Runner) RunJob(ctx context.Context, job Job) Result {
	res := Result{Job: job, StartedAt: r.clock.Now()}

	fail := func(err error) Result {
		res.Status = types.ConversionFailed
		res.Err = err
		res.FinishedAt = r.clock.Now()
		return res
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	rows, err := ReadFile(job.Input, r.enc)
	if err != nil {
		return fail(err)
	}
	if len(rows) == 0 {
		return fail(fmt.Errorf("%s: %w", job.Input, ErrEmptyCatalog))
	}

	var out any
	switch job.Kind {
	case types.KindLines:
		lines, err := ParseLines(rows)
		if err != nil {
			return fail(fmt.Errorf("%s: %w", job.Input, err))
		}
		res.Lines, res.Records, out = lines, len(lines), lines
	case types.KindLabels:
		labels, err := ParseLabels(rows)
		if err != nil {
			return fail(fmt.Errorf("%s: %w", job.Input, err))
		}
		res.Labels, res.Records, out = labels, len(labels), labels
	default:
		return fail(fmt.Errorf("unknown catalog kind %q", job.Kind))
	}

	if err := WriteJSON(job.Output, out, r.cfg.Indent); err != nil {
		res.Lines, res.Labels, res.Records = nil, nil, 0
		return fail(err)
	}

	res.Status = types.ConversionDone
	res.FinishedAt = r.clock.Now()
	return res
}

// Run converts each job in order, printing one status line per job to w.
// A failed job does not stop the jobs after it.
func (r *Runner) Run(ctx context.Context, jobs []Job, w io.Writer) Summary {
	s := Summary{
		RunID:     uuid.NewString(),
		Encoding:  r.cfg.Encoding,
		StartedAt: r.clock.Now(),
	}

	for _, job := range jobs {
		res := r.RunJob(ctx, job)
		switch res.Status {
		case types.ConversionDone:
			fmt.Fprintf(w, "created: %s (%d records)\n", job.Output, res.Records)
			s.Converted++
		default:
			fmt.Fprintf(w, "error (%s): %v\n", job.Kind, res.Err)
			s.Failed++
		}
		s.Results = append(s.Results, res)
	}

	s.FinishedAt = r.clock.Now()
	return s
}
