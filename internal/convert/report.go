// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/seiza-catalog/pkg/types"
)

// Report is the on-disk record of a conversion run.
type Report struct {
	RunID      string       `yaml:"run_id"`
	StartedAt  time.Time    `yaml:"started_at"`
	FinishedAt time.Time    `yaml:"finished_at"`
	Encoding   string       `yaml:"encoding"`
	Jobs       []ReportJob  `yaml:"jobs"`
	Summary    ReportTotals `yaml:"summary"`
}

// ReportJob records the outcome of one catalog.
type ReportJob struct {
	Kind    types.CatalogKind      `yaml:"kind"`
	Input   string                 `yaml:"input"`
	Output  string                 `yaml:"output"`
	Status  types.ConversionStatus `yaml:"status"`
	Records int                    `yaml:"records"`
	Error   string                 `yaml:"error,omitempty"`
}

// ReportTotals holds the per-status job counts.
type ReportTotals struct {
	Converted int `yaml:"converted"`
	Failed    int `yaml:"failed"`
}

// NewReport builds a Report from a run summary.
func NewReport(s Summary) Report {
	rep := Report{
		RunID:      s.RunID,
		StartedAt:  s.StartedAt.UTC(),
		FinishedAt: s.FinishedAt.UTC(),
		Encoding:   s.Encoding,
		Jobs:       make([]ReportJob, len(s.Results)),
		Summary:    ReportTotals{Converted: s.Converted, Failed: s.Failed},
	}
	for i, r := range s.Results {
		rep.Jobs[i] = ReportJob{
			Kind:    r.Job.Kind,
			Input:   r.Job.Input,
			Output:  r.Job.Output,
			Status:  r.Status,
			Records: r.Records,
		}
		if r.Err != nil {
			rep.Jobs[i].Error = r.Err.Error()
		}
	}
	return rep
}

// WriteReport saves the run summary to path as YAML.
func WriteReport(path string, s Summary) error {
	data, err := yaml.Marshal(NewReport(s))
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", path, err)
	}
	var rep Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &rep, nil
}
