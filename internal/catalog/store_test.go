// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/seiza-catalog/internal/convert"
	"github.com/pdiddy/seiza-catalog/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{Path: filepath.Join(t.TempDir(), "index", "catalog.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

var (
	testLines = []types.LineSegment{
		{RA1: 10.5, Dec1: 20.25, RA2: 30, Dec2: -5.5},
		{RA1: 30, Dec1: -5.5, RA2: 45, Dec2: 12},
	}
	testLabels = []types.Label{
		{Name: "オリオン", RA: 82.5, Dec: 7},
		{Name: "Lyra", RA: 279, Dec: 38.8},
		{Name: "Ursa_Major", RA: 165, Dec: 50},
	}
)

func summary(id string, at time.Time, lines, labels convert.Result) convert.Summary {
	s := convert.Summary{RunID: id, Encoding: "shift_jis", StartedAt: at, FinishedAt: at.Add(time.Second)}
	for _, r := range []convert.Result{lines, labels} {
		if r.Status == types.ConversionDone {
			s.Converted++
		} else {
			s.Failed++
		}
		s.Results = append(s.Results, r)
	}
	return s
}

func linesDone(lines []types.LineSegment) convert.Result {
	return convert.Result{
		Job:     convert.Job{Kind: types.KindLines, Input: "cons_lineData.csv", Output: "constellation_lines.json"},
		Status:  types.ConversionDone,
		Records: len(lines),
		Lines:   lines,
	}
}

func labelsDone(labels []types.Label) convert.Result {
	return convert.Result{
		Job:     convert.Job{Kind: types.KindLabels, Input: "cons_nameData.csv", Output: "constellation_labels.json"},
		Status:  types.ConversionDone,
		Records: len(labels),
		Labels:  labels,
	}
}

func failed(kind types.CatalogKind, msg string) convert.Result {
	return convert.Result{
		Job:    convert.Job{Kind: kind, Input: "in.csv", Output: "out.json"},
		Status: types.ConversionFailed,
		Err:    errors.New(msg),
	}
}

func TestRecordRun_StoresRecords(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, time.March, 1, 21, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordRun(ctx, summary("run-1", at, linesDone(testLines), labelsDone(testLabels))))

	lines, err := s.Lines(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, testLines, lines)

	labels, err := s.Labels(ctx, LabelQuery{})
	require.NoError(t, err)
	assert.Equal(t, testLabels, labels)

	nLines, nLabels, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, nLines)
	assert.Equal(t, 3, nLabels)
}

func TestRecordRun_FailedCatalogKeepsPreviousRecords(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, time.March, 1, 21, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordRun(ctx, summary("run-1", at, linesDone(testLines), labelsDone(testLabels))))

	newLabels := []types.Label{{Name: "Cygnus", RA: 310.5, Dec: 42}}
	second := summary("run-2", at.Add(time.Hour), failed(types.KindLines, "row 2, column ra1: bad"), labelsDone(newLabels))
	require.NoError(t, s.RecordRun(ctx, second))

	lines, err := s.Lines(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, testLines, lines, "failed lines run must not touch stored segments")

	labels, err := s.Labels(ctx, LabelQuery{})
	require.NoError(t, err)
	assert.Equal(t, newLabels, labels)

	runs, err := s.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, 1, runs[0].Converted)
	assert.Equal(t, 1, runs[0].Failed)
	assert.True(t, runs[0].StartedAt.Equal(at.Add(time.Hour)))
	require.Len(t, runs[0].Conversions, 2)
	assert.Equal(t, types.KindLines, runs[0].Conversions[0].Kind)
	assert.Equal(t, types.ConversionFailed, runs[0].Conversions[0].Status)
	assert.Contains(t, runs[0].Conversions[0].Error, "column ra1")
	assert.Equal(t, types.ConversionDone, runs[0].Conversions[1].Status)
	assert.Empty(t, runs[0].Conversions[1].Error)
	assert.Equal(t, "run-1", runs[1].ID)
}

func TestRecordRun_DuplicateRunID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, time.March, 1, 21, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordRun(ctx, summary("run-1", at, linesDone(testLines), labelsDone(testLabels))))
	err := s.RecordRun(ctx, summary("run-1", at, linesDone(nil), labelsDone(nil)))
	require.Error(t, err)

	// The rejected run is rolled back as a whole.
	nLines, nLabels, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, nLines)
	assert.Equal(t, 3, nLabels)
}

func TestLabels_Filters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, time.March, 1, 21, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordRun(ctx, summary("run-1", at, linesDone(testLines), labelsDone(testLabels))))

	tests := []struct {
		name  string
		query LabelQuery
		want  []string
	}{
		{name: "all", query: LabelQuery{}, want: []string{"オリオン", "Lyra", "Ursa_Major"}},
		{name: "name substring", query: LabelQuery{Name: "yr"}, want: []string{"Lyra"}},
		{name: "non-ASCII name", query: LabelQuery{Name: "オリ"}, want: []string{"オリオン"}},
		{name: "underscore matched literally", query: LabelQuery{Name: "_"}, want: []string{"Ursa_Major"}},
		{name: "RA window", query: LabelQuery{RA: &RAWindow{Min: 80, Max: 170}}, want: []string{"オリオン", "Ursa_Major"}},
		{name: "RA window single point", query: LabelQuery{RA: &RAWindow{Min: 82.5, Max: 82.5}}, want: []string{"オリオン"}},
		{name: "RA window at zero", query: LabelQuery{RA: &RAWindow{}}, want: nil},
		{name: "RA window wraps through zero", query: LabelQuery{RA: &RAWindow{Min: 270, Max: 90}}, want: []string{"オリオン", "Lyra"}},
		{name: "RA window to 360", query: LabelQuery{RA: &RAWindow{Min: 200, Max: 360}}, want: []string{"Lyra"}},
		{name: "RA window with name", query: LabelQuery{Name: "a", RA: &RAWindow{Min: 270, Max: 90}}, want: []string{"Lyra"}},
		{name: "limit", query: LabelQuery{MaxResults: 1}, want: []string{"オリオン"}},
		{name: "no match", query: LabelQuery{Name: "Draco"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Labels(ctx, tt.query)
			require.NoError(t, err)
			var names []string
			for _, l := range got {
				names = append(names, l.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestRuns_NewestFirst(t *testing.T) {
	at := time.Date(2026, time.March, 1, 21, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		record []string
		starts map[string]time.Time
		want   []string
	}{
		{
			name:   "sub-second apart in time order",
			record: []string{"earlier", "later"},
			starts: map[string]time.Time{"earlier": at, "later": at.Add(500 * time.Millisecond)},
			want:   []string{"later", "earlier"},
		},
		{
			name:   "sub-second apart recorded out of order",
			record: []string{"later", "earlier"},
			starts: map[string]time.Time{"earlier": at, "later": at.Add(500 * time.Millisecond)},
			want:   []string{"later", "earlier"},
		},
		{
			name:   "trailing zero nanoseconds",
			record: []string{"a", "b", "c"},
			starts: map[string]time.Time{"a": at.Add(100 * time.Millisecond), "b": at.Add(120 * time.Millisecond), "c": at.Add(time.Second)},
			want:   []string{"c", "b", "a"},
		},
		{
			name:   "same start falls back to record order",
			record: []string{"first", "second"},
			starts: map[string]time.Time{"first": at, "second": at},
			want:   []string{"second", "first"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTestStore(t)
			ctx := context.Background()
			for _, id := range tt.record {
				require.NoError(t, s.RecordRun(ctx, summary(id, tt.starts[id], linesDone(testLines), labelsDone(testLabels))))
			}

			runs, err := s.Runs(ctx, 0)
			require.NoError(t, err)
			var ids []string
			for _, r := range runs {
				ids = append(ids, r.ID)
				assert.True(t, r.StartedAt.Equal(tt.starts[r.ID]), "run %s started at %s", r.ID, r.StartedAt)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestRuns_CorruptTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		column string
	}{
		{name: "started_at", column: "started_at"},
		{name: "finished_at", column: "finished_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTestStore(t)
			ctx := context.Background()
			at := time.Date(2026, time.March, 1, 21, 0, 0, 0, time.UTC)
			require.NoError(t, s.RecordRun(ctx, summary("run-1", at, linesDone(testLines), labelsDone(testLabels))))
			_, err := s.db.ExecContext(ctx, `UPDATE runs SET `+tt.column+` = 'last tuesday'`)
			require.NoError(t, err)

			runs, err := s.Runs(ctx, 0)
			require.Error(t, err)
			assert.Nil(t, runs)
			assert.Contains(t, err.Error(), "run-1")
			assert.Contains(t, err.Error(), "last tuesday")
		})
	}
}
