// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns the fixed-schema constellation CSV catalogs into the
// JSON arrays read by the star-map front end.
//
// Each catalog is converted in a single pass: every row is parsed into memory
// and the JSON file is written only after the whole file parsed cleanly. A
// malformed row aborts that catalog; the other catalog is unaffected.
package convert

import (
	"github.com/pdiddy/seiza-catalog/pkg/types"
)

// RAToDegrees converts a right ascension given in hours and minutes to
// decimal degrees.
func RAToDegrees(hours, minutes float64) float64 {
	return (hours + minutes/60.0) * 15.0
}

// ParseLines converts line-catalog rows into segments, in row order.
func ParseLines(rows [][]string) ([]types.LineSegment, error) {
	out := make([]types.LineSegment, 0, len(rows))
	for i, row := range rows {
		if err := LineSchema.Check(row); err != nil {
			return nil, &RowError{Row: i + 1, Err: err}
		}
		var v [4]float64
		for j, c := range []Column{ColRA1, ColDec1, ColRA2, ColDec2} {
			f, err := float(row, c)
			if err != nil {
				return nil, &RowError{Row: i + 1, Column: c.Name, Err: err}
			}
			v[j] = f
		}
		out = append(out, types.LineSegment{
			RA1:  types.Degrees(v[0]),
			Dec1: types.Degrees(v[1]),
			RA2:  types.Degrees(v[2]),
			Dec2: types.Degrees(v[3]),
		})
	}
	return out, nil
}

// ParseLabels converts label-catalog rows into labels, in row order. The
// right ascension columns are hours and minutes; declination is already in
// degrees.
func ParseLabels(rows [][]string) ([]types.Label, error) {
	out := make([]types.Label, 0, len(rows))
	for i, row := range rows {
		if err := LabelSchema.Check(row); err != nil {
			return nil, &RowError{Row: i + 1, Err: err}
		}
		var v [3]float64
		for j, c := range []Column{ColRAHours, ColRAMinutes, ColDec} {
			f, err := float(row, c)
			if err != nil {
				return nil, &RowError{Row: i + 1, Column: c.Name, Err: err}
			}
			v[j] = f
		}
		out = append(out, types.Label{
			Name: text(row, ColName),
			RA:   types.Degrees(RAToDegrees(v[0], v[1])),
			Dec:  types.Degrees(v[2]),
		})
	}
	return out, nil
}
