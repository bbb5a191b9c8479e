// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Column names one field of a headerless catalog row.
type Column struct {
	Name  string
	Index int
}

// Line-segment catalog columns (cons_lineData.csv). The remaining columns
// hold star identifiers and are ignored.
var (
	ColRA1  = Column{Name: "ra1", Index: 2}
	ColDec1 = Column{Name: "dec1", Index: 3}
	ColRA2  = Column{Name: "ra2", Index: 6}
	ColDec2 = Column{Name: "dec2", Index: 7}
)

// Label catalog columns (cons_nameData.csv).
var (
	ColName      = Column{Name: "name", Index: 0}
	ColRAHours   = Column{Name: "ra_hours", Index: 1}
	ColRAMinutes = Column{Name: "ra_minutes", Index: 2}
	ColDec       = Column{Name: "dec", Index: 3}
)

// Schema is the fixed column layout of one catalog file.
type Schema struct {
	Columns []Column
}

// LineSchema and LabelSchema describe the two source catalogs.
var (
	LineSchema  = Schema{Columns: []Column{ColRA1, ColDec1, ColRA2, ColDec2}}
	LabelSchema = Schema{Columns: []Column{ColName, ColRAHours, ColRAMinutes, ColDec}}
)

// MinColumns returns the narrowest row width that holds every column.
func (s Schema) MinColumns() int {
	n := 0
	for _, c := range s.Columns {
		if c.Index+1 > n {
			n = c.Index + 1
		}
	}
	return n
}

// Check reports an error when row is too narrow for the schema.
func (s Schema) Check(row []string) error {
	if want := s.MinColumns(); len(row) < want {
		return fmt.Errorf("row has %d columns, need at least %d", len(row), want)
	}
	return nil
}

// RowError describes a row that could not be converted. Row is 1-based.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d, column %s: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// text returns the raw field for c.
func text(row []string, c Column) string {
	return row[c.Index]
}

// float parses the field for c as a finite float64.
func float(row []string, c Column) (float64, error) {
	s := strings.TrimSpace(row[c.Index])
	if s == "" {
		return 0, fmt.Errorf("missing value (index %d)", c.Index)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric value %q (index %d)", s, c.Index)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q (index %d)", s, c.Index)
	}
	return v, nil
}
