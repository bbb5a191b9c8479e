// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the seiza-catalog
// converter: the records written for the star-map front end, the
// conversion status values, and the configuration of each stage.
package types

import (
	"encoding/json"
	"strings"
)

// CatalogKind identifies one of the two constellation catalogs.
type CatalogKind string

const (
	KindLines  CatalogKind = "lines"
	KindLabels CatalogKind = "labels"
)

// ConversionStatus indicates the outcome of converting one catalog file.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Degrees is an angle in decimal degrees. Its JSON form always carries a
// decimal point (30.0 rather than 30), matching the catalog files the front
// end was built against.
type Degrees float64

// MarshalJSON encodes d as a JSON number with at least one fractional digit.
func (d Degrees) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(float64(d))
	if err != nil {
		return nil, err
	}
	if !strings.ContainsAny(string(b), ".eE") {
		b = append(b, '.', '0')
	}
	return b, nil
}

// LineSegment is one drawn edge of a constellation figure: a pair of
// celestial coordinates in decimal degrees.
type LineSegment struct {
	RA1  Degrees `json:"ra1" yaml:"ra1"`
	Dec1 Degrees `json:"dec1" yaml:"dec1"`
	RA2  Degrees `json:"ra2" yaml:"ra2"`
	Dec2 Degrees `json:"dec2" yaml:"dec2"`
}

// Label is a named point used to annotate the map.
type Label struct {
	// Name is the display name, decoded from the source encoding but
	// otherwise unmodified.
	Name string `json:"name" yaml:"name"`

	// RA is the right ascension in decimal degrees.
	RA Degrees `json:"ra" yaml:"ra"`

	// Dec is the declination in decimal degrees.
	Dec Degrees `json:"dec" yaml:"dec"`
}
