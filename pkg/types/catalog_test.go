// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDegrees_MarshalJSON(t *testing.T) {
	tests := []struct {
		in   Degrees
		want string
	}{
		{in: 0, want: "0.0"},
		{in: 30, want: "30.0"},
		{in: -5.5, want: "-5.5"},
		{in: 82.5, want: "82.5"},
		{in: 359.75, want: "359.75"},
		{in: 1e-7, want: "1e-7"},
		{in: 1e21, want: "1e+21"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDegrees_NonFinite(t *testing.T) {
	_, err := json.Marshal(Degrees(math.NaN()))
	require.Error(t, err)
}

func TestDefaultConversionConfig(t *testing.T) {
	cfg := DefaultConversionConfig()
	assert.Equal(t, "cons_lineData.csv", cfg.LinesInput)
	assert.Equal(t, "constellation_lines.json", cfg.LinesOutput)
	assert.Equal(t, "cons_nameData.csv", cfg.LabelsInput)
	assert.Equal(t, "constellation_labels.json", cfg.LabelsOutput)
	assert.Equal(t, "shift_jis", cfg.Encoding)
	assert.Equal(t, 4, cfg.Indent)
}
