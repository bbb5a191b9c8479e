// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionConfig holds settings for the CSV-to-JSON conversion stage.
type ConversionConfig struct {
	// InputDir is the directory containing the source CSV files (default ".").
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir is the directory the JSON files are written to (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Encoding is the character encoding of the source CSV files
	// (default "shift_jis"). Any WHATWG encoding label is accepted.
	Encoding string `json:"encoding" yaml:"encoding"`

	// Indent is the number of spaces per JSON indentation level (default 4).
	// Zero writes compact JSON.
	Indent int `json:"indent" yaml:"indent"`

	// LinesInput and LinesOutput name the line-segment catalog files.
	LinesInput  string `json:"lines_input" yaml:"lines_input"`
	LinesOutput string `json:"lines_output" yaml:"lines_output"`

	// LabelsInput and LabelsOutput name the label catalog files.
	LabelsInput  string `json:"labels_input" yaml:"labels_input"`
	LabelsOutput string `json:"labels_output" yaml:"labels_output"`

	// Report is the path of the YAML run report. Empty disables the report.
	Report string `json:"report,omitempty" yaml:"report,omitempty"`
}

// StoreConfig holds settings for the SQLite catalog store.
type StoreConfig struct {
	// Enabled controls whether conversion runs are recorded in the store.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database file (default "catalog/catalog.db").
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Default file names of the constellation catalogs.
const (
	DefaultLinesInput   = "cons_lineData.csv"
	DefaultLinesOutput  = "constellation_lines.json"
	DefaultLabelsInput  = "cons_nameData.csv"
	DefaultLabelsOutput = "constellation_labels.json"
	DefaultEncoding     = "shift_jis"
	DefaultIndent       = 4
	DefaultStorePath    = "catalog/catalog.db"
)

// DefaultConversionConfig returns the configuration used when nothing is
// overridden: both catalogs read from and written to the working directory.
func DefaultConversionConfig() ConversionConfig {
	return ConversionConfig{
		InputDir:     ".",
		OutputDir:    ".",
		Encoding:     DefaultEncoding,
		Indent:       DefaultIndent,
		LinesInput:   DefaultLinesInput,
		LinesOutput:  DefaultLinesOutput,
		LabelsInput:  DefaultLabelsInput,
		LabelsOutput: DefaultLabelsOutput,
	}
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Store      StoreConfig      `json:"store" yaml:"store"`

	// Strict makes the CLI exit non-zero when any catalog failed to convert.
	Strict bool `json:"strict" yaml:"strict"`
}
