// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/seiza-catalog/pkg/types"
)

// Viper keys. Each maps to SEIZA_CATALOG_<KEY> with dots replaced by
// underscores, and to the same nested key in seiza-catalog.yaml.
const (
	keyInputDir     = "conversion.input_dir"
	keyOutputDir    = "conversion.output_dir"
	keyEncoding     = "conversion.encoding"
	keyIndent       = "conversion.indent"
	keyLinesInput   = "conversion.lines_input"
	keyLinesOutput  = "conversion.lines_output"
	keyLabelsInput  = "conversion.labels_input"
	keyLabelsOutput = "conversion.labels_output"
	keyReport       = "conversion.report"
	keyStoreEnabled = "store.enabled"
	keyStorePath    = "store.path"
	keyStoreMax     = "store.max_results"
	keyStrict       = "strict"
)

func setDefaults() {
	def := types.DefaultConversionConfig()
	viper.SetDefault(keyInputDir, def.InputDir)
	viper.SetDefault(keyOutputDir, def.OutputDir)
	viper.SetDefault(keyEncoding, def.Encoding)
	viper.SetDefault(keyIndent, def.Indent)
	viper.SetDefault(keyLinesInput, def.LinesInput)
	viper.SetDefault(keyLinesOutput, def.LinesOutput)
	viper.SetDefault(keyLabelsInput, def.LabelsInput)
	viper.SetDefault(keyLabelsOutput, def.LabelsOutput)
	viper.SetDefault(keyReport, "")
	viper.SetDefault(keyStoreEnabled, false)
	viper.SetDefault(keyStorePath, types.DefaultStorePath)
	viper.SetDefault(keyStoreMax, 20)
	viper.SetDefault(keyStrict, false)
}

// loadConfig assembles the pipeline configuration from flags, environment,
// config file and defaults, in viper's precedence order.
func loadConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Conversion: types.ConversionConfig{
			InputDir:     viper.GetString(keyInputDir),
			OutputDir:    viper.GetString(keyOutputDir),
			Encoding:     viper.GetString(keyEncoding),
			Indent:       viper.GetInt(keyIndent),
			LinesInput:   viper.GetString(keyLinesInput),
			LinesOutput:  viper.GetString(keyLinesOutput),
			LabelsInput:  viper.GetString(keyLabelsInput),
			LabelsOutput: viper.GetString(keyLabelsOutput),
			Report:       viper.GetString(keyReport),
		},
		Store: types.StoreConfig{
			Enabled:    viper.GetBool(keyStoreEnabled),
			Path:       viper.GetString(keyStorePath),
			MaxResults: viper.GetInt(keyStoreMax),
		},
		Strict: viper.GetBool(keyStrict),
	}
}
