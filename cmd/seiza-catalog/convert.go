// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/seiza-catalog/internal/catalog"
	"github.com/pdiddy/seiza-catalog/internal/convert"
	"github.com/pdiddy/seiza-catalog/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the constellation CSV catalogs to JSON",
	Long: `Convert reads the line and name catalogs, converts right ascension from
hours and minutes to degrees, and writes pretty-printed JSON with non-ASCII
names kept literal. Each catalog is a separate failure domain: errors are
printed and the next catalog still runs.

With --store the run and the converted records are also saved to the SQLite
catalog for the "catalog" subcommands.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	w := cmd.OutOrStdout()

	runner, err := convert.NewRunner(cfg.Conversion)
	if err != nil {
		return err
	}

	sum := runner.Run(cmd.Context(), convert.Jobs(cfg.Conversion), w)

	if cfg.Conversion.Report != "" {
		if err := convert.WriteReport(cfg.Conversion.Report, sum); err != nil {
			fmt.Fprintf(w, "warning: report write failed: %v\n", err)
		}
	}

	if cfg.Store.Enabled {
		recordRun(cmd, cfg.Store, sum, w)
	}

	if cfg.Strict && sum.HasFailures() {
		return fmt.Errorf("%d of %d catalog(s) failed to convert", sum.Failed, sum.Total())
	}
	return nil
}

// recordRun saves the run to the catalog store. Store failures are reported
// but do not affect the JSON output already written.
func recordRun(cmd *cobra.Command, cfg types.StoreConfig, sum convert.Summary, w io.Writer) {
	store, err := catalog.Open(cfg)
	if err != nil {
		fmt.Fprintf(w, "warning: catalog store unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.RecordRun(cmd.Context(), sum); err != nil {
		fmt.Fprintf(w, "warning: recording run %s failed: %v\n", sum.RunID, err)
		return
	}
	fmt.Fprintf(w, "recorded run %s in %s\n", sum.RunID, cfg.Path)
}

func init() {
	flags := convertCmd.Flags()
	flags.String("input-dir", ".", "directory containing the source CSV catalogs")
	flags.String("output-dir", ".", "directory the JSON catalogs are written to")
	flags.String("encoding", "shift_jis", "character encoding of the source CSV catalogs")
	flags.Int("indent", 4, "spaces per JSON indentation level (0 for compact output)")
	flags.String("report", "", "write a YAML run report to this path")
	flags.Bool("store", false, "record the run and converted records in the SQLite catalog")
	flags.String("store-path", "catalog/catalog.db", "SQLite catalog database file")
	flags.Bool("strict", false, "exit non-zero when any catalog fails to convert")

	bindFlags(convertCmd, map[string]string{
		"input-dir":  keyInputDir,
		"output-dir": keyOutputDir,
		"encoding":   keyEncoding,
		"indent":     keyIndent,
		"report":     keyReport,
		"store":      keyStoreEnabled,
		"store-path": keyStorePath,
		"strict":     keyStrict,
	})

	rootCmd.AddCommand(convertCmd)
}

// bindFlags binds each named flag of cmd to its viper key.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for flag, key := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}
