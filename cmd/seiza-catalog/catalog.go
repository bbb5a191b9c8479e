// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/seiza-catalog/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the SQLite catalog (labels, lines, runs)",
	Long: `Catalog queries the SQLite database filled by "convert --store". It holds
the records of the most recent successful conversion of each catalog and a
history of conversion runs.`,
}

// --- labels subcommand ---

var catalogLabelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List stored constellation labels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		limit, _ := cmd.Flags().GetInt("limit")
		q := catalog.LabelQuery{Name: name, MaxResults: limit}
		if cmd.Flags().Changed("ra-min") || cmd.Flags().Changed("ra-max") {
			raMin, _ := cmd.Flags().GetFloat64("ra-min")
			raMax, _ := cmd.Flags().GetFloat64("ra-max")
			q.RA = &catalog.RAWindow{Min: raMin, Max: raMax}
		}

		return withStore(cmd, func(store *catalog.Store) error {
			labels, err := store.Labels(cmd.Context(), q)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON(cmd) {
				return writeJSON(w, labels)
			}
			if len(labels) == 0 {
				fmt.Fprintln(w, "No labels found.")
				return nil
			}
			fmt.Fprintf(w, "%-24s  %10s  %10s\n", "Name", "RA", "Dec")
			for _, l := range labels {
				fmt.Fprintf(w, "%-24s  %10.4f  %10.4f\n", l.Name, float64(l.RA), float64(l.Dec))
			}
			fmt.Fprintf(w, "\n%d labels\n", len(labels))
			return nil
		})
	},
}

// --- lines subcommand ---

var catalogLinesCmd = &cobra.Command{
	Use:   "lines",
	Short: "List stored constellation line segments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		return withStore(cmd, func(store *catalog.Store) error {
			lines, err := store.Lines(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON(cmd) {
				return writeJSON(w, lines)
			}
			total, _, err := store.Counts(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%10s  %10s  %10s  %10s\n", "RA1", "Dec1", "RA2", "Dec2")
			for _, l := range lines {
				fmt.Fprintf(w, "%10.4f  %10.4f  %10.4f  %10.4f\n",
					float64(l.RA1), float64(l.Dec1), float64(l.RA2), float64(l.Dec2))
			}
			fmt.Fprintf(w, "\n%d of %d segments\n", len(lines), total)
			return nil
		})
	},
}

// --- runs subcommand ---

var catalogRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent conversion runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		return withStore(cmd, func(store *catalog.Store) error {
			runs, err := store.Runs(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON(cmd) {
				return writeJSON(w, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(w, "No runs recorded.")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(w, "%s  %s  converted: %d, failed: %d\n",
					r.ID, r.StartedAt.Local().Format(time.DateTime), r.Converted, r.Failed)
				for _, c := range r.Conversions {
					fmt.Fprintf(w, "    %-7s %-9s %5d  %s", c.Kind, c.Status, c.Records, c.Output)
					if c.Error != "" {
						fmt.Fprintf(w, "  (%s)", c.Error)
					}
					fmt.Fprintln(w)
				}
			}
			return nil
		})
	},
}

// --- shared helpers ---

func withStore(cmd *cobra.Command, fn func(*catalog.Store) error) error {
	cfg := loadConfig().Store
	if path, _ := cmd.Flags().GetString("store-path"); path != "" {
		cfg.Path = path
	}

	store, err := catalog.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(store)
}

func asJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	catalogCmd.PersistentFlags().String("store-path", "", "SQLite catalog database file (default: store.path from config)")
	catalogCmd.PersistentFlags().Int("limit", 0, "maximum number of results (default: store.max_results)")
	catalogCmd.PersistentFlags().Bool("json", false, "output results as JSON")

	catalogLabelsCmd.Flags().String("name", "", "filter by name substring")
	catalogLabelsCmd.Flags().Float64("ra-min", 0, "minimum right ascension in degrees, inclusive")
	catalogLabelsCmd.Flags().Float64("ra-max", 360, "maximum right ascension in degrees, inclusive; below --ra-min the window wraps through 0")

	catalogCmd.AddCommand(catalogLabelsCmd)
	catalogCmd.AddCommand(catalogLinesCmd)
	catalogCmd.AddCommand(catalogRunsCmd)
	rootCmd.AddCommand(catalogCmd)
}
