// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the seiza-catalog CLI.
// Run without arguments it converts cons_lineData.csv and cons_nameData.csv
// in the working directory into the star-map JSON catalogs.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the seiza-catalog CLI. With no subcommand
// it runs the conversion using the configured (or default) file names.
var rootCmd = &cobra.Command{
	Use:   "seiza-catalog",
	Short: "Convert constellation CSV catalogs into star-map JSON",
	Long: `seiza-catalog converts the constellation line catalog (cons_lineData.csv)
and the constellation name catalog (cons_nameData.csv) into
constellation_lines.json and constellation_labels.json for the star-map
front end.

Each catalog converts independently: a malformed row aborts only that
catalog, and its JSON file is left untouched.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./seiza-catalog.yaml or ~/.config/seiza-catalog/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("seiza-catalog")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "seiza-catalog"))
		}
	}

	viper.SetEnvPrefix("SEIZA_CATALOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
