//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts the catalogs in data/, recording the
// run in the local SQLite catalog.
func Convert() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "convert",
		"--input-dir", "data",
		"--output-dir", "data",
		"--store",
		"--report", filepath.Join("catalog", "last-run.yaml"),
	)
}
