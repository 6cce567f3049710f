//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const notebooksDir = "notebooks"

// Convert converts every notebook under notebooks/ into out/ with the built
// CLI. Existing outputs are skipped.
func Convert() error {
	mg.Deps(Build)

	paths, err := filepath.Glob(filepath.Join(notebooksDir, "*.ipynb"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Printf("[convert] No notebooks found in %s/.\n", notebooksDir)
		return nil
	}

	args := append([]string{"convert", "--out-dir", "out", "--indent"}, paths...)
	return sh.RunV(filepath.Join(binDir, binName), args...)
}
