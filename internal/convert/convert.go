// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns notebook documents into docs page Documents.
// Markdown cells go through the markdown splitter, code cells become python
// code blocks, and stream outputs follow their cell as text code blocks.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/nb2docs/internal/markdown"
	"github.com/pdiddy/nb2docs/pkg/types"
)

// titlePrefix precedes the notebook file name in a derived title.
const titlePrefix = "Notebook: "

// Convert parses notebook JSON and walks its cells in document order.
// sourceName is used for the title and in error messages.
func Convert(data []byte, sourceName string) (*types.Document, error) {
	nb, err := ParseNotebook(data, sourceName)
	if err != nil {
		return nil, err
	}
	return Walk(nb, sourceName), nil
}

// ConvertFile reads the notebook at path and converts it. A path that cannot
// be read yields *NotFoundError.
func ConvertFile(path string) (*types.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &NotFoundError{Path: path, Err: fmt.Errorf("is a directory")}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	return Convert(data, path)
}

// Walk builds a Document from an already parsed notebook.
func Walk(nb *Notebook, sourceName string) *types.Document {
	blocks := []types.Block{}
	for _, cell := range nb.Cells {
		switch cell.CellType {
		case CellMarkdown:
			if !cell.Source.Blank() {
				blocks = append(blocks, markdown.Split(string(cell.Source))...)
			}

		case CellCode:
			if !cell.Source.Blank() {
				blocks = append(blocks, types.Code(types.LanguagePython, string(cell.Source)))
			}
			for _, out := range cell.Outputs {
				if out.OutputType == OutputStream && !out.Text.Blank() {
					blocks = append(blocks, types.Code(types.LanguageText, string(out.Text)))
				}
			}
		}
	}

	return &types.Document{
		Title:      titlePrefix + filepath.Base(sourceName),
		Breadcrumb: append([]string(nil), types.DefaultBreadcrumb...),
		Blocks:     blocks,
	}
}

// Encoder writes a Document in one output format.
type Encoder interface {
	Encode(w io.Writer, doc *types.Document) error
	// Ext is the file extension, with leading dot, for encoded output.
	Ext() string
}

// BatchOptions controls ConvertBatch.
type BatchOptions struct {
	// OutDir receives one output file per notebook.
	OutDir string

	// Title and Breadcrumb are applied to every converted document.
	Title      string
	Breadcrumb []string

	// Force overwrites outputs that already exist.
	Force bool
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of notebooks processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any notebook failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Status is the per-notebook outcome of a batch run.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// ConvertNotebook converts one notebook and writes it into opts.OutDir as
// <name><ext>. Existing output is left alone unless opts.Force is set.
func ConvertNotebook(path string, enc Encoder, opts BatchOptions, w io.Writer) Status {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(opts.OutDir, base+enc.Ext())

	if !opts.Force {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
			return StatusSkipped
		}
	}

	doc, err := ConvertFile(path)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}
	doc.ApplyOverrides(opts.Title, opts.Breadcrumb)

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}
	if err := enc.Encode(f, doc); err != nil {
		f.Close()
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s (%d blocks)\n", base, len(doc.Blocks))
	return StatusConverted
}

// ConvertBatch converts each notebook path, printing per-file status to w
// and returning a summary.
func ConvertBatch(paths []string, enc Encoder, opts BatchOptions, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range paths {
		switch ConvertNotebook(p, enc, opts, w) {
		case StatusConverted:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
