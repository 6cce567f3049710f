// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputFormat selects how a converted Document is written.
type OutputFormat string

const (
	OutputJSON     OutputFormat = "json"
	OutputYAML     OutputFormat = "yaml"
	OutputMarkdown OutputFormat = "markdown"
	OutputHTML     OutputFormat = "html"
)

// ConversionConfig holds settings for the convert command.
type ConversionConfig struct {
	// Title replaces the derived "Notebook: <name>" title when non-empty.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Breadcrumb replaces the default navigation path when non-empty.
	Breadcrumb []string `json:"breadcrumb,omitempty" yaml:"breadcrumb,omitempty"`

	// Format selects the output encoding (default json).
	Format OutputFormat `json:"format" yaml:"format"`

	// Indent pretty-prints JSON output.
	Indent bool `json:"indent" yaml:"indent"`

	// OutPath is the output file. Empty writes to stdout.
	OutPath string `json:"out,omitempty" yaml:"out,omitempty"`
}

// PagesConfig holds settings for the local docs page store.
type PagesConfig struct {
	// DBPath is the SQLite database file (default data/docs-pages.db).
	DBPath string `json:"db_path" yaml:"db_path"`
}

// Config groups all settings read from nb2docs.yaml.
type Config struct {
	Convert ConversionConfig `json:"convert" yaml:"convert"`
	Pages   PagesConfig      `json:"pages" yaml:"pages"`
}
