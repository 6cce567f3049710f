// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render writes converted Documents. JSON is the docs page API
// body; YAML, Markdown and HTML are for review before upload.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nb2docs/internal/convert"
	"github.com/pdiddy/nb2docs/pkg/types"
)

// NewEncoder returns the encoder for format. An empty format selects JSON.
// indent only affects JSON output.
func NewEncoder(format types.OutputFormat, indent bool) (convert.Encoder, error) {
	switch format {
	case "", types.OutputJSON:
		return JSON{Indent: indent}, nil
	case types.OutputYAML:
		return YAML{}, nil
	case types.OutputMarkdown:
		return Markdown{}, nil
	case types.OutputHTML:
		return HTML{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want json, yaml, markdown, or html)", format)
	}
}

// JSON writes the page body exactly as the docs API expects it. Non-ASCII
// and HTML characters are written verbatim.
type JSON struct {
	Indent bool
}

func (j JSON) Encode(w io.Writer, doc *types.Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if j.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

func (JSON) Ext() string { return ".json" }

// YAML writes the document with the same field names as the JSON body.
type YAML struct{}

func (YAML) Encode(w io.Writer, doc *types.Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

func (YAML) Ext() string { return ".yaml" }

// Markdown writes the document back as markdown: the title as a level-one
// heading, h2 blocks as "##" headings, lists as "- " items, and code blocks
// fenced with their language.
type Markdown struct{}

func (Markdown) Encode(w io.Writer, doc *types.Document) error {
	_, err := io.WriteString(w, ToMarkdown(doc))
	return err
}

func (Markdown) Ext() string { return ".md" }

// ToMarkdown renders doc as markdown text.
func ToMarkdown(doc *types.Document) string {
	var b strings.Builder
	if doc.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	}
	for _, blk := range doc.Blocks {
		switch blk.Type {
		case types.BlockHeading:
			fmt.Fprintf(&b, "## %s\n\n", blk.Text)
		case types.BlockList:
			for _, it := range blk.Items {
				fmt.Fprintf(&b, "- %s\n", it)
			}
			b.WriteString("\n")
		case types.BlockParagraph:
			b.WriteString(blk.Text)
			b.WriteString("\n\n")
		case types.BlockCode:
			fence := codeFence(blk.Code)
			fmt.Fprintf(&b, "%s%s\n%s", fence, blk.Language, blk.Code)
			if !strings.HasSuffix(blk.Code, "\n") {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "%s\n\n", fence)
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// codeFence returns a backtick fence longer than any backtick run in code.
func codeFence(code string) string {
	longest, run := 0, 0
	for _, r := range code {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	n := 3
	if longest >= n {
		n = longest + 1
	}
	return strings.Repeat("`", n)
}

// HTML renders the markdown form of the document to an HTML fragment for
// local preview.
type HTML struct{}

func (HTML) Encode(w io.Writer, doc *types.Document) error {
	engine := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)
	var buf bytes.Buffer
	if err := engine.Convert([]byte(ToMarkdown(doc)), &buf); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (HTML) Ext() string { return ".html" }
