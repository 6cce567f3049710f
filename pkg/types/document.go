// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// BlockType tags the variant of a Block. The values are part of the wire
// contract with the docs page API and must not change.
type BlockType string

const (
	BlockHeading   BlockType = "h2"
	BlockList      BlockType = "ul"
	BlockParagraph BlockType = "p"
	BlockCode      BlockType = "code"
)

// Code block languages.
const (
	LanguagePython = "python"
	LanguageText   = "text"
)

// DefaultBreadcrumb is the navigation path assigned to a converted notebook
// when the caller does not supply one.
var DefaultBreadcrumb = []string{"Documentation", "Notebook"}

// Block is one typed unit of page content. Only the fields belonging to
// Type are set; the rest are omitted from the encoded form.
type Block struct {
	// Type selects the variant: h2, ul, p or code.
	Type BlockType `json:"type" yaml:"type"`

	// Text is the heading or paragraph text (h2, p).
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Items holds list entries in source order (ul).
	Items []string `json:"items,omitempty" yaml:"items,omitempty"`

	// Language is the code language, python or text (code).
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	// Code is the raw, untrimmed code or captured output (code).
	Code string `json:"code,omitempty" yaml:"code,omitempty"`
}

// Heading returns an h2 block.
func Heading(text string) Block {
	return Block{Type: BlockHeading, Text: text}
}

// List returns a ul block.
func List(items []string) Block {
	return Block{Type: BlockList, Items: items}
}

// Paragraph returns a p block.
func Paragraph(text string) Block {
	return Block{Type: BlockParagraph, Text: text}
}

// Code returns a code block in the given language.
func Code(language, code string) Block {
	return Block{Type: BlockCode, Language: language, Code: code}
}

// Document is the body accepted by the docs page update endpoint.
type Document struct {
	Title      string   `json:"title" yaml:"title"`
	Breadcrumb []string `json:"breadcrumb" yaml:"breadcrumb"`
	Blocks     []Block  `json:"blocks" yaml:"blocks"`
}

// ApplyOverrides replaces the title and breadcrumb with caller-supplied
// values. Empty values leave the current field untouched; non-empty values
// replace it wholesale.
func (d *Document) ApplyOverrides(title string, breadcrumb []string) {
	if title != "" {
		d.Title = title
	}
	if len(breadcrumb) > 0 {
		d.Breadcrumb = append([]string(nil), breadcrumb...)
	}
}
