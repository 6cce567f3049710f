// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown splits markdown-ish text into heading, list, and paragraph
// blocks. It is deliberately small: there is no inline formatting, no nested
// lists, and no tables. Runs of "- " lines become one flat list regardless of
// indentation.
package markdown

import (
	"strings"

	"github.com/pdiddy/nb2docs/pkg/types"
)

const (
	headingMarker = "#"
	listMarker    = "- "
)

// mode records which accumulator is currently collecting lines.
type mode int

const (
	modeNeutral mode = iota
	modeParagraph
	modeList
)

// splitter is the scan state: the current mode, the two accumulators, and
// the blocks emitted so far.
type splitter struct {
	mode   mode
	para   []string
	items  []string
	blocks []types.Block
}

// Split converts text into an ordered sequence of h2, ul and p blocks.
// Blocks appear in line order. Empty paragraphs and lists are never emitted.
func Split(text string) []types.Block {
	s := &splitter{}
	for _, line := range splitLines(text) {
		s.line(line)
	}
	s.flushList()
	s.flushParagraph()
	return s.blocks
}

func (s *splitter) line(line string) {
	line = strings.TrimRight(line, "\n")
	stripped := TrimSpace(line)

	switch {
	case strings.HasPrefix(stripped, headingMarker):
		s.flushList()
		s.flushParagraph()
		if header := TrimSpace(strings.TrimLeft(stripped, headingMarker)); header != "" {
			s.blocks = append(s.blocks, types.Heading(header))
		}

	case strings.HasPrefix(stripped, listMarker):
		s.flushParagraph()
		s.items = append(s.items, stripped[len(listMarker):])
		s.mode = modeList

	case stripped == "":
		s.flushList()
		s.flushParagraph()

	default:
		s.flushList()
		s.para = append(s.para, line)
		s.mode = modeParagraph
	}
}

// flushParagraph emits the buffered paragraph lines as one p block if the
// joined, trimmed text is non-empty, then clears the buffer.
func (s *splitter) flushParagraph() {
	if s.mode != modeParagraph {
		return
	}
	s.mode = modeNeutral
	text := TrimSpace(strings.Join(s.para, "\n"))
	s.para = s.para[:0]
	if text != "" {
		s.blocks = append(s.blocks, types.Paragraph(text))
	}
}

// flushList emits the buffered items as one ul block, dropping items that
// are blank after trimming. Nothing is emitted when no item survives.
func (s *splitter) flushList() {
	if s.mode != modeList {
		return
	}
	s.mode = modeNeutral
	var items []string
	for _, it := range s.items {
		if it = TrimSpace(it); it != "" {
			items = append(items, it)
		}
	}
	s.items = s.items[:0]
	if len(items) > 0 {
		s.blocks = append(s.blocks, types.List(items))
	}
}
