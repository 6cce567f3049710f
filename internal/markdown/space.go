// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// isSpace reports whether r counts as white space in notebook text: Unicode
// white space plus the ASCII information separators \x1c-\x1f.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// TrimSpace removes leading and trailing white space as defined by isSpace.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// IsBlank reports whether s has no non-white-space character.
func IsBlank(s string) bool {
	return TrimSpace(s) == ""
}

// isLineBreak reports whether r ends a line. \r\n is handled by splitLines.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// splitLines breaks text at every line break recognised by isLineBreak,
// treating \r\n as one break. A trailing line break does not produce an
// extra empty line, and empty text yields no lines.
func splitLines(text string) []string {
	var lines []string
	for text != "" {
		i := strings.IndexFunc(text, isLineBreak)
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i])
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			size++
		}
		text = text[i+size:]
	}
	return lines
}
