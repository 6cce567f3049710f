// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short ascii", "intro", 24, "intro"},
		{"exact length", "abcdef", 6, "abcdef"},
		{"long ascii", "abcdefghij", 6, "abc..."},
		{"multibyte within limit", "Überblick über Daten", 24, "Überblick über Daten"},
		{"multibyte cut on rune boundary", "日本語のノートブック入門", 8, "日本語のノ..."},
		{"emoji", "📓📓📓📓📓📓", 5, "📓📓..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
			assert.LessOrEqual(t, utf8.RuneCountInString(got), tt.n)
		})
	}
}
