// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nb2docs/internal/convert"
	"github.com/pdiddy/nb2docs/pkg/types"
)

var (
	_ convert.Encoder = JSON{}
	_ convert.Encoder = YAML{}
	_ convert.Encoder = Markdown{}
	_ convert.Encoder = HTML{}
)

func sampleDoc() *types.Document {
	return &types.Document{
		Title:      "Notebook: demo.ipynb",
		Breadcrumb: []string{"Documentation", "Notebook"},
		Blocks: []types.Block{
			types.Heading("Setup"),
			types.Paragraph("Load <data> & clean"),
			types.List([]string{"one", "two"}),
			types.Code(types.LanguagePython, "print('hé')"),
			types.Code(types.LanguageText, "42\n"),
		},
	}
}

func TestJSON_WireShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON{}.Encode(&buf, sampleDoc()))

	want := `{"title":"Notebook: demo.ipynb","breadcrumb":["Documentation","Notebook"],"blocks":[` +
		`{"type":"h2","text":"Setup"},` +
		`{"type":"p","text":"Load <data> & clean"},` +
		`{"type":"ul","items":["one","two"]},` +
		`{"type":"code","language":"python","code":"print('hé')"},` +
		`{"type":"code","language":"text","code":"42\n"}]}` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestJSON_EmptyBlocksIsArray(t *testing.T) {
	doc := &types.Document{Title: "t", Breadcrumb: []string{"a"}, Blocks: []types.Block{}}
	var buf bytes.Buffer
	require.NoError(t, JSON{Indent: true}.Encode(&buf, doc))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []any{}, got["blocks"])
	assert.Contains(t, buf.String(), "\n  \"title\"")
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML{}.Encode(&buf, sampleDoc()))

	var got types.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *sampleDoc(), got)
	assert.NotContains(t, buf.String(), "language: \"\"")
}

func TestToMarkdown(t *testing.T) {
	got := ToMarkdown(sampleDoc())
	want := "# Notebook: demo.ipynb\n\n" +
		"## Setup\n\n" +
		"Load <data> & clean\n\n" +
		"- one\n- two\n\n" +
		"```python\nprint('hé')\n```\n\n" +
		"```text\n42\n```\n"
	assert.Equal(t, want, got)
}

func TestCodeFence(t *testing.T) {
	assert.Equal(t, "```", codeFence("x = 1"))
	assert.Equal(t, "````", codeFence("s = '```'"))
	assert.Equal(t, "``````", codeFence("`````"))
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML{}.Encode(&buf, sampleDoc()))
	out := buf.String()

	assert.Contains(t, out, "<h1>Notebook: demo.ipynb")
	assert.Contains(t, out, "<h2>Setup</h2>")
	assert.Contains(t, out, "<li>one</li>")
	assert.Contains(t, out, `<code class="language-python">`)
	assert.True(t, strings.Contains(out, "42"))
}

func TestNewEncoder(t *testing.T) {
	tests := []struct {
		format  types.OutputFormat
		wantExt string
		wantErr bool
	}{
		{"", ".json", false},
		{types.OutputJSON, ".json", false},
		{types.OutputYAML, ".yaml", false},
		{types.OutputMarkdown, ".md", false},
		{types.OutputHTML, ".html", false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			enc, err := NewEncoder(tt.format, false)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, enc.Ext())
		})
	}
}
