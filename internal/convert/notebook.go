// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/nb2docs/internal/markdown"
)

// Cell types the walker understands. Anything else is skipped.
const (
	CellMarkdown = "markdown"
	CellCode     = "code"
)

// OutputStream is the only output type carried into the document.
const OutputStream = "stream"

// Text is a notebook string field that may be stored either as one string
// or as a list of fragments. Fragments are concatenated with no separator.
// A missing or null field decodes to the empty string.
type Text string

// UnmarshalJSON accepts a string, an array of strings, or null.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("expected string or array of strings")
	}
	*t = Text(strings.Join(parts, ""))
	return nil
}

// Blank reports whether the text has no non-whitespace character.
func (t Text) Blank() bool {
	return markdown.IsBlank(string(t))
}

// Notebook is the subset of the notebook interchange format the walker reads.
type Notebook struct {
	Cells []Cell
}

// Cell is one notebook cell. Outputs are populated for code cells only.
type Cell struct {
	CellType string
	Source   Text
	Outputs  []Output
}

// Output is one recorded output of a code cell.
type Output struct {
	OutputType string
	Text       Text
}

// rawNotebook and friends defer decoding of nested values so that shape
// errors can be reported with their position in the document.
type rawNotebook struct {
	Cells json.RawMessage `json:"cells"`
}

type rawCell struct {
	CellType json.RawMessage `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
	Outputs  json.RawMessage `json:"outputs"`
}

type rawOutput struct {
	OutputType json.RawMessage `json:"output_type"`
	Text       json.RawMessage `json:"text"`
}

// ParseNotebook decodes a notebook document. Fields other than cells,
// cell_type, source, outputs, output_type and text are ignored. Shape
// errors are returned as *MalformedInputError naming source and the
// offending location.
func ParseNotebook(data []byte, source string) (*Notebook, error) {
	malformed := func(loc string, err error) error {
		return &MalformedInputError{Source: source, Location: loc, Err: err}
	}

	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		loc := ""
		var se *json.SyntaxError
		if errors.As(err, &se) {
			loc = fmt.Sprintf("offset %d", se.Offset)
		}
		return nil, malformed(loc, err)
	}

	var raw rawNotebook
	if err := json.Unmarshal(data, &raw); err != nil || isNull(data) {
		return nil, malformed("", fmt.Errorf("expected notebook object"))
	}

	var cells []json.RawMessage
	if !isNull(raw.Cells) {
		if err := json.Unmarshal(raw.Cells, &cells); err != nil {
			return nil, malformed("cells", fmt.Errorf("expected array"))
		}
	}

	nb := &Notebook{Cells: make([]Cell, 0, len(cells))}
	for i, rc := range cells {
		loc := fmt.Sprintf("cells[%d]", i)
		cell, err := parseCell(rc)
		if err != nil {
			var fe *fieldError
			if errors.As(err, &fe) {
				return nil, malformed(loc+"."+fe.path, fe.err)
			}
			return nil, malformed(loc, err)
		}
		nb.Cells = append(nb.Cells, cell)
	}
	return nb, nil
}

func parseCell(data json.RawMessage) (Cell, error) {
	var rc rawCell
	if err := json.Unmarshal(data, &rc); err != nil {
		return Cell{}, fmt.Errorf("expected cell object")
	}

	var cell Cell
	if err := decodeString(rc.CellType, &cell.CellType); err != nil {
		return Cell{}, &fieldError{path: "cell_type", err: err}
	}
	if err := json.Unmarshal(orNull(rc.Source), &cell.Source); err != nil {
		return Cell{}, &fieldError{path: "source", err: err}
	}
	if cell.CellType != CellCode || isNull(rc.Outputs) {
		return cell, nil
	}

	var outputs []json.RawMessage
	if err := json.Unmarshal(rc.Outputs, &outputs); err != nil {
		return Cell{}, &fieldError{path: "outputs", err: fmt.Errorf("expected array")}
	}
	cell.Outputs = make([]Output, 0, len(outputs))
	for j, ro := range outputs {
		out, err := parseOutput(ro)
		if err != nil {
			prefix := fmt.Sprintf("outputs[%d]", j)
			if fe, ok := err.(*fieldError); ok {
				return Cell{}, &fieldError{path: prefix + "." + fe.path, err: fe.err}
			}
			return Cell{}, &fieldError{path: prefix, err: err}
		}
		cell.Outputs = append(cell.Outputs, out)
	}
	return cell, nil
}

func parseOutput(data json.RawMessage) (Output, error) {
	var ro rawOutput
	if err := json.Unmarshal(data, &ro); err != nil {
		return Output{}, fmt.Errorf("expected output object")
	}

	var out Output
	if err := decodeString(ro.OutputType, &out.OutputType); err != nil {
		return Output{}, &fieldError{path: "output_type", err: err}
	}
	if err := json.Unmarshal(orNull(ro.Text), &out.Text); err != nil {
		return Output{}, &fieldError{path: "text", err: err}
	}
	return out, nil
}

// fieldError carries the dotted path of a nested field that failed to
// decode, relative to the enclosing cell.
type fieldError struct {
	path string
	err  error
}

func (e *fieldError) Error() string { return e.path + ": " + e.err.Error() }

// decodeString decodes an optional JSON string. Missing and null leave dst
// empty; any other non-string value is an error.
func decodeString(data json.RawMessage, dst *string) error {
	if isNull(data) {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("expected string")
	}
	return nil
}

func isNull(data json.RawMessage) bool {
	d := bytes.TrimSpace(data)
	return len(d) == 0 || bytes.Equal(d, []byte("null"))
}

func orNull(data json.RawMessage) json.RawMessage {
	if len(data) == 0 {
		return json.RawMessage("null")
	}
	return data
}
