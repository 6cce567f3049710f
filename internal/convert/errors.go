// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "fmt"

// NotFoundError reports that a notebook path does not resolve to a readable
// file.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("notebook not found: %s: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// MalformedInputError reports content that is not valid JSON or not shaped
// like a notebook. Location is a path such as "cells[2].outputs[0].text",
// a byte offset for syntax errors, or empty when the whole document is at
// fault.
type MalformedInputError struct {
	Source   string
	Location string
	Err      error
}

func (e *MalformedInputError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("malformed notebook %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("malformed notebook %s at %s: %v", e.Source, e.Location, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }
