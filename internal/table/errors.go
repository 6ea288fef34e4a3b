package table

import (
	"errors"
	"fmt"
)

// ErrMissingColumn is returned when a required column is not in the header.
var ErrMissingColumn = errors.New("missing column")

// ParseError reports a cell or header that could not be interpreted.
type ParseError struct {
	Path   string
	Line   int // 1-based CSV line, 0 when not tied to a row
	Column string
	Value  string
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "<input>"
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	if e.Value != "" {
		return fmt.Sprintf("parse %s: column %q value %q: %v", loc, e.Column, e.Value, e.Err)
	}
	return fmt.Sprintf("parse %s: column %q: %v", loc, e.Column, e.Err)
}

// Unwrap allows errors.Is and errors.As to see the cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}
