package ingest

import (
	"errors"
	"fmt"
)

// ErrMissingColumn is returned when a row is too short for a configured column.
var ErrMissingColumn = errors.New("missing column")

// ParseError reports a malformed field.
type ParseError struct {
	// Name is the input the row was read from, if known.
	Name string
	// Line is the 1-based line number in the input.
	Line int
	// Column is the 0-based column index.
	Column int
	// Field is the logical field name (id, age, income, score).
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s:%d: column %d (%s): %v", e.Name, e.Line, e.Column, e.Field, e.Err)
	}
	return fmt.Sprintf("line %d: column %d (%s): %v", e.Line, e.Column, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
