package analysis

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrNoColumns is returned for input without a header row.
var ErrNoColumns = errors.New("no columns to parse from file")

// ErrTooFewColumns is returned when a computation needs more numeric columns
// than it was given.
var ErrTooFewColumns = errors.New("not enough numeric columns")

// NotFoundError indicates the dataset file does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dataset file %q not found", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ParseError indicates the dataset exists but cannot be read as CSV.
type ParseError struct {
	Path string
	Line int // 0 when the failure is not tied to a line
	Err  error
}

func (e *ParseError) Error() string {
	name := filepath.Base(e.Path)
	if e.Path == "" {
		name = "input"
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", name, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
