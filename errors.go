package groupby

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
var (
	ErrEmptyInput        = errors.New("empty input")
	ErrColumnNotFound    = errors.New("column not found")
	ErrFormat            = errors.New("date format")
	ErrDecode            = errors.New("decode")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// LabeledError is a user facing error: a title, a short label for the
// offending location, and the span it points at.
type LabeledError struct {
	Title string
	Label string
	Span  Span
	err   error
}

func labeled(err error, title, label string, span Span) *LabeledError {
	return &LabeledError{Title: title, Label: label, Span: span, err: err}
}

func (e *LabeledError) Error() string {
	if e.Span.IsZero() {
		return fmt.Sprintf("%s: %s", e.Title, e.Label)
	}
	return fmt.Sprintf("%s: %s (at %s)", e.Title, e.Label, e.Span)
}

func (e *LabeledError) Unwrap() error { return e.err }
