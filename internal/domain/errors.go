package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrShortLine is returned for lines that end inside the mandatory header.
	ErrShortLine = errors.New("line shorter than mandatory header")
	// ErrTruncatedSection is returned when a section's span runs past the end of the line.
	ErrTruncatedSection = errors.New("section truncated")
	// ErrInvalidTimestamp is returned when the observation time does not parse.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// FormatError describes a line that cannot be decoded.
type FormatError struct {
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
