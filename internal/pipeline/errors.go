package pipeline

import (
	"errors"
	"fmt"
)

// LineError locates a line that could not be decoded.
type LineError struct {
	File string
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// WriteError is a non-duplicate store failure during a flush.
type WriteError struct {
	File    string
	Records int
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %d records from %s: %v", e.Records, e.File, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadError is a failure to open or read an input file.
type ReadError struct {
	File string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.File, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

func isLoadError(err error) bool {
	var le *LineError
	var we *WriteError
	return errors.As(err, &le) || errors.As(err, &we)
}
