package extraction

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is matched by every UnsupportedFormatError via errors.Is
var ErrUnsupportedFormat = errors.New("unsupported file format")

// UnsupportedFormatError reports a file whose suffix is neither .docx nor .pdf
type UnsupportedFormatError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q for %s: please provide a .docx or .pdf file", e.Extension, e.Path)
}

// Is makes errors.Is(err, ErrUnsupportedFormat) succeed
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// ReadError wraps a failure of the underlying document reader
type ReadError struct {
	Path   string
	Format Format
	Cause  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s document %s: %v", e.Format, e.Path, e.Cause)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
