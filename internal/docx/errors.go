package docx

import "fmt"

// FormatError reports a file that is not a readable WordprocessingML package
type FormatError struct {
	Path    string
	Message string
	Cause   error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid docx %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid docx %s: %s", e.Path, e.Message)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}
