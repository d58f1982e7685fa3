package generation

import "fmt"

// Error represents a failed remote generation call
type Error struct {
	Operation string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed (%s): %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("generation failed (%s)", e.Operation)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
