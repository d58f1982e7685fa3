package resume

import "fmt"

// ValidationError reports resume fields that failed validation
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid resume fields: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid resume fields: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
