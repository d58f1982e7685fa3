package assistant

import "fmt"

// ValidationError reports missing or malformed user input
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", msg)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// UnsupportedImageError reports an image whose content is not an accepted type
type UnsupportedImageError struct {
	MIMEType string
}

func (e *UnsupportedImageError) Error() string {
	return fmt.Sprintf("unsupported image type %q: expected image/jpeg or image/png", e.MIMEType)
}
