package transcribe

import "fmt"

// Error reports that recorded speech could not be turned into text
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transcription failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("transcription failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
