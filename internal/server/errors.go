package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/gemini-assistant/internal/assistant"
	"github.com/jonathan/gemini-assistant/internal/extraction"
	"github.com/jonathan/gemini-assistant/internal/resume"
	"github.com/jonathan/gemini-assistant/internal/schemas"
	"github.com/jonathan/gemini-assistant/internal/transcribe"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation       *ErrValidation
		inputValidation  *assistant.ValidationError
		resumeValidation *resume.ValidationError
		schemaValidation *schemas.ValidationError
		schemaLoad       *schemas.SchemaLoadError
		unsupportedImage *assistant.UnsupportedImageError
		transcription    *transcribe.Error
		readErr          *extraction.ReadError
		tooLarge         *http.MaxBytesError
	)

	switch {
	case errors.Is(err, extraction.ErrUnsupportedFormat), errors.As(err, &unsupportedImage):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &validation), errors.As(err, &inputValidation),
		errors.As(err, &resumeValidation), errors.As(err, &schemaValidation),
		errors.As(err, &schemaLoad):
		return http.StatusBadRequest
	case errors.As(err, &transcription), errors.As(err, &readErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
