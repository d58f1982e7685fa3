// Package schemas validates structured input documents against the embedded JSON Schemas.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/jonathan/gemini-assistant/schemas"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks a JSON document against the embedded schema with the given file name
func Validate(schemaName string, data []byte) error {
	content, err := schemafiles.Get(schemaName)
	if err != nil {
		return &SchemaLoadError{Path: schemaName, Message: "schema not embedded", Cause: err}
	}
	return validate(schemaName, gojsonschema.NewStringLoader(content), gojsonschema.NewBytesLoader(data))
}

// ValidateResumeFields checks a resume fields document
func ValidateResumeFields(data []byte) error {
	return Validate(schemafiles.ResumeFields, data)
}

// ValidateCoverLetterFields checks a cover letter fields document
func ValidateCoverLetterFields(data []byte) error {
	return Validate(schemafiles.CoverLetterFields, data)
}

func validate(path string, schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    path,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	// Build structured error
	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
