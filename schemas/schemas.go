// Package schemas embeds the JSON Schemas for structured input files.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names
const (
	ResumeFields      = "resume_fields.schema.json"
	CoverLetterFields = "cover_letter_fields.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Get returns the content of a schema by file name
func Get(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("schema %s not found: %w", name, err)
	}
	return string(data), nil
}

// Names lists every embedded schema
func Names() []string {
	return []string{ResumeFields, CoverLetterFields}
}
