package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/gemini-assistant/internal/prompts"
	"github.com/jonathan/gemini-assistant/internal/resume"
	"github.com/jonathan/gemini-assistant/internal/schemas"
)

// readFieldsDocument loads a JSON or YAML field file and returns it as JSON.
// YAML input is converted so that both formats go through the same schema.
func readFieldsDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fields file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML fields file: %w", err)
		}
		data, err = json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert fields file to JSON: %w", err)
		}
	}
	return data, nil
}

func loadResumeFields(path string) (resume.Fields, error) {
	data, err := readFieldsDocument(path)
	if err != nil {
		return resume.Fields{}, err
	}
	if err := schemas.ValidateResumeFields(data); err != nil {
		return resume.Fields{}, err
	}
	var f resume.Fields
	if err := json.Unmarshal(data, &f); err != nil {
		return resume.Fields{}, fmt.Errorf("failed to decode resume fields: %w", err)
	}
	return f, nil
}

func loadCoverLetterFields(path string) (prompts.CoverLetterFields, error) {
	data, err := readFieldsDocument(path)
	if err != nil {
		return prompts.CoverLetterFields{}, err
	}
	if err := schemas.ValidateCoverLetterFields(data); err != nil {
		return prompts.CoverLetterFields{}, err
	}
	var f prompts.CoverLetterFields
	if err := json.Unmarshal(data, &f); err != nil {
		return prompts.CoverLetterFields{}, fmt.Errorf("failed to decode cover letter fields: %w", err)
	}
	return f, nil
}

// overlay copies every non-empty flag value over its field
func overlay(pairs map[*string]string) {
	for dst, v := range pairs {
		if v != "" {
			*dst = v
		}
	}
}
