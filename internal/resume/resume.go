// Package resume lays out resume fields as a word-processor document.
package resume

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/gemini-assistant/internal/docx"
)

// Section headings, in document order
const (
	HeadingJobDescription = "Job Description"
	HeadingObjective      = "Objective"
	HeadingEducation      = "Education"
	HeadingExperience     = "Experience"
	HeadingSkills         = "Skills"
)

// fileSuffix is appended to the underscored name
const fileSuffix = "_Resume.docx"

// Fields is the structured input of a resume
type Fields struct {
	Name           string `json:"name" yaml:"name" validate:"required"`
	Email          string `json:"email,omitempty" yaml:"email" validate:"omitempty,email"`
	Phone          string `json:"phone,omitempty" yaml:"phone"`
	Education      string `json:"education,omitempty" yaml:"education"`
	Experience     string `json:"experience,omitempty" yaml:"experience"`
	Skills         string `json:"skills,omitempty" yaml:"skills"`
	JobTitle       string `json:"job_title,omitempty" yaml:"job_title"`
	JobDescription string `json:"job_description,omitempty" yaml:"job_description"`
	Objective      string `json:"objective,omitempty" yaml:"objective"`
}

var validate = validator.New()

// Validate checks required fields and formats
func (f Fields) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Message: "name is required"}
	}
	// The name becomes the file name, so it must not carry path elements
	if strings.ContainsAny(f.Name, `/\`) || strings.Contains(f.Name, "..") {
		return &ValidationError{Message: "name must not contain path separators or '..'"}
	}
	if err := validate.Struct(f); err != nil {
		return &ValidationError{Message: "field validation failed", Cause: err}
	}
	return nil
}

// FileName returns the output file name for a person: spaces become underscores
func FileName(name string) string {
	return strings.ReplaceAll(name, " ", "_") + fileSuffix
}

// Compose lays out the fields as an in-memory document.
// Optional sections are skipped when their text is empty.
func Compose(f Fields) *docx.Document {
	doc := docx.New()

	title := f.Name
	if f.JobTitle != "" {
		title = fmt.Sprintf("%s - %s", f.Name, f.JobTitle)
	}
	doc.AddHeading(title, 1)

	if f.JobDescription != "" {
		doc.AddHeading(HeadingJobDescription, 2)
		doc.AddParagraph(f.JobDescription)
		doc.AddParagraph("")
	}
	if f.Objective != "" {
		doc.AddHeading(HeadingObjective, 2)
		doc.AddParagraph(f.Objective)
		doc.AddParagraph("")
	}

	doc.AddParagraph(fmt.Sprintf("Email: %s | Phone: %s", f.Email, f.Phone))
	doc.AddParagraph("")

	doc.AddHeading(HeadingEducation, 2)
	doc.AddParagraph(f.Education)
	doc.AddParagraph("")

	doc.AddHeading(HeadingExperience, 2)
	doc.AddParagraph(f.Experience)
	doc.AddParagraph("")

	doc.AddHeading(HeadingSkills, 2)
	doc.AddParagraph(f.Skills)

	return doc
}

// Build writes the resume into the working directory and returns its file name.
// An existing file of the same name is overwritten.
func Build(f Fields) (string, error) {
	return BuildIn("", f)
}

// BuildIn writes the resume into dir and returns the written path.
// An empty dir means the working directory.
func BuildIn(dir string, f Fields) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, FileName(f.Name))
	if filepath.Dir(path) != filepath.Clean(dir) {
		return "", &ValidationError{Message: fmt.Sprintf("resume file %q escapes %s", FileName(f.Name), dir)}
	}
	if err := Compose(f).Save(path); err != nil {
		return "", fmt.Errorf("failed to save resume: %w", err)
	}
	return path, nil
}
