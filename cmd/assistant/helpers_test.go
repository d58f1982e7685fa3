package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/gemini-assistant/internal/docx"
	"github.com/jonathan/gemini-assistant/internal/generation"
	"github.com/jonathan/gemini-assistant/internal/prompts"
	"github.com/jonathan/gemini-assistant/internal/resume"
	"github.com/jonathan/gemini-assistant/internal/schemas"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSettings_Precedence(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	path := writeFile(t, "config.yaml", "digest_size: 5\nport: 9090\n")

	cfg, err := loadSettings(path, "", false)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 5, cfg.DigestSize)
	assert.Equal(t, 9090, cfg.Port)
	assert.False(t, cfg.Verbose)

	cfg, err = loadSettings(path, "flag-key", true)
	require.NoError(t, err)
	assert.Equal(t, "flag-key", cfg.APIKey)
	assert.True(t, cfg.Verbose)
}

func TestLoadSettings_FileKeyBeatsEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	path := writeFile(t, "config.json", `{"api_key": "file-key"}`)

	cfg, err := loadSettings(path, "", false)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
}

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := loadSettings("", "", false)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.DigestSize)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadSettings_Errors(t *testing.T) {
	t.Run("missing API key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		cfg, err := loadSettings("", "", false)
		require.NoError(t, err)

		err = requireAPIKey(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key is required")
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "env-key")
		path := writeFile(t, "config.json", `{"port": 70000}`)
		_, err := loadSettings(path, "", false)
		assert.Error(t, err)
	})

	t.Run("unreadable config", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "env-key")
		_, err := loadSettings(filepath.Join(t.TempDir(), "missing.json"), "", false)
		assert.Error(t, err)
	})
}

func TestWarningNotifier(t *testing.T) {
	var buf bytes.Buffer
	warningNotifier(&buf).Notify(generation.Notice{Operation: generation.OpText, Message: generation.FailureMessage})

	assert.Equal(t, "Warning: "+generation.FailureMessage+"\n", buf.String())
}

func TestLoadResumeFields_JSONAndYAML(t *testing.T) {
	want := resume.Fields{Name: "Jane Doe", Email: "jane@example.com", JobTitle: "Engineer"}

	jsonPath := writeFile(t, "fields.json", `{"name": "Jane Doe", "email": "jane@example.com", "job_title": "Engineer"}`)
	got, err := loadResumeFields(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	yamlPath := writeFile(t, "fields.yaml", "name: Jane Doe\nemail: jane@example.com\njob_title: Engineer\n")
	got, err = loadResumeFields(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadResumeFields_SchemaViolation(t *testing.T) {
	path := writeFile(t, "fields.json", `{"name": "Jane", "nickname": "JD"}`)

	_, err := loadResumeFields(path)

	var verr *schemas.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLoadCoverLetterFields(t *testing.T) {
	path := writeFile(t, "letter.yml", "from_name: Jane\nto_name: Sam\nsubject: Application\nto_company: Acme\n")

	got, err := loadCoverLetterFields(path)
	require.NoError(t, err)
	assert.Equal(t, prompts.CoverLetterFields{
		SenderFirstName:    "Jane",
		RecipientFirstName: "Sam",
		Subject:            "Application",
		RecipientCompany:   "Acme",
	}, got)

	bad := writeFile(t, "letter.json", `{"from_name": "Jane"}`)
	_, err = loadCoverLetterFields(bad)
	assert.Error(t, err)
}

func TestResumeFields_FlagsOverrideFile(t *testing.T) {
	t.Cleanup(func() {
		resumeInputFile = ""
		resumeFlags = resume.Fields{}
	})
	resumeInputFile = writeFile(t, "fields.json", `{"name": "Jane Doe", "skills": "Go"}`)
	resumeFlags = resume.Fields{Skills: "Go, SQL", Phone: "555-0100"}

	got, err := resumeFields()
	require.NoError(t, err)
	assert.Equal(t, resume.Fields{Name: "Jane Doe", Skills: "Go, SQL", Phone: "555-0100"}, got)
}

func TestCoverLetterFields_DefaultsDate(t *testing.T) {
	t.Cleanup(func() {
		coverLetterInputFile = ""
		coverLetterFlags = prompts.CoverLetterFields{}
	})
	coverLetterFlags = prompts.CoverLetterFields{
		SenderFirstName:    "Jane",
		RecipientFirstName: "Sam",
		Subject:            "Application",
	}
	now := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

	got, err := coverLetterFields(now)
	require.NoError(t, err)
	assert.Equal(t, "March 05, 2024", got.Date)

	coverLetterFlags.Date = "April 01, 2024"
	got, err = coverLetterFields(now)
	require.NoError(t, err)
	assert.Equal(t, "April 01, 2024", got.Date)
}

func writeDocx(t *testing.T, paragraphs ...string) string {
	t.Helper()
	doc := docx.New()
	for _, p := range paragraphs {
		doc.AddParagraph(p)
	}
	path := filepath.Join(t.TempDir(), "notes.docx")
	require.NoError(t, doc.Save(path))
	return path
}

func TestPrintDigest_NoRemoteCall(t *testing.T) {
	path := writeDocx(t,
		"Short one.",
		"The quarterly report shows steady growth across every region we track.",
		"Costs went down.")

	var buf bytes.Buffer
	require.NoError(t, printDigest(&buf, path, 3, false))

	assert.Equal(t, "The quarterly report shows steady growth across every region we track.\n", buf.String())
}

func TestPrintDigest_Detailed(t *testing.T) {
	path := writeDocx(t, "Growth was steady across every region.")

	var buf bytes.Buffer
	require.NoError(t, printDigest(&buf, path, 1, true))

	assert.Contains(t, buf.String(), "Chars:")
	assert.Contains(t, buf.String(), "Growth was steady")
}

func TestPrintDigest_ExtractionError(t *testing.T) {
	var buf bytes.Buffer
	err := printDigest(&buf, filepath.Join(t.TempDir(), "missing.docx"), 3, false)

	assert.Error(t, err)
	assert.Empty(t, buf.String())
}
