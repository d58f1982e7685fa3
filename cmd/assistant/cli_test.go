package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_ListsModes(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := exec.Command(binaryPath, "--help").CombinedOutput()
	require.NoError(t, err)

	for _, name := range []string{"ask", "summarize", "resume", "cover-letter", "describe-image", "serve", "shell"} {
		assert.Contains(t, string(output), name)
	}
}

func TestCommands_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "Ask without question or audio",
			args:        []string{"ask"},
			errorString: "a question or --audio is required",
		},
		{
			name:        "Summarize missing --in flag",
			args:        []string{"summarize"},
			errorString: "required",
		},
		{
			name:        "Summarize unsupported format",
			args:        []string{"summarize", "--in", "notes.txt"},
			errorString: "unsupported",
		},
		{
			name:        "Resume without name",
			args:        []string{"resume", "--email", "jane@example.com"},
			errorString: "name is required",
		},
		{
			name:        "Resume autofill without job title",
			args:        []string{"resume", "--name", "Jane Doe", "--autofill"},
			errorString: "--autofill requires a job title",
		},
		{
			name:        "Cover letter missing subject",
			args:        []string{"cover-letter", "--from-name", "Jane", "--to-name", "Sam"},
			errorString: "invalid cover letter fields",
		},
		{
			name:        "Describe image missing --in flag",
			args:        []string{"describe-image"},
			errorString: "required",
		},
	}

	binaryPath := getBinaryPath(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, tt.args...)
			cmd.Dir = t.TempDir()
			output, err := cmd.CombinedOutput()

			assert.Error(t, err)
			assert.Contains(t, string(output), tt.errorString)
		})
	}
}

func TestCommands_MissingAPIKey(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	doc := filepath.Join(tmpDir, "notes.pdf")
	require.NoError(t, os.WriteFile(doc, []byte("%PDF-1.4"), 0644))

	for _, args := range [][]string{
		{"ask", "What is Go?"},
		{"summarize", "--in", doc},
		{"resume", "--name", "Jane Doe"},
	} {
		t.Run(args[0], func(t *testing.T) {
			cmd := exec.Command(binaryPath, args...)
			// Run outside the repo so no .env is picked up
			cmd.Dir = tmpDir
			cmd.Env = envWithout("GEMINI_API_KEY")
			output, err := cmd.CombinedOutput()

			assert.Error(t, err)
			assert.Contains(t, string(output), "API key is required")
		})
	}
}

func TestSummarizeCommand_DigestOnlyWithoutAPIKey(t *testing.T) {
	binaryPath := getBinaryPath(t)
	path := writeDocx(t, "The quarterly report shows steady growth across every region we track.")

	cmd := exec.Command(binaryPath, "summarize", "--in", path, "--digest-only")
	cmd.Dir = t.TempDir()
	cmd.Env = envWithout("GEMINI_API_KEY")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "steady growth")
}
