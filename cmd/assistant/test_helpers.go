package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// getBinaryPath returns the absolute path to the assistant binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "assistant"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath, err := filepath.Abs(filepath.Join("..", "..", "bin", binaryName))
	if err != nil {
		t.Fatalf("failed to resolve binary path: %v", err)
	}
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/assistant ./cmd/assistant'", binaryPath)
	}

	return binaryPath
}

// envWithout returns the current environment minus the named variables
func envWithout(names ...string) []string {
	var env []string
	for _, kv := range os.Environ() {
		drop := false
		for _, name := range names {
			if strings.HasPrefix(kv, name+"=") {
				drop = true
				break
			}
		}
		if !drop {
			env = append(env, kv)
		}
	}
	return env
}
