// Package upload stages user-supplied streams as short-lived temp files.
package upload

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// File is a staged temp file. Remove it as soon as it has been read.
type File struct {
	path string
	once sync.Once
}

// Stage copies r into dir under a unique name that keeps the original
// base name, so its suffix still selects the document format.
// An empty dir means the OS temp directory.
func Stage(dir, name string, r io.Reader) (*File, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		base = "upload"
	}
	path := filepath.Join(dir, uuid.NewString()+"-"+base)

	out, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create staged file: %w", err)
	}
	f := &File{path: path}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		f.Remove()
		return nil, fmt.Errorf("failed to write staged file: %w", err)
	}
	if err := out.Close(); err != nil {
		f.Remove()
		return nil, fmt.Errorf("failed to close staged file: %w", err)
	}
	return f, nil
}

// Path returns the location of the staged file
func (f *File) Path() string {
	return f.path
}

// Remove deletes the staged file. It is safe to call more than once and never
// fails: errors are logged.
func (f *File) Remove() {
	f.once.Do(func() {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			log.Printf("[upload] failed to remove %s: %v", f.path, err)
		}
	})
}
