// Package extraction turns uploaded documents into plain text.
package extraction

import (
	"path/filepath"
	"strings"

	"github.com/jonathan/gemini-assistant/internal/docx"
)

// Format is the closed set of document layouts the extractor understands
type Format int

const (
	// FormatParagraph documents (.docx) are read paragraph by paragraph
	FormatParagraph Format = iota + 1
	// FormatPage documents (.pdf) are read page by page
	FormatPage
)

func (f Format) String() string {
	switch f {
	case FormatParagraph:
		return "paragraph-based"
	case FormatPage:
		return "page-based"
	default:
		return "unknown"
	}
}

// DetectFormat resolves the format from the file suffix, case-insensitively.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".docx":
		return FormatParagraph, nil
	case ".pdf":
		return FormatPage, nil
	default:
		return 0, &UnsupportedFormatError{Path: path, Extension: ext}
	}
}

// ParagraphReader returns a document's paragraphs in order
type ParagraphReader interface {
	ReadParagraphs(path string) ([]string, error)
}

// PageReader returns a document's per-page text in order
type PageReader interface {
	ReadPages(path string) ([]string, error)
}

// ParagraphReaderFunc adapts a function to ParagraphReader
type ParagraphReaderFunc func(path string) ([]string, error)

// ReadParagraphs calls f(path)
func (f ParagraphReaderFunc) ReadParagraphs(path string) ([]string, error) { return f(path) }

// PageReaderFunc adapts a function to PageReader
type PageReaderFunc func(path string) ([]string, error)

// ReadPages calls f(path)
func (f PageReaderFunc) ReadPages(path string) ([]string, error) { return f(path) }

// Extractor dispatches a file to the reader for its format
type Extractor struct {
	paragraphs ParagraphReader
	pages      PageReader
}

// New returns an Extractor backed by the docx and PDF readers
func New() *Extractor {
	return NewWithReaders(ParagraphReaderFunc(docx.ReadParagraphs), PageReaderFunc(ReadPDFPages))
}

// NewWithReaders returns an Extractor with injected readers
func NewWithReaders(paragraphs ParagraphReader, pages PageReader) *Extractor {
	return &Extractor{paragraphs: paragraphs, pages: pages}
}

// Extract returns the file's text with paragraph or page boundaries collapsed to
// newlines. It does not open, close or delete anything the caller owns.
func (e *Extractor) Extract(path string) (string, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return "", err
	}

	var segments []string
	switch format {
	case FormatParagraph:
		segments, err = e.paragraphs.ReadParagraphs(path)
	case FormatPage:
		segments, err = e.pages.ReadPages(path)
	}
	if err != nil {
		return "", &ReadError{Path: path, Format: format, Cause: err}
	}

	return strings.Join(segments, "\n"), nil
}

// Extract runs the default Extractor on path
func Extract(path string) (string, error) {
	return New().Extract(path)
}
