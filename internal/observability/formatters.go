// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/gemini-assistant/internal/digest"
	"github.com/jonathan/gemini-assistant/internal/generation"
	"github.com/jonathan/gemini-assistant/internal/resume"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// previewLines is the number of extracted lines shown
	previewLines = 3
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExtracted outputs size and a short preview of extracted document text.
func (p *Printer) PrintExtracted(path, text string) {
	var sb strings.Builder
	lines := strings.Split(text, "\n")
	sb.WriteString(fmt.Sprintf("File:     %s\n", path))
	sb.WriteString(fmt.Sprintf("Chars:    %d\n", utf8.RuneCountInString(text)))
	sb.WriteString(fmt.Sprintf("Lines:    %d\n", len(lines)))

	if strings.TrimSpace(text) != "" {
		sb.WriteString("\n")
		count := min(len(lines), previewLines)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  %s\n", lines[i]))
		}
		if len(lines) > previewLines {
			sb.WriteString(fmt.Sprintf("  ... and %d more lines\n", len(lines)-previewLines))
		}
	}

	p.printBox("EXTRACTED TEXT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSentences outputs the segmented sentences and which were discarded as trivial.
func (p *Printer) PrintSentences(sentences []digest.Sentence) {
	if len(sentences) == 0 {
		return
	}

	kept := 0
	for _, s := range sentences {
		if !s.Trivial {
			kept++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Sentences: %d (kept %d)\n\n", len(sentences), kept))

	count := min(len(sentences), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := sentences[i]
		mark := "✓"
		if s.Trivial {
			mark = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s [%2d] %s\n", mark, s.Tokens, truncate(s.Text, 45)))
	}
	if len(sentences) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more sentences\n", len(sentences)-maxItemsToShow))
	}

	p.printBox("SEGMENTED SENTENCES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDigest outputs the pre-summary digest sent for refinement.
func (p *Printer) PrintDigest(d string) {
	if d == "" {
		p.printBox("DIGEST", "(no qualifying sentences)")
		return
	}
	p.printBox("DIGEST", d)
}

// PrintResult outputs a generation outcome, or the failure notice.
func (p *Printer) PrintResult(title string, r generation.Result) {
	if !r.OK() {
		p.printBox(title, "⚠ "+generation.FailureMessage)
		return
	}
	p.printBox(title, fmt.Sprintf("Chars: %d\n\n%s", utf8.RuneCountInString(r.Text), r.Text))
}

// PrintResume outputs the sections present in an assembled resume.
func (p *Printer) PrintResume(path string, f resume.Fields) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", path))
	sb.WriteString(fmt.Sprintf("Name:     %s\n", f.Name))
	if f.JobTitle != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", f.JobTitle))
	}
	sb.WriteString("\n")

	sections := []struct {
		name string
		text string
	}{
		{resume.HeadingJobDescription, f.JobDescription},
		{resume.HeadingObjective, f.Objective},
		{resume.HeadingEducation, f.Education},
		{resume.HeadingExperience, f.Experience},
		{resume.HeadingSkills, f.Skills},
	}
	for _, s := range sections {
		mark := "✓"
		if s.text == "" {
			mark = "·"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", mark, s.name))
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}
