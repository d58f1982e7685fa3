// Package assistant orchestrates the five task modes: question answering,
// document summarization, resume generation, cover letters and image analysis.
// Every interactive surface calls through Service.
package assistant

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/gemini-assistant/internal/digest"
	"github.com/jonathan/gemini-assistant/internal/extraction"
	"github.com/jonathan/gemini-assistant/internal/generation"
	"github.com/jonathan/gemini-assistant/internal/prompts"
	"github.com/jonathan/gemini-assistant/internal/resume"
	"github.com/jonathan/gemini-assistant/internal/transcribe"
	"github.com/jonathan/gemini-assistant/internal/upload"
)

// AcceptedImageTypes lists the image content types DescribeImage accepts
var AcceptedImageTypes = []string{"image/jpeg", "image/png"}

// Deps are the collaborators of a Service
type Deps struct {
	Generator   *generation.Generator
	Transcriber transcribe.Transcriber
	Extractor   *extraction.Extractor
	Summarizer  *digest.Summarizer
	// DigestSize is the number of sentences kept before refinement; <= 0 uses the default
	DigestSize int
	// UploadDir receives staged uploads; empty means the OS temp directory
	UploadDir string
	// OutputDir receives generated resumes; empty means the working directory
	OutputDir string
}

// Service runs one user action at a time to completion
type Service struct {
	deps Deps
}

// New creates a Service. A nil Extractor uses the default readers.
func New(deps Deps) *Service {
	if deps.Extractor == nil {
		deps.Extractor = extraction.New()
	}
	return &Service{deps: deps}
}

// VoiceAnswer is the outcome of a spoken question
type VoiceAnswer struct {
	Transcript string
	Answer     generation.Result
}

// Summary is the outcome of document summarization
type Summary struct {
	Digest  string
	Refined generation.Result
}

// Extras are the generated resume sections derived from a job title
type Extras struct {
	JobDescription generation.Result
	Objective      generation.Result
}

// ResumeOutcome is the written resume plus any generation results used to fill it
type ResumeOutcome struct {
	Path   string
	Fields resume.Fields
	Extras Extras
}

// Ask answers a free-form question
func (s *Service) Ask(ctx context.Context, question string) (generation.Result, error) {
	if strings.TrimSpace(question) == "" {
		return generation.Result{}, &ValidationError{Field: "question", Message: "must not be empty"}
	}
	return s.deps.Generator.Generate(ctx, prompts.QA(question)), nil
}

// AskByVoice transcribes a recorded question and answers it.
// Transcription failures are returned; generation failures are in the Result.
func (s *Service) AskByVoice(ctx context.Context, audio []byte, mimeType string) (VoiceAnswer, error) {
	if s.deps.Transcriber == nil {
		return VoiceAnswer{}, fmt.Errorf("voice input is not configured")
	}
	transcript, err := s.deps.Transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return VoiceAnswer{}, err
	}
	log.Printf("[assistant] transcribed question (%d chars)", len(transcript))

	return VoiceAnswer{
		Transcript: transcript,
		Answer:     s.deps.Generator.Generate(ctx, prompts.QA(transcript)),
	}, nil
}

// SummarizeFile extracts, digests and refines a document on disk
func (s *Service) SummarizeFile(ctx context.Context, path string) (Summary, error) {
	text, err := s.deps.Extractor.Extract(path)
	if err != nil {
		return Summary{}, err
	}

	d := s.deps.Summarizer.Digest(text, s.deps.DigestSize)
	return Summary{
		Digest:  d,
		Refined: s.deps.Generator.Generate(ctx, prompts.Summary(d)),
	}, nil
}

// SummarizeUpload stages an uploaded document, summarizes it and deletes it
// on every exit path. The name's suffix selects the format.
func (s *Service) SummarizeUpload(ctx context.Context, name string, r io.Reader) (Summary, error) {
	if _, err := extraction.DetectFormat(name); err != nil {
		return Summary{}, err
	}

	f, err := upload.Stage(s.deps.UploadDir, name, r)
	if err != nil {
		return Summary{}, err
	}
	defer f.Remove()

	return s.SummarizeFile(ctx, f.Path())
}

// DraftExtras generates a job description and an objective for title.
// Nothing is generated for an empty title.
func (s *Service) DraftExtras(ctx context.Context, title string) Extras {
	if strings.TrimSpace(title) == "" {
		return Extras{}
	}
	return Extras{
		JobDescription: s.deps.Generator.Generate(ctx, prompts.JobDescription(title)),
		Objective:      s.deps.Generator.Generate(ctx, prompts.Objective(title)),
	}
}

// GenerateResume validates fields and writes the resume into the configured
// output directory. With autofill, a missing job description or objective is
// generated from the job title first.
func (s *Service) GenerateResume(ctx context.Context, fields resume.Fields, autofill bool) (ResumeOutcome, error) {
	return s.GenerateResumeIn(ctx, s.deps.OutputDir, fields, autofill)
}

// GenerateResumeIn is GenerateResume writing into dir
func (s *Service) GenerateResumeIn(ctx context.Context, dir string, fields resume.Fields, autofill bool) (ResumeOutcome, error) {
	if err := fields.Validate(); err != nil {
		return ResumeOutcome{}, err
	}

	var extras Extras
	if autofill && fields.JobTitle != "" {
		if fields.JobDescription == "" {
			extras.JobDescription = s.deps.Generator.Generate(ctx, prompts.JobDescription(fields.JobTitle))
			fields.JobDescription = extras.JobDescription.Text
		}
		if fields.Objective == "" {
			extras.Objective = s.deps.Generator.Generate(ctx, prompts.Objective(fields.JobTitle))
			fields.Objective = extras.Objective.Text
		}
	}

	path, err := resume.BuildIn(dir, fields)
	if err != nil {
		return ResumeOutcome{}, err
	}
	return ResumeOutcome{Path: path, Fields: fields, Extras: extras}, nil
}

// CoverLetter drafts a cover letter from the sender and recipient details
func (s *Service) CoverLetter(ctx context.Context, fields prompts.CoverLetterFields) (generation.Result, error) {
	if err := fields.Validate(); err != nil {
		return generation.Result{}, &ValidationError{Message: "invalid cover letter fields", Cause: err}
	}
	return s.deps.Generator.Generate(ctx, prompts.CoverLetter(fields)), nil
}

// DescribeImage describes a JPEG or PNG image
func (s *Service) DescribeImage(ctx context.Context, image []byte) (generation.Result, error) {
	if len(image) == 0 {
		return generation.Result{}, &ValidationError{Field: "image", Message: "must not be empty"}
	}
	mimeType := http.DetectContentType(image)
	if !isAcceptedImage(mimeType) {
		return generation.Result{}, &UnsupportedImageError{MIMEType: mimeType}
	}
	return s.deps.Generator.GenerateWithImage(ctx, image), nil
}

func isAcceptedImage(mimeType string) bool {
	for _, t := range AcceptedImageTypes {
		if mimeType == t {
			return true
		}
	}
	return false
}
