package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/gemini-assistant/internal/generation"
	"github.com/jonathan/gemini-assistant/internal/prompts"
	"github.com/jonathan/gemini-assistant/internal/resume"
	"github.com/jonathan/gemini-assistant/internal/schemas"
	schemafiles "github.com/jonathan/gemini-assistant/schemas"
)

// docxContentType is the media type of generated resumes
const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// noticeHeader carries generation notices on non-JSON responses
const noticeHeader = "X-Generation-Notice"

// TextResponse is the body of every text-producing endpoint
type TextResponse struct {
	Text   string `json:"text"`
	Notice string `json:"notice,omitempty"`
}

// AskRequest represents the request body for /ask
type AskRequest struct {
	Question string `json:"question"`
}

// VoiceResponse represents the response for /ask/voice
type VoiceResponse struct {
	Transcript string `json:"transcript"`
	TextResponse
}

// SummarizeResponse represents the response for /summarize
type SummarizeResponse struct {
	Digest string `json:"digest"`
	TextResponse
}

// ExtrasRequest represents the request body for /resume/extras
type ExtrasRequest struct {
	JobTitle string `json:"job_title"`
}

// ExtrasResponse represents the response for /resume/extras
type ExtrasResponse struct {
	JobDescription string `json:"job_description"`
	Objective      string `json:"objective"`
	Notice         string `json:"notice,omitempty"`
}

// notice returns the failure message when any result failed
func notice(results ...generation.Result) string {
	for _, r := range results {
		if r.Err != nil {
			return generation.FailureMessage
		}
	}
	return ""
}

func textResponse(r generation.Result) TextResponse {
	return TextResponse{Text: r.Text, Notice: notice(r)}
}

// readBody reads a bounded JSON body; schemaName, if set, validates it first
func (s *Server) readBody(w http.ResponseWriter, r *http.Request, schemaName string, v any) error {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUploadBytes))
	if err != nil {
		return err
	}
	if schemaName != "" {
		if err := schemas.Validate(schemaName, data); err != nil {
			return err
		}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// formFile reads one multipart part fully
func (s *Server) formFile(w http.ResponseWriter, r *http.Request, field string) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", &ErrValidation{Field: field, Message: "multipart file is required"}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}
	return data, header.Filename, nil
}

// handleAsk answers a typed question
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := s.readBody(w, r, "", &req); err != nil {
		s.failResponse(w, err)
		return
	}

	result, err := s.assistant.Ask(r.Context(), req.Question)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, textResponse(result))
}

// handleAskVoice transcribes an uploaded recording and answers it
func (s *Server) handleAskVoice(w http.ResponseWriter, r *http.Request) {
	audio, _, err := s.formFile(w, r, "audio")
	if err != nil {
		s.failResponse(w, err)
		return
	}

	mimeType := r.FormValue("mime_type")
	answer, err := s.assistant.AskByVoice(r.Context(), audio, mimeType)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, VoiceResponse{
		Transcript:   answer.Transcript,
		TextResponse: textResponse(answer.Answer),
	})
}

// handleSummarize digests and refines an uploaded .docx or .pdf
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.failResponse(w, &ErrValidation{Field: "file", Message: "multipart file is required"})
		return
	}
	defer file.Close()

	summary, err := s.assistant.SummarizeUpload(r.Context(), header.Filename, file)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, SummarizeResponse{
		Digest:       summary.Digest,
		TextResponse: textResponse(summary.Refined),
	})
}

// handleResumeExtras drafts a job description and objective for a title
func (s *Server) handleResumeExtras(w http.ResponseWriter, r *http.Request) {
	var req ExtrasRequest
	if err := s.readBody(w, r, "", &req); err != nil {
		s.failResponse(w, err)
		return
	}
	if req.JobTitle == "" {
		s.failResponse(w, &ErrValidation{Field: "job_title", Message: "is required"})
		return
	}

	extras := s.assistant.DraftExtras(r.Context(), req.JobTitle)
	s.jsonResponse(w, http.StatusOK, ExtrasResponse{
		JobDescription: extras.JobDescription.Text,
		Objective:      extras.Objective.Text,
		Notice:         notice(extras.JobDescription, extras.Objective),
	})
}

// handleResume builds a resume and returns the .docx.
// ?autofill=true generates a missing job description and objective.
func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	var fields resume.Fields
	if err := s.readBody(w, r, schemafiles.ResumeFields, &fields); err != nil {
		s.failResponse(w, err)
		return
	}
	autofill, _ := strconv.ParseBool(r.URL.Query().Get("autofill"))

	dir, err := os.MkdirTemp(s.workDir, "resume-*")
	if err != nil {
		s.failResponse(w, fmt.Errorf("failed to create work directory: %w", err))
		return
	}
	defer os.RemoveAll(dir)

	outcome, err := s.assistant.GenerateResumeIn(r.Context(), dir, fields, autofill)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	data, err := os.ReadFile(outcome.Path)
	if err != nil {
		s.failResponse(w, fmt.Errorf("failed to read resume: %w", err))
		return
	}

	if n := notice(outcome.Extras.JobDescription, outcome.Extras.Objective); n != "" {
		w.Header().Set(noticeHeader, n)
	}
	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(outcome.Path)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleCoverLetter drafts a cover letter
func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	var fields prompts.CoverLetterFields
	if err := s.readBody(w, r, schemafiles.CoverLetterFields, &fields); err != nil {
		s.failResponse(w, err)
		return
	}

	result, err := s.assistant.CoverLetter(r.Context(), fields)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, textResponse(result))
}

// handleDescribeImage describes an uploaded JPEG or PNG
func (s *Server) handleDescribeImage(w http.ResponseWriter, r *http.Request) {
	image, _, err := s.formFile(w, r, "image")
	if err != nil {
		s.failResponse(w, err)
		return
	}

	result, err := s.assistant.DescribeImage(r.Context(), image)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, textResponse(result))
}
