// Package transcribe turns recorded speech into text using the remote model.
package transcribe

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jonathan/gemini-assistant/internal/llm"
	"github.com/jonathan/gemini-assistant/internal/prompts"
)

// DefaultMIMEType is assumed when the caller does not know the recording format
const DefaultMIMEType = "audio/wav"

// Transcriber converts audio bytes into a transcript
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// Gemini transcribes by sending the recording inline with a fixed instruction
type Gemini struct {
	client llm.Client
}

// NewGemini creates a Transcriber backed by client
func NewGemini(client llm.Client) *Gemini {
	return &Gemini{client: client}
}

// Transcribe returns the transcript. Unlike text generation, failures are
// returned to the caller as *Error.
func (g *Gemini) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", &Error{Message: "recording is empty"}
	}
	if mimeType == "" {
		mimeType = DefaultMIMEType
	}
	if !strings.HasPrefix(mimeType, "audio/") {
		if sniffed := http.DetectContentType(audio); strings.HasPrefix(sniffed, "audio/") {
			mimeType = sniffed
		}
	}

	text, err := g.client.GenerateWithMedia(ctx, prompts.Transcription(), llm.Media{
		MIMEType: mimeType,
		Data:     audio,
	}, llm.TierAudio)
	if err != nil {
		return "", &Error{Message: "remote call failed", Cause: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &Error{Message: "no speech recognized"}
	}
	return text, nil
}

// MIMETypeFromPath guesses a recording's type from its suffix, falling back to DefaultMIMEType
func MIMETypeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return "audio/mp3"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	case ".aac":
		return "audio/aac"
	case ".aiff", ".aif":
		return "audio/aiff"
	default:
		return DefaultMIMEType
	}
}
