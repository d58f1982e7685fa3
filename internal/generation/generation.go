// Package generation wraps an llm.Client so that remote failures never escape to callers.
// A failed call yields an empty Result carrying the cause, and exactly one Notice.
package generation

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/gemini-assistant/internal/llm"
	"github.com/jonathan/gemini-assistant/internal/prompts"
)

// FailureMessage is the user-facing notice text for a failed generation
const FailureMessage = "AI content generation failed. Please try again later."

// Operation names reported in notices and errors
const (
	OpText  = "text"
	OpImage = "image"
)

// Result is the outcome of one generation call.
// Text is the model response with surrounding whitespace trimmed, and is empty
// whenever Err is non-nil.
type Result struct {
	Text string
	Err  error
}

// OK reports whether the call succeeded
func (r Result) OK() bool {
	return r.Err == nil
}

// Notice is a non-fatal message for the interactive layer
type Notice struct {
	Operation string
	Message   string
}

// Notifier receives notices for failed calls
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Notice)

// Notify calls f(n)
func (f NotifierFunc) Notify(n Notice) { f(n) }

// Option configures a Generator
type Option func(*Generator)

// WithNotifier routes failure notices to n
func WithNotifier(n Notifier) Option {
	return func(g *Generator) {
		g.notifier = n
	}
}

// WithMetrics counts calls and failures on m
func WithMetrics(m *Metrics) Option {
	return func(g *Generator) {
		g.metrics = m
	}
}

// Generator produces text from prompts via a remote model
type Generator struct {
	client   llm.Client
	notifier Notifier
	metrics  *Metrics
}

// New creates a Generator over client
func New(client llm.Client, opts ...Option) *Generator {
	g := &Generator{client: client}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends prompt to the text model
func (g *Generator) Generate(ctx context.Context, prompt string) Result {
	text, err := g.client.GenerateContent(ctx, prompt, llm.TierText)
	return g.finish(OpText, text, err)
}

// GenerateWithImage asks the vision model to describe image in detail.
// The MIME type is sniffed from the bytes.
func (g *Generator) GenerateWithImage(ctx context.Context, image []byte) Result {
	if len(image) == 0 {
		return g.finish(OpImage, "", errors.New("image is empty"))
	}
	media := llm.Media{MIMEType: http.DetectContentType(image), Data: image}
	text, err := g.client.GenerateWithMedia(ctx, prompts.ImageDescription(), media, llm.TierVision)
	return g.finish(OpImage, text, err)
}

func (g *Generator) finish(op string, text string, err error) Result {
	g.metrics.observe(op, err)
	if err != nil {
		genErr := &Error{Operation: op, Cause: err}
		log.Printf("[generation] %v", genErr)
		if g.notifier != nil {
			g.notifier.Notify(Notice{Operation: op, Message: FailureMessage})
		}
		return Result{Err: genErr}
	}
	return Result{Text: strings.TrimSpace(text)}
}
