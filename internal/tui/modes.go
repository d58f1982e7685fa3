package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonathan/gemini-assistant/internal/assistant"
	"github.com/jonathan/gemini-assistant/internal/generation"
	"github.com/jonathan/gemini-assistant/internal/prompts"
	"github.com/jonathan/gemini-assistant/internal/resume"
	"github.com/jonathan/gemini-assistant/internal/transcribe"
)

// Assistant is the subset of the assistant service the shell drives
type Assistant interface {
	Ask(ctx context.Context, question string) (generation.Result, error)
	AskByVoice(ctx context.Context, audio []byte, mimeType string) (assistant.VoiceAnswer, error)
	SummarizeFile(ctx context.Context, path string) (assistant.Summary, error)
	GenerateResume(ctx context.Context, fields resume.Fields, autofill bool) (assistant.ResumeOutcome, error)
	CoverLetter(ctx context.Context, fields prompts.CoverLetterFields) (generation.Result, error)
	DescribeImage(ctx context.Context, image []byte) (generation.Result, error)
}

// mode is one of the five task modes
type mode struct {
	name   string
	desc   string
	fields []fieldSpec
	run    func(ctx context.Context, svc Assistant, values map[string]string) resultMsg
}

type fieldSpec struct {
	key         string
	label       string
	placeholder string
}

// resultMsg carries the outcome of one action back to Update
type resultMsg struct {
	title  string
	text   string
	notice string
	err    error
}

func fromResult(title string, r generation.Result) resultMsg {
	msg := resultMsg{title: title, text: r.Text}
	if !r.OK() {
		msg.notice = generation.FailureMessage
	}
	return msg
}

var modes = []mode{
	{
		name: "Q&A",
		desc: "Ask a question, typed or recorded",
		fields: []fieldSpec{
			{key: "question", label: "Question", placeholder: "What would you like to know?"},
			{key: "audio", label: "Recording (optional)", placeholder: "path/to/question.wav"},
		},
		run: runAsk,
	},
	{
		name: "Document Summarization",
		desc: "Summarize a .docx or .pdf",
		fields: []fieldSpec{
			{key: "path", label: "Document", placeholder: "path/to/file.pdf"},
		},
		run: runSummarize,
	},
	{
		name: "Resume Generator",
		desc: "Build a .docx resume",
		fields: []fieldSpec{
			{key: "name", label: "Name", placeholder: "Jane Doe"},
			{key: "email", label: "Email"},
			{key: "phone", label: "Phone"},
			{key: "job_title", label: "Job title"},
			{key: "education", label: "Education"},
			{key: "experience", label: "Experience"},
			{key: "skills", label: "Skills"},
			{key: "autofill", label: "Autofill (y/n)", placeholder: "y"},
		},
		run: runResume,
	},
	{
		name: "Cover Letter Generator",
		desc: "Draft a cover letter",
		fields: []fieldSpec{
			{key: "from_name", label: "Your first name"},
			{key: "from_lastname", label: "Your last name"},
			{key: "from_email", label: "Your email"},
			{key: "from_profession", label: "Your profession"},
			{key: "from_phone", label: "Your phone"},
			{key: "from_address", label: "Your address"},
			{key: "to_name", label: "Recipient first name"},
			{key: "to_lastname", label: "Recipient last name"},
			{key: "to_company", label: "Company"},
			{key: "to_department", label: "Department"},
			{key: "to_address", label: "Recipient address"},
			{key: "subject", label: "Subject"},
		},
		run: runCoverLetter,
	},
	{
		name: "Image Analysis",
		desc: "Describe a JPEG or PNG",
		fields: []fieldSpec{
			{key: "path", label: "Image", placeholder: "path/to/image.png"},
		},
		run: runDescribeImage,
	},
}

func newInputs(specs []fieldSpec) []textinput.Model {
	inputs := make([]textinput.Model, len(specs))
	for i, spec := range specs {
		in := textinput.New()
		in.Placeholder = spec.placeholder
		in.CharLimit = 2000
		in.Width = 50
		inputs[i] = in
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return inputs
}

// actionCmd runs one task mode off the UI loop
func actionCmd(svc Assistant, m mode, values map[string]string) tea.Cmd {
	return func() tea.Msg {
		return m.run(context.Background(), svc, values)
	}
}

func runAsk(ctx context.Context, svc Assistant, v map[string]string) resultMsg {
	if path := v["audio"]; path != "" {
		audio, err := os.ReadFile(path)
		if err != nil {
			return resultMsg{title: "Answer", err: err}
		}
		answer, err := svc.AskByVoice(ctx, audio, transcribe.MIMETypeFromPath(path))
		if err != nil {
			return resultMsg{title: "Answer", err: err}
		}
		msg := fromResult("Answer", answer.Answer)
		msg.text = fmt.Sprintf("You asked: %s\n\n%s", answer.Transcript, msg.text)
		return msg
	}

	r, err := svc.Ask(ctx, v["question"])
	if err != nil {
		return resultMsg{title: "Answer", err: err}
	}
	return fromResult("Answer", r)
}

func runSummarize(ctx context.Context, svc Assistant, v map[string]string) resultMsg {
	summary, err := svc.SummarizeFile(ctx, v["path"])
	if err != nil {
		return resultMsg{title: "Summary", err: err}
	}
	return fromResult("Summary", summary.Refined)
}

func runResume(ctx context.Context, svc Assistant, v map[string]string) resultMsg {
	fields := resume.Fields{
		Name:       v["name"],
		Email:      v["email"],
		Phone:      v["phone"],
		JobTitle:   v["job_title"],
		Education:  v["education"],
		Experience: v["experience"],
		Skills:     v["skills"],
	}
	autofill := strings.HasPrefix(strings.ToLower(v["autofill"]), "y")

	outcome, err := svc.GenerateResume(ctx, fields, autofill)
	if err != nil {
		return resultMsg{title: "Resume", err: err}
	}
	msg := resultMsg{title: "Resume", text: "Resume saved to " + outcome.Path}
	for _, r := range []generation.Result{outcome.Extras.JobDescription, outcome.Extras.Objective} {
		if r.Err != nil {
			msg.notice = generation.FailureMessage
		}
	}
	return msg
}

func runCoverLetter(ctx context.Context, svc Assistant, v map[string]string) resultMsg {
	fields := prompts.CoverLetterFields{
		SenderFirstName:     v["from_name"],
		SenderLastName:      v["from_lastname"],
		SenderEmail:         v["from_email"],
		SenderProfession:    v["from_profession"],
		SenderPhone:         v["from_phone"],
		SenderAddress:       v["from_address"],
		RecipientFirstName:  v["to_name"],
		RecipientLastName:   v["to_lastname"],
		RecipientCompany:    v["to_company"],
		RecipientDepartment: v["to_department"],
		RecipientAddress:    v["to_address"],
		Subject:             v["subject"],
		Date:                time.Now().Format("January 02, 2006"),
	}
	r, err := svc.CoverLetter(ctx, fields)
	if err != nil {
		return resultMsg{title: "Cover Letter", err: err}
	}
	return fromResult("Cover Letter", r)
}

func runDescribeImage(ctx context.Context, svc Assistant, v map[string]string) resultMsg {
	data, err := os.ReadFile(v["path"])
	if err != nil {
		return resultMsg{title: "Image Description", err: err}
	}
	r, err := svc.DescribeImage(ctx, data)
	if err != nil {
		return resultMsg{title: "Image Description", err: err}
	}
	return fromResult("Image Description", r)
}
