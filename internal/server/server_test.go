package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/gemini-assistant/internal/assistant"
	"github.com/jonathan/gemini-assistant/internal/digest"
	"github.com/jonathan/gemini-assistant/internal/docx"
	"github.com/jonathan/gemini-assistant/internal/extraction"
	"github.com/jonathan/gemini-assistant/internal/generation"
	"github.com/jonathan/gemini-assistant/internal/llm"
	"github.com/jonathan/gemini-assistant/internal/server/ratelimit"
	"github.com/jonathan/gemini-assistant/internal/transcribe"
)

// mockClient echoes prompts, or fails every call when err is set
type mockClient struct {
	err error
}

func (m *mockClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "generated: " + prompt, nil
}

func (m *mockClient) GenerateWithMedia(_ context.Context, prompt string, _ llm.Media, _ llm.ModelTier) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if prompt != "Describe this image in detail." {
		return "What is Go?", nil
	}
	return "a picture", nil
}

func (m *mockClient) Close() error { return nil }

type testServer struct {
	*Server
	client   *mockClient
	registry *prometheus.Registry
	handler  http.Handler
}

func newTestServer(t *testing.T, rl *ratelimit.Config) *testServer {
	t.Helper()
	client := &mockClient{}
	svc := assistant.New(assistant.Deps{
		Generator:   generation.New(client),
		Transcriber: transcribe.NewGemini(client),
		Summarizer: digest.NewWithSegmenter(digest.SegmenterFunc(func(text string) []string {
			return strings.SplitAfter(text, ".")
		})),
		UploadDir: t.TempDir(),
	})
	if rl == nil {
		rl = &ratelimit.Config{Enabled: false}
	}
	reg := prometheus.NewRegistry()
	s, err := New(svc, Config{Port: 0, WorkDir: t.TempDir(), RateLimit: rl, Registry: reg})
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return &testServer{Server: s, client: client, registry: reg, handler: s.Handler()}
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, path string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, path, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(httptest.NewRequest(http.MethodOptions, "/ask", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestAskEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(jsonRequest(t, "/ask", AskRequest{Question: "What is Go?"}))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[TextResponse](t, w)
	assert.Equal(t, "generated: What is Go?", resp.Text)
	assert.Empty(t, resp.Notice)
}

func TestAskEndpoint_GenerationFailure(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.client.err = errors.New("quota exceeded")

	w := ts.do(jsonRequest(t, "/ask", AskRequest{Question: "What is Go?"}))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[TextResponse](t, w)
	assert.Empty(t, resp.Text)
	assert.Equal(t, generation.FailureMessage, resp.Notice)
}

func TestAskEndpoint_Validation(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(jsonRequest(t, "/ask", AskRequest{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader("{not json"))
	w = ts.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAskVoiceEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(multipartRequest(t, "/ask/voice", "audio", "q.wav", []byte("RIFF0000WAVEfmt ")))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[VoiceResponse](t, w)
	assert.Equal(t, "What is Go?", resp.Transcript)
	assert.Equal(t, "generated: What is Go?", resp.Text)
}

func TestAskVoiceEndpoint_TranscriptionFailure(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.client.err = errors.New("unavailable")

	w := ts.do(multipartRequest(t, "/ask/voice", "audio", "q.wav", []byte("RIFF")))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAskVoiceEndpoint_MissingFile(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(multipartRequest(t, "/ask/voice", "other", "q.wav", []byte("RIFF")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummarizeEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)
	doc := docx.New()
	doc.AddParagraph("Hi. This paragraph has a sentence long enough to keep.")
	data, err := doc.Bytes()
	require.NoError(t, err)

	w := ts.do(multipartRequest(t, "/summarize", "file", "notes.docx", data))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[SummarizeResponse](t, w)
	assert.Equal(t, "This paragraph has a sentence long enough to keep.", resp.Digest)
	assert.Contains(t, resp.Text, "generated: Please provide a concise and precise summary")
}

func TestSummarizeEndpoint_UnsupportedFormat(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(multipartRequest(t, "/summarize", "file", "notes.txt", []byte("plain text")))

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestResumeExtrasEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(jsonRequest(t, "/resume/extras", ExtrasRequest{JobTitle: "Engineer"}))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[ExtrasResponse](t, w)
	assert.Equal(t, "generated: Generate a job description for a Engineer in 1 lines precisely.", resp.JobDescription)
	assert.Equal(t, "generated: Generate an objective for a Engineer in 2-3 lines.", resp.Objective)

	w = ts.do(jsonRequest(t, "/resume/extras", ExtrasRequest{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResumeEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	req := jsonRequest(t, "/resume?autofill=true", map[string]string{"name": "Jane Doe", "job_title": "Engineer"})
	w := ts.do(req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, docxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Jane_Doe_Resume.docx")
	assert.Empty(t, w.Header().Get(noticeHeader))

	path := filepath.Join(t.TempDir(), "out.docx")
	require.NoError(t, os.WriteFile(path, w.Body.Bytes(), 0644))
	text, err := extraction.Extract(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe - Engineer")
	assert.Contains(t, text, "generated: Generate a job description")
}

func TestResumeEndpoint_SchemaRejects(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(jsonRequest(t, "/resume", map[string]any{"email": "x@example.com"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResumeEndpoint_RejectsPathInName(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(jsonRequest(t, "/resume", map[string]string{"name": "../../x"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	_, err := os.Stat(filepath.Join(filepath.Dir(ts.workDir), "x_Resume.docx"))
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(ts.workDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResumeEndpoint_NoticeHeader(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.client.err = errors.New("down")

	w := ts.do(jsonRequest(t, "/resume?autofill=1", map[string]string{"name": "Jane", "job_title": "Engineer"}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, generation.FailureMessage, w.Header().Get(noticeHeader))
}

func TestCoverLetterEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(jsonRequest(t, "/cover-letter", map[string]string{
		"from_name": "Jane", "to_name": "Sam", "subject": "Application", "to_company": "Acme",
	}))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[TextResponse](t, w)
	assert.Contains(t, resp.Text, "Dear Sam,")
	assert.Contains(t, resp.Text, "Sincerely,\tJane")

	w = ts.do(jsonRequest(t, "/cover-letter", map[string]string{"from_name": "Jane"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDescribeImageEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	w := ts.do(multipartRequest(t, "/describe-image", "image", "a.png", png))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "a picture", decode[TextResponse](t, w).Text)

	w = ts.do(multipartRequest(t, "/describe-image", "image", "a.gif", []byte("GIF89a......")))
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, &ratelimit.Config{
		Enabled: true,
		Rules:   ratelimit.GenerationRules(1, time.Hour, 1),
	})

	w := ts.do(jsonRequest(t, "/ask", AskRequest{Question: "one"}))
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(jsonRequest(t, "/ask", AskRequest{Question: "two"}))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	w = ts.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetrics(t *testing.T) {
	ts := newTestServer(t, nil)

	ts.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	ts.do(httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.requests.WithLabelValues("/health", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.requests.WithLabelValues("other", "GET", "404")))

	w := ts.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "http_requests_total")
}

func TestNew_RequiresService(t *testing.T) {
	_, err := New(nil, Config{})
	assert.Error(t, err)
}
