package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextFromResponse_JoinsTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{
						genai.Text("Hello, "),
						genai.Blob{MIMEType: "image/png", Data: []byte{1}},
						genai.Text("world"),
					},
				},
			},
		},
	}

	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", text)
}

func TestExtractTextFromResponse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		wantErr string
	}{
		{name: "nil response", resp: nil, wantErr: "no candidates"},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, wantErr: "no candidates"},
		{
			name:    "nil content",
			resp:    &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			wantErr: "no content",
		},
		{
			name: "no text parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}},
			}}},
			wantErr: "no text parts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractTextFromResponse(tt.resp)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
