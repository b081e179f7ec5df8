package transcribe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.0-pro",
}

// GeminiProvider implements Provider by sending the recording inline to a
// Gemini model with a verbatim-transcription instruction.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  resolveModel(cfg.Model, geminiModels),
	}, nil
}

func (p *GeminiProvider) Transcribe(ctx context.Context, req Request) (*Response, error) {
	if len(req.Audio) == 0 {
		return nil, ErrEmptyAudio
	}

	var temp float32
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: geminiInstruction}},
		},
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, buildGeminiContents(req), config)
	if err != nil {
		return nil, mapGeminiError(err)
	}
	if len(result.Candidates) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("no candidates in Gemini response")}
	}

	return &Response{
		Text:  strings.TrimSpace(result.Text()),
		Model: p.model,
	}, nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

const geminiInstruction = "You transcribe short spoken answers from a listening test. " +
	"Reply with exactly the words spoken, in the spoken language, without punctuation, " +
	"translation or commentary. Reply with an empty message if nothing was said."

func geminiPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("Transcribe this recording.")
	if req.Language != "" {
		fmt.Fprintf(&b, " The speaker uses language %q.", req.Language)
	}
	if req.Prompt != "" {
		fmt.Fprintf(&b, " The answer is likely close to %q; do not correct what was actually said.", req.Prompt)
	}
	return b.String()
}

func buildGeminiContents(req Request) []*genai.Content {
	return []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: geminiPrompt(req)},
			{InlineData: &genai.Blob{Data: req.Audio, MIMEType: req.mimeType()}},
		},
	}}
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.Code >= 400 && apiErr.Code < 500:
			return &ErrInvalidResponse{Err: err}
		}
	}
	return &ErrProviderUnavailable{Err: err}
}
