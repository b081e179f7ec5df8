package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  openai.Whisper1,
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var gotModel, gotLanguage, gotPrompt, gotFile string
	var gotAudio []byte

	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")
		gotPrompt = r.FormValue("prompt")
		f, hdr, err := r.FormFile("file")
		if err == nil {
			gotFile = hdr.Filename
			gotAudio, _ = io.ReadAll(f)
			f.Close()
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"text": " 책 "})
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Transcribe(context.Background(), Request{
		Audio:    []byte("RIFF....WAVE"),
		Filename: "answer.wav",
		Language: "ko",
		Prompt:   "책",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "책" {
		t.Errorf("Text = %q, want %q", resp.Text, "책")
	}
	if resp.Model != openai.Whisper1 {
		t.Errorf("Model = %q, want %q", resp.Model, openai.Whisper1)
	}
	if gotModel != openai.Whisper1 {
		t.Errorf("form model = %q", gotModel)
	}
	if gotLanguage != "ko" {
		t.Errorf("form language = %q", gotLanguage)
	}
	if gotPrompt != "책" {
		t.Errorf("form prompt = %q", gotPrompt)
	}
	if gotFile != "answer.wav" {
		t.Errorf("form file name = %q", gotFile)
	}
	if string(gotAudio) != "RIFF....WAVE" {
		t.Errorf("form file content = %q", gotAudio)
	}
}

func TestOpenAIProvider_EmptyAudio(t *testing.T) {
	called := false
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := p.Transcribe(context.Background(), Request{})
	if !errors.Is(err, ErrEmptyAudio) {
		t.Fatalf("expected ErrEmptyAudio, got %v", err)
	}
	if called {
		t.Error("server should not be called for empty audio")
	}
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"rate limit", http.StatusTooManyRequests, func(err error) bool {
			var e *ErrRateLimit
			return errors.As(err, &e)
		}},
		{"server error", http.StatusInternalServerError, func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
		{"bad request", http.StatusBadRequest, func(err error) bool {
			var e *ErrInvalidResponse
			return errors.As(err, &e)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{
						"message": "failure",
						"type":    "test_error",
					},
				})
			})

			_, err := p.Transcribe(context.Background(), Request{Audio: []byte("x")})
			if err == nil {
				t.Fatal("expected error")
			}
			if !tc.check(err) {
				t.Errorf("unexpected error type %T: %v", err, err)
			}
		})
	}
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{}); err == nil {
		t.Fatal("expected error without API key")
	}

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "whisper"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != openai.Whisper1 {
		t.Errorf("ModelID = %q, want %q", p.ModelID(), openai.Whisper1)
	}
}
