// Package transcribe turns a recorded spoken response into text that can be
// scored. Backends are OpenAI Whisper and Gemini; both sit behind Provider
// and are wrapped with retry and logging middleware by NewProvider.
package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Provider is the core abstraction for speech-to-text.
type Provider interface {
	// Transcribe converts the request's audio into text. An empty transcript
	// is a valid result (silence); callers decide what to do with it.
	Transcribe(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes one recorded response.
type Request struct {
	// Audio is the encoded recording.
	Audio []byte

	// Filename names the recording. Its extension selects the MIME type
	// when MIMEType is empty and some backends require it.
	Filename string

	// MIMEType of Audio, e.g. "audio/wav".
	MIMEType string

	// Language is an ISO-639-1 hint, e.g. "ko".
	Language string

	// Prompt biases recognition toward expected vocabulary. Usually the
	// expected answer of the current item.
	Prompt string
}

// Response holds the transcript.
type Response struct {
	Text  string
	Model string
}

var audioMIMETypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".mp4":  "audio/mp4",
	".webm": "audio/webm",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
}

// MIMETypeFor returns the audio MIME type for a file name, or
// "application/octet-stream" when the extension is not a known audio type.
func MIMETypeFor(filename string) string {
	if t, ok := audioMIMETypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return t
	}
	return "application/octet-stream"
}

// RequestFromFile reads an audio file into a Request.
func RequestFromFile(path, language string) (Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Request{}, fmt.Errorf("read audio %q: %w", path, err)
	}
	return Request{
		Audio:    data,
		Filename: filepath.Base(path),
		MIMEType: MIMETypeFor(path),
		Language: language,
	}, nil
}

func (r Request) mimeType() string {
	if r.MIMEType != "" {
		return r.MIMEType
	}
	return MIMETypeFor(r.Filename)
}

func (r Request) filename() string {
	if r.Filename != "" {
		return r.Filename
	}
	return "response.wav"
}

func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
