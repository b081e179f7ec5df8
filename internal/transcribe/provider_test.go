package transcribe

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_FIFO(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "책"}, MockResponse{Text: "과"})

	r1, err := mock.Transcribe(context.Background(), Request{Filename: "one.wav"})
	require.NoError(t, err)
	r2, err := mock.Transcribe(context.Background(), Request{Filename: "two.wav"})
	require.NoError(t, err)

	assert.Equal(t, "책", r1.Text)
	assert.Equal(t, "과", r2.Text)
	assert.Equal(t, "mock", r1.Model)
	require.Len(t, mock.Calls, 2)
	assert.Equal(t, "two.wav", mock.Calls[1].Filename)

	_, err = mock.Transcribe(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestMockProvider_AddResponse(t *testing.T) {
	mock := NewMockProvider()
	mock.AddResponse(MockResponse{Err: ErrEmptyAudio})

	_, err := mock.Transcribe(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrEmptyAudio)
	assert.Equal(t, 1, mock.CallCount())
}

func TestMIMETypeFor(t *testing.T) {
	tests := map[string]string{
		"a.wav":     "audio/wav",
		"A.WAV":     "audio/wav",
		"x/y.mp3":   "audio/mpeg",
		"clip.webm": "audio/webm",
		"clip.m4a":  "audio/mp4",
		"notes.txt": "application/octet-stream",
		"noext":     "application/octet-stream",
	}
	for name, want := range tests {
		assert.Equal(t, want, MIMETypeFor(name), name)
	}
}

func TestRequestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answer.ogg")
	require.NoError(t, os.WriteFile(path, []byte("OggS"), 0o644))

	req, err := RequestFromFile(path, "ko")
	require.NoError(t, err)
	assert.Equal(t, []byte("OggS"), req.Audio)
	assert.Equal(t, "answer.ogg", req.Filename)
	assert.Equal(t, "audio/ogg", req.MIMEType)
	assert.Equal(t, "ko", req.Language)

	_, err = RequestFromFile(filepath.Join(t.TempDir(), "missing.wav"), "ko")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoggingProvider(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	mock := NewMockProvider(MockResponse{Text: "책"}, MockResponse{Err: errors.New("boom")})
	p := WithLogging(mock, logger)
	ctx := WithItem(context.Background(), "ex_1")

	resp, err := p.Transcribe(ctx, Request{Audio: []byte("abc"), Filename: "a.wav"})
	require.NoError(t, err)
	assert.Equal(t, "책", resp.Text)

	_, err = p.Transcribe(ctx, Request{})
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "transcription complete")
	assert.Contains(t, out, "transcription failed")
	assert.Contains(t, out, "item_id=ex_1")
	assert.Contains(t, out, "audio_bytes=3")
	assert.Equal(t, "mock", p.ModelID())
}

func TestItemFrom_Default(t *testing.T) {
	assert.Equal(t, "unknown", ItemFrom(context.Background()))
}

type slowProvider struct{}

func (slowProvider) Transcribe(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(slowProvider{}, 5*time.Millisecond)
	_, err := p.Transcribe(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "slow", p.ModelID())

	var inner Provider = slowProvider{}
	assert.Equal(t, inner, WithTimeout(inner, 0))
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewProvider(ctx, DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Nil(t, p, "disabled config yields no provider")

	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err = NewProvider(ctx, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	cfg.Provider = ProviderOpenAI
	cfg.OpenAI.APIKey = "k"
	p, err = NewProvider(ctx, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "whisper-1", p.ModelID())

	cfg.OpenAI.APIKey = ""
	_, err = NewProvider(ctx, cfg, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "openai"))

	cfg.Provider = "carrier-pigeon"
	_, err = NewProvider(ctx, cfg, nil)
	assert.Error(t, err)
}
