package transcribe

import (
	"context"
	"log/slog"
	"time"
)

// LoggingProvider is a decorator that logs every transcription request.
type LoggingProvider struct {
	inner  Provider
	logger *slog.Logger
}

// WithLogging wraps a Provider with request logging. A nil logger uses
// slog.Default().
func WithLogging(p Provider, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Transcribe(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Transcribe(ctx, req)

	attrs := []any{
		"model", l.inner.ModelID(),
		"item_id", ItemFrom(ctx),
		"audio_bytes", len(req.Audio),
		"mime_type", req.mimeType(),
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		l.logger.WarnContext(ctx, "transcription failed", append(attrs, "err", err)...)
		return nil, err
	}
	l.logger.DebugContext(ctx, "transcription complete", append(attrs, "text", resp.Text)...)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
