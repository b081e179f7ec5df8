package transcribe

import "context"

type contextKey string

const itemKey contextKey = "transcribe_item"

// WithItem attaches the item being answered to the context for log lines.
func WithItem(ctx context.Context, itemID string) context.Context {
	return context.WithValue(ctx, itemKey, itemID)
}

// ItemFrom extracts the item ID from the context.
func ItemFrom(ctx context.Context) string {
	if v, ok := ctx.Value(itemKey).(string); ok {
		return v
	}
	return "unknown"
}
