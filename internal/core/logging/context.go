package logging

import "context"

type contextKey string

const (
	popupKey contextKey = "popup"
	modeKey  contextKey = "mode"
)

// WithPopup records the name of the active popup in the context.
func WithPopup(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, popupKey, name)
}

// WithMode records the workflow mode of the active popup in the context.
func WithMode(ctx context.Context, mode string) context.Context {
	return context.WithValue(ctx, modeKey, mode)
}

// GetPopup returns the popup name or an empty string.
func GetPopup(ctx context.Context) string {
	if v, ok := ctx.Value(popupKey).(string); ok {
		return v
	}
	return ""
}

// GetMode returns the popup mode or an empty string.
func GetMode(ctx context.Context) string {
	if v, ok := ctx.Value(modeKey).(string); ok {
		return v
	}
	return ""
}
