package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies popup and mode from the event context into log fields.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if popup := GetPopup(ctx); popup != "" {
		e.Str("popup", popup)
	}
	if mode := GetMode(ctx); mode != "" {
		e.Str("mode", mode)
	}
}
