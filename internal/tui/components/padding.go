// Package components provides rendering helpers shared by overlays.
package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

const padCacheSize = 256

var (
	padCache [padCacheSize + 1]string
	padOnce  sync.Once
)

// Pad returns a string of n spaces. Small widths are served from a cache
// since rows are re-rendered on every key press.
func Pad(n int) string {
	if n <= 0 {
		return ""
	}
	if n > padCacheSize {
		return strings.Repeat(" ", n)
	}
	padOnce.Do(func() {
		full := strings.Repeat(" ", padCacheSize)
		for i := range padCache {
			padCache[i] = full[:i]
		}
	})
	return padCache[n]
}

// Fit pads or truncates s so it occupies exactly width display cells.
// Wide characters that would straddle the boundary are dropped and the gap
// is filled with spaces.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}

	displayWidth := ansi.StringWidth(s)
	switch {
	case displayWidth == width:
		return s
	case displayWidth < width:
		return s + Pad(width-displayWidth)
	default:
		truncated := ansi.Truncate(s, width, "")
		return truncated + Pad(width-ansi.StringWidth(truncated))
	}
}
