// Package marks assembles the bookmark store and overlay behind a single App
// consumed by commands.
package marks

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/marks/internal/core/bookmark"
	"github.com/colonyops/marks/internal/core/config"
	"github.com/colonyops/marks/internal/core/terminal"
	"github.com/colonyops/marks/internal/tui/bookmarks"
	"github.com/colonyops/marks/internal/tui/popup"
)

// App is the central entry point for all marks operations.
// Commands consume App instead of cherry-picking raw dependencies.
type App struct {
	Config    *config.Config
	Bookmarks *bookmark.Store
	Overlay   *bookmarks.Overlay
}

// NewApp loads the bookmark file named by cfg and builds the overlay that
// edits it. A missing or unreadable file yields an empty store.
func NewApp(cfg *config.Config, host popup.Host, term terminal.Terminal, logger zerolog.Logger) *App {
	store := bookmark.Open(cfg, logger.With().Str("cmp", "bookmarks").Logger())

	overlay := bookmarks.New(host, term, store,
		bookmarks.WithSentinel(cfg.SentinelKey()),
		bookmarks.WithLogger(logger.With().Str("cmp", "overlay").Logger()),
	)

	return &App{
		Config:    cfg,
		Bookmarks: store,
		Overlay:   overlay,
	}
}
