// Package bookmarks implements the bookmark overlay: a bottom-anchored popup
// that lets the user jump to a bookmarked directory or register a new one
// with a single key press.
package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/colonyops/marks/internal/core/bookmark"
	"github.com/colonyops/marks/internal/core/logging"
	"github.com/colonyops/marks/internal/core/terminal"
	"github.com/colonyops/marks/internal/tui/components"
	"github.com/colonyops/marks/internal/tui/popup"
)

// DefaultSentinel accepts the offered path in pick mode.
const DefaultSentinel = '`'

// rowIndent is the number of columns reserved around a row's path.
const rowIndent = 4

// ErrCancelled is returned by Pick and Add when the user dismissed the
// overlay without a result.
var ErrCancelled = errors.New("bookmark overlay cancelled")

var errNothingOffered = errors.New("pick mode has no offered path")

// Mode is the workflow an overlay invocation runs.
type Mode int

const (
	ModePick Mode = iota
	ModeAdd
)

func (m Mode) String() string {
	switch m {
	case ModePick:
		return "pick"
	case ModeAdd:
		return "add"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Outcome records how the last invocation ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	// OutcomeSelected means pick mode resolved to a path, either a bookmark
	// or the offered default.
	OutcomeSelected
	// OutcomeRegistered means add mode stored a new bookmark.
	OutcomeRegistered
	// OutcomeCancelled means the user dismissed the overlay.
	OutcomeCancelled
)

// Option configures an Overlay.
type Option func(*Overlay)

// WithSentinel sets the key that accepts the offered path.
func WithSentinel(r rune) Option {
	return func(o *Overlay) { o.sentinel = r }
}

// WithLogger sets the overlay logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Overlay) { o.logger = l }
}

// Overlay is the bookmark popup. It owns its store exclusively and is meant
// to be driven from a single goroutine.
type Overlay struct {
	coords   popup.Coordinates
	host     popup.Host
	term     terminal.Terminal
	store    *bookmark.Store
	sentinel rune
	logger   zerolog.Logger

	// pending is the offered path in pick mode or the bookmark target in add
	// mode. Reads that resolve a workflow go through takePending.
	pending *string
	mode    Mode
	outcome Outcome
}

var _ popup.Popup = (*Overlay)(nil)

// New creates an overlay displayed by host and laid out against term.
func New(host popup.Host, term terminal.Terminal, store *bookmark.Store, opts ...Option) *Overlay {
	o := &Overlay{
		host:     host,
		term:     term,
		store:    store,
		sentinel: DefaultSentinel,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Store returns the overlay's bookmark store.
func (o *Overlay) Store() *bookmark.Store {
	return o.store
}

// Mode returns the current workflow mode.
func (o *Overlay) Mode() Mode {
	return o.mode
}

// Outcome returns how the last invocation ended.
func (o *Overlay) Outcome() Outcome {
	return o.outcome
}

// Pick offers cwd and the stored bookmarks. It returns the chosen bookmark's
// path, cwd when the sentinel is pressed, or ErrCancelled.
func (o *Overlay) Pick(ctx context.Context, cwd string) (string, error) {
	o.begin(ModePick, cwd)
	ctx = o.logContext(ctx)

	if err := o.run(ctx); err != nil {
		return "", err
	}

	path := o.takePending()
	if path == nil {
		o.logger.Debug().Ctx(ctx).Msg("pick cancelled")
		return "", ErrCancelled
	}

	o.logger.Debug().Ctx(ctx).Str("path", *path).Msg("pick resolved")
	return *path, nil
}

// Add registers path under the next key pressed. It returns ErrCancelled if
// the user dismissed the overlay first, or the error from saving the store.
func (o *Overlay) Add(ctx context.Context, path string) error {
	o.begin(ModeAdd, path)
	ctx = o.logContext(ctx)

	err := o.run(ctx)
	o.takePending()
	o.mode = ModePick
	if err != nil {
		return err
	}

	if o.outcome != OutcomeRegistered {
		o.logger.Debug().Ctx(ctx).Msg("add cancelled")
		return ErrCancelled
	}
	return nil
}

func (o *Overlay) begin(mode Mode, path string) {
	o.mode = mode
	o.pending = &path
	o.outcome = OutcomeNone
}

func (o *Overlay) logContext(ctx context.Context) context.Context {
	return logging.WithMode(logging.WithPopup(ctx, "bookmarks"), o.mode.String())
}

func (o *Overlay) run(ctx context.Context) error {
	if err := o.Refresh(); err != nil {
		o.pending = nil
		return err
	}
	if err := o.host.Popup(ctx, o); err != nil {
		o.pending = nil
		return err
	}
	return nil
}

// takePending returns the pending path and clears it.
func (o *Overlay) takePending() *string {
	p := o.pending
	o.pending = nil
	return p
}

// RenderLine renders one row: "<key>: <path>" at the given terminal row with
// the path fitted to the terminal width minus the row indent.
func (o *Overlay) RenderLine(row int, key rune, path string) string {
	width, _ := o.term.Size()

	var b strings.Builder
	b.WriteString(o.term.Goto(1, row))
	b.WriteString(o.term.Reset())
	b.WriteRune(key)
	b.WriteString(": ")
	b.WriteString(components.Fit(path, max(width-rowIndent, 0)))
	return b.String()
}

// Coordinates implements popup.Popup.
func (o *Overlay) Coordinates() *popup.Coordinates {
	return &o.coords
}

// Refresh implements popup.Popup. The overlay spans the terminal width and
// sits on the bottom edge with one row per bookmark plus the offered-path
// row.
func (o *Overlay) Refresh() error {
	width, height := o.term.Size()
	rows := o.store.Len() + 1

	o.coords.SetPosition(1, max(height-rows+1, 1))
	o.coords.SetSize(width, rows)
	return nil
}

// DrawList implements popup.Popup.
func (o *Overlay) DrawList() (string, error) {
	top := o.coords.Y

	var b strings.Builder
	if o.mode == ModePick {
		if o.pending == nil {
			return "", errNothingOffered
		}
		b.WriteString(o.RenderLine(top, o.sentinel, *o.pending))
	}

	for i, e := range o.store.Entries() {
		b.WriteString(o.RenderLine(top+1+i, e.Key, e.Path))
	}

	return b.String(), nil
}

// OnKey implements popup.Popup.
//
//	ctrl+c      clear the pending path and close
//	sentinel    close; pick keeps the offered path, add is cancelled
//	char        pick: select a known bookmark; add: register the path
//	alt+char    forget the bookmark in memory only
func (o *Overlay) OnKey(key popup.Key) error {
	switch key.Kind {
	case popup.KeyCtrl:
		if key.Rune != 'c' {
			return nil
		}
		o.pending = nil
		o.outcome = OutcomeCancelled
		return popup.ErrFinished

	case popup.KeyChar:
		if key.Rune == o.sentinel {
			return o.onSentinel()
		}
		if o.mode == ModeAdd {
			return o.register(key.Rune)
		}
		return o.selectBookmark(key.Rune)

	case popup.KeyAlt:
		o.store.Delete(key.Rune)
		return o.Refresh()
	}

	return nil
}

func (o *Overlay) onSentinel() error {
	if o.mode == ModeAdd {
		o.pending = nil
		o.outcome = OutcomeCancelled
		return popup.ErrFinished
	}
	o.outcome = OutcomeSelected
	return popup.ErrFinished
}

func (o *Overlay) selectBookmark(key rune) error {
	path, err := o.store.Get(key)
	if err != nil {
		// Unknown keys are ignored; the overlay stays open.
		return nil
	}
	o.pending = &path
	o.outcome = OutcomeSelected
	return popup.ErrFinished
}

func (o *Overlay) register(key rune) error {
	path := o.takePending()
	if path == nil {
		o.outcome = OutcomeCancelled
		return popup.ErrFinished
	}

	if err := o.store.Add(key, *path); err != nil {
		o.logger.Error().Err(err).Str("key", string(key)).Msg("failed to save bookmark")
		return fmt.Errorf("add bookmark %q: %w", key, err)
	}

	o.mode = ModePick
	o.outcome = OutcomeRegistered
	o.logger.Info().Str("key", string(key)).Str("path", *path).Msg("bookmark added")
	return popup.ErrFinished
}
