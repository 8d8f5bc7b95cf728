// Package terminal provides the small set of terminal primitives overlays
// need: dimensions, cursor positioning and style reset.
package terminal

import (
	"os"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// Default dimensions used when the size cannot be queried.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Terminal exposes terminal geometry and control sequences.
type Terminal interface {
	// Size returns the width and height in cells.
	Size() (width, height int)
	// Goto returns the sequence that moves the cursor to the 1-based column
	// and row.
	Goto(col, row int) string
	// Reset returns the sequence that clears any active text styling.
	Reset() string
}

// Console is a Terminal backed by a real file descriptor.
type Console struct {
	fd uintptr
}

var _ Terminal = (*Console)(nil)

// NewConsole returns a Console that queries the size of f.
func NewConsole(f *os.File) *Console {
	return &Console{fd: f.Fd()}
}

// Size returns the current terminal size, falling back to 80x24 when the
// descriptor is not a terminal.
func (c *Console) Size() (int, int) {
	w, h, err := term.GetSize(int(c.fd))
	if err != nil || w <= 0 || h <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return w, h
}

// IsTerminal reports whether the descriptor refers to a terminal.
func (c *Console) IsTerminal() bool {
	return term.IsTerminal(int(c.fd))
}

// Goto implements Terminal.
func (c *Console) Goto(col, row int) string {
	return ansi.CursorPosition(col, row)
}

// Reset implements Terminal.
func (c *Console) Reset() string {
	return ansi.ResetStyle
}

// Fixed is a Terminal with a constant size. Hosts use it to report the size
// they were told about; tests use it to pin geometry.
type Fixed struct {
	Width  int
	Height int
}

var _ Terminal = Fixed{}

// Size implements Terminal.
func (f Fixed) Size() (int, int) {
	return f.Width, f.Height
}

// Goto implements Terminal.
func (f Fixed) Goto(col, row int) string {
	return ansi.CursorPosition(col, row)
}

// Reset implements Terminal.
func (f Fixed) Reset() string {
	return ansi.ResetStyle
}

// StripANSI removes escape sequences from s.
func StripANSI(s string) string {
	return ansi.Strip(s)
}
