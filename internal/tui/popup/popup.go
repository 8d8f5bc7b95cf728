// Package popup defines the contract between modal overlays and the host
// that displays them, along with a bubbletea-backed host implementation.
//
// A popup owns its geometry, renders itself into a draw list of positioned
// rows and consumes key events one at a time. Returning ErrFinished from
// OnKey tells the host to tear the popup down.
package popup

import (
	"context"
	"errors"
)

// ErrFinished is returned from Popup.OnKey when the popup is done and should
// be closed. It is a control signal, not a failure.
var ErrFinished = errors.New("popup finished")

// IsFinished reports whether err is the popup-finished signal.
func IsFinished(err error) bool {
	return errors.Is(err, ErrFinished)
}

// Coordinates is the geometry record of a popup. Positions are 1-based
// terminal cells.
type Coordinates struct {
	X      int
	Y      int
	Width  int
	Height int
}

// SetPosition moves the popup.
func (c *Coordinates) SetPosition(x, y int) {
	c.X = x
	c.Y = y
}

// SetSize resizes the popup.
func (c *Coordinates) SetSize(width, height int) {
	c.Width = width
	c.Height = height
}

// Rows returns the terminal rows the popup covers, top to bottom.
func (c Coordinates) Rows() []int {
	rows := make([]int, 0, max(c.Height, 0))
	for i := range c.Height {
		rows = append(rows, c.Y+i)
	}
	return rows
}

// Popup is implemented by overlays that can be embedded in a Host.
type Popup interface {
	// Coordinates returns the popup's mutable geometry record.
	Coordinates() *Coordinates
	// Refresh recomputes geometry from the current terminal size and state.
	Refresh() error
	// DrawList renders the popup as positioned rows.
	DrawList() (string, error)
	// OnKey handles a single key event. ErrFinished closes the popup; any
	// other error aborts the host and is returned to its caller.
	OnKey(key Key) error
}

// Host displays a popup and blocks until it finishes.
type Host interface {
	Popup(ctx context.Context, p Popup) error
}

// HostFunc adapts a function to a Host.
type HostFunc func(ctx context.Context, p Popup) error

// Popup implements Host.
func (f HostFunc) Popup(ctx context.Context, p Popup) error {
	return f(ctx, p)
}
