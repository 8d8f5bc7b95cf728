// Package printer writes human-facing command output with the active theme.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/marks/internal/core/styles"
)

type ctxKey struct{}

// Printer writes status lines. Errors go to the error writer, everything else
// to the output writer.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// New creates a Printer.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

// NewContext returns a context carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stdout and stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stdout, os.Stderr)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = lipgloss.Fprintln(p.out, fmt.Sprintf(format, args...))
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(p.out, styles.KeyStyle.Render("✔"), format, args...)
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(p.out, styles.MutedStyle.Render("•"), format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(p.errOut, styles.ErrorStyle.Render("✘"), format, args...)
}

func (p *Printer) line(w io.Writer, icon, format string, args ...any) {
	_, _ = lipgloss.Fprintln(w, icon+" "+fmt.Sprintf(format, args...))
}
