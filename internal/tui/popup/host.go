package popup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
)

// TeaHost displays popups using a bubbletea program. Popups position their
// own rows, so the draw list is written to the terminal as raw output rather
// than through the view renderer.
type TeaHost struct {
	input  io.Reader
	output io.Writer
	logger zerolog.Logger
}

var _ Host = (*TeaHost)(nil)

// NewTeaHost creates a host that reads keys from input and draws to output.
func NewTeaHost(input io.Reader, output io.Writer, logger zerolog.Logger) *TeaHost {
	return &TeaHost{
		input:  input,
		output: output,
		logger: logger,
	}
}

// Popup runs p until it finishes, the context is cancelled or the popup
// reports an error.
func (h *TeaHost) Popup(ctx context.Context, p Popup) error {
	model, err := newHostModel(p)
	if err != nil {
		return err
	}

	prog := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithInput(h.input),
		tea.WithOutput(h.output),
	)

	final, err := prog.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("run popup: %w", err)
	}

	m, ok := final.(hostModel)
	if !ok {
		return fmt.Errorf("run popup: unexpected model %T", final)
	}
	if m.err != nil {
		h.logger.Debug().Err(m.err).Msg("popup aborted")
	}
	return m.err
}

// hostModel adapts a Popup to the bubbletea model interface.
type hostModel struct {
	popup   Popup
	initial string
	drawn   Coordinates // region painted by the last draw
	done    bool
	err     error
}

// newHostModel lays out p and renders its first frame.
func newHostModel(p Popup) (hostModel, error) {
	if err := p.Refresh(); err != nil {
		return hostModel{}, err
	}
	out, err := p.DrawList()
	if err != nil {
		return hostModel{}, err
	}
	return hostModel{
		popup:   p,
		initial: out,
		drawn:   *p.Coordinates(),
	}, nil
}

// Init implements tea.Model.
func (m hostModel) Init() tea.Cmd {
	return tea.Raw(m.initial)
}

// Update implements tea.Model.
func (m hostModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if err := m.popup.Refresh(); err != nil {
			return m.finish(err)
		}
		return m.redraw()

	case tea.KeyPressMsg:
		err := m.popup.OnKey(FromTea(msg))
		switch {
		case err == nil:
			if err := m.popup.Refresh(); err != nil {
				return m.finish(err)
			}
			return m.redraw()
		case IsFinished(err):
			return m.finish(nil)
		default:
			return m.finish(err)
		}
	}

	return m, nil
}

func (m hostModel) redraw() (tea.Model, tea.Cmd) {
	out, err := m.popup.DrawList()
	if err != nil {
		return m.finish(err)
	}
	erase := eraseRows(m.drawn)
	m.drawn = *m.popup.Coordinates()
	return m, tea.Raw(erase + out)
}

func (m hostModel) finish(err error) (tea.Model, tea.Cmd) {
	if err != nil && !errors.Is(err, ErrFinished) {
		m.err = err
	}
	m.done = true

	erase := eraseRows(m.drawn)
	if erase == "" {
		return m, tea.Quit
	}
	return m, tea.Sequence(tea.Raw(erase), tea.Quit)
}

// View implements tea.Model. All drawing happens through raw output.
func (m hostModel) View() tea.View {
	return tea.NewView("")
}

// eraseRows returns the sequence that blanks every row of c.
func eraseRows(c Coordinates) string {
	var b strings.Builder
	for _, row := range c.Rows() {
		b.WriteString(ansi.CursorPosition(1, row))
		b.WriteString(ansi.EraseEntireLine)
	}
	return b.String()
}
