package bookmarks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/marks/internal/core/bookmark"
	"github.com/colonyops/marks/internal/core/terminal"
	"github.com/colonyops/marks/internal/tui/popup"
)

// scriptedHost feeds keys to the popup the way a real host would: refresh and
// redraw after every handled key, stop on ErrFinished.
type scriptedHost struct {
	keys   []popup.Key
	frames []string
}

func (h *scriptedHost) Popup(_ context.Context, p popup.Popup) error {
	if err := h.draw(p); err != nil {
		return err
	}
	for _, k := range h.keys {
		err := p.OnKey(k)
		switch {
		case popup.IsFinished(err):
			return nil
		case err != nil:
			return err
		}
		if err := h.draw(p); err != nil {
			return err
		}
	}
	return errors.New("scripted host ran out of keys")
}

func (h *scriptedHost) draw(p popup.Popup) error {
	if err := p.Refresh(); err != nil {
		return err
	}
	out, err := p.DrawList()
	if err != nil {
		return err
	}
	h.frames = append(h.frames, out)
	return nil
}

func (h *scriptedHost) lastFrame() string {
	if len(h.frames) == 0 {
		return ""
	}
	return h.frames[len(h.frames)-1]
}

var testTerm = terminal.Fixed{Width: 40, Height: 24}

func newStore(t *testing.T, entries map[rune]string) (*bookmark.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks")
	store := bookmark.New(bookmark.StaticPath(path))
	for k, v := range entries {
		require.NoError(t, store.Add(k, v))
	}
	return store, path
}

func newOverlay(t *testing.T, store *bookmark.Store, keys ...popup.Key) (*Overlay, *scriptedHost) {
	t.Helper()
	host := &scriptedHost{keys: keys}
	return New(host, testTerm, store), host
}

func TestOverlay_AddRegistersAndPersists(t *testing.T) {
	store, path := newStore(t, nil)
	o, _ := newOverlay(t, store, popup.Char('z'))

	require.NoError(t, o.Add(context.Background(), "/srv/data"))

	got, err := store.Get('z')
	require.NoError(t, err)
	assert.Equal(t, "/srv/data", got)
	assert.Equal(t, OutcomeRegistered, o.Outcome())
	assert.Equal(t, ModePick, o.Mode())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "z\n/srv/data\n", string(content))
}

func TestOverlay_AddOverwritesExistingKey(t *testing.T) {
	store, _ := newStore(t, map[rune]string{'a': "/old"})
	o, _ := newOverlay(t, store, popup.Char('a'))

	require.NoError(t, o.Add(context.Background(), "/new"))

	got, err := store.Get('a')
	require.NoError(t, err)
	assert.Equal(t, "/new", got)
	assert.Equal(t, 1, store.Len())
}

func TestOverlay_PickKnownKey(t *testing.T) {
	store, _ := newStore(t, map[rune]string{'a': "/home/x", 'b': "/tmp"})
	o, _ := newOverlay(t, store, popup.Char('a'))

	got, err := o.Pick(context.Background(), "/cwd")
	require.NoError(t, err)
	assert.Equal(t, "/home/x", got)
	assert.Equal(t, OutcomeSelected, o.Outcome())
}

func TestOverlay_PickSentinelReturnsOfferedPath(t *testing.T) {
	store, _ := newStore(t, map[rune]string{'a': "/home/x"})
	o, _ := newOverlay(t, store, popup.Char('`'))

	got, err := o.Pick(context.Background(), "/cwd")
	require.NoError(t, err)
	assert.Equal(t, "/cwd", got)
}

func TestOverlay_CustomSentinel(t *testing.T) {
	store, _ := newStore(t, map[rune]string{'`': "/backtick"})
	host := &scriptedHost{keys: []popup.Key{popup.Char('`')}}
	o := New(host, testTerm, store, WithSentinel('\''))

	got, err := o.Pick(context.Background(), "/cwd")
	require.NoError(t, err)
	assert.Equal(t, "/backtick", got)

	host.keys = []popup.Key{popup.Char('\'')}
	got, err = o.Pick(context.Background(), "/cwd")
	require.NoError(t, err)
	assert.Equal(t, "/cwd", got)
}

func TestOverlay_CtrlCCancels(t *testing.T) {
	store, _ := newStore(t, map[rune]string{'a': "/home/x"})

	t.Run("pick", func(t *testing.T) {
		o, _ := newOverlay(t, store, popup.Ctrl('c'))
		got, err := o.Pick(context.Background(), "/cwd")
		require.ErrorIs(t, err, ErrCancelled)
		assert.Empty(t, got)
		assert.Equal(t, OutcomeCancelled, o.Outcome())
	})

	t.Run("add", func(t *testing.T) {
		o, _ := newOverlay(t, store, popup.Ctrl('c'))
		err := o.Add(context.Background(), "/new")
		require.ErrorIs(t, err, ErrCancelled)
		assert.Equal(t, 1, store.Len())
	})
}

func TestOverlay_SentinelCancelsAdd(t *testing.T) {
	store, path := newStore(t, nil)
	o, _ := newOverlay(t, store, popup.Char('`'))

	err := o.Add(context.Background(), "/new")
	require.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, ModePick, o.Mode())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "cancelled add must not write the file")
}

func TestOverlay_UnknownKeysKeepOverlayOpen(t *testing.T) {
	store, _ := newStore(t, map[rune]string{'a': "/home/x"})
	o, host := newOverlay(t, store,
		popup.Char('q'),
		popup.Ctrl('x'),
		popup.Key{Kind: popup.KeyOther},
		popup.Char('a'),
	)

	got, err := o.Pick(context.Background(), "/cwd")
	require.NoError(t, err)
	assert.Equal(t, "/home/x", got)
	// initial frame plus one redraw per ignored key
	assert.Len(t, host.frames, 4)
}

func TestOverlay_DeleteGestureIsNotPersisted(t *testing.T) {
	store, path := newStore(t, map[rune]string{'a': "/home/x", 'b': "/tmp"})
	o, host := newOverlay(t, store, popup.Alt('a'), popup.Char('a'), popup.Char('b'))

	got, err := o.Pick(context.Background(), "/cwd")
	require.NoError(t, err)
	assert.Equal(t, "/tmp", got, "deleted key is no longer selectable")
	assert.Equal(t, 1, store.Len())

	// geometry shrank after the delete
	assert.Equal(t, 2, o.Coordinates().Height)
	assert.NotContains(t, terminal.StripANSI(host.frames[1]), "/home/x")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "a\n/home/x\n")

	reloaded := bookmark.New(bookmark.StaticPath(path))
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 2, reloaded.Len())
}

func TestOverlay_SaveErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	store := bookmark.New(bookmark.StaticPath(filepath.Join(blocker, "bookmarks")))
	o, _ := newOverlay(t, store, popup.Char('z'))

	err := o.Add(context.Background(), "/srv")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCancelled)
	assert.Contains(t, err.Error(), "save bookmarks")
	assert.Equal(t, ModePick, o.Mode())
}

func TestOverlay_HostErrorPropagates(t *testing.T) {
	store, _ := newStore(t, nil)
	boom := errors.New("boom")
	host := popup.HostFunc(func(context.Context, popup.Popup) error { return boom })
	o := New(host, testTerm, store)

	_, err := o.Pick(context.Background(), "/cwd")
	require.ErrorIs(t, err, boom)

	err = o.Add(context.Background(), "/cwd")
	require.ErrorIs(t, err, boom)
}

func TestOverlay_NoStalePendingAcrossInvocations(t *testing.T) {
	store, _ := newStore(t, map[rune]string{'a': "/home/x"})
	host := &scriptedHost{keys: []popup.Key{popup.Ctrl('c')}}
	o := New(host, testTerm, store)

	// cancelled add leaves nothing behind for a later pick
	require.ErrorIs(t, o.Add(context.Background(), "/stale"), ErrCancelled)

	host.keys = []popup.Key{popup.Char('`')}
	got, err := o.Pick(context.Background(), "/fresh")
	require.NoError(t, err)
	assert.Equal(t, "/fresh", got)

	// a completed pick clears its pending path
	assert.Nil(t, o.pending)
	_, err = o.DrawList()
	require.Error(t, err)
}

func TestOverlay_PickPassesContext(t *testing.T) {
	store, _ := newStore(t, nil)
	type ctxKey struct{}

	var seen any
	host := popup.HostFunc(func(ctx context.Context, p popup.Popup) error {
		seen = ctx.Value(ctxKey{})
		if err := p.OnKey(popup.Char('`')); !popup.IsFinished(err) {
			return err
		}
		return nil
	})
	o := New(host, testTerm, store)

	ctx := context.WithValue(context.Background(), ctxKey{}, "v")
	got, err := o.Pick(ctx, "/cwd")
	require.NoError(t, err)
	assert.Equal(t, "/cwd", got)
	assert.Equal(t, "v", seen)
}

func TestOverlay_Refresh(t *testing.T) {
	tests := []struct {
		name    string
		entries int
		term    terminal.Fixed
		want    popup.Coordinates
	}{
		{name: "empty", entries: 0, term: terminal.Fixed{Width: 80, Height: 24}, want: popup.Coordinates{X: 1, Y: 24, Width: 80, Height: 1}},
		{name: "three entries", entries: 3, term: terminal.Fixed{Width: 80, Height: 24}, want: popup.Coordinates{X: 1, Y: 21, Width: 80, Height: 4}},
		{name: "fills terminal", entries: 4, term: terminal.Fixed{Width: 20, Height: 5}, want: popup.Coordinates{X: 1, Y: 1, Width: 20, Height: 5}},
		{name: "taller than terminal", entries: 6, term: terminal.Fixed{Width: 20, Height: 5}, want: popup.Coordinates{X: 1, Y: 1, Width: 20, Height: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := bookmark.New(bookmark.StaticPath(filepath.Join(t.TempDir(), "bookmarks")))
			for i := range tt.entries {
				require.NoError(t, store.Add(rune('a'+i), "/p"))
			}

			o := New(popup.HostFunc(nil), tt.term, store)
			require.NoError(t, o.Refresh())
			assert.Equal(t, tt.want, *o.Coordinates())
		})
	}
}

func TestOverlay_RenderLine(t *testing.T) {
	o := New(popup.HostFunc(nil), terminal.Fixed{Width: 14, Height: 10}, nil)

	t.Run("pads to width", func(t *testing.T) {
		line := o.RenderLine(3, 'a', "/tmp")
		assert.True(t, strings.HasPrefix(line, "\x1b[3;1H\x1b[m"))
		assert.Equal(t, "a: /tmp      ", terminal.StripANSI(line))
	})

	t.Run("truncates long paths", func(t *testing.T) {
		line := o.RenderLine(1, 'b', "/very/long/path/name")
		assert.Equal(t, "b: /very/long", terminal.StripANSI(line))
	})

	t.Run("narrow terminal", func(t *testing.T) {
		narrow := New(popup.HostFunc(nil), terminal.Fixed{Width: 2, Height: 10}, nil)
		assert.Equal(t, "c: ", terminal.StripANSI(narrow.RenderLine(1, 'c', "/tmp")))
	})
}

func TestOverlay_DrawList(t *testing.T) {
	store, _ := newStore(t, map[rune]string{'b': "/tmp", 'a': "/home/x"})

	t.Run("pick", func(t *testing.T) {
		o, host := newOverlay(t, store, popup.Ctrl('c'))
		_, err := o.Pick(context.Background(), "/cwd")
		require.ErrorIs(t, err, ErrCancelled)

		frame := host.frames[0]
		assert.Equal(t, o.RenderLine(22, '`', "/cwd")+o.RenderLine(23, 'a', "/home/x")+o.RenderLine(24, 'b', "/tmp"), frame)
	})

	t.Run("add omits the offered row", func(t *testing.T) {
		o, host := newOverlay(t, store, popup.Ctrl('c'))
		require.ErrorIs(t, o.Add(context.Background(), "/new"), ErrCancelled)

		frame := host.frames[0]
		assert.Equal(t, o.RenderLine(23, 'a', "/home/x")+o.RenderLine(24, 'b', "/tmp"), frame)
		assert.NotContains(t, terminal.StripANSI(frame), "/new")
	})
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "pick", ModePick.String())
	assert.Equal(t, "add", ModeAdd.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}
