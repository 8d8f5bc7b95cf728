package popup

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/marks/pkg/tuitest"
)

func TestFromTea(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyPressMsg
		want Key
	}{
		{name: "char", msg: tuitest.KeyPress('a'), want: Char('a')},
		{name: "non-ascii char", msg: tuitest.KeyPress('ß'), want: Char('ß')},
		{name: "backtick", msg: tuitest.KeyPress('`'), want: Char('`')},
		{name: "ctrl", msg: tuitest.CtrlPress('c'), want: Ctrl('c')},
		{name: "alt", msg: tuitest.AltPress('x'), want: Alt('x')},
		{
			name: "alt shifted",
			msg:  tea.KeyPressMsg(tea.Key{Code: 'x', ShiftedCode: 'X', Mod: tea.ModAlt | tea.ModShift}),
			want: Alt('X'),
		},
		{name: "enter", msg: tuitest.KeyEnter(), want: Key{Kind: KeyOther, Rune: tea.KeyEnter}},
		{name: "arrow", msg: tuitest.KeyDown(), want: Key{Kind: KeyOther, Rune: tea.KeyDown}},
		{
			name: "alt enter",
			msg:  tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter, Mod: tea.ModAlt}),
			want: Key{Kind: KeyOther, Rune: tea.KeyEnter},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromTea(tt.msg))
		})
	}
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "a", Char('a').String())
	assert.Equal(t, "ctrl+c", Ctrl('c').String())
	assert.Equal(t, "alt+d", Alt('d').String())
	assert.Equal(t, "other", Key{}.String())
}
