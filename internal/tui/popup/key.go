package popup

import (
	"unicode"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
)

// KeyKind classifies a key event.
type KeyKind int

const (
	// KeyOther is any key the popups do not act on: arrows, function keys,
	// enter and the like.
	KeyOther KeyKind = iota
	// KeyChar is a printable character without ctrl or alt.
	KeyChar
	// KeyCtrl is a character pressed with ctrl.
	KeyCtrl
	// KeyAlt is a character pressed with alt.
	KeyAlt
)

// Key is a single key event delivered to a popup.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Char returns a plain character key.
func Char(r rune) Key { return Key{Kind: KeyChar, Rune: r} }

// Ctrl returns a ctrl+character key.
func Ctrl(r rune) Key { return Key{Kind: KeyCtrl, Rune: r} }

// Alt returns an alt+character key.
func Alt(r rune) Key { return Key{Kind: KeyAlt, Rune: r} }

// String renders the key the way bubbletea spells keystrokes.
func (k Key) String() string {
	switch k.Kind {
	case KeyChar:
		return string(k.Rune)
	case KeyCtrl:
		return "ctrl+" + string(k.Rune)
	case KeyAlt:
		return "alt+" + string(k.Rune)
	default:
		return "other"
	}
}

// FromTea converts a bubbletea key press into a popup Key.
func FromTea(msg tea.KeyPressMsg) Key {
	k := msg.Key()

	switch {
	case k.Mod.Contains(tea.ModCtrl):
		if !unicode.IsPrint(k.Code) {
			return Key{Kind: KeyOther, Rune: k.Code}
		}
		return Ctrl(k.Code)
	case k.Mod.Contains(tea.ModAlt):
		code := k.Code
		if k.Mod.Contains(tea.ModShift) && k.ShiftedCode != 0 {
			code = k.ShiftedCode
		}
		if !unicode.IsPrint(code) {
			return Key{Kind: KeyOther, Rune: code}
		}
		return Alt(code)
	case k.Text != "":
		r, _ := utf8.DecodeRuneInString(k.Text)
		return Char(r)
	default:
		return Key{Kind: KeyOther, Rune: k.Code}
	}
}
