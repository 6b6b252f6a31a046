package input

import (
	"strings"
	"unicode"
)

// KeyCode identifies a named key. Printable characters use KeyRune.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyEsc
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPgUp
	KeyPgDown
	KeyHome
	KeyEnd
)

var keyNames = map[KeyCode]string{
	KeyEnter:     "enter",
	KeyEsc:       "esc",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyPgUp:      "pgup",
	KeyPgDown:    "pgdown",
	KeyHome:      "home",
	KeyEnd:       "end",
}

// Key is a raw key event: a character or named key plus modifiers.
type Key struct {
	Code  KeyCode
	Rune  rune
	Ctrl  bool
	Alt   bool
	Shift bool
}

// Rune returns a plain character key.
func Rune(r rune) Key { return Key{Code: KeyRune, Rune: r} }

// Ctrl returns a control-modified character key.
func Ctrl(r rune) Key { return Key{Code: KeyRune, Rune: r, Ctrl: true} }

// Named returns a named key without modifiers.
func Named(c KeyCode) Key { return Key{Code: c} }

// String renders the key the way bindings are written, e.g. "ctrl+d",
// "shift+enter" or "g".
func (k Key) String() string {
	var b strings.Builder
	if k.Ctrl {
		b.WriteString("ctrl+")
	}
	if k.Alt {
		b.WriteString("alt+")
	}
	if k.Code == KeyRune {
		if k.Rune == ' ' {
			b.WriteString("space")
		} else {
			b.WriteRune(k.Rune)
		}
		return b.String()
	}
	if k.Shift {
		b.WriteString("shift+")
	}
	b.WriteString(keyNames[k.Code])
	return b.String()
}

// Printable reports whether the key inserts text.
func (k Key) Printable() bool {
	return k.Code == KeyRune && !k.Ctrl && !k.Alt && unicode.IsPrint(k.Rune)
}

// seqRune returns the character a key contributes to a multi-key sequence.
func (k Key) seqRune() (rune, bool) {
	if !k.Printable() {
		return 0, false
	}
	return k.Rune, true
}
