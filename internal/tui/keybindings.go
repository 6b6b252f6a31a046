package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/docent/internal/core/input"
	"github.com/colonyops/docent/internal/core/layout"
	"github.com/colonyops/docent/internal/core/session"
)

var namedKeys = map[rune]input.KeyCode{
	tea.KeyEnter:     input.KeyEnter,
	tea.KeyEscape:    input.KeyEsc,
	tea.KeyTab:       input.KeyTab,
	tea.KeyBackspace: input.KeyBackspace,
	tea.KeyUp:        input.KeyUp,
	tea.KeyDown:      input.KeyDown,
	tea.KeyLeft:      input.KeyLeft,
	tea.KeyRight:     input.KeyRight,
	tea.KeyPgUp:      input.KeyPgUp,
	tea.KeyPgDown:    input.KeyPgDown,
	tea.KeyHome:      input.KeyHome,
	tea.KeyEnd:       input.KeyEnd,
}

// translateKey converts a key press into resolver keys. Printable text
// yields one key per rune so pasted text types through.
func translateKey(msg tea.KeyPressMsg) []input.Key {
	k := msg.Key()
	ctrl := k.Mod.Contains(tea.ModCtrl)
	alt := k.Mod.Contains(tea.ModAlt)
	shift := k.Mod.Contains(tea.ModShift)

	if code, ok := namedKeys[k.Code]; ok {
		return []input.Key{{Code: code, Ctrl: ctrl, Alt: alt, Shift: shift}}
	}

	if k.Text != "" && !ctrl && !alt {
		keys := make([]input.Key, 0, len(k.Text))
		for _, r := range k.Text {
			keys = append(keys, input.Rune(r))
		}
		return keys
	}

	if k.Code == 0 || k.Code > 0x10FFFF {
		return nil
	}
	return []input.Key{{Code: input.KeyRune, Rune: k.Code, Ctrl: ctrl, Alt: alt}}
}

// translateMouse converts a mouse message into a session event.
func translateMouse(msg tea.MouseMsg) (session.Mouse, bool) {
	m := msg.Mouse()
	ev := session.Mouse{X: m.X, Y: m.Y}

	switch msg.(type) {
	case tea.MouseClickMsg:
		if m.Button != tea.MouseLeft {
			return ev, false
		}
		ev.Kind = session.MousePress
	case tea.MouseMotionMsg:
		if m.Button != tea.MouseLeft {
			return ev, false
		}
		ev.Kind = session.MouseMotion
	case tea.MouseReleaseMsg:
		ev.Kind = session.MouseRelease
	case tea.MouseWheelMsg:
		switch m.Button {
		case tea.MouseWheelUp:
			ev.Kind = session.MouseWheelUp
		case tea.MouseWheelDown:
			ev.Kind = session.MouseWheelDown
		default:
			return ev, false
		}
	default:
		return ev, false
	}
	return ev, true
}

// helpKeys is the help bar content for one pane and mode.
type helpKeys []key.Binding

func (h helpKeys) ShortHelp() []key.Binding  { return h }
func (h helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func binding(keys, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, desc))
}

var (
	keyStep     = binding("n/p", "step")
	keyDone     = binding("enter", "done")
	keyUndo     = binding("u", "undo")
	keyScroll   = binding("j/k", "scroll")
	keyTop      = binding("gg/G", "top/bottom")
	keyFocus    = binding("tab", "focus")
	keyBranch   = binding("b", "branch")
	keyClose    = binding("c/B", "close")
	keyExplain  = binding("e", "explain")
	keyInsert   = binding("i", "type")
	keySearch   = binding("/", "search")
	keyMatches  = binding("N/P", "match")
	keyZoom     = binding("z", "zoom")
	keyQuit     = binding("q", "quit")
	keySend     = binding("enter", "send")
	keyNewline  = binding("shift+enter", "newline")
	keyLeave    = binding("esc", "normal")
	keyApply    = binding("enter", "apply")
	keyCancel   = binding("esc", "cancel")
	keySideways = binding("h/l", "pan")
)

// helpFor returns the bindings worth showing for the active pane and mode.
func helpFor(p layout.Pane, mode input.Mode, searching bool) helpKeys {
	switch mode {
	case input.ModeInsert:
		return helpKeys{keySend, keyNewline, keyLeave, keyFocus}
	case input.ModeSearch:
		return helpKeys{keyApply, keyCancel}
	case input.ModeNormal, input.ModePending:
	}

	switch p {
	case layout.PaneMinimap:
		return helpKeys{keyScroll, keyTop, keyDone, keyUndo, keyExplain, keyBranch, keyFocus, keyZoom, keyQuit}
	case layout.PaneChat:
		return helpKeys{keyInsert, keyBranch, keyClose, keyExplain, keyScroll, keyStep, keyFocus, keyQuit}
	case layout.PaneDiff:
		if searching {
			return helpKeys{keyMatches, keyCancel, keyScroll, keySideways, keyQuit}
		}
		return helpKeys{keySearch, keyScroll, keySideways, keyTop, keyStep, keyDone, keyZoom, keyFocus, keyQuit}
	}
	return helpKeys{keyStep, keyDone, keyQuit}
}
