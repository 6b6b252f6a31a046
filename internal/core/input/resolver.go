// Package input resolves raw key events into abstract Actions through a
// modal, vim-style state machine.
package input

import (
	"fmt"
	"strings"
	"time"

	"github.com/colonyops/docent/internal/core/layout"
	"github.com/colonyops/docent/internal/core/scroll"
)

// DefaultSequenceTimeout bounds how long a multi-key sequence waits for
// its next key.
const DefaultSequenceTimeout = 300 * time.Millisecond

// Mode is the resolver's modal state.
type Mode int

const (
	ModeNormal  Mode = iota
	ModeInsert       // typing into the chat input
	ModePending      // holding a partial multi-key sequence
	ModeSearch       // typing a diff search query
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModePending:
		return "PENDING"
	case ModeSearch:
		return "SEARCH"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// VimMode selects whether modal editing is used.
type VimMode int

const (
	VimAuto VimMode = iota
	VimAlways
	VimNever
)

// ParseVimMode parses "auto", "always" or "never". "enabled" and
// "disabled" are accepted as aliases.
func ParseVimMode(s string) (VimMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return VimAuto, nil
	case "always", "enabled", "on":
		return VimAlways, nil
	case "never", "disabled", "off":
		return VimNever, nil
	default:
		return VimAuto, fmt.Errorf("unknown vim mode %q", s)
	}
}

func (v VimMode) String() string {
	switch v {
	case VimAuto:
		return "auto"
	case VimAlways:
		return "always"
	case VimNever:
		return "never"
	default:
		return "unknown"
	}
}

// Config configures a Resolver. Vim must already be resolved to VimAlways
// or VimNever; VimAuto is treated as VimAlways.
type Config struct {
	Vim             VimMode
	SequenceTimeout time.Duration
}

// Context is the session state a key is resolved against.
type Context struct {
	Active layout.Pane
	Now    time.Time
	// Searching is true while a committed search has matches to step through.
	Searching bool
}

// sequences maps complete multi-key sequences to their actions. Every
// proper prefix of a key here is a pending prefix.
var sequences = map[string]ActionType{
	"gg": ActionTypeScrollTop,
	"[[": ActionTypePrevStep,
	"]]": ActionTypeNextStep,
}

// Resolver is the modal key state machine. It holds the pending sequence
// buffer and the chat and search input buffers.
type Resolver struct {
	cfg Config

	mode     Mode
	pending  string
	deadline time.Time

	chat   []rune
	search []rune
}

// NewResolver returns a resolver in Normal mode.
func NewResolver(cfg Config) *Resolver {
	if cfg.SequenceTimeout <= 0 {
		cfg.SequenceTimeout = DefaultSequenceTimeout
	}
	if cfg.Vim == VimAuto {
		cfg.Vim = VimAlways
	}
	return &Resolver{cfg: cfg}
}

// Mode returns the current mode.
func (r *Resolver) Mode() Mode { return r.mode }

// Vim reports whether modal editing is enabled.
func (r *Resolver) Vim() bool { return r.cfg.Vim != VimNever }

// Pending returns the partial sequence buffer.
func (r *Resolver) Pending() string { return r.pending }

// Deadline returns when the pending sequence expires.
func (r *Resolver) Deadline() (time.Time, bool) {
	return r.deadline, r.mode == ModePending
}

// ChatInput returns the chat input buffer.
func (r *Resolver) ChatInput() string { return string(r.chat) }

// SetChatInput replaces the chat input buffer.
func (r *Resolver) SetChatInput(s string) { r.chat = []rune(s) }

// SearchInput returns the search query being typed.
func (r *Resolver) SearchInput() string { return string(r.search) }

// Tick expires a pending sequence whose deadline has passed. It reports
// whether a sequence was discarded.
func (r *Resolver) Tick(now time.Time) bool {
	if r.mode != ModePending || now.Before(r.deadline) {
		return false
	}
	r.resetPending()
	return true
}

// FocusChanged adjusts the mode after focus moves to p. Without vim the chat
// pane is always in insert mode; leaving chat returns to normal mode.
func (r *Resolver) FocusChanged(p layout.Pane) {
	switch {
	case p == layout.PaneChat && !r.Vim():
		r.resetPending()
		r.mode = ModeInsert
	case p != layout.PaneChat && r.mode == ModeInsert:
		r.mode = ModeNormal
	}
}

// Feed resolves one key against ctx and returns the resulting actions.
func (r *Resolver) Feed(k Key, ctx Context) []Action {
	if k.Code == KeyRune && k.Ctrl && k.Rune == 'c' {
		r.resetPending()
		r.mode = ModeNormal
		return []Action{simple(ActionTypeQuit)}
	}

	switch r.mode {
	case ModeInsert:
		return r.feedInsert(k, ctx)
	case ModeSearch:
		return r.feedSearch(k)
	case ModePending:
		return r.feedPending(k, ctx)
	case ModeNormal:
		return r.feedNormal(k, ctx)
	}
	return nil
}

func (r *Resolver) feedPending(k Key, ctx Context) []Action {
	// A key arriving on or after the deadline never completes the sequence,
	// even when the caller has not ticked yet.
	if !ctx.Now.Before(r.deadline) {
		r.resetPending()
		return r.feedNormal(k, ctx)
	}

	if ch, ok := k.seqRune(); ok {
		buf := r.pending + string(ch)
		if t, ok := sequences[buf]; ok {
			r.resetPending()
			return []Action{onPane(t, ctx.Active)}
		}
		if isPrefix(buf) {
			r.pending = buf
			return nil
		}
	}

	r.resetPending()
	return r.feedNormal(k, ctx)
}

func (r *Resolver) feedNormal(k Key, ctx Context) []Action {
	p := ctx.Active

	if k.Ctrl && k.Code == KeyRune {
		switch k.Rune {
		case 'd':
			return []Action{{Type: ActionTypeScrollHalfPage, Pane: p, Dir: scroll.Down}}
		case 'u':
			return []Action{{Type: ActionTypeScrollHalfPage, Pane: p, Dir: scroll.Up}}
		case 'h':
			return []Action{{Type: ActionTypeFocusDirection, Direction: layout.Left}}
		case 'j':
			return []Action{{Type: ActionTypeFocusDirection, Direction: layout.Down}}
		case 'k':
			return []Action{{Type: ActionTypeFocusDirection, Direction: layout.Up}}
		case 'l':
			return []Action{{Type: ActionTypeFocusDirection, Direction: layout.Right}}
		}
		return nil
	}

	switch k.Code {
	case KeyDown:
		return []Action{ScrollLines(p, 1)}
	case KeyUp:
		return []Action{ScrollLines(p, -1)}
	case KeyLeft:
		return []Action{{Type: ActionTypeScrollColumns, Pane: p, Delta: -4}}
	case KeyRight:
		return []Action{{Type: ActionTypeScrollColumns, Pane: p, Delta: 4}}
	case KeyPgDown:
		return []Action{{Type: ActionTypeScrollHalfPage, Pane: p, Dir: scroll.Down}}
	case KeyPgUp:
		return []Action{{Type: ActionTypeScrollHalfPage, Pane: p, Dir: scroll.Up}}
	case KeyHome:
		return []Action{onPane(ActionTypeScrollTop, p)}
	case KeyEnd:
		return []Action{onPane(ActionTypeScrollBottom, p)}
	case KeyEnter:
		return []Action{simple(ActionTypeCompleteAndAdvance)}
	case KeyTab:
		if k.Shift {
			return []Action{{Type: ActionTypeCycleFocus, Delta: -1}}
		}
		return []Action{{Type: ActionTypeCycleFocus, Delta: 1}}
	case KeyEsc:
		if ctx.Searching {
			return []Action{simple(ActionTypeClearSearch)}
		}
		return []Action{simple(ActionTypeQuit)}
	case KeyRune:
		return r.normalRune(k.Rune, ctx)
	}
	return nil
}

func (r *Resolver) normalRune(ch rune, ctx Context) []Action {
	p := ctx.Active

	if isPrefix(string(ch)) {
		r.mode = ModePending
		r.pending = string(ch)
		r.deadline = ctx.Now.Add(r.cfg.SequenceTimeout)
		return nil
	}

	switch ch {
	case 'j':
		return []Action{ScrollLines(p, 1)}
	case 'k':
		return []Action{ScrollLines(p, -1)}
	case 'h':
		return []Action{{Type: ActionTypeScrollColumns, Pane: p, Delta: -4}}
	case 'l':
		return []Action{{Type: ActionTypeScrollColumns, Pane: p, Delta: 4}}
	case 'G':
		return []Action{onPane(ActionTypeScrollBottom, p)}
	case 'n':
		return []Action{simple(ActionTypeNextStep)}
	case 'p':
		return []Action{simple(ActionTypePrevStep)}
	case 'u':
		return []Action{simple(ActionTypeUndoComplete)}
	case 'i':
		if p != layout.PaneChat {
			return nil
		}
		r.mode = ModeInsert
		return []Action{simple(ActionTypeEnterInsert)}
	case 'b':
		return []Action{simple(ActionTypeOpenBranch)}
	case 'c':
		// The session clears the buffer once a branch actually closes.
		var comment *string
		if text := strings.TrimSpace(string(r.chat)); text != "" {
			comment = &text
		}
		return []Action{CloseBranch(comment)}
	case 'B':
		return []Action{CloseBranch(nil)}
	case 'e':
		return []Action{simple(ActionTypeRequestExplanation)}
	case 'z':
		return []Action{onPane(ActionTypeToggleZoom, p)}
	case '/':
		if p != layout.PaneDiff {
			return nil
		}
		r.mode = ModeSearch
		r.search = nil
		return []Action{simple(ActionTypeBeginSearch)}
	case 'N':
		if ctx.Searching {
			return []Action{simple(ActionTypeNextMatch)}
		}
	case 'P':
		if ctx.Searching {
			return []Action{simple(ActionTypePrevMatch)}
		}
	case 'q':
		return []Action{simple(ActionTypeQuit)}
	}
	return nil
}

func (r *Resolver) feedInsert(k Key, ctx Context) []Action {
	switch k.Code {
	case KeyEsc:
		r.mode = ModeNormal
		return []Action{simple(ActionTypeExitInsert)}
	case KeyEnter:
		if k.Shift || k.Alt {
			r.chat = append(r.chat, '\n')
			return []Action{simple(ActionTypeInsertNewline)}
		}
		text := strings.TrimSpace(string(r.chat))
		if text == "" {
			return nil
		}
		r.chat = nil
		return []Action{{Type: ActionTypeSubmitMessage, Text: text}}
	case KeyBackspace:
		if n := len(r.chat); n > 0 {
			r.chat = r.chat[:n-1]
		}
		return nil
	case KeyTab:
		r.mode = ModeNormal
		delta := 1
		if k.Shift {
			delta = -1
		}
		return []Action{simple(ActionTypeExitInsert), {Type: ActionTypeCycleFocus, Delta: delta}}
	case KeyUp:
		return []Action{ScrollLines(ctx.Active, -1)}
	case KeyDown:
		return []Action{ScrollLines(ctx.Active, 1)}
	case KeyPgUp:
		return []Action{{Type: ActionTypeScrollHalfPage, Pane: ctx.Active, Dir: scroll.Up}}
	case KeyPgDown:
		return []Action{{Type: ActionTypeScrollHalfPage, Pane: ctx.Active, Dir: scroll.Down}}
	case KeyRune:
		if k.Printable() {
			r.chat = append(r.chat, k.Rune)
		}
	}
	return nil
}

func (r *Resolver) feedSearch(k Key) []Action {
	switch k.Code {
	case KeyEsc:
		r.mode = ModeNormal
		r.search = nil
		return []Action{simple(ActionTypeCancelSearch)}
	case KeyEnter:
		r.mode = ModeNormal
		return []Action{{Type: ActionTypeCommitSearch, Text: string(r.search)}}
	case KeyBackspace:
		if n := len(r.search); n > 0 {
			r.search = r.search[:n-1]
		}
		return []Action{{Type: ActionTypeUpdateSearch, Text: string(r.search)}}
	case KeyRune:
		if k.Printable() {
			r.search = append(r.search, k.Rune)
			return []Action{{Type: ActionTypeUpdateSearch, Text: string(r.search)}}
		}
	}
	return nil
}

func (r *Resolver) resetPending() {
	if r.mode == ModePending {
		r.mode = ModeNormal
	}
	r.pending = ""
	r.deadline = time.Time{}
}

func isPrefix(buf string) bool {
	for seq := range sequences {
		if len(buf) < len(seq) && strings.HasPrefix(seq, buf) {
			return true
		}
	}
	return false
}
