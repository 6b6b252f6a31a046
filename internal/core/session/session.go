// Package session aggregates the walkthrough, focus, input, scroll, layout
// and thread state of one interactive review. It is the single source of
// truth the renderer reads from.
package session

import (
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/docent/internal/core/focus"
	"github.com/colonyops/docent/internal/core/input"
	"github.com/colonyops/docent/internal/core/layout"
	"github.com/colonyops/docent/internal/core/logging"
	"github.com/colonyops/docent/internal/core/scroll"
	"github.com/colonyops/docent/internal/core/search"
	"github.com/colonyops/docent/internal/core/thread"
	"github.com/colonyops/docent/internal/core/walkthrough"
)

// Options configures a Session.
type Options struct {
	Input input.Config
	// Layout configures the pane split. The zero value uses the defaults.
	Layout layout.Config
	// InitialFocus is the pane focused at startup. Defaults to the minimap.
	InitialFocus layout.Pane
	// NewHandle generates request handles. Defaults to random UUIDs.
	NewHandle func() string
}

// Snapshot is the view state captured when a branch opens and restored
// when it closes.
type Snapshot struct {
	Step   int
	Active layout.Pane
	Scroll map[layout.Pane]scroll.Extent
}

type requestKind int

const (
	requestChat requestKind = iota
	requestExplanation
)

type request struct {
	kind    requestKind
	stepID  string
	started bool
}

// Session owns one of each core component and applies actions to them.
type Session struct {
	wt      *walkthrough.Walkthrough
	layout  *layout.Engine
	router  *focus.Router
	input   *input.Resolver
	threads *thread.Manager[Snapshot]
	scrolls map[layout.Pane]*scroll.Engine
	search  search.State

	diff     []walkthrough.DiffLine
	diffText []string

	pending   map[string]*request
	newHandle func() string

	notice   string
	quitting bool

	dragX, dragY int

	log zerolog.Logger
}

// New builds a session over wt. The walkthrough must already be validated.
func New(wt *walkthrough.Walkthrough, opts Options) *Session {
	if opts.NewHandle == nil {
		opts.NewHandle = func() string { return uuid.NewString() }
	}
	if opts.Layout == (layout.Config{}) {
		opts.Layout = layout.DefaultConfig()
	}

	l := layout.New(opts.Layout)
	s := &Session{
		wt:      wt,
		layout:  l,
		router:  focus.NewRouter(l, opts.InitialFocus),
		input:   input.NewResolver(opts.Input),
		threads: thread.NewManager[Snapshot](wt),
		scrolls: map[layout.Pane]*scroll.Engine{
			layout.PaneMinimap: scroll.New(),
			layout.PaneChat:    scroll.NewFollowing(),
			layout.PaneDiff:    scroll.New(),
		},
		pending:   make(map[string]*request),
		newHandle: opts.NewHandle,
		log:       logging.Component("session"),
	}

	s.input.FocusChanged(s.router.Active())
	s.scrolls[layout.PaneMinimap].SetContent(wt.Len(), 0)
	s.refreshDiff()
	return s
}

// Walkthrough returns the underlying walkthrough. Callers must not mutate it.
func (s *Session) Walkthrough() *walkthrough.Walkthrough { return s.wt }

// Rects returns the current pane rectangles.
func (s *Session) Rects() layout.Rects { return s.layout.Rects() }

// Ratios returns the current split ratios.
func (s *Session) Ratios() layout.Ratios { return s.layout.Ratios() }

// Active returns the focused pane.
func (s *Session) Active() layout.Pane { return s.router.Active() }

// Mode returns the input mode.
func (s *Session) Mode() input.Mode { return s.input.Mode() }

// Vim reports whether modal editing is enabled.
func (s *Session) Vim() bool { return s.input.Vim() }

// PendingKeys returns the partial key sequence, if any.
func (s *Session) PendingKeys() string { return s.input.Pending() }

// Deadline returns when the pending key sequence expires.
func (s *Session) Deadline() (time.Time, bool) { return s.input.Deadline() }

// ChatInput returns the chat input buffer.
func (s *Session) ChatInput() string { return s.input.ChatInput() }

// SearchInput returns the search query being typed.
func (s *Session) SearchInput() string { return s.input.SearchInput() }

// Search returns the diff search state.
func (s *Session) Search() search.State { return s.search }

// Scroll returns the scroll extent of pane p.
func (s *Session) Scroll(p layout.Pane) scroll.Extent { return s.scrolls[p].Extent() }

// DiffLines returns the diff pane rows of the current step.
func (s *Session) DiffLines() []walkthrough.DiffLine { return s.diff }

// Notice returns the transient message shown until the next key.
func (s *Session) Notice() string { return s.notice }

// Quitting reports whether a quit was requested.
func (s *Session) Quitting() bool { return s.quitting }

// ActiveThread returns the open thread and the ID of its step.
func (s *Session) ActiveThread() (string, *walkthrough.Thread, bool) {
	id, ok := s.threads.Active()
	if !ok {
		return "", nil, false
	}
	return id, s.threads.Thread(), true
}

// ChatPending reports whether a chat reply is outstanding.
func (s *Session) ChatPending() bool {
	for _, r := range s.pending {
		if r.kind == requestChat {
			return true
		}
	}
	return false
}

// ExplanationPending reports whether an explanation for stepID is streaming.
func (s *Session) ExplanationPending(stepID string) bool {
	for _, r := range s.pending {
		if r.kind == requestExplanation && r.stepID == stepID {
			return true
		}
	}
	return false
}

// HandleKey resolves k and applies the resulting actions.
func (s *Session) HandleKey(k input.Key, now time.Time) []Effect {
	s.notice = ""

	// Insert mode types into the chat buffer, so it only survives while the
	// chat pane holds focus.
	if s.input.Mode() == input.ModeInsert && !s.router.AcceptsChat() {
		s.input.FocusChanged(s.router.Active())
	}

	ctx := input.Context{
		Active:    s.router.Active(),
		Now:       now,
		Searching: s.search.Active() && !s.search.Typing(),
	}

	var effects []Effect
	for _, a := range s.input.Feed(k, ctx) {
		effects = append(effects, s.Apply(a)...)
	}
	return effects
}

// Tick expires a pending key sequence whose deadline has passed.
func (s *Session) Tick(now time.Time) bool {
	return s.input.Tick(now)
}

// Resize lays the panes out for a terminal of width x height cells.
func (s *Session) Resize(width, height int) {
	s.layout.Resize(width, height)
	s.syncViewports()
}

// SetContentSize records the rendered size of pane p's content. The chat
// pane's content depends on rendering, so the renderer reports it.
func (s *Session) SetContentSize(p layout.Pane, height, width int) {
	s.scrolls[p].SetContent(height, width)
}

func (s *Session) syncViewports() {
	rects := s.layout.Rects()
	for _, p := range layout.Panes {
		r := rects.For(p)
		if r.Empty() {
			continue
		}
		h, w := r.Viewport()
		s.scrolls[p].SetViewport(h, w)
	}
	s.scrolls[layout.PaneMinimap].EnsureVisible(s.wt.Index())
}

// refreshDiff recomputes the diff pane rows and content extent for the
// current step.
func (s *Session) refreshDiff() {
	step := s.wt.CurrentStep()
	s.diff = step.DiffLines()
	s.diffText = make([]string, len(s.diff))

	width := 0
	for i, l := range s.diff {
		s.diffText[i] = l.Text
		width = max(width, ansi.StringWidth(l.Text))
	}
	s.scrolls[layout.PaneDiff].SetContent(len(s.diff), width)
}

// stepChanged resets per-step view state after the current step moves.
func (s *Session) stepChanged() {
	s.refreshDiff()
	s.scrolls[layout.PaneDiff].Reset()
	s.scrolls[layout.PaneChat].Reset()
	s.scrolls[layout.PaneMinimap].EnsureVisible(s.wt.Index())
	s.search.Clear()

	s.log.Debug().
		Int("index", s.wt.Index()).
		Str("step", s.wt.CurrentStep().ID).
		Msg("step changed")
}

// navigate runs move and resets the view if the current step changed.
func (s *Session) navigate(move func()) {
	before := s.wt.Index()
	move()
	if s.wt.Index() != before {
		s.stepChanged()
	}
}

func (s *Session) capture() Snapshot {
	snap := Snapshot{
		Step:   s.wt.Index(),
		Active: s.router.Active(),
		Scroll: make(map[layout.Pane]scroll.Extent, len(s.scrolls)),
	}
	for p, e := range s.scrolls {
		snap.Scroll[p] = e.Extent()
	}
	return snap
}

func (s *Session) restore(snap Snapshot) {
	if err := s.wt.JumpTo(snap.Step); err == nil {
		s.refreshDiff()
		s.search.Clear()
	}
	for p, ext := range snap.Scroll {
		s.scrolls[p].Restore(ext)
	}
	s.setFocus(snap.Active)
}

func (s *Session) setFocus(p layout.Pane) {
	s.router.SetActive(p)
	s.focusChanged()
}

// focusChanged syncs the resolver with the router and refreshes viewports,
// which change when the zoom followed the focus.
func (s *Session) focusChanged() {
	s.input.FocusChanged(s.router.Active())
	s.syncViewports()
}
