// Package tui renders a walkthrough session as a three-pane Bubble Tea
// program and feeds terminal input back into it.
package tui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/docent/internal/assist"
	"github.com/colonyops/docent/internal/core/layout"
	"github.com/colonyops/docent/internal/core/logging"
	"github.com/colonyops/docent/internal/core/review"
	"github.com/colonyops/docent/internal/core/session"
	"github.com/colonyops/docent/internal/core/styles"
	"github.com/colonyops/docent/internal/core/walkthrough"
	"github.com/colonyops/docent/internal/tui/diff"
)

// tickInterval is how often a pending key sequence is checked for expiry.
const tickInterval = 50 * time.Millisecond

// Options configures the TUI.
type Options struct {
	// Context bounds background requests. Defaults to context.Background.
	Context context.Context
	// Client answers explanation and chat requests. Nil disables them.
	Client assist.Client
	// Source names the reviewed diff in exported feedback.
	Source  string
	Session session.Options
	// Status is shown while a walkthrough is generated.
	Status string
	// Now overrides the clock, for tests.
	Now func() time.Time
}

type tickMsg time.Time

// Model is the Bubble Tea model for a walkthrough session.
type Model struct {
	session     *session.Session
	sessionOpts session.Options
	phase       phase
	loader      *loader
	aborted     bool

	client  assist.Client
	source  string
	now     func() time.Time

	ctx     context.Context
	cancels map[string]context.CancelFunc

	width, height int
	ticking       bool
	spinning      bool

	spinner     spinner.Model
	help        help.Model
	highlighter *diff.Highlighter
	markdown    *markdown
	diffRows    *diffRows
	chat        *chatView

	feedback string
	log      zerolog.Logger
}

// New builds a model over wt.
func New(wt *walkthrough.Walkthrough, opts Options) Model {
	m := newModel(opts)
	m.session = session.New(wt, opts.Session)
	return m
}

func newModel(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.ShortSeparator = styles.HelpStyle

	return Model{
		sessionOpts: opts.Session,
		client:      opts.Client,
		source:      opts.Source,
		now:         opts.Now,
		ctx:         opts.Context,
		cancels:     make(map[string]context.CancelFunc),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.PendingStyle),
		),
		help:        h,
		highlighter: diff.NewHighlighter(styles.ChromaStyle),
		markdown:    newMarkdown(),
		diffRows:    &diffRows{},
		chat:        &chatView{},
		log:         logging.Component("tui"),
	}
}

// Session returns the underlying session. It is nil until the walkthrough
// is ready.
func (m Model) Session() *session.Session { return m.session }

// Feedback returns the review feedback captured when the session quit.
func (m Model) Feedback() string { return m.feedback }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.phase == phaseLoading {
		return m.startGeneration()
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.phase != phaseReady {
		return m.updateLoading(msg)
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.session.Resize(msg.Width, msg.Height)
		m.help.SetWidth(msg.Width)

	case tea.KeyPressMsg:
		now := m.now()
		for _, k := range translateKey(msg) {
			cmds = append(cmds, m.runEffects(m.session.HandleKey(k, now)))
		}
		cmds = append(cmds, m.scheduleTick())

	case tea.MouseMsg:
		if ev, ok := translateMouse(msg); ok {
			cmds = append(cmds, m.runEffects(m.session.HandleMouse(ev)))
		}

	case tickMsg:
		m.ticking = false
		m.session.Tick(time.Time(msg))
		cmds = append(cmds, m.scheduleTick())

	case replyMsg:
		cmds = append(cmds, m.handleReply(msg))

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			break
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.syncContent()

	if m.busy() && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}

	return m, tea.Batch(cmds...)
}

// scheduleTick starts the expiry tick while a key sequence is pending.
func (m *Model) scheduleTick() tea.Cmd {
	if m.ticking {
		return nil
	}
	if _, ok := m.session.Deadline(); !ok {
		return nil
	}
	m.ticking = true
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) busy() bool {
	return m.phase == phaseLoading || len(m.cancels) > 0
}

// runEffects turns session effects into commands.
func (m *Model) runEffects(effects []session.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		switch e := e.(type) {
		case session.RequestChat:
			req := assist.ChatRequest{Index: e.Index, Steps: e.Steps, Messages: e.Messages}
			ctx := m.ctx
			if e.Index >= 0 && e.Index < len(e.Steps) {
				ctx = logging.WithStepID(ctx, e.Steps[e.Index].ID)
			}
			cmds = append(cmds, m.startCtx(ctx, e.Handle, func(ctx context.Context, c assist.Client, emit func(string)) error {
				return c.Chat(ctx, req, emit)
			}))
		case session.RequestExplanation:
			req := assist.ExplainRequest{Step: e.Step}
			ctx := logging.WithStepID(m.ctx, e.Step.ID)
			cmds = append(cmds, m.startCtx(ctx, e.Handle, func(ctx context.Context, c assist.Client, emit func(string)) error {
				return c.Explain(ctx, req, emit)
			}))
		case session.Cancel:
			m.cancel(e.Handle)
		case session.Quit:
			m.cancelAll()
			m.feedback = review.Feedback(m.session.Snapshot(m.source))
			cmds = append(cmds, tea.Quit)
		}
	}
	return tea.Batch(cmds...)
}

// syncContent reports rendered content sizes back to the session so
// scrolling is bounded by what is drawn.
func (m *Model) syncContent() {
	rects := m.session.Rects()

	if r := rects.For(layout.PaneDiff); !r.Empty() {
		rows := m.diffRows.build(m.session, m.highlighter)
		m.session.SetContentSize(layout.PaneDiff, len(rows.lines), rows.width)
	}

	if r := rects.For(layout.PaneChat); !r.Empty() {
		_, w := r.Viewport()
		lines := m.chat.build(m.session, m.markdown, m.spinner.View(), w)
		m.session.SetContentSize(layout.PaneChat, len(lines), w)
	}
}
