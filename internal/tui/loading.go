package tui

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/docent/internal/core/session"
	"github.com/colonyops/docent/internal/core/styles"
	"github.com/colonyops/docent/internal/core/walkthrough"
)

// Generator builds the walkthrough shown by the model.
type Generator func(ctx context.Context) (*walkthrough.Walkthrough, error)

type phase int

const (
	phaseReady phase = iota
	phaseLoading
	phaseFailed
)

// errorWidth caps the width of the generation error text.
const errorWidth = 60

// loader tracks walkthrough generation before a session exists.
type loader struct {
	generate Generator
	fallback Generator
	status   string
	err      error
	attempt  int
	cancel   context.CancelFunc
}

type generatedMsg struct {
	attempt int
	wt      *walkthrough.Walkthrough
	err     error
}

// NewGenerating builds a model that shows a loading screen while gen runs.
// When gen fails the user can retry, or switch to fallback when it is set.
func NewGenerating(gen, fallback Generator, opts Options) Model {
	m := newModel(opts)
	m.phase = phaseLoading
	m.loader = &loader{
		generate: gen,
		fallback: fallback,
		status:   opts.Status,
	}
	if m.loader.status == "" {
		m.loader.status = "Generating walkthrough..."
	}
	return m
}

// Ready reports whether the walkthrough session is running.
func (m Model) Ready() bool { return m.phase == phaseReady }

// GenerationErr returns the last walkthrough generation failure, if the
// model never became ready.
func (m Model) GenerationErr() error {
	if m.loader == nil || m.phase == phaseReady {
		return nil
	}
	return m.loader.err
}

// startGeneration runs the generator in the background. Only the result of
// the latest attempt is used.
func (m *Model) startGeneration() tea.Cmd {
	l := m.loader
	l.attempt++
	l.err = nil
	attempt := l.attempt

	ctx, cancel := context.WithCancel(m.ctx)
	l.cancel = cancel
	gen := l.generate

	m.log.Info().Int("attempt", attempt).Msg("generating walkthrough")

	return func() tea.Msg {
		wt, err := gen(ctx)
		return generatedMsg{attempt: attempt, wt: wt, err: err}
	}
}

func (m *Model) stopGeneration() {
	if m.loader.cancel != nil {
		m.loader.cancel()
		m.loader.cancel = nil
	}
}

// updateLoading handles messages until the walkthrough is ready.
func (m Model) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetWidth(msg.Width)

	case generatedMsg:
		if msg.attempt != m.loader.attempt || m.phase != phaseLoading {
			break
		}
		m.stopGeneration()
		switch {
		case errors.Is(msg.err, context.Canceled):
		case msg.err != nil:
			m.fail(msg.err)
		case msg.wt == nil:
			m.fail(errors.New("no walkthrough returned"))
		default:
			m.start(msg.wt)
		}

	case tea.KeyPressMsg:
		return m.loadingKey(msg)

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			break
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.phase == phaseReady {
		m.syncContent()
	}
	if m.busy() && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) loadingKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.stopGeneration()
		m.aborted = true
		m.log.Info().Str("phase", m.phaseName()).Msg("quit before walkthrough was ready")
		return m, tea.Quit
	}

	if m.phase != phaseFailed {
		return m, nil
	}

	switch msg.String() {
	case "r":
		m.phase = phaseLoading
		m.loader.status = "Retrying..."
		m.spinning = true
		return m, tea.Batch(m.startGeneration(), m.spinner.Tick)
	case "f":
		if m.loader.fallback == nil {
			return m, nil
		}
		wt, err := m.loader.fallback(m.ctx)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.start(wt)
		m.syncContent()
	}
	return m, nil
}

func (m *Model) fail(err error) {
	m.phase = phaseFailed
	m.loader.err = err
	m.log.Warn().Err(err).Int("attempt", m.loader.attempt).Msg("walkthrough generation failed")
}

// start creates the session over wt and leaves the loading phase.
func (m *Model) start(wt *walkthrough.Walkthrough) {
	m.session = session.New(wt, m.sessionOpts)
	m.phase = phaseReady
	if m.width > 0 && m.height > 0 {
		m.session.Resize(m.width, m.height)
	}
	m.log.Info().Int("steps", wt.Len()).Msg("walkthrough ready")
}

func (m Model) phaseName() string {
	switch m.phase {
	case phaseLoading:
		return "loading"
	case phaseFailed:
		return "failed"
	}
	return "ready"
}

func (m Model) renderLoading() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.ModalTitleStyle.Render("Generating Walkthrough"),
		"",
		m.spinner.View()+" "+m.loader.status,
		styles.ModalHelpStyle.Render("Press Ctrl+C to cancel"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, styles.ModalStyle.Render(body))
}

func (m Model) renderFailed() string {
	width := max(10, min(errorWidth, m.width-8))

	hint := "Press r to retry or q to quit"
	if m.loader.fallback != nil {
		hint = "Press r to retry, f for one step per file, or q to quit"
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.ModalTitleStyle.Render("Walkthrough generation failed"),
		"",
		styles.ErrorStyle.Width(width).Render(m.loader.err.Error()),
		styles.ModalHelpStyle.Width(width).Render(hint),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, styles.ModalErrorStyle.Render(body))
}
