package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/docent/internal/core/input"
	"github.com/colonyops/docent/internal/core/layout"
	"github.com/colonyops/docent/internal/core/styles"
)

// View implements tea.Model.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// render draws the whole frame.
func (m Model) render() string {
	if m.aborted || m.width == 0 || m.height == 0 {
		return ""
	}

	switch m.phase {
	case phaseLoading:
		return m.renderLoading()
	case phaseFailed:
		return m.renderFailed()
	}

	if m.session.Quitting() {
		return ""
	}

	rects := m.session.Rects()

	var body string
	if p, zoomed := zoomedPane(rects); zoomed {
		body = m.renderPane(p, rects.Content)
	} else {
		left := lipgloss.JoinVertical(lipgloss.Left,
			m.renderPane(layout.PaneMinimap, rects.Minimap),
			m.renderPane(layout.PaneChat, rects.Chat),
		)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderPane(layout.PaneDiff, rects.Diff))
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderHelpBar(rects.HelpBar.W))
}

func zoomedPane(r layout.Rects) (layout.Pane, bool) {
	return r.ZoomPane, r.Zoomed
}

// renderPane draws pane p as a bordered box exactly filling r.
func (m Model) renderPane(p layout.Pane, r layout.Rect) string {
	if r.Empty() {
		return ""
	}

	innerW := max(0, r.W-2)
	innerH := max(0, r.H-2)
	vh, _ := r.Viewport()
	ext := m.session.Scroll(p)

	var title string
	var rows []string
	switch p {
	case layout.PaneMinimap:
		title = m.minimapTitle()
		rows = m.minimapRows(ext.Y, vh, innerW)
	case layout.PaneChat:
		title = m.chatTitle()
		rows = sliceRows(m.chat.lines, ext.Y, vh)
	case layout.PaneDiff:
		title = m.diffTitle()
		rows = m.diffRows.render(m.session.Search(), ext.Y, ext.X, vh, innerW)
	}

	lines := make([]string, 0, innerH)
	if innerH > 0 {
		lines = append(lines, fitLine(styles.PaneTitleStyle.Render(title), innerW))
	}
	for _, row := range rows {
		if len(lines) == innerH {
			break
		}
		lines = append(lines, fitLine(row, innerW))
	}
	for len(lines) < innerH {
		lines = append(lines, strings.Repeat(" ", innerW))
	}

	style := styles.PaneStyle
	if m.session.Active() == p {
		style = styles.PaneActiveStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

// fitLine truncates or pads s to exactly width cells.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func sliceRows(rows []string, from, n int) []string {
	if from >= len(rows) {
		return nil
	}
	return rows[from:min(len(rows), from+n)]
}

func (m Model) minimapTitle() string {
	wt := m.session.Walkthrough()
	reviewed, total := wt.DiffLineCounts()
	return fmt.Sprintf("Steps %d/%d · %d/%d lines", wt.CompletedCount(), wt.Len(), reviewed, total)
}

func (m Model) minimapRows(from, height, width int) []string {
	wt := m.session.Walkthrough()
	activeID, _, branched := m.session.ActiveThread()

	rows := make([]string, 0, height)
	for i := from; i < wt.Len() && len(rows) < height; i++ {
		step := wt.Step(i)

		icon := lipgloss.NewStyle().Foreground(styles.PriorityColor(step.Priority)).Render(styles.StepIcon(step))
		if step.Completed {
			icon = styles.StepCompletedStyle.Render(styles.StepIcon(step))
		}

		var marks string
		if branched && activeID == step.ID {
			marks += " " + styles.IconThread
		}
		if step.HasComment() {
			marks += " " + styles.StepCommentStyle.Render(styles.IconComment)
		}

		label := fmt.Sprintf("%d. %s", i+1, step.Title)
		if i == wt.Index() {
			label = styles.StepCurrentStyle.Render(fitLine(label, max(0, width-2-ansi.StringWidth(marks))))
		} else if step.Completed {
			label = styles.MutedStyle.Render(label)
		}
		rows = append(rows, icon+" "+label+marks)
	}
	return rows
}

func (m Model) chatTitle() string {
	if id, _, ok := m.session.ActiveThread(); ok {
		return fmt.Sprintf("%s Thread · step %s", styles.IconThread, id)
	}
	return "Explanation"
}

func (m Model) diffTitle() string {
	step := m.session.Walkthrough().CurrentStep()
	title := fmt.Sprintf("%s [%s]", step.Title, step.Priority)

	st := m.session.Search()
	if st.Active() {
		pos, total := st.Position()
		title += fmt.Sprintf("  %s %s %d/%d", styles.IconSearch, st.Query(), pos, total)
	}
	return title
}

// renderHelpBar draws the mode badge followed by the input line, a notice
// or the key hints for the active pane.
func (m Model) renderHelpBar(width int) string {
	mode := m.session.Mode()
	badge := styles.ModeStyle.Render(mode.String())

	var rest string
	switch {
	case mode == input.ModeInsert:
		rest = styles.ChatInputStyle.Render("> " + strings.ReplaceAll(m.session.ChatInput(), "\n", "⏎") + "▏")
	case mode == input.ModeSearch:
		rest = "/" + m.session.SearchInput() + "▏"
	case mode == input.ModePending:
		rest = styles.PendingStyle.Render(m.session.PendingKeys())
	case m.session.Notice() != "":
		rest = styles.NoticeStyle.Render(m.session.Notice())
	default:
		st := m.session.Search()
		rest = m.help.ShortHelpView(helpFor(m.session.Active(), mode, st.Active() && !st.Typing()))
	}

	return fitLine(badge+" "+rest, width)
}
