// Package styles provides the lipgloss v2 styles shared by the walkthrough
// panes.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/docent/internal/core/walkthrough"
)

var current Palette

// Current returns the active palette.
func Current() Palette { return current }

// Style exports. They are rebuilt by SetTheme.
var (
	PaneStyle       lipgloss.Style
	PaneActiveStyle lipgloss.Style
	PaneTitleStyle  lipgloss.Style
	MutedStyle      lipgloss.Style

	StepCurrentStyle   lipgloss.Style
	StepCompletedStyle lipgloss.Style
	StepCommentStyle   lipgloss.Style

	DiffHeaderStyle  lipgloss.Style
	DiffHunkStyle    lipgloss.Style
	DiffAddStyle     lipgloss.Style
	DiffRemoveStyle  lipgloss.Style
	DiffContextStyle lipgloss.Style
	MatchStyle       lipgloss.Style
	MatchActiveStyle lipgloss.Style

	ChatUserStyle      lipgloss.Style
	ChatAssistantStyle lipgloss.Style
	ChatSystemStyle    lipgloss.Style
	ChatInputStyle     lipgloss.Style

	ModeStyle    lipgloss.Style
	PendingStyle lipgloss.Style
	NoticeStyle  lipgloss.Style
	HelpKeyStyle lipgloss.Style
	HelpStyle    lipgloss.Style

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	ModalStyle      lipgloss.Style
	ModalErrorStyle lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	current = p

	PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface)
	PaneActiveStyle = PaneStyle.
		BorderForeground(p.Primary)
	PaneTitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)

	StepCurrentStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Bold(true)
	StepCompletedStyle = lipgloss.NewStyle().Foreground(p.Success)
	StepCommentStyle = lipgloss.NewStyle().Foreground(p.Secondary)

	DiffHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	DiffHunkStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	DiffAddStyle = lipgloss.NewStyle().Foreground(p.Added)
	DiffRemoveStyle = lipgloss.NewStyle().Foreground(p.Removed)
	DiffContextStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	MatchStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Muted)
	MatchActiveStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Match).
		Bold(true)

	ChatUserStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	ChatAssistantStyle = lipgloss.NewStyle().
		Foreground(p.Success).
		Bold(true)
	ChatSystemStyle = lipgloss.NewStyle().Foreground(p.Error)
	ChatInputStyle = lipgloss.NewStyle().Foreground(p.Foreground)

	ModeStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Secondary).
		Bold(true).
		Padding(0, 1)
	PendingStyle = lipgloss.NewStyle().Foreground(p.Warning)
	NoticeStyle = lipgloss.NewStyle().Foreground(p.Warning)
	HelpKeyStyle = lipgloss.NewStyle().Foreground(p.Primary)
	HelpStyle = lipgloss.NewStyle().Foreground(p.Muted)

	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	ModalErrorStyle = ModalStyle.
		BorderForeground(p.Error)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Foreground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)
}

// PriorityColor returns the color used for a step's priority marker.
func PriorityColor(p walkthrough.Priority) color.Color {
	switch p {
	case walkthrough.PriorityCritical:
		return current.Error
	case walkthrough.PriorityMinor:
		return current.Muted
	default:
		return current.Warning
	}
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
