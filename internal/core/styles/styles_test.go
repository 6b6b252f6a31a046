package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/docent/internal/core/walkthrough"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	assert.Equal(t, []string{"catppuccin", "gruvbox", "tokyo-night"}, names)
	for _, n := range names {
		_, ok := GetPalette(n)
		assert.True(t, ok, n)
	}
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	p, ok := GetPalette("gruvbox")
	require.True(t, ok)
	SetTheme(p)

	assert.Equal(t, p, Current())
	assert.Equal(t, p.Error, PriorityColor(walkthrough.PriorityCritical))
	assert.Equal(t, p.Muted, PriorityColor(walkthrough.PriorityMinor))
}

func TestGlamourStyle(t *testing.T) {
	cfg := GlamourStyle()
	require.NotNil(t, cfg.Document.Color)
	assert.Equal(t, "#c0caf5", *cfg.Document.Color)
	assert.Equal(t, ChromaStyle, cfg.CodeBlock.Theme)
}

func TestFileIcon(t *testing.T) {
	assert.Equal(t, IconFileGo, FileIcon("internal/x.go"))
	assert.Equal(t, IconFileYAML, FileIcon("a/b.YML"))
	assert.Equal(t, IconFileDefault, FileIcon("Makefile"))
}

func TestStepIcon(t *testing.T) {
	assert.Equal(t, IconCheck, StepIcon(&walkthrough.Step{Completed: true, Priority: walkthrough.PriorityCritical}))
	assert.Equal(t, IconCritical, StepIcon(&walkthrough.Step{Priority: walkthrough.PriorityCritical}))
	assert.Equal(t, IconPending, StepIcon(&walkthrough.Step{Priority: walkthrough.PriorityNormal}))
}
