package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/docent/internal/core/input"
	"github.com/colonyops/docent/internal/core/layout"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), *cfg)
	assert.Equal(t, input.DefaultSequenceTimeout, cfg.Input.SequenceTimeout)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Editor.VimMode)
}

func TestLoad_OverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
editor:
  vim_mode: never
input:
  sequence_timeout: 450ms
layout:
  vertical: 0.6
assistant:
  provider: ollama
  model: qwen2.5-coder
  base_url: http://localhost:11434
tui:
  theme: gruvbox
diff:
  exclude:
    - "**/*.lock"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "never", cfg.Editor.VimMode)
	assert.Equal(t, 450*time.Millisecond, cfg.Input.SequenceTimeout)
	assert.InDelta(t, 0.6, cfg.Layout.Vertical, 1e-9)
	assert.InDelta(t, 0.4, cfg.Layout.Horizontal, 1e-9, "unset ratio keeps default")
	assert.Equal(t, BoundConfig{Min: 0.2, Max: 0.8}, cfg.Layout.VerticalBounds)
	assert.Equal(t, ProviderOllama, cfg.Assistant.Provider)
	assert.Equal(t, 4096, cfg.Assistant.MaxTokens)
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Equal(t, []string{"**/*.lock"}, cfg.Diff.Exclude)
}

func TestLoad_ParseError(t *testing.T) {
	path := writeConfig(t, "editor: [")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "tui:\n  theme: neon\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.Contains(t, err.Error(), "neon")
}

func TestLayoutEngineConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, layout.DefaultConfig(), cfg.LayoutEngineConfig())
}

func TestResolverConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Input.SequenceTimeout = time.Second

	got := cfg.ResolverConfig(input.VimNever)
	assert.Equal(t, input.Config{Vim: input.VimNever, SequenceTimeout: time.Second}, got)
}

func TestPalette_FallsBackToDefault(t *testing.T) {
	cfg := DefaultConfig()
	want := cfg.Palette()

	cfg.TUI.Theme = "missing"
	assert.Equal(t, want, cfg.Palette())
}
