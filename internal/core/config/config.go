// Package config handles settings loading and validation for docent.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/docent/internal/core/input"
	"github.com/colonyops/docent/internal/core/layout"
	"github.com/colonyops/docent/internal/core/styles"
)

// Assistant providers.
const (
	ProviderNone      = "none"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Config holds the application settings.
type Config struct {
	Editor    EditorConfig    `yaml:"editor"`
	Input     InputConfig     `yaml:"input"`
	Layout    LayoutConfig    `yaml:"layout"`
	Assistant AssistantConfig `yaml:"assistant"`
	TUI       TUIConfig       `yaml:"tui"`
	Diff      DiffConfig      `yaml:"diff"`
}

// EditorConfig controls modal editing.
type EditorConfig struct {
	// VimMode is one of auto, always or never. Auto reads ~/.inputrc.
	VimMode string `yaml:"vim_mode"`
}

// InputConfig controls key sequence handling.
type InputConfig struct {
	SequenceTimeout time.Duration `yaml:"sequence_timeout"`
}

// LayoutConfig holds the initial split ratios and their drag bounds.
type LayoutConfig struct {
	Vertical         float64     `yaml:"vertical"`   // left column share of the width
	Horizontal       float64     `yaml:"horizontal"` // minimap share of the left column
	VerticalBounds   BoundConfig `yaml:"vertical_bounds"`
	HorizontalBounds BoundConfig `yaml:"horizontal_bounds"`
}

// BoundConfig is an inclusive ratio range.
type BoundConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// AssistantConfig selects and tunes the model used for explanations,
// chat replies and walkthrough generation.
type AssistantConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	BaseURL     string        `yaml:"base_url"`
	APIKeyEnv   string        `yaml:"api_key_env"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// TUIConfig holds display settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DiffConfig filters which files of a diff are walked through.
type DiffConfig struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	l := layout.DefaultConfig()
	return Config{
		Editor: EditorConfig{VimMode: input.VimAuto.String()},
		Input:  InputConfig{SequenceTimeout: input.DefaultSequenceTimeout},
		Layout: LayoutConfig{
			Vertical:         l.Ratios.Vertical,
			Horizontal:       l.Ratios.Horizontal,
			VerticalBounds:   BoundConfig{Min: l.VerticalBounds.Min, Max: l.VerticalBounds.Max},
			HorizontalBounds: BoundConfig{Min: l.HorizontalBounds.Min, Max: l.HorizontalBounds.Max},
		},
		Assistant: AssistantConfig{
			Provider:    ProviderAnthropic,
			Model:       "claude-sonnet-4-5",
			APIKeyEnv:   "ANTHROPIC_API_KEY",
			MaxTokens:   4096,
			Temperature: 0.2,
			Timeout:     2 * time.Minute,
		},
		TUI: TUIConfig{Theme: styles.DefaultTheme},
	}
}

// Load reads settings from configPath. A missing file yields the defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Editor.VimMode == "" {
		c.Editor.VimMode = defaults.Editor.VimMode
	}
	if c.Input.SequenceTimeout == 0 {
		c.Input.SequenceTimeout = defaults.Input.SequenceTimeout
	}
	if c.Layout.VerticalBounds == (BoundConfig{}) {
		c.Layout.VerticalBounds = defaults.Layout.VerticalBounds
	}
	if c.Layout.HorizontalBounds == (BoundConfig{}) {
		c.Layout.HorizontalBounds = defaults.Layout.HorizontalBounds
	}
	if c.Layout.Vertical == 0 {
		c.Layout.Vertical = defaults.Layout.Vertical
	}
	if c.Layout.Horizontal == 0 {
		c.Layout.Horizontal = defaults.Layout.Horizontal
	}
	if c.Assistant.Provider == "" {
		c.Assistant.Provider = defaults.Assistant.Provider
	}
	if c.Assistant.MaxTokens == 0 {
		c.Assistant.MaxTokens = defaults.Assistant.MaxTokens
	}
	if c.Assistant.Timeout == 0 {
		c.Assistant.Timeout = defaults.Assistant.Timeout
	}
	if c.Assistant.Provider == ProviderAnthropic && c.Assistant.APIKeyEnv == "" {
		c.Assistant.APIKeyEnv = defaults.Assistant.APIKeyEnv
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// LayoutEngineConfig converts the layout settings for the layout engine.
func (c *Config) LayoutEngineConfig() layout.Config {
	return layout.Config{
		Ratios: layout.Ratios{Vertical: c.Layout.Vertical, Horizontal: c.Layout.Horizontal},
		VerticalBounds: layout.Bounds{
			Min: c.Layout.VerticalBounds.Min,
			Max: c.Layout.VerticalBounds.Max,
		},
		HorizontalBounds: layout.Bounds{
			Min: c.Layout.HorizontalBounds.Min,
			Max: c.Layout.HorizontalBounds.Max,
		},
	}
}

// ResolverConfig converts the input settings for the key resolver. vim is the
// already resolved vim mode.
func (c *Config) ResolverConfig(vim input.VimMode) input.Config {
	return input.Config{Vim: vim, SequenceTimeout: c.Input.SequenceTimeout}
}

// Palette returns the configured theme palette.
func (c *Config) Palette() styles.Palette {
	p, ok := styles.GetPalette(c.TUI.Theme)
	if !ok {
		p, _ = styles.GetPalette(styles.DefaultTheme)
	}
	return p
}
