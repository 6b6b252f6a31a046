package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/docent/internal/core/input"
	"github.com/colonyops/docent/internal/core/styles"
)

// Validate checks that the settings are structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("editor.vim_mode", c.Editor.VimMode, validVimMode),
		c.validateInput(),
		c.validateLayout(),
		c.validateAssistant(),
		criterio.Run("tui.theme", c.TUI.Theme, validTheme),
		c.validateDiff(),
	)
}

// ValidateDeep runs Validate and then checks the environment: the config
// file must be a regular file and the assistant credentials must be set.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		c.validateCredentials(),
	)
}

func validVimMode(s string) error {
	_, err := input.ParseVimMode(s)
	return err
}

func validTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func validProvider(p string) error {
	switch p {
	case ProviderNone, ProviderAnthropic, ProviderOllama:
		return nil
	default:
		return fmt.Errorf("unknown provider %q", p)
	}
}

func (c *Config) validateInput() error {
	var errs criterio.FieldErrorsBuilder
	if c.Input.SequenceTimeout <= 0 {
		errs = errs.Append("input.sequence_timeout", fmt.Errorf("must be positive, got %s", c.Input.SequenceTimeout))
	}
	return errs.ToError()
}

func (c *Config) validateLayout() error {
	var errs criterio.FieldErrorsBuilder

	check := func(field string, ratio float64, b BoundConfig) {
		if b.Min <= 0 || b.Max >= 1 || b.Min > b.Max {
			errs = errs.Append(field+"_bounds", fmt.Errorf("need 0 < min <= max < 1, got [%g, %g]", b.Min, b.Max))
			return
		}
		if ratio < b.Min || ratio > b.Max {
			errs = errs.Append(field, fmt.Errorf("%g is outside [%g, %g]", ratio, b.Min, b.Max))
		}
	}

	check("layout.vertical", c.Layout.Vertical, c.Layout.VerticalBounds)
	check("layout.horizontal", c.Layout.Horizontal, c.Layout.HorizontalBounds)
	return errs.ToError()
}

func (c *Config) validateAssistant() error {
	var errs criterio.FieldErrorsBuilder
	if err := validProvider(c.Assistant.Provider); err != nil {
		errs = errs.Append("assistant.provider", err)
	}
	if c.Assistant.Provider != ProviderNone && c.Assistant.Model == "" {
		errs = errs.Append("assistant.model", fmt.Errorf("required for provider %q", c.Assistant.Provider))
	}
	if c.Assistant.MaxTokens < 1 {
		errs = errs.Append("assistant.max_tokens", fmt.Errorf("must be at least 1"))
	}
	if c.Assistant.Temperature < 0 || c.Assistant.Temperature > 2 {
		errs = errs.Append("assistant.temperature", fmt.Errorf("must be within [0, 2]"))
	}
	if c.Assistant.Timeout < 0 {
		errs = errs.Append("assistant.timeout", fmt.Errorf("must not be negative"))
	}
	return errs.ToError()
}

func (c *Config) validateDiff() error {
	var errs criterio.FieldErrorsBuilder
	for i, p := range c.Diff.Include {
		if !doublestar.ValidatePattern(p) {
			errs = errs.Append(fmt.Sprintf("diff.include[%d]", i), fmt.Errorf("invalid glob %q", p))
		}
	}
	for i, p := range c.Diff.Exclude {
		if !doublestar.ValidatePattern(p) {
			errs = errs.Append(fmt.Sprintf("diff.exclude[%d]", i), fmt.Errorf("invalid glob %q", p))
		}
	}
	return errs.ToError()
}

func (c *Config) validateCredentials() error {
	if c.Assistant.Provider != ProviderAnthropic {
		return nil
	}
	if os.Getenv(c.Assistant.APIKeyEnv) == "" {
		return criterio.NewFieldErrors("assistant.api_key_env", fmt.Errorf("$%s is not set", c.Assistant.APIKeyEnv))
	}
	return nil
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}
