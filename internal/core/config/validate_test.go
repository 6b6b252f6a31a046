package config

import (
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(t *testing.T, err error) []string {
	t.Helper()
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, fe.Field)
	}
	return out
}

func TestValidate_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "vim mode",
			mutate: func(c *Config) { c.Editor.VimMode = "emacs" },
			field:  "editor.vim_mode",
		},
		{
			name:   "sequence timeout",
			mutate: func(c *Config) { c.Input.SequenceTimeout = -time.Millisecond },
			field:  "input.sequence_timeout",
		},
		{
			name:   "ratio outside bounds",
			mutate: func(c *Config) { c.Layout.Vertical = 0.95 },
			field:  "layout.vertical",
		},
		{
			name:   "inverted bounds",
			mutate: func(c *Config) { c.Layout.HorizontalBounds = BoundConfig{Min: 0.7, Max: 0.3} },
			field:  "layout.horizontal_bounds",
		},
		{
			name:   "provider",
			mutate: func(c *Config) { c.Assistant.Provider = "openai" },
			field:  "assistant.provider",
		},
		{
			name:   "model required",
			mutate: func(c *Config) { c.Assistant.Model = "" },
			field:  "assistant.model",
		},
		{
			name:   "max tokens",
			mutate: func(c *Config) { c.Assistant.MaxTokens = 0 },
			field:  "assistant.max_tokens",
		},
		{
			name:   "theme",
			mutate: func(c *Config) { c.TUI.Theme = "neon" },
			field:  "tui.theme",
		},
		{
			name:   "exclude glob",
			mutate: func(c *Config) { c.Diff.Exclude = []string{"ok/**", "bad[", "x"} },
			field:  "diff.exclude[1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Equal(t, []string{tt.field}, fields(t, cfg.Validate()))
		})
	}
}

func TestValidate_NoProviderNeedsNoModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Assistant.Provider = ProviderNone
	cfg.Assistant.Model = ""
	assert.NoError(t, cfg.Validate())
}

func TestValidateDeep_MissingAPIKey(t *testing.T) {
	t.Setenv("DOCENT_TEST_KEY", "")
	cfg := DefaultConfig()
	cfg.Assistant.APIKeyEnv = "DOCENT_TEST_KEY"

	assert.Equal(t, []string{"assistant.api_key_env"}, fields(t, cfg.ValidateDeep("")))

	t.Setenv("DOCENT_TEST_KEY", "sk-test")
	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_ConfigIsDirectory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Assistant.Provider = ProviderNone

	assert.Equal(t, []string{"config_file"}, fields(t, cfg.ValidateDeep(t.TempDir())))
}
