package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/colonyops/docent/internal/core/input"
)

// DefaultInputrcPath returns the readline init file consulted for vim mode
// auto detection.
func DefaultInputrcPath() string {
	if p := os.Getenv("INPUTRC"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".inputrc")
}

// DetectVimFromInputrc reports whether the readline init file at path
// selects vi editing mode. A missing file means no.
func DetectVimFromInputrc(path string) bool {
	if path == "" {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	vi := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(strings.ToLower(scanner.Text()))
		if len(fields) < 3 || fields[0] != "set" || fields[1] != "editing-mode" {
			continue
		}
		// last assignment wins, like readline
		vi = fields[2] == "vi"
	}
	return vi
}

// ResolveVimMode turns the configured vim mode into VimAlways or VimNever.
// override, when non-empty, takes precedence over the setting.
func (c *Config) ResolveVimMode(override, inputrcPath string) (input.VimMode, error) {
	raw := c.Editor.VimMode
	if override != "" {
		raw = override
	}

	mode, err := input.ParseVimMode(raw)
	if err != nil {
		return input.VimAuto, err
	}
	if mode != input.VimAuto {
		return mode, nil
	}
	if DetectVimFromInputrc(inputrcPath) {
		return input.VimAlways, nil
	}
	return input.VimNever, nil
}
