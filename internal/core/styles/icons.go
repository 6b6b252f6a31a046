package styles

import (
	"path/filepath"
	"strings"

	"github.com/colonyops/docent/internal/core/walkthrough"
)

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconCheck    = "\uf00c"
	IconPending  = "\uf10c"
	IconThread   = "\uf086"
	IconComment  = "\uf27b"
	IconCritical = "\uf071"
	IconSearch   = "\uf002"
)

var (
	IconFileDefault  = "\uf15b"
	IconFileGo       = "\ue627"
	IconFileJS       = "\ue74e"
	IconFileTS       = "\ue628"
	IconFilePython   = "\ue606"
	IconFileMarkdown = "\ue609"
	IconFileJSON     = "\ue60b"
	IconFileYAML     = "\ue6a8"
	IconFileRust     = "\ue7a8"
	IconFileShell    = "\uf489"
)

var fileIcons = map[string]*string{
	".go":   &IconFileGo,
	".js":   &IconFileJS,
	".jsx":  &IconFileJS,
	".ts":   &IconFileTS,
	".tsx":  &IconFileTS,
	".py":   &IconFilePython,
	".md":   &IconFileMarkdown,
	".json": &IconFileJSON,
	".yaml": &IconFileYAML,
	".yml":  &IconFileYAML,
	".rs":   &IconFileRust,
	".sh":   &IconFileShell,
}

// FileIcon returns the icon for a file path based on its extension.
func FileIcon(path string) string {
	if icon, ok := fileIcons[strings.ToLower(filepath.Ext(path))]; ok {
		return *icon
	}
	return IconFileDefault
}

// StepIcon returns the status icon for a step in the minimap.
func StepIcon(s *walkthrough.Step) string {
	switch {
	case s.Completed:
		return IconCheck
	case s.Priority == walkthrough.PriorityCritical:
		return IconCritical
	default:
		return IconPending
	}
}
