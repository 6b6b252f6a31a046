package walkthrough

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRange is returned for hunks whose line range is not 1-based and ordered.
var ErrInvalidRange = errors.New("invalid line range")

// Priority ranks how much reviewer attention a step deserves.
type Priority int

const (
	PriorityCritical Priority = iota
	PriorityNormal
	PriorityMinor
)

// ParsePriority maps a priority name to a Priority. Unknown names are Normal.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return PriorityCritical
	case "minor":
		return PriorityMinor
	default:
		return PriorityNormal
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityNormal:
		return "normal"
	case PriorityMinor:
		return "minor"
	default:
		return "unknown"
	}
}

// Hunk is a contiguous diff excerpt tied to a file and a new-file line range.
type Hunk struct {
	FilePath  string
	StartLine int
	EndLine   int
	Content   string
}

// Validate checks the hunk line range.
func (h Hunk) Validate() error {
	if h.StartLine < 1 || h.StartLine > h.EndLine {
		return fmt.Errorf("%s lines %d-%d: %w", h.FilePath, h.StartLine, h.EndLine, ErrInvalidRange)
	}
	return nil
}

// Lines returns the raw content lines of the hunk.
func (h Hunk) Lines() []string {
	content := strings.TrimRight(h.Content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// Step is one logical unit of change in the walkthrough.
type Step struct {
	ID       string
	Title    string
	Summary  string
	Priority Priority
	Hunks    []Hunk

	// Explanation is the markdown shown in the chat pane above the thread.
	// It starts as the summary and may be replaced by a streamed explanation.
	Explanation string

	Completed       bool
	Thread          *Thread
	RecordedComment string
}

// HasComment reports whether a non-empty comment was recorded on the step.
func (s *Step) HasComment() bool {
	return strings.TrimSpace(s.RecordedComment) != ""
}

// DiffLineCount returns the number of hunk content lines in the step.
func (s *Step) DiffLineCount() int {
	n := 0
	for _, h := range s.Hunks {
		n += len(h.Lines())
	}
	return n
}

// Files returns the distinct file paths touched by the step, in hunk order.
func (s *Step) Files() []string {
	var files []string
	seen := make(map[string]struct{})
	for _, h := range s.Hunks {
		if _, ok := seen[h.FilePath]; ok {
			continue
		}
		seen[h.FilePath] = struct{}{}
		files = append(files, h.FilePath)
	}
	return files
}
