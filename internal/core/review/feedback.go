package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// maxContextLines caps how much of a diff excerpt is quoted per comment.
const maxContextLines = 6

// Feedback renders the snapshot as plain text for pasting into a review.
// Format:
//
//	Walkthrough: <source>
//	Comments: <count>
//
//	Step <id>: <title>
//	<path>:<start>-<end>
//	> <context line>
//	<comment text>
func Feedback(s Snapshot) string {
	if s.IsEmpty() {
		return ""
	}

	var b strings.Builder

	if s.Source != "" {
		fmt.Fprintf(&b, "Walkthrough: %s\n", s.Source)
	}
	fmt.Fprintf(&b, "Comments: %d\n\n", len(s.Comments))

	for i, c := range s.Comments {
		if i > 0 {
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "Step %s: %s\n", c.StepID, c.StepTitle)
		for _, r := range c.Ranges {
			b.WriteString(FormatRange(r))
			b.WriteString("\n")
		}

		if c.ContextText != "" {
			lines := strings.Split(ansi.Strip(c.ContextText), "\n")
			for j, line := range lines {
				if j == maxContextLines {
					fmt.Fprintf(&b, "> ... (%d more lines)\n", len(lines)-maxContextLines)
					break
				}
				fmt.Fprintf(&b, "> %s\n", line)
			}
		}

		b.WriteString(c.CommentText)
		b.WriteString("\n")
	}

	return b.String()
}

// FormatRange renders a range as "path:line" or "path:start-end".
func FormatRange(r Range) string {
	if r.StartLine == r.EndLine {
		return fmt.Sprintf("%s:%d", r.FilePath, r.StartLine)
	}
	return fmt.Sprintf("%s:%d-%d", r.FilePath, r.StartLine, r.EndLine)
}
