// Package diffsrc reads unified diffs and turns them into walkthrough hunks.
package diffsrc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/colonyops/docent/internal/core/walkthrough"
)

var (
	// ErrEmptyDiff is returned when the input contains no diff text.
	ErrEmptyDiff = errors.New("empty diff")
	// ErrNoHunks is returned when the diff parses but has no text hunks.
	ErrNoHunks = errors.New("no hunks found")
)

// Parse parses a unified diff into hunks in diff order. Binary files and
// pure renames carry no text fragments and are skipped.
func Parse(text string) ([]walkthrough.Hunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDiff
	}

	files, _, err := gitdiff.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}

	var hunks []walkthrough.Hunk
	for _, f := range files {
		path := filePath(f)
		for _, frag := range f.TextFragments {
			hunks = append(hunks, toHunk(path, frag))
		}
	}

	if len(hunks) == 0 {
		return nil, ErrNoHunks
	}
	return hunks, nil
}

// filePath returns the post-image path, or the pre-image path for deletions.
func filePath(f *gitdiff.File) string {
	name := f.NewName
	if f.IsDelete || name == "" {
		name = f.OldName
	}
	return strings.TrimPrefix(name, "b/")
}

// toHunk converts a fragment using new-file line numbers. A fragment with
// no new lines covers only its start line.
func toHunk(path string, frag *gitdiff.TextFragment) walkthrough.Hunk {
	start := max(int(frag.NewPosition), 1)
	end := start
	if frag.NewLines > 0 {
		end = start + int(frag.NewLines) - 1
	}

	return walkthrough.Hunk{
		FilePath:  path,
		StartLine: start,
		EndLine:   end,
		Content:   fragmentText(frag),
	}
}

// fragmentText renders a fragment back to unified diff text including its
// @@ header.
func fragmentText(frag *gitdiff.TextFragment) string {
	var sb strings.Builder

	sb.WriteString("@@ -")
	sb.WriteString(formatRange(frag.OldPosition, frag.OldLines))
	sb.WriteString(" +")
	sb.WriteString(formatRange(frag.NewPosition, frag.NewLines))
	sb.WriteString(" @@")
	if frag.Comment != "" {
		sb.WriteString(" ")
		sb.WriteString(frag.Comment)
	}
	sb.WriteString("\n")

	for _, line := range frag.Lines {
		switch line.Op {
		case gitdiff.OpAdd:
			sb.WriteString("+")
		case gitdiff.OpDelete:
			sb.WriteString("-")
		case gitdiff.OpContext:
			sb.WriteString(" ")
		}
		sb.WriteString(line.Line)
		if !strings.HasSuffix(line.Line, "\n") {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func formatRange(pos, length int64) string {
	if length == 1 {
		return strconv.FormatInt(pos, 10)
	}
	return strconv.FormatInt(pos, 10) + "," + strconv.FormatInt(length, 10)
}

// FormatForPrompt numbers the hunks from 1 and formats them for a model
// prompt.
func FormatForPrompt(hunks []walkthrough.Hunk) string {
	parts := make([]string, len(hunks))
	for i, h := range hunks {
		parts[i] = fmt.Sprintf("=== Hunk %d (%s, lines %d-%d) ===\n%s", i+1, h.FilePath, h.StartLine, h.EndLine, h.Content)
	}
	return strings.Join(parts, "\n\n")
}
