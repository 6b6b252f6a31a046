// Package diff classifies and colors the rows of the diff pane.
package diff

import (
	"fmt"
	"strconv"
	"strings"
)

// LineType represents the type of a line in a unified diff hunk.
type LineType int

const (
	LineTypeContext LineType = iota // Context line (starts with space)
	LineTypeAdd                     // Addition line (starts with +)
	LineTypeDelete                  // Deletion line (starts with -)
	LineTypeHunk                    // Hunk header (@@ ... @@)
	LineTypeMeta                    // Anything else, e.g. "\ No newline at end of file"
)

// ParsedLine is one hunk line with its old and new file line numbers.
type ParsedLine struct {
	Type       LineType
	Content    string // without the leading +, - or space
	OldLineNum int    // 0 if not applicable
	NewLineNum int    // 0 if not applicable
	RawLine    string
}

// HunkHeader represents the metadata from a hunk header line.
type HunkHeader struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Comment  string // Optional comment after @@
}

// ParseHunk classifies the lines of one hunk and tracks line numbers from
// its @@ header. It returns exactly one ParsedLine per input line so the
// result indexes the same way as the rows it came from. Lines before a valid
// header carry no line numbers.
func ParseHunk(lines []string) []ParsedLine {
	result := make([]ParsedLine, 0, len(lines))

	var oldLine, newLine int
	inHunk := false

	for _, line := range lines {
		if strings.HasPrefix(line, "@@") {
			pl := ParsedLine{Type: LineTypeHunk, Content: line, RawLine: line}
			if h, err := parseHunkHeader(line); err == nil {
				pl.OldLineNum, pl.NewLineNum = h.OldStart, h.NewStart
				oldLine, newLine = h.OldStart, h.NewStart
				inHunk = true
			}
			result = append(result, pl)
			continue
		}

		if line == "" {
			result = append(result, ParsedLine{Type: LineTypeMeta, RawLine: line})
			continue
		}

		content := line[1:]
		switch {
		case line[0] == '+':
			pl := ParsedLine{Type: LineTypeAdd, Content: content, RawLine: line}
			if inHunk {
				pl.NewLineNum = newLine
				newLine++
			}
			result = append(result, pl)
		case line[0] == '-':
			pl := ParsedLine{Type: LineTypeDelete, Content: content, RawLine: line}
			if inHunk {
				pl.OldLineNum = oldLine
				oldLine++
			}
			result = append(result, pl)
		case line[0] == ' ':
			pl := ParsedLine{Type: LineTypeContext, Content: content, RawLine: line}
			if inHunk {
				pl.OldLineNum, pl.NewLineNum = oldLine, newLine
				oldLine++
				newLine++
			}
			result = append(result, pl)
		default:
			result = append(result, ParsedLine{Type: LineTypeMeta, Content: line, RawLine: line})
		}
	}

	return result
}

// parseHunkHeader parses a hunk header line like "@@ -1,7 +1,8 @@ function_name"
func parseHunkHeader(line string) (HunkHeader, error) {
	if !strings.HasPrefix(line, "@@") {
		return HunkHeader{}, fmt.Errorf("invalid hunk header: missing @@ prefix")
	}

	closeIdx := strings.Index(line[2:], "@@")
	if closeIdx == -1 {
		return HunkHeader{}, fmt.Errorf("invalid hunk header: missing closing @@")
	}
	closeIdx += 2

	rangeStr := strings.TrimSpace(line[2:closeIdx])

	comment := ""
	if closeIdx+2 < len(line) {
		comment = strings.TrimSpace(line[closeIdx+2:])
	}

	parts := strings.Fields(rangeStr)
	if len(parts) != 2 {
		return HunkHeader{}, fmt.Errorf("invalid hunk header: expected 2 ranges, got %d", len(parts))
	}

	oldRange, newRange := parts[0], parts[1]
	if !strings.HasPrefix(oldRange, "-") {
		return HunkHeader{}, fmt.Errorf("invalid hunk header: old range missing - prefix")
	}
	if !strings.HasPrefix(newRange, "+") {
		return HunkHeader{}, fmt.Errorf("invalid hunk header: new range missing + prefix")
	}

	oldStart, oldCount, err := parseRange(oldRange[1:])
	if err != nil {
		return HunkHeader{}, fmt.Errorf("parse old range: %w", err)
	}

	newStart, newCount, err := parseRange(newRange[1:])
	if err != nil {
		return HunkHeader{}, fmt.Errorf("parse new range: %w", err)
	}

	return HunkHeader{
		OldStart: oldStart,
		OldCount: oldCount,
		NewStart: newStart,
		NewCount: newCount,
		Comment:  comment,
	}, nil
}

// parseRange parses "1,7" or "1" into start line and count. A bare number
// counts one line.
func parseRange(rangeStr string) (start, count int, err error) {
	parts := strings.Split(rangeStr, ",")

	start, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("parse start: %w", err)
	}

	switch len(parts) {
	case 1:
		count = 1
	case 2:
		count, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, fmt.Errorf("parse count: %w", err)
		}
	default:
		return 0, 0, fmt.Errorf("invalid range format: %s", rangeStr)
	}

	return start, count, nil
}
