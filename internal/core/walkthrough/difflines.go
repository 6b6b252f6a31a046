package walkthrough

import "fmt"

// DiffLineKind classifies a row of the diff pane.
type DiffLineKind int

const (
	DiffLineHeader  DiffLineKind = iota // file path and line range of a hunk
	DiffLineBlank                       // spacer around hunk content
	DiffLineContent                     // raw hunk content
)

// DiffLine is one row of the diff pane for a step.
type DiffLine struct {
	Kind DiffLineKind
	Text string
	Hunk int
}

// DiffLines lays out the step's hunks as diff pane rows. Every hunk takes
// one header row, one blank row, its content rows and a trailing blank row.
func (s *Step) DiffLines() []DiffLine {
	var out []DiffLine
	for i, h := range s.Hunks {
		out = append(out,
			DiffLine{Kind: DiffLineHeader, Text: HunkHeader(h), Hunk: i},
			DiffLine{Kind: DiffLineBlank, Hunk: i},
		)
		for _, l := range h.Lines() {
			out = append(out, DiffLine{Kind: DiffLineContent, Text: l, Hunk: i})
		}
		out = append(out, DiffLine{Kind: DiffLineBlank, Hunk: i})
	}
	return out
}

// DiffHeight returns the number of diff pane rows for the step.
func (s *Step) DiffHeight() int {
	n := 0
	for _, h := range s.Hunks {
		n += 3 + len(h.Lines())
	}
	return n
}

// HunkHeader formats the header row shown above a hunk.
func HunkHeader(h Hunk) string {
	if h.StartLine == h.EndLine {
		return fmt.Sprintf("%s:%d", h.FilePath, h.StartLine)
	}
	return fmt.Sprintf("%s:%d-%d", h.FilePath, h.StartLine, h.EndLine)
}
