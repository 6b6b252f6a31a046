package tui

import (
	"fmt"
	"strconv"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/docent/internal/core/search"
	"github.com/colonyops/docent/internal/core/session"
	"github.com/colonyops/docent/internal/core/styles"
	"github.com/colonyops/docent/internal/core/walkthrough"
	"github.com/colonyops/docent/internal/tui/diff"
)

const tabWidth = 4

// diffRow is one diff pane row prepared for drawing.
type diffRow struct {
	kind   walkthrough.DiffLineKind
	raw    string
	path   string
	line   diff.ParsedLine
	code   string // syntax colored content without the +/- sign
	gutter string
}

// diffRows caches the rows of the current step.
type diffRows struct {
	stepID string
	lines  []diffRow
	gutter int
	width  int
}

// build prepares the rows for the session's current step. Rows are reused
// until the step changes.
func (d *diffRows) build(s *session.Session, h *diff.Highlighter) *diffRows {
	step := s.Walkthrough().CurrentStep()
	rows := s.DiffLines()
	if d.stepID == step.ID && len(d.lines) == len(rows) {
		return d
	}

	parsed := make([][]diff.ParsedLine, len(step.Hunks))
	colored := make([][]string, len(step.Hunks))
	maxNum := 0
	for i, hunk := range step.Hunks {
		parsed[i] = diff.ParseHunk(hunk.Lines())
		code := make([]string, len(parsed[i]))
		for j, pl := range parsed[i] {
			if isCode(pl.Type) {
				code[j] = pl.Content
			}
			maxNum = max(maxNum, pl.OldLineNum, pl.NewLineNum)
		}
		colored[i] = h.Lines(hunk.FilePath, code)
	}

	numWidth := max(3, len(strconv.Itoa(maxNum)))
	d.stepID = step.ID
	d.gutter = 2*numWidth + 4
	d.lines = make([]diffRow, len(rows))
	d.width = 0

	next := make([]int, len(step.Hunks))
	for i, r := range rows {
		row := diffRow{kind: r.Kind, raw: r.Text}
		if r.Hunk >= 0 && r.Hunk < len(step.Hunks) {
			row.path = step.Hunks[r.Hunk].FilePath
		}

		switch r.Kind {
		case walkthrough.DiffLineHeader:
			d.width = max(d.width, ansi.StringWidth(r.Text)+2)
		case walkthrough.DiffLineContent:
			j := next[r.Hunk]
			next[r.Hunk]++
			if j < len(parsed[r.Hunk]) {
				row.line = parsed[r.Hunk][j]
				row.code = colored[r.Hunk][j]
			}
			row.gutter = gutterText(row.line, numWidth)
			d.width = max(d.width, d.gutter+ansi.StringWidth(expandTabs(r.Text)))
		case walkthrough.DiffLineBlank:
		}
		d.lines[i] = row
	}

	return d
}

func isCode(t diff.LineType) bool {
	return t == diff.LineTypeAdd || t == diff.LineTypeDelete || t == diff.LineTypeContext
}

func gutterText(pl diff.ParsedLine, width int) string {
	num := func(n int) string {
		if n == 0 {
			return ""
		}
		return strconv.Itoa(n)
	}
	if pl.Type == diff.LineTypeHunk {
		return fmt.Sprintf("%*s %*s │ ", width, "", width, "")
	}
	return fmt.Sprintf("%*s %*s │ ", width, num(pl.OldLineNum), width, num(pl.NewLineNum))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// render draws rows [y, y+height) of the diff pane, scrolled x
// columns past the gutter.
func (d *diffRows) render(st search.State, y, x, height, width int) []string {
	matches := make(map[int][]search.Match)
	for _, mt := range st.Matches() {
		matches[mt.Line] = append(matches[mt.Line], mt)
	}
	cur, hasCur := st.Current()

	bodyWidth := max(0, width-d.gutter)
	out := make([]string, 0, height)
	for i := y; i < y+height && i < len(d.lines); i++ {
		row := d.lines[i]
		switch row.kind {
		case walkthrough.DiffLineHeader:
			out = append(out, styles.FileIcon(row.path)+" "+styles.DiffHeaderStyle.Render(row.raw))
		case walkthrough.DiffLineBlank:
			out = append(out, "")
		case walkthrough.DiffLineContent:
			var body string
			if ms, ok := matches[i]; ok {
				body = highlightMatches(row.raw, ms, cur, hasCur, lineStyle(row.line.Type))
			} else {
				body = row.styled()
			}
			body = ansi.Cut(expandTabs(body), x, x+bodyWidth)
			out = append(out, styles.MutedStyle.Render(row.gutter)+body)
		}
	}
	return out
}

func (r diffRow) styled() string {
	switch r.line.Type {
	case diff.LineTypeAdd:
		return styles.DiffAddStyle.Render("+") + r.code
	case diff.LineTypeDelete:
		return styles.DiffRemoveStyle.Render("-") + r.code
	case diff.LineTypeContext:
		return " " + r.code
	case diff.LineTypeHunk:
		return styles.DiffHunkStyle.Render(r.raw)
	case diff.LineTypeMeta:
	}
	return styles.MutedStyle.Render(r.raw)
}

func lineStyle(t diff.LineType) lipgloss.Style {
	switch t {
	case diff.LineTypeAdd:
		return styles.DiffAddStyle
	case diff.LineTypeDelete:
		return styles.DiffRemoveStyle
	case diff.LineTypeHunk:
		return styles.DiffHunkStyle
	case diff.LineTypeContext:
		return styles.DiffContextStyle
	case diff.LineTypeMeta:
	}
	return styles.MutedStyle
}

// highlightMatches styles raw with the match spans marked. A match with no
// span marks the whole row.
func highlightMatches(raw string, ms []search.Match, cur search.Match, hasCur bool, base lipgloss.Style) string {
	var b strings.Builder
	pos := 0
	for _, mt := range ms {
		style := styles.MatchStyle
		if hasCur && mt == cur {
			style = styles.MatchActiveStyle
		}
		if mt.Start == mt.End {
			return style.Render(raw)
		}
		if mt.Start < pos || mt.End > len(raw) {
			continue
		}
		b.WriteString(base.Render(raw[pos:mt.Start]))
		b.WriteString(style.Render(raw[mt.Start:mt.End]))
		pos = mt.End
	}
	b.WriteString(base.Render(raw[pos:]))
	return b.String()
}
