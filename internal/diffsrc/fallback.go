package diffsrc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/colonyops/docent/internal/core/walkthrough"
)

// Fallback builds a walkthrough without a model: one step per file, in
// diff order.
func Fallback(hunks []walkthrough.Hunk) (*walkthrough.Walkthrough, error) {
	var (
		order  []string
		byFile = map[string][]walkthrough.Hunk{}
	)
	for _, h := range hunks {
		if _, ok := byFile[h.FilePath]; !ok {
			order = append(order, h.FilePath)
		}
		byFile[h.FilePath] = append(byFile[h.FilePath], h)
	}

	steps := make([]walkthrough.Step, 0, len(order))
	for i, path := range order {
		fileHunks := byFile[path]
		added, removed := countChanges(fileHunks)
		steps = append(steps, walkthrough.Step{
			ID:       strconv.Itoa(i + 1),
			Title:    path,
			Summary:  fmt.Sprintf("%s in `%s`: **+%d -%d** lines.", plural(len(fileHunks), "hunk"), path, added, removed),
			Priority: walkthrough.PriorityNormal,
			Hunks:    fileHunks,
		})
	}

	return walkthrough.New(steps)
}

func countChanges(hunks []walkthrough.Hunk) (added, removed int) {
	for _, h := range hunks {
		for _, l := range h.Lines() {
			switch {
			case strings.HasPrefix(l, "@@"):
			case strings.HasPrefix(l, "+"):
				added++
			case strings.HasPrefix(l, "-"):
				removed++
			}
		}
	}
	return added, removed
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
