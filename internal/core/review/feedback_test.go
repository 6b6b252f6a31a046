package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedback_Empty(t *testing.T) {
	assert.Empty(t, Feedback(Snapshot{Source: "x.diff"}))
}

func TestFeedback_Format(t *testing.T) {
	s := Snapshot{
		Source: "changes.diff",
		Comments: []Comment{
			{
				StepID:      "1",
				StepTitle:   "Add model",
				Ranges:      []Range{{FilePath: "a.go", StartLine: 1, EndLine: 4}, {FilePath: "b.go", StartLine: 9, EndLine: 9}},
				ContextText: "\x1b[32m+func New()\x1b[0m",
				CommentText: "looks good",
			},
			{
				StepID:      "3",
				StepTitle:   "Handlers",
				CommentText: "needs a test",
			},
		},
	}

	want := `Walkthrough: changes.diff
Comments: 2

Step 1: Add model
a.go:1-4
b.go:9
> +func New()
looks good

Step 3: Handlers
needs a test
`
	assert.Equal(t, want, Feedback(s))
}

func TestFeedback_TruncatesContext(t *testing.T) {
	ctx := strings.Repeat("+line\n", 9) + "+line"
	out := Feedback(Snapshot{Comments: []Comment{{StepID: "1", StepTitle: "T", ContextText: ctx, CommentText: "c"}}})

	assert.Equal(t, maxContextLines, strings.Count(out, "> +line"))
	assert.Contains(t, out, "> ... (4 more lines)")
}
