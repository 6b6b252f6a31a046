package session

import (
	"strings"

	"github.com/colonyops/docent/internal/core/review"
)

// Comments returns the recorded comments in step order.
func (s *Session) Comments() []review.Comment {
	var out []review.Comment
	for _, step := range s.wt.Steps() {
		if !step.HasComment() {
			continue
		}

		c := review.Comment{
			StepID:      step.ID,
			StepTitle:   step.Title,
			CommentText: step.RecordedComment,
		}
		var excerpt []string
		for _, h := range step.Hunks {
			c.Ranges = append(c.Ranges, review.Range{
				FilePath:  h.FilePath,
				StartLine: h.StartLine,
				EndLine:   h.EndLine,
			})
			excerpt = append(excerpt, h.Lines()...)
		}
		c.ContextText = strings.Join(excerpt, "\n")
		out = append(out, c)
	}
	return out
}

// Snapshot returns the recorded comments for export.
func (s *Session) Snapshot(source string) review.Snapshot {
	return review.Snapshot{Source: source, Comments: s.Comments()}
}
