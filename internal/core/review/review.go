// Package review holds the read-only export of comments recorded during a
// walkthrough.
package review

// Range is a file line range a comment refers to.
type Range struct {
	FilePath  string
	StartLine int
	EndLine   int
}

// Comment is a recorded comment with the step and line ranges it belongs to.
type Comment struct {
	StepID    string
	StepTitle string
	Ranges    []Range
	// ContextText is the diff excerpt the comment refers to, quoted in
	// the feedback output.
	ContextText string
	CommentText string
}

// Snapshot is the set of comments recorded in a session.
type Snapshot struct {
	Source   string
	Comments []Comment
}

// IsEmpty returns true if no comments were recorded.
func (s Snapshot) IsEmpty() bool {
	return len(s.Comments) == 0
}
