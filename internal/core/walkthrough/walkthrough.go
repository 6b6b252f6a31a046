// Package walkthrough holds the ordered review steps of a diff walkthrough
// along with their completion and discussion state.
package walkthrough

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when a step index falls outside the walkthrough.
	ErrOutOfRange = errors.New("step index out of range")
	// ErrNoSteps is returned when a walkthrough is built without any steps.
	ErrNoSteps = errors.New("walkthrough has no steps")
)

// Status is the overall progress of a walkthrough.
type Status int

const (
	StatusInProgress Status = iota
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in progress"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Walkthrough is the ordered narrative over a diff. Step order is the
// narrative order chosen when the walkthrough was built, not file order.
type Walkthrough struct {
	steps   []Step
	current int
	status  Status
}

// New builds a walkthrough from steps. Step IDs must be unique and every
// hunk must carry a valid 1-based line range.
func New(steps []Step) (*Walkthrough, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	seen := make(map[string]struct{}, len(steps))
	for i, s := range steps {
		if s.ID == "" {
			return nil, fmt.Errorf("step %d: id is required", i)
		}
		if _, ok := seen[s.ID]; ok {
			return nil, fmt.Errorf("step %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = struct{}{}

		for j, h := range s.Hunks {
			if err := h.Validate(); err != nil {
				return nil, fmt.Errorf("step %q hunk %d: %w", s.ID, j, err)
			}
		}
	}

	owned := make([]Step, len(steps))
	copy(owned, steps)
	for i := range owned {
		if owned[i].Explanation == "" {
			owned[i].Explanation = owned[i].Summary
		}
	}

	return &Walkthrough{steps: owned}, nil
}

// Len returns the number of steps.
func (w *Walkthrough) Len() int { return len(w.steps) }

// Index returns the 0-based index of the current step.
func (w *Walkthrough) Index() int { return w.current }

// Status returns the overall walkthrough status.
func (w *Walkthrough) Status() Status { return w.status }

// Steps returns the steps in narrative order. Callers must treat the
// returned slice as read-only.
func (w *Walkthrough) Steps() []Step { return w.steps }

// Step returns the step at index i, or nil when i is out of range.
func (w *Walkthrough) Step(i int) *Step {
	if i < 0 || i >= len(w.steps) {
		return nil
	}
	return &w.steps[i]
}

// CurrentStep returns the step under review.
func (w *Walkthrough) CurrentStep() *Step {
	return &w.steps[w.current]
}

// IsLast reports whether the current step is the final one.
func (w *Walkthrough) IsLast() bool {
	return w.current == len(w.steps)-1
}

// StepByID returns the step with the given id, or nil.
func (w *Walkthrough) StepByID(id string) *Step {
	if i := w.IndexOf(id); i >= 0 {
		return &w.steps[i]
	}
	return nil
}

// IndexOf returns the index of the step with the given id, or -1.
func (w *Walkthrough) IndexOf(id string) int {
	for i := range w.steps {
		if w.steps[i].ID == id {
			return i
		}
	}
	return -1
}

// Advance moves to the next step. It is a no-op on the last step.
func (w *Walkthrough) Advance() {
	if w.current < len(w.steps)-1 {
		w.current++
	}
}

// Retreat moves to the previous step. It is a no-op on the first step.
// Going back reopens a completed walkthrough.
func (w *Walkthrough) Retreat() {
	if w.current > 0 {
		w.current--
		w.status = StatusInProgress
	}
}

// JumpTo moves to step i. On failure the walkthrough is left untouched.
func (w *Walkthrough) JumpTo(i int) error {
	if i < 0 || i >= len(w.steps) {
		return fmt.Errorf("jump to %d of %d: %w", i, len(w.steps), ErrOutOfRange)
	}
	if i != w.current {
		w.current = i
		w.status = StatusInProgress
	}
	return nil
}

// MarkCurrentComplete marks the current step as reviewed. Idempotent.
func (w *Walkthrough) MarkCurrentComplete() {
	w.steps[w.current].Completed = true
}

// UndoCurrentComplete clears the reviewed flag on the current step.
func (w *Walkthrough) UndoCurrentComplete() {
	w.steps[w.current].Completed = false
	w.status = StatusInProgress
}

// CompleteAndAdvance marks the current step reviewed and moves on. On the
// last step the walkthrough becomes completed once every step is reviewed.
func (w *Walkthrough) CompleteAndAdvance() {
	w.MarkCurrentComplete()
	if !w.IsLast() {
		w.current++
		return
	}
	if w.CompletedCount() == len(w.steps) {
		w.status = StatusCompleted
	}
}

// CompletedCount returns how many steps are marked reviewed.
func (w *Walkthrough) CompletedCount() int {
	n := 0
	for i := range w.steps {
		if w.steps[i].Completed {
			n++
		}
	}
	return n
}

// DiffLineCounts returns the number of diff content lines in reviewed steps
// and across the whole walkthrough.
func (w *Walkthrough) DiffLineCounts() (reviewed, total int) {
	for i := range w.steps {
		n := w.steps[i].DiffLineCount()
		total += n
		if w.steps[i].Completed {
			reviewed += n
		}
	}
	return reviewed, total
}

// OpenThread returns the step holding the single open thread, if any.
func (w *Walkthrough) OpenThread() (*Step, bool) {
	for i := range w.steps {
		if t := w.steps[i].Thread; t != nil && t.Open {
			return &w.steps[i], true
		}
	}
	return nil, false
}
