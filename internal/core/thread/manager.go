// Package thread manages branch conversations rooted at walkthrough steps.
package thread

import (
	"errors"
	"fmt"

	"github.com/colonyops/docent/internal/core/walkthrough"
)

var (
	// ErrThreadAlreadyOpen is returned when opening a branch while one is open.
	ErrThreadAlreadyOpen = errors.New("a thread is already open")
	// ErrNoActiveThread is returned for message operations without an open branch.
	ErrNoActiveThread = errors.New("no active thread")
	// ErrUnknownStep is returned when branching on a step id that does not exist.
	ErrUnknownStep = errors.New("unknown step")
)

// Manager opens and closes branches on the steps of one walkthrough. At
// most one branch is open across the whole walkthrough. S is the session
// state captured when a branch opens and handed back when it closes.
type Manager[S any] struct {
	wt *walkthrough.Walkthrough

	stepID   string
	open     bool
	snapshot S
}

// NewManager returns a manager for wt with no open branch.
func NewManager[S any](wt *walkthrough.Walkthrough) *Manager[S] {
	return &Manager[S]{wt: wt}
}

// Active returns the id of the step with the open branch.
func (m *Manager[S]) Active() (string, bool) {
	return m.stepID, m.open
}

// Thread returns the open thread, or nil.
func (m *Manager[S]) Thread() *walkthrough.Thread {
	if step := m.step(); step != nil {
		return step.Thread
	}
	return nil
}

// OpenBranch starts an empty thread on the step and records snapshot so
// closing the branch can return to it exactly.
func (m *Manager[S]) OpenBranch(stepID string, snapshot S) error {
	step := m.wt.StepByID(stepID)
	if step == nil {
		return fmt.Errorf("open branch on %q: %w", stepID, ErrUnknownStep)
	}
	if m.open {
		return fmt.Errorf("open branch on %q: %w (step %q)", stepID, ErrThreadAlreadyOpen, m.stepID)
	}
	if step.Thread != nil && step.Thread.Open {
		return fmt.Errorf("open branch on %q: %w", stepID, ErrThreadAlreadyOpen)
	}

	step.Thread = &walkthrough.Thread{Open: true}
	m.stepID = stepID
	m.open = true
	m.snapshot = snapshot
	return nil
}

// PostMessage appends a message with the next sequence number.
func (m *Manager[S]) PostMessage(role walkthrough.Role, text string) (walkthrough.Message, error) {
	t := m.Thread()
	if t == nil {
		return walkthrough.Message{}, ErrNoActiveThread
	}
	return t.Append(role, text), nil
}

// AppendChunk extends the streaming assistant reply on the open thread.
func (m *Manager[S]) AppendChunk(text string) (walkthrough.Message, error) {
	t := m.Thread()
	if t == nil {
		return walkthrough.Message{}, ErrNoActiveThread
	}
	return t.AppendChunk(text), nil
}

// CloseBranch deactivates the open thread and returns the snapshot taken
// when it opened. A non-nil comment becomes the step's recorded comment.
func (m *Manager[S]) CloseBranch(comment *string) (S, error) {
	var zero S

	step := m.step()
	if step == nil {
		return zero, ErrNoActiveThread
	}

	if comment != nil {
		step.RecordedComment = *comment
		step.Thread.RecordedComment = *comment
	}
	step.Thread.Open = false

	snapshot := m.snapshot
	m.stepID = ""
	m.open = false
	m.snapshot = zero
	return snapshot, nil
}

func (m *Manager[S]) step() *walkthrough.Step {
	if !m.open {
		return nil
	}
	step := m.wt.StepByID(m.stepID)
	if step == nil || step.Thread == nil {
		return nil
	}
	return step
}
