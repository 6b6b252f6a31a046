package session

import (
	"errors"
	"fmt"

	"github.com/colonyops/docent/internal/core/input"
	"github.com/colonyops/docent/internal/core/layout"
	"github.com/colonyops/docent/internal/core/scroll"
	"github.com/colonyops/docent/internal/core/thread"
	"github.com/colonyops/docent/internal/core/walkthrough"
)

// Apply applies one action to the session and returns the effects it
// produced.
func (s *Session) Apply(a input.Action) []Effect {
	switch a.Type {
	case input.ActionTypeScrollLines:
		s.scrollLines(a.Pane, a.Delta)
	case input.ActionTypeScrollHalfPage:
		s.scrollHalfPage(a.Pane, a.Dir)
	case input.ActionTypeScrollTop:
		if a.Pane == layout.PaneMinimap {
			s.navigate(func() { _ = s.wt.JumpTo(0) })
		} else {
			s.scrolls[a.Pane].ToTop()
		}
	case input.ActionTypeScrollBottom:
		if a.Pane == layout.PaneMinimap {
			s.navigate(func() { _ = s.wt.JumpTo(s.wt.Len() - 1) })
		} else {
			s.scrolls[a.Pane].ToBottom()
		}
	case input.ActionTypeScrollColumns:
		s.scrolls[a.Pane].ScrollXBy(a.Delta)

	case input.ActionTypeNextStep:
		s.navigate(s.wt.Advance)
	case input.ActionTypePrevStep:
		s.navigate(s.wt.Retreat)
	case input.ActionTypeJumpToStep:
		s.navigate(func() {
			if err := s.wt.JumpTo(a.Index); err != nil {
				s.log.Debug().Err(err).Int("index", a.Index).Msg("jump ignored")
			}
		})
	case input.ActionTypeCompleteAndAdvance:
		last := s.wt.IsLast()
		s.navigate(s.wt.CompleteAndAdvance)
		switch {
		case s.wt.Status() == walkthrough.StatusCompleted:
			s.notice = "Walkthrough complete"
		case last:
			s.notice = fmt.Sprintf("%d of %d steps reviewed", s.wt.CompletedCount(), s.wt.Len())
		}
	case input.ActionTypeUndoComplete:
		s.wt.UndoCurrentComplete()

	case input.ActionTypeCycleFocus:
		if a.Delta < 0 {
			s.router.CycleBackward()
		} else {
			s.router.CycleForward()
		}
		s.focusChanged()
	case input.ActionTypeFocusDirection:
		s.router.Move(a.Direction)
		s.focusChanged()
	case input.ActionTypeSetFocus:
		s.setFocus(a.Pane)

	case input.ActionTypeEnterInsert, input.ActionTypeExitInsert, input.ActionTypeInsertNewline:
		// mode and buffer changes are owned by the resolver

	case input.ActionTypeSubmitMessage:
		return s.submit(a.Text)
	case input.ActionTypeOpenBranch:
		s.openBranch()
	case input.ActionTypeCloseBranch:
		return s.closeBranch(a.Comment)
	case input.ActionTypeRequestExplanation:
		return s.requestExplanation()

	case input.ActionTypeToggleZoom:
		s.layout.ToggleZoom(a.Pane)
		s.syncViewports()
	case input.ActionTypeResizeLayout:
		s.layout.Nudge(a.Divider, a.Delta)
		s.syncViewports()

	case input.ActionTypeBeginSearch:
		s.search.Begin()
	case input.ActionTypeUpdateSearch:
		s.search.Update(a.Text, s.diffText)
		s.showMatch()
	case input.ActionTypeCommitSearch:
		s.search.Commit(a.Text, s.diffText)
		s.showMatch()
	case input.ActionTypeCancelSearch, input.ActionTypeClearSearch:
		s.search.Clear()
	case input.ActionTypeNextMatch:
		s.search.Next()
		s.showMatch()
	case input.ActionTypePrevMatch:
		s.search.Prev()
		s.showMatch()

	case input.ActionTypeQuit:
		return s.quit()
	}
	return nil
}

// scrollLines scrolls pane p. The minimap's scroll target is the step
// selection, so it moves between steps instead of lines.
func (s *Session) scrollLines(p layout.Pane, n int) {
	if p != layout.PaneMinimap {
		s.scrolls[p].ScrollBy(n)
		return
	}
	s.navigate(func() {
		target := min(max(s.wt.Index()+n, 0), s.wt.Len()-1)
		_ = s.wt.JumpTo(target)
	})
}

func (s *Session) scrollHalfPage(p layout.Pane, dir scroll.Direction) {
	if p != layout.PaneMinimap {
		s.scrolls[p].HalfPage(dir)
		return
	}
	n := scroll.HalfPageSize(s.scrolls[p].Extent().ViewportHeight)
	s.scrollLines(p, int(dir)*n)
}

func (s *Session) showMatch() {
	if m, ok := s.search.Current(); ok {
		s.scrolls[layout.PaneDiff].Center(m.Line)
	}
}

func (s *Session) openBranch() bool {
	step := s.wt.CurrentStep()
	err := s.threads.OpenBranch(step.ID, s.capture())
	if err != nil {
		if errors.Is(err, thread.ErrThreadAlreadyOpen) {
			id, _ := s.threads.Active()
			s.notice = fmt.Sprintf("A thread is already open on step %s", id)
		} else {
			s.notice = err.Error()
		}
		s.log.Debug().Err(err).Str("step", step.ID).Msg("open branch rejected")
		return false
	}

	s.scrolls[layout.PaneChat].Reset()
	s.setFocus(layout.PaneChat)
	s.log.Debug().Str("step", step.ID).Msg("branch opened")
	return true
}

func (s *Session) closeBranch(comment *string) []Effect {
	stepID, ok := s.threads.Active()
	if !ok {
		s.notice = "No open thread"
		return nil
	}

	snap, err := s.threads.CloseBranch(comment)
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	if comment != nil {
		s.input.SetChatInput("")
	}

	effects := s.cancelWhere(func(r *request) bool {
		return r.kind == requestChat && r.stepID == stepID
	})
	s.restore(snap)

	s.log.Debug().
		Str("step", stepID).
		Bool("comment", comment != nil).
		Msg("branch closed")
	return effects
}

func (s *Session) submit(text string) []Effect {
	if s.ChatPending() {
		s.notice = "Waiting for the current reply"
		s.input.SetChatInput(text)
		return nil
	}

	if _, ok := s.threads.Active(); !ok {
		if !s.openBranch() {
			s.input.SetChatInput(text)
			return nil
		}
	}

	stepID, th, _ := s.ActiveThread()
	if _, err := s.threads.PostMessage(walkthrough.RoleUser, text); err != nil {
		s.notice = err.Error()
		return nil
	}

	handle := s.newHandle()
	s.pending[handle] = &request{kind: requestChat, stepID: stepID}
	s.log.Debug().Str("handle", handle).Str("step", stepID).Msg("chat requested")

	return []Effect{RequestChat{
		Handle:   handle,
		Index:    s.wt.IndexOf(stepID),
		Steps:    detachAll(s.wt.Steps()),
		Messages: th.Transcript(),
	}}
}

func (s *Session) requestExplanation() []Effect {
	step := s.wt.CurrentStep()
	effects := s.cancelWhere(func(r *request) bool {
		return r.kind == requestExplanation && r.stepID == step.ID
	})

	handle := s.newHandle()
	s.pending[handle] = &request{kind: requestExplanation, stepID: step.ID}
	s.log.Debug().Str("handle", handle).Str("step", step.ID).Msg("explanation requested")

	return append(effects, RequestExplanation{Handle: handle, Step: detach(*step)})
}

func (s *Session) quit() []Effect {
	effects := s.cancelWhere(func(*request) bool { return true })
	s.quitting = true
	return append(effects, Quit{})
}

// cancelWhere drops the pending requests matching match and returns a
// Cancel effect for each.
func (s *Session) cancelWhere(match func(*request) bool) []Effect {
	var effects []Effect
	for h, r := range s.pending {
		if match(r) {
			delete(s.pending, h)
			effects = append(effects, Cancel{Handle: h})
			s.log.Debug().Str("handle", h).Msg("request cancelled")
		}
	}
	return effects
}
