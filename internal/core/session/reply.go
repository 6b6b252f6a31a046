package session

import (
	"fmt"

	"github.com/colonyops/docent/internal/core/walkthrough"
)

// Deliver applies a streamed reply. Replies for unknown or cancelled
// handles are discarded; Deliver reports whether r was applied.
func (s *Session) Deliver(r Reply) bool {
	req, ok := s.pending[r.Handle]
	if !ok {
		s.log.Debug().Str("handle", r.Handle).Msg("discarding late reply")
		return false
	}

	if r.Kind != ReplyChunk {
		delete(s.pending, r.Handle)
	}

	switch req.kind {
	case requestChat:
		return s.deliverChat(req, r)
	case requestExplanation:
		return s.deliverExplanation(req, r)
	}
	return false
}

func (s *Session) deliverChat(req *request, r Reply) bool {
	if id, ok := s.threads.Active(); !ok || id != req.stepID {
		delete(s.pending, r.Handle)
		return false
	}

	switch r.Kind {
	case ReplyChunk:
		if r.Text == "" {
			return true
		}
		if _, err := s.threads.AppendChunk(r.Text); err != nil {
			return false
		}
	case ReplyDone:
		s.log.Debug().Str("handle", r.Handle).Msg("chat reply complete")
	case ReplyFailed:
		_, _ = s.threads.PostMessage(walkthrough.RoleSystem, fmt.Sprintf("Error: %v", r.Err))
		s.log.Debug().Err(r.Err).Str("handle", r.Handle).Msg("chat reply failed")
	}
	return true
}

func (s *Session) deliverExplanation(req *request, r Reply) bool {
	step := s.wt.StepByID(req.stepID)
	if step == nil {
		return false
	}

	switch r.Kind {
	case ReplyChunk:
		if !req.started {
			req.started = true
			step.Explanation = ""
		}
		step.Explanation += r.Text
	case ReplyDone:
		if !req.started {
			s.notice = "No explanation returned"
		}
	case ReplyFailed:
		s.notice = fmt.Sprintf("Explanation failed: %v", r.Err)
		s.log.Debug().Err(r.Err).Str("step", req.stepID).Msg("explanation failed")
	}
	return true
}
