package session

import (
	"github.com/colonyops/docent/internal/core/walkthrough"
)

// Effect is a side effect the caller must perform after an action is
// applied. Effects never block the session.
type Effect interface {
	effect()
}

// RequestChat asks the model for a reply on the open thread.
type RequestChat struct {
	Handle string
	// Index is the position of the thread's step in Steps.
	Index    int
	Steps    []walkthrough.Step
	Messages []walkthrough.Message
}

// RequestExplanation asks the model to explain Step.
type RequestExplanation struct {
	Handle string
	Step   walkthrough.Step
}

// Cancel abandons the request identified by Handle.
type Cancel struct {
	Handle string
}

// Quit ends the program.
type Quit struct{}

func (RequestChat) effect()        {}
func (RequestExplanation) effect() {}
func (Cancel) effect()             {}
func (Quit) effect()               {}

// ReplyKind classifies a streamed reply event.
type ReplyKind int

const (
	ReplyChunk ReplyKind = iota
	ReplyDone
	ReplyFailed
)

// Reply is a streamed event for a request issued through an effect.
type Reply struct {
	Handle string
	Kind   ReplyKind
	Text   string
	Err    error
}

// detach copies a step without its thread so it can be read off the event
// loop.
func detach(step walkthrough.Step) walkthrough.Step {
	step.Thread = nil
	return step
}

func detachAll(steps []walkthrough.Step) []walkthrough.Step {
	out := make([]walkthrough.Step, len(steps))
	for i, st := range steps {
		out[i] = detach(st)
	}
	return out
}
