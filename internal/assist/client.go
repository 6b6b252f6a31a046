// Package assist queries a language model for step explanations, chat
// replies on branch threads and walkthrough generation.
package assist

import (
	"context"
	"errors"

	"github.com/colonyops/docent/internal/core/walkthrough"
)

var (
	// ErrNoHunks is returned when generation is asked to order nothing.
	ErrNoHunks = errors.New("no hunks to organize")
	// ErrEmptyResponse is returned when the model replies with no text.
	ErrEmptyResponse = errors.New("empty response from model")
)

// ExplainRequest asks for a longer explanation of one step.
type ExplainRequest struct {
	Step walkthrough.Step
}

// ChatRequest asks for a reply in the thread opened on Steps[Index].
type ChatRequest struct {
	Index    int
	Steps    []walkthrough.Step
	Messages []walkthrough.Message
}

// Client is a model backend. Explain and Chat stream text through emit as it
// arrives and return once the reply is complete or ctx is cancelled.
type Client interface {
	Explain(ctx context.Context, req ExplainRequest, emit func(string)) error
	Chat(ctx context.Context, req ChatRequest, emit func(string)) error
	Generate(ctx context.Context, hunks []walkthrough.Hunk) (*walkthrough.Walkthrough, error)
}
