package assist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/colonyops/docent/internal/core/walkthrough"
)

// Mock is an offline Client with canned replies, streamed word by word.
type Mock struct {
	// Delay is the pause between streamed words.
	Delay time.Duration
}

var _ Client = (*Mock)(nil)

// NewMock returns a Mock with a short streaming delay.
func NewMock() *Mock {
	return &Mock{Delay: 30 * time.Millisecond}
}

func (m *Mock) Explain(ctx context.Context, req ExplainRequest, emit func(string)) error {
	text := fmt.Sprintf(
		"**%s** touches %s.\n\n%s\n\nCheck that callers handle the new behaviour and that tests cover the edge cases.",
		req.Step.Title, strings.Join(req.Step.Files(), ", "), req.Step.Summary,
	)
	return m.stream(ctx, text, emit)
}

func (m *Mock) Chat(ctx context.Context, req ChatRequest, emit func(string)) error {
	question := ""
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == walkthrough.RoleUser {
			question = req.Messages[i].Text
			break
		}
	}

	title := ""
	if req.Index >= 0 && req.Index < len(req.Steps) {
		title = req.Steps[req.Index].Title
	}

	text := fmt.Sprintf("This is a mock reply about **%s**. You asked: _%s_", title, question)
	return m.stream(ctx, text, emit)
}

// Generate ignores the model and returns the demo walkthrough.
func (m *Mock) Generate(_ context.Context, _ []walkthrough.Hunk) (*walkthrough.Walkthrough, error) {
	return walkthrough.Mock(), nil
}

func (m *Mock) stream(ctx context.Context, text string, emit func(string)) error {
	words := strings.SplitAfter(text, " ")
	for _, w := range words {
		if m.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(m.Delay):
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		emit(w)
	}
	return nil
}
