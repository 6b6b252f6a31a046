package assist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/colonyops/docent/internal/core/config"
	"github.com/colonyops/docent/internal/core/walkthrough"
)

type fakeModel struct {
	reply  string
	chunks []string
	err    error

	messages []llms.MessageContent
	opts     llms.CallOptions
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, o := range options {
		o(&f.opts)
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.opts.StreamingFunc != nil {
		for _, c := range f.chunks {
			if err := f.opts.StreamingFunc(ctx, []byte(c)); err != nil {
				return nil, err
			}
		}
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func testHunks() []walkthrough.Hunk {
	return []walkthrough.Hunk{
		{FilePath: "a.go", StartLine: 1, EndLine: 2, Content: "@@ -0,0 +1,2 @@\n+package a\n+"},
		{FilePath: "b.go", StartLine: 5, EndLine: 5, Content: "@@ -5 +5 @@\n-old\n+new"},
		{FilePath: "a_test.go", StartLine: 1, EndLine: 1, Content: "@@ -0,0 +1 @@\n+package a"},
	}
}

func newTestLLM(m *fakeModel) *LLM {
	return NewWithModel(m, config.AssistantConfig{MaxTokens: 512, Temperature: 0.1})
}

func collect(buf *[]string) func(string) {
	return func(s string) { *buf = append(*buf, s) }
}

func textOf(m llms.MessageContent) string {
	var parts []string
	for _, p := range m.Parts {
		if tc, ok := p.(llms.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func TestGenerate(t *testing.T) {
	m := &fakeModel{reply: "Here you go:\n```json\n" + `{"steps": [
		{"title": "Package", "summary": "Adds **a**.", "priority": "critical", "hunk_indices": [1, 3]},
		{"title": "Rename", "summary": "Tweaks b.", "priority": "Minor", "hunk_indices": [2]}
	]}` + "\n```"}

	wt, err := newTestLLM(m).Generate(context.Background(), testHunks())
	require.NoError(t, err)

	require.Equal(t, 2, wt.Len())
	first := wt.Step(0)
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, walkthrough.PriorityCritical, first.Priority)
	require.Len(t, first.Hunks, 2)
	assert.Equal(t, "a_test.go", first.Hunks[1].FilePath)
	assert.Equal(t, "2", wt.Step(1).ID)
	assert.Equal(t, walkthrough.PriorityMinor, wt.Step(1).Priority)

	require.Len(t, m.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, m.messages[0].Role)
	prompt := textOf(m.messages[1])
	assert.Contains(t, prompt, "The diff contains 3 hunks")
	assert.Contains(t, prompt, "=== Hunk 2 (b.go, lines 5-5) ===")
	assert.Equal(t, 512, m.opts.MaxTokens)
}

func TestGenerate_RepairsJSON(t *testing.T) {
	m := &fakeModel{reply: `{"steps": [{"title": "All", "summary": "s", "priority": "normal", "hunk_indices": [1, 2, 3],}]`}

	wt, err := newTestLLM(m).Generate(context.Background(), testHunks())
	require.NoError(t, err)
	assert.Len(t, wt.Step(0).Hunks, 3)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  error
	}{
		{name: "index zero", reply: `{"steps":[{"title":"x","hunk_indices":[0]}]}`, want: ErrHunkIndex},
		{name: "index past end", reply: `{"steps":[{"title":"x","hunk_indices":[4]}]}`, want: ErrHunkIndex},
		{name: "no steps", reply: `{"steps":[]}`, want: walkthrough.ErrNoSteps},
		{name: "empty", reply: "", want: ErrEmptyResponse},
		{name: "model error", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestLLM(&fakeModel{reply: tt.reply, err: tt.err}).Generate(context.Background(), testHunks())
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestGenerate_NoHunks(t *testing.T) {
	_, err := newTestLLM(&fakeModel{}).Generate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoHunks)
}

func TestChat_Streams(t *testing.T) {
	m := &fakeModel{chunks: []string{"Be", "cause."}, reply: "Because."}
	steps := []walkthrough.Step{
		{ID: "1", Title: "Model", Summary: "Adds model.", Hunks: testHunks()[:1]},
		{ID: "2", Title: "Handlers", Summary: "Wires it."},
	}
	req := ChatRequest{
		Index: 0,
		Steps: steps,
		Messages: []walkthrough.Message{
			{Role: walkthrough.RoleUser, Text: "why?", Seq: 1},
			{Role: walkthrough.RoleSystem, Text: "Error: timeout", Seq: 2},
			{Role: walkthrough.RoleUser, Text: "again?", Seq: 3},
		},
	}

	var got []string
	require.NoError(t, newTestLLM(m).Chat(context.Background(), req, collect(&got)))
	assert.Equal(t, []string{"Be", "cause."}, got)
	assert.Equal(t, chatMaxTokens, m.opts.MaxTokens)

	require.Len(t, m.messages, 2, "consecutive user turns are merged and system notes dropped")
	ctx := textOf(m.messages[1])
	assert.Contains(t, ctx, "1. Model ← current")
	assert.Contains(t, ctx, "2. Handlers\n")
	assert.Contains(t, ctx, "## Current Step: Model")
	assert.Contains(t, ctx, "### a.go\n```\n@@ -0,0 +1,2 @@")
	assert.True(t, strings.HasSuffix(ctx, "why?\nagain?"))
	assert.NotContains(t, ctx, "timeout")
}

func TestChat_AlternatesRoles(t *testing.T) {
	m := &fakeModel{chunks: []string{"ok"}}
	req := ChatRequest{
		Steps: []walkthrough.Step{{ID: "1", Title: "T"}},
		Messages: []walkthrough.Message{
			{Role: walkthrough.RoleUser, Text: "q1"},
			{Role: walkthrough.RoleAssistant, Text: "a1"},
			{Role: walkthrough.RoleUser, Text: "q2"},
		},
	}

	require.NoError(t, newTestLLM(m).Chat(context.Background(), req, func(string) {}))

	roles := make([]llms.ChatMessageType, len(m.messages))
	for i, msg := range m.messages {
		roles[i] = msg.Role
	}
	assert.Equal(t, []llms.ChatMessageType{
		llms.ChatMessageTypeSystem,
		llms.ChatMessageTypeHuman,
		llms.ChatMessageTypeAI,
		llms.ChatMessageTypeHuman,
	}, roles)
}

func TestExplain_FallsBackToWholeReply(t *testing.T) {
	m := &fakeModel{reply: "Full explanation."}
	var got []string

	err := newTestLLM(m).Explain(context.Background(), ExplainRequest{Step: walkthrough.Step{ID: "3", Title: "T"}}, collect(&got))
	require.NoError(t, err)
	assert.Equal(t, []string{"Full explanation."}, got)
	assert.Contains(t, textOf(m.messages[1]), "## Step: T")
}

func TestExplain_Empty(t *testing.T) {
	err := newTestLLM(&fakeModel{}).Explain(context.Background(), ExplainRequest{}, func(string) {})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(config.AssistantConfig{Provider: config.ProviderNone}, nil)
	assert.Error(t, err)
}

func TestNew_Anthropic(t *testing.T) {
	cfg := config.DefaultConfig().Assistant
	getenv := func(k string) string {
		if k == cfg.APIKeyEnv {
			return "sk-test"
		}
		return ""
	}

	l, err := New(cfg, getenv)
	require.NoError(t, err)
	assert.NotNil(t, l.model)
	assert.Equal(t, cfg.Timeout, l.timeout)
}

func TestMock(t *testing.T) {
	m := &Mock{}
	var got []string
	req := ChatRequest{
		Steps:    []walkthrough.Step{{ID: "1", Title: "Model"}},
		Messages: []walkthrough.Message{{Role: walkthrough.RoleUser, Text: "why?"}},
	}

	require.NoError(t, m.Chat(context.Background(), req, collect(&got)))
	assert.Equal(t, "This is a mock reply about **Model**. You asked: _why?_", strings.Join(got, ""))

	wt, err := m.Generate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 5, wt.Len())
}

func TestMock_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var got []string
	err := NewMock().Explain(ctx, ExplainRequest{Step: walkthrough.Step{Title: "T"}}, collect(&got))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, got)
}
