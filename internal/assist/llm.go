package assist

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/colonyops/docent/internal/core/config"
	"github.com/colonyops/docent/internal/core/logging"
	"github.com/colonyops/docent/internal/core/walkthrough"
)

// chatMaxTokens caps conversational replies, which are expected to be short.
const chatMaxTokens = 1024

// LLM is a Client backed by a langchaingo model.
type LLM struct {
	model       llms.Model
	maxTokens   int
	temperature float64
	timeout     time.Duration
	log         zerolog.Logger
}

// New builds an LLM for the configured provider. getenv resolves the API key
// variable; nil uses os.Getenv.
func New(cfg config.AssistantConfig, getenv func(string) string) (*LLM, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	var (
		model llms.Model
		err   error
	)

	switch cfg.Provider {
	case config.ProviderAnthropic:
		opts := []anthropic.Option{
			anthropic.WithToken(getenv(cfg.APIKeyEnv)),
			anthropic.WithModel(cfg.Model),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		model, err = anthropic.New(opts...)
	case config.ProviderOllama:
		opts := []ollama.Option{ollama.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		model, err = ollama.New(opts...)
	default:
		return nil, fmt.Errorf("unsupported assistant provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s model: %w", cfg.Provider, err)
	}

	return NewWithModel(model, cfg), nil
}

// NewWithModel wraps an existing model.
func NewWithModel(model llms.Model, cfg config.AssistantConfig) *LLM {
	return &LLM{
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		log:         logging.Component("assist"),
	}
}

// Explain streams a longer explanation of req.Step.
func (l *LLM) Explain(ctx context.Context, req ExplainRequest, emit func(string)) error {
	ctx = logging.WithStepID(ctx, req.Step.ID)
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, explainSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, explainPrompt(req.Step)),
	}
	return l.stream(ctx, messages, l.maxTokens, emit)
}

// Chat streams a reply to the thread transcript in req.
func (l *LLM) Chat(ctx context.Context, req ChatRequest, emit func(string)) error {
	if req.Index >= 0 && req.Index < len(req.Steps) {
		ctx = logging.WithStepID(ctx, req.Steps[req.Index].ID)
	}
	return l.stream(ctx, chatMessages(req), chatMaxTokens, emit)
}

// Generate asks the model to group and order hunks into a walkthrough.
func (l *LLM) Generate(ctx context.Context, hunks []walkthrough.Hunk) (*walkthrough.Walkthrough, error) {
	if len(hunks) == 0 {
		return nil, ErrNoHunks
	}

	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, walkthroughSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, generatePrompt(hunks)),
	}

	started := time.Now()
	resp, err := l.model.GenerateContent(ctx, messages, l.options(l.maxTokens)...)
	if err != nil {
		return nil, fmt.Errorf("generate walkthrough: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return nil, ErrEmptyResponse
	}

	l.log.Debug().
		Int("hunks", len(hunks)).
		Dur("elapsed", time.Since(started)).
		Msg("walkthrough generated")

	parsed, err := parseWalkthroughResponse(resp.Choices[0].Content)
	if err != nil {
		return nil, err
	}
	return correlate(parsed, hunks)
}

func (l *LLM) stream(ctx context.Context, messages []llms.MessageContent, maxTokens int, emit func(string)) error {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	log := l.log.With().Ctx(ctx).Logger()
	log.Debug().Int("messages", len(messages)).Msg("streaming request")

	chunks := 0
	opts := append(l.options(maxTokens), llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
		if len(chunk) == 0 {
			return nil
		}
		chunks++
		emit(string(chunk))
		return nil
	}))

	resp, err := l.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return err
	}

	// Some providers return the whole reply without invoking the stream
	// callback.
	if chunks == 0 && len(resp.Choices) > 0 && resp.Choices[0].Content != "" {
		emit(resp.Choices[0].Content)
		chunks++
	}
	if chunks == 0 {
		return ErrEmptyResponse
	}

	log.Debug().Int("chunks", chunks).Msg("stream finished")
	return nil
}

func (l *LLM) options(maxTokens int) []llms.CallOption {
	opts := []llms.CallOption{llms.WithTemperature(l.temperature)}
	if maxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(maxTokens))
	}
	return opts
}

func (l *LLM) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, l.timeout)
}

// chatMessages builds the conversation: system prompt, the step context as
// the first user turn, then the thread transcript. System notes in the
// thread are local and never sent.
func chatMessages(req ChatRequest) []llms.MessageContent {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, chatSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, stepContext(req.Steps, req.Index)),
	}

	for _, m := range req.Messages {
		switch m.Role {
		case walkthrough.RoleUser:
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, m.Text))
		case walkthrough.RoleAssistant:
			if m.Text != "" {
				messages = append(messages, llms.TextParts(llms.ChatMessageTypeAI, m.Text))
			}
		case walkthrough.RoleSystem:
		}
	}

	return merged(messages)
}

// merged joins consecutive turns from the same role. Anthropic rejects two
// user turns in a row, which happens when the thread opens with a question.
func merged(messages []llms.MessageContent) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		if n := len(out); n > 0 && out[n-1].Role == m.Role && m.Role != llms.ChatMessageTypeSystem {
			out[n-1].Parts = append(out[n-1].Parts, m.Parts...)
			continue
		}
		out = append(out, m)
	}
	return out
}
