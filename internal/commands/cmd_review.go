package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/docent/internal/assist"
	"github.com/colonyops/docent/internal/core/config"
	"github.com/colonyops/docent/internal/core/session"
	"github.com/colonyops/docent/internal/core/walkthrough"
	"github.com/colonyops/docent/internal/diffsrc"
	"github.com/colonyops/docent/internal/tui"
)

// mockSource names the demo walkthrough in exported feedback.
const mockSource = "mock"

var copyToClipboard = clipboard.WriteAll

type ReviewCmd struct {
	flags *Flags

	vim     string
	mock    bool
	noAI    bool
	include []string
	exclude []string
}

// NewReviewCmd creates the walkthrough command. It runs as the root action.
func NewReviewCmd(flags *Flags) *ReviewCmd {
	return &ReviewCmd{flags: flags}
}

// Flags returns the walkthrough flags for registration on the root command.
func (cmd *ReviewCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "vim",
			Usage:       "modal editing (auto, always, never); overrides editor.vim_mode",
			Sources:     cli.EnvVars("DOCENT_VIM"),
			Destination: &cmd.vim,
		},
		&cli.BoolFlag{
			Name:        "mock",
			Usage:       "open a demo walkthrough with canned assistant replies",
			Destination: &cmd.mock,
		},
		&cli.BoolFlag{
			Name:        "no-ai",
			Usage:       "skip the assistant and walk through one step per file",
			Sources:     cli.EnvVars("DOCENT_NO_AI"),
			Destination: &cmd.noAI,
		},
		&cli.StringSliceFlag{
			Name:        "include",
			Aliases:     []string{"i"},
			Usage:       "only review files matching the glob (repeatable)",
			Destination: &cmd.include,
		},
		&cli.StringSliceFlag{
			Name:        "exclude",
			Aliases:     []string{"e"},
			Usage:       "skip files matching the glob (repeatable)",
			Destination: &cmd.exclude,
		},
	}
}

// Run executes the walkthrough. Exported for use as default command.
func (cmd *ReviewCmd) Run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() > 1 {
		return fmt.Errorf("expected at most one diff file, got %d arguments", c.Args().Len())
	}

	cfg := cmd.flags.Config

	vim, err := cfg.ResolveVimMode(cmd.vim, config.DefaultInputrcPath())
	if err != nil {
		return fmt.Errorf("--vim: %w", err)
	}

	stdinIsTerminal := term.IsTerminal(int(os.Stdin.Fd()))

	p, err := cmd.prepare(cfg, c.Args().First(), os.Stdin, stdinIsTerminal)
	if err != nil {
		return err
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if !stdinIsTerminal {
		// The diff arrived on stdin, so keys must come from the terminal.
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return fmt.Errorf("open terminal for input: %w", err)
		}
		defer func() { _ = tty.Close() }()
		progOpts = append(progOpts, tea.WithInput(tty))
	}

	opts := tui.Options{
		Context: ctx,
		Client:  p.client,
		Source:  p.source,
		Status:  p.status,
		Session: session.Options{
			Input:  cfg.ResolverConfig(vim),
			Layout: cfg.LayoutEngineConfig(),
		},
	}

	var m tui.Model
	if p.generate != nil {
		m = tui.NewGenerating(p.generate, p.fallback, opts)
	} else {
		m = tui.New(p.walkthrough, opts)
	}

	log.Info().
		Str("source", p.source).
		Bool("generate", p.generate != nil).
		Str("vim", vim.String()).
		Bool("assistant", p.client != nil).
		Msg("starting walkthrough")

	final, err := tea.NewProgram(m, progOpts...).Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	model, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	if err := model.GenerationErr(); err != nil {
		return err
	}
	exportFeedback(c.Root().ErrWriter, model.Feedback())
	return nil
}

// plan is everything the walkthrough needs before the UI starts. Either
// walkthrough is set, or generate builds it inside the UI.
type plan struct {
	walkthrough *walkthrough.Walkthrough
	generate    tui.Generator
	fallback    tui.Generator
	status      string
	client      assist.Client
	source      string
}

// prepare reads the diff and decides how the walkthrough is built. With
// --mock no input is read. Without an assistant each file becomes one step;
// with one, generation runs in the UI and one step per file is offered when
// it fails.
func (cmd *ReviewCmd) prepare(cfg *config.Config, path string, stdin io.Reader, stdinIsTerminal bool) (plan, error) {
	if cmd.mock {
		return plan{walkthrough: walkthrough.Mock(), client: assist.NewMock(), source: mockSource}, nil
	}

	filter, err := diffsrc.NewFilter(
		append(append([]string{}, cfg.Diff.Include...), cmd.include...),
		append(append([]string{}, cfg.Diff.Exclude...), cmd.exclude...),
	)
	if err != nil {
		return plan{}, err
	}

	in, hunks, err := diffsrc.Load(path, stdin, stdinIsTerminal, filter)
	if err != nil {
		return plan{}, err
	}

	p := plan{source: in.Name}

	if cmd.noAI || cfg.Assistant.Provider == config.ProviderNone {
		p.walkthrough, err = diffsrc.Fallback(hunks)
		if err != nil {
			return plan{}, fmt.Errorf("build walkthrough: %w", err)
		}
		return p, nil
	}

	llm, err := assist.New(cfg.Assistant, os.Getenv)
	if err != nil {
		return plan{}, err
	}
	p.client = llm
	p.status = fmt.Sprintf("Generating walkthrough for %d hunks...", len(hunks))
	p.generate = func(ctx context.Context) (*walkthrough.Walkthrough, error) {
		return generate(ctx, llm, hunks)
	}
	p.fallback = func(context.Context) (*walkthrough.Walkthrough, error) {
		return diffsrc.Fallback(hunks)
	}
	return p, nil
}

// generate asks the client for a walkthrough. Cancellation is returned as
// is so the UI does not report it as a failure.
func generate(ctx context.Context, client assist.Client, hunks []walkthrough.Hunk) (*walkthrough.Walkthrough, error) {
	wt, err := client.Generate(ctx, hunks)
	if err != nil {
		log.Warn().Err(err).Int("hunks", len(hunks)).Msg("walkthrough generation failed")
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("generate walkthrough: %w", err)
	}
	return wt, nil
}

// exportFeedback prints non-empty feedback and copies it to the clipboard.
// Clipboard failures are logged only.
func exportFeedback(w io.Writer, feedback string) {
	if feedback == "" {
		return
	}

	_, _ = fmt.Fprint(w, feedback)

	if err := copyToClipboard(feedback); err != nil {
		log.Debug().Err(err).Msg("copy feedback to clipboard")
		return
	}
	_, _ = fmt.Fprintln(w, "\nFeedback copied to clipboard.")
}
