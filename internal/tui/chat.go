package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/docent/internal/core/session"
	"github.com/colonyops/docent/internal/core/styles"
	"github.com/colonyops/docent/internal/core/walkthrough"
)

// markdownCacheSize bounds the rendered markdown cache.
const markdownCacheSize = 256

// markdown renders markdown with glamour at a fixed wrap width, caching
// results until the width changes.
type markdown struct {
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

func newMarkdown() *markdown {
	return &markdown{cache: make(map[string]string)}
}

func (md *markdown) render(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	if width != md.width || md.renderer == nil {
		md.width = width
		md.cache = make(map[string]string)
		r, err := glamour.NewTermRenderer(
			glamour.WithStyles(styles.GlamourStyle()),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
			md.renderer = nil
			return ansi.Wrap(text, width, "")
		}
		md.renderer = r
	}

	if out, ok := md.cache[text]; ok {
		return out
	}

	rendered, err := md.renderer.Render(text)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		return ansi.Wrap(text, width, "")
	}

	out := strings.Trim(rendered, "\n")
	if len(md.cache) >= markdownCacheSize {
		md.cache = make(map[string]string)
	}
	md.cache[text] = out
	return out
}

// chatView holds the rendered rows of the chat pane.
type chatView struct {
	lines []string
}

// build renders the current step's explanation, its thread and its
// recorded comment at width columns.
func (c *chatView) build(s *session.Session, md *markdown, spin string, width int) []string {
	step := s.Walkthrough().CurrentStep()
	var out []string

	add := func(block string) {
		if block == "" {
			return
		}
		out = append(out, strings.Split(block, "\n")...)
	}
	gap := func() {
		if len(out) > 0 && out[len(out)-1] != "" {
			out = append(out, "")
		}
	}

	if s.ExplanationPending(step.ID) {
		add(spin + styles.MutedStyle.Render(" Explaining..."))
	}
	add(md.render(step.Explanation, width))

	activeID, _, branched := s.ActiveThread()

	if t := step.Thread; t != nil {
		gap()
		title := styles.IconThread + " Thread"
		if !t.Open {
			title += " (closed)"
		}
		add(styles.PaneTitleStyle.Render(title))

		for _, msg := range t.Messages {
			gap()
			add(messageLabel(msg.Role))
			add(messageBody(msg, md, width))
		}

		if t.Open && s.ChatPending() {
			gap()
			add(spin + styles.MutedStyle.Render(" Thinking..."))
		}
	}

	if step.RecordedComment != "" && (step.Thread == nil || !step.Thread.Open) {
		gap()
		add(styles.StepCommentStyle.Render(styles.IconComment + " Comment"))
		add(ansi.Wrap(step.RecordedComment, width, ""))
	}

	if branched && activeID != step.ID {
		gap()
		add(styles.MutedStyle.Render(fmt.Sprintf("A thread is open on step %s.", activeID)))
	}

	c.lines = out
	return out
}

func messageLabel(r walkthrough.Role) string {
	switch r {
	case walkthrough.RoleUser:
		return styles.ChatUserStyle.Render("You")
	case walkthrough.RoleAssistant:
		return styles.ChatAssistantStyle.Render("Assistant")
	case walkthrough.RoleSystem:
		return styles.ChatSystemStyle.Render("System")
	}
	return ""
}

func messageBody(msg walkthrough.Message, md *markdown, width int) string {
	switch msg.Role {
	case walkthrough.RoleAssistant:
		return md.render(msg.Text, width)
	case walkthrough.RoleSystem:
		return styles.ChatSystemStyle.Render(ansi.Wrap(msg.Text, width, ""))
	case walkthrough.RoleUser:
	}
	return ansi.Wrap(msg.Text, width, "")
}
