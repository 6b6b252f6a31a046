package assist

import (
	"fmt"
	"strings"

	"github.com/colonyops/docent/internal/core/walkthrough"
	"github.com/colonyops/docent/internal/diffsrc"
)

const walkthroughSystemPrompt = `You are an expert code reviewer creating a narrative walkthrough of a code change.

Your goal is to organize the diff hunks into a logical sequence that tells a story - not necessarily in file order, but in the order that best helps a reviewer understand the changes.

Guidelines:
- Group related hunks together into steps (e.g., all hunks for a new feature)
- Order steps from foundational changes to dependent changes
- Mark security-critical or architecturally significant changes as "critical"
- Write summaries in markdown, highlighting key points with **bold**
- Each hunk should appear in exactly one step
- Aim for 3-8 steps for typical PRs; fewer for small changes

Reply with a single JSON object and nothing else, shaped like:
{"steps": [{"title": "...", "summary": "...", "priority": "critical|normal|minor", "hunk_indices": [1, 2]}]}
Hunk indices are the 1-based numbers shown before each hunk.`

const chatSystemPrompt = `You are an expert code reviewer helping someone understand a code change.
Answer questions about the current step of the walkthrough concisely and concretely.
Refer to files and line numbers from the code changes when relevant.
Format replies in markdown.`

const explainSystemPrompt = `You are an expert code reviewer.
Explain the given step of a code review walkthrough in more depth than its summary:
what changed, why it matters and what a reviewer should check.
Format the explanation in markdown with short paragraphs and bullet points.`

func generatePrompt(hunks []walkthrough.Hunk) string {
	return fmt.Sprintf(
		"Please analyze this diff and create a code review walkthrough.\n\nThe diff contains %d hunks, numbered below:\n\n%s",
		len(hunks), diffsrc.FormatForPrompt(hunks),
	)
}

// stepContext renders the walkthrough overview, the focused step and its
// code. It opens every chat conversation.
func stepContext(steps []walkthrough.Step, index int) string {
	var b strings.Builder

	b.WriteString("Here is the code change I'm reviewing:\n\n## Walkthrough Overview\n")
	for i, s := range steps {
		fmt.Fprintf(&b, "%d. %s", i+1, s.Title)
		if i == index {
			b.WriteString(" ← current")
		}
		b.WriteString("\n")
	}

	if index < 0 || index >= len(steps) {
		return b.String()
	}

	step := steps[index]
	fmt.Fprintf(&b, "\n## Current Step: %s\n\n%s\n\n## Code Changes\n\n", step.Title, step.Summary)
	b.WriteString(hunkBlocks(step.Hunks))
	return b.String()
}

func explainPrompt(step walkthrough.Step) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Step: %s\n\nPriority: %s\n\n%s\n\n## Code Changes\n\n", step.Title, step.Priority, step.Summary)
	b.WriteString(hunkBlocks(step.Hunks))
	return b.String()
}

func hunkBlocks(hunks []walkthrough.Hunk) string {
	blocks := make([]string, len(hunks))
	for i, h := range hunks {
		blocks[i] = fmt.Sprintf("### %s\n```\n%s\n```", h.FilePath, h.Content)
	}
	return strings.Join(blocks, "\n\n")
}
