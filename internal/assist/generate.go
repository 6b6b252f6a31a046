package assist

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/colonyops/docent/internal/core/walkthrough"
)

// ErrHunkIndex is returned when the model references a hunk that does not
// exist.
var ErrHunkIndex = errors.New("hunk index out of bounds")

type walkthroughResponse struct {
	Steps []stepResponse `json:"steps"`
}

type stepResponse struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Priority    string `json:"priority"`
	HunkIndices []int  `json:"hunk_indices"`
}

// parseWalkthroughResponse extracts the JSON object from a model reply,
// repairing it when the model produced almost-JSON.
func parseWalkthroughResponse(raw string) (walkthroughResponse, error) {
	var resp walkthroughResponse

	body := extractJSON(raw)
	if body == "" {
		return resp, fmt.Errorf("parse walkthrough: %w", ErrEmptyResponse)
	}

	err := json.Unmarshal([]byte(body), &resp)
	if err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(body)
		if repairErr != nil {
			return resp, fmt.Errorf("parse walkthrough: %w", err)
		}
		resp = walkthroughResponse{}
		if err := json.Unmarshal([]byte(repaired), &resp); err != nil {
			return resp, fmt.Errorf("parse repaired walkthrough: %w", err)
		}
	}

	if len(resp.Steps) == 0 {
		return resp, fmt.Errorf("parse walkthrough: %w", walkthrough.ErrNoSteps)
	}
	return resp, nil
}

// extractJSON strips markdown fences and surrounding prose, returning the
// outermost object.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		s = strings.TrimPrefix(s, "json")
		if j := strings.LastIndex(s, "```"); j >= 0 {
			s = s[:j]
		}
	}

	start := strings.Index(s, "{")
	if start < 0 {
		return strings.TrimSpace(s)
	}
	if end := strings.LastIndex(s, "}"); end > start {
		return s[start : end+1]
	}
	// Truncated reply; let the repair pass close it.
	return s[start:]
}

// correlate maps 1-based hunk indices back to hunks. Step IDs are the
// 1-based step positions.
func correlate(resp walkthroughResponse, hunks []walkthrough.Hunk) (*walkthrough.Walkthrough, error) {
	steps := make([]walkthrough.Step, 0, len(resp.Steps))
	for i, sr := range resp.Steps {
		step := walkthrough.Step{
			ID:       strconv.Itoa(i + 1),
			Title:    sr.Title,
			Summary:  sr.Summary,
			Priority: walkthrough.ParsePriority(sr.Priority),
		}
		for _, idx := range sr.HunkIndices {
			if idx < 1 || idx > len(hunks) {
				return nil, fmt.Errorf("step %d: %w: %d (max %d)", i+1, ErrHunkIndex, idx, len(hunks))
			}
			step.Hunks = append(step.Hunks, hunks[idx-1])
		}
		steps = append(steps, step)
	}

	return walkthrough.New(steps)
}
