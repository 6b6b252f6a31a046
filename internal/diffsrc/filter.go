package diffsrc

import (
	"errors"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/colonyops/docent/internal/core/walkthrough"
)

// ErrNoMatches is returned when a filter removes every hunk.
var ErrNoMatches = errors.New("no files match the specified filters")

// Filter keeps files matching any include pattern and no exclude pattern.
// An empty include list includes everything. Patterns use doublestar
// syntax and are also tried under any directory, so "*.go" matches
// "pkg/a.go".
type Filter struct {
	include []string
	exclude []string
}

// NewFilter validates the patterns and builds a Filter.
func NewFilter(include, exclude []string) (Filter, error) {
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return Filter{}, fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return Filter{include: include, exclude: exclude}, nil
}

// IsEmpty reports whether the filter has no patterns.
func (f Filter) IsEmpty() bool {
	return len(f.include) == 0 && len(f.exclude) == 0
}

// Matches reports whether path passes the filter.
func (f Filter) Matches(path string) bool {
	if len(f.include) > 0 && !matchAny(f.include, path) {
		return false
	}
	return !matchAny(f.exclude, path)
}

// Apply returns the hunks whose file passes the filter.
func (f Filter) Apply(hunks []walkthrough.Hunk) ([]walkthrough.Hunk, error) {
	if f.IsEmpty() {
		return hunks, nil
	}

	var out []walkthrough.Hunk
	for _, h := range hunks {
		if f.Matches(h.FilePath) {
			out = append(out, h)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoMatches
	}
	return out, nil
}

func matchAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
		if ok, _ := doublestar.Match("**/"+p, path); ok {
			return true
		}
	}
	return false
}
