// Package search finds case-insensitive matches in diff pane rows.
package search

import "strings"

// Match is one occurrence of the query. Start and End are byte offsets in
// the row text, End exclusive.
type Match struct {
	Line  int
	Start int
	End   int
}

// State holds the committed or in-progress query and its matches.
type State struct {
	query   string
	typing  bool
	matches []Match
	current int
}

// Typing reports whether the query is still being entered.
func (s State) Typing() bool { return s.typing }

// Active reports whether a non-empty query is applied.
func (s State) Active() bool { return s.query != "" }

// Query returns the applied query.
func (s State) Query() string { return s.query }

// Matches returns all matches in row order.
func (s State) Matches() []Match { return s.matches }

// Current returns the selected match.
func (s State) Current() (Match, bool) {
	if len(s.matches) == 0 {
		return Match{}, false
	}
	return s.matches[s.current], true
}

// Position returns the 1-based index of the selected match and the count.
func (s State) Position() (int, int) {
	if len(s.matches) == 0 {
		return 0, 0
	}
	return s.current + 1, len(s.matches)
}

// Begin starts entering a new query.
func (s *State) Begin() {
	s.Clear()
	s.typing = true
}

// Update applies query incrementally while it is typed.
func (s *State) Update(query string, lines []string) {
	s.query = query
	s.find(lines)
}

// Commit finishes entering the query. An empty query clears the search.
func (s *State) Commit(query string, lines []string) {
	s.typing = false
	if query == "" {
		s.Clear()
		return
	}
	s.query = query
	s.find(lines)
}

// Refresh recomputes matches against new rows, keeping the query.
func (s *State) Refresh(lines []string) {
	if s.query != "" {
		s.find(lines)
	}
}

// Clear drops the query and matches.
func (s *State) Clear() {
	*s = State{}
}

// Next selects the following match, wrapping around.
func (s *State) Next() {
	if n := len(s.matches); n > 0 {
		s.current = (s.current + 1) % n
	}
}

// Prev selects the preceding match, wrapping around.
func (s *State) Prev() {
	if n := len(s.matches); n > 0 {
		s.current = (s.current - 1 + n) % n
	}
}

func (s *State) find(lines []string) {
	s.matches = s.matches[:0]
	s.current = 0

	q := strings.ToLower(s.query)
	if q == "" {
		return
	}

	for i, line := range lines {
		lower := strings.ToLower(line)
		// Lowercasing can change byte lengths; skip offsets that no longer
		// line up with the original row.
		if len(lower) != len(line) {
			if strings.Contains(lower, q) {
				s.matches = append(s.matches, Match{Line: i, Start: 0, End: 0})
			}
			continue
		}
		for from := 0; ; {
			idx := strings.Index(lower[from:], q)
			if idx < 0 {
				break
			}
			start := from + idx
			s.matches = append(s.matches, Match{Line: i, Start: start, End: start + len(q)})
			from = start + len(q)
		}
	}
}
