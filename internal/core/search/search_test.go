package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rows = []string{
	"func Valid() bool {",
	"	return s.Active && valid(s)",
	"}",
	"VALID VALID",
}

func TestCommit_FindsCaseInsensitive(t *testing.T) {
	var s State
	s.Begin()
	assert.True(t, s.Typing())

	s.Commit("valid", rows)
	assert.False(t, s.Typing())
	assert.True(t, s.Active())

	require.Len(t, s.Matches(), 4)
	assert.Equal(t, Match{Line: 0, Start: 5, End: 10}, s.Matches()[0])
	assert.Equal(t, Match{Line: 3, Start: 6, End: 11}, s.Matches()[3])

	pos, total := s.Position()
	assert.Equal(t, 1, pos)
	assert.Equal(t, 4, total)
}

func TestNextPrev_Wrap(t *testing.T) {
	var s State
	s.Commit("valid", rows)

	s.Prev()
	m, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 3, m.Line)

	s.Next()
	m, _ = s.Current()
	assert.Equal(t, 0, m.Line)
}

func TestUpdate_Incremental(t *testing.T) {
	var s State
	s.Begin()
	s.Update("ret", rows)
	assert.Len(t, s.Matches(), 1)
	s.Update("retx", rows)
	assert.Empty(t, s.Matches())
	assert.True(t, s.Typing())
}

func TestCommit_EmptyClears(t *testing.T) {
	var s State
	s.Commit("valid", rows)
	s.Begin()
	s.Commit("", rows)

	assert.False(t, s.Active())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestRefresh(t *testing.T) {
	var s State
	s.Commit("}", rows)
	require.Len(t, s.Matches(), 1)

	s.Refresh([]string{"}", "}"})
	assert.Len(t, s.Matches(), 2)
}
