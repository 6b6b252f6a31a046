package diff

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlighter_Lines(t *testing.T) {
	h := NewHighlighter("monokai")
	src := []string{"package main", "", "/* multi", "line */", "func main() {}"}

	got := h.Lines("main.go", src)
	require.Len(t, got, len(src))
	for i := range src {
		assert.Equal(t, src[i], ansi.Strip(got[i]), "line %d", i)
	}
	assert.NotEqual(t, src[0], got[0], "keywords are colored")
}

func TestHighlighter_UnknownLanguage(t *testing.T) {
	h := NewHighlighter("monokai")
	src := []string{"just text"}

	assert.Equal(t, src, h.Lines("notes.unknownext", src))
}

func TestHighlighter_Cache(t *testing.T) {
	h := NewHighlighter("no-such-style")
	src := []string{"x := 1"}

	first := h.Lines("a.go", src)
	assert.Len(t, h.cache, 1)
	assert.Equal(t, first, h.Lines("a.go", src))
	assert.Len(t, h.cache, 1)
}
