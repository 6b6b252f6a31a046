package scroll

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sized(contentH, viewH int) *Engine {
	e := New()
	e.SetViewport(viewH, 80)
	e.SetContent(contentH, 80)
	return e
}

func TestScrollBy_Clamps(t *testing.T) {
	tests := []struct {
		name     string
		content  int
		viewport int
		deltas   []int
		want     int
	}{
		{name: "down within bounds", content: 100, viewport: 20, deltas: []int{5}, want: 5},
		{name: "past the end", content: 100, viewport: 20, deltas: []int{500}, want: 80},
		{name: "above the top", content: 100, viewport: 20, deltas: []int{3, -10}, want: 0},
		{name: "content fits", content: 10, viewport: 20, deltas: []int{4}, want: 0},
		{name: "empty content", content: 0, viewport: 20, deltas: []int{1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := sized(tt.content, tt.viewport)
			for _, d := range tt.deltas {
				e.ScrollBy(d)
			}
			assert.Equal(t, tt.want, e.Offset())
		})
	}
}

func TestHalfPage(t *testing.T) {
	e := sized(100, 21)
	e.HalfPage(Down)
	assert.Equal(t, 10, e.Offset())
	e.HalfPage(Up)
	assert.Equal(t, 0, e.Offset())

	tiny := sized(100, 1)
	tiny.HalfPage(Down)
	assert.Equal(t, 1, tiny.Offset(), "half page is at least one line")
}

func TestToTopBottom(t *testing.T) {
	e := sized(50, 10)
	e.ToBottom()
	assert.Equal(t, 40, e.Offset())
	e.ToTop()
	assert.Equal(t, 0, e.Offset())
}

func TestResize_Reclamps(t *testing.T) {
	e := sized(100, 20)
	e.ToBottom()
	assert.Equal(t, 80, e.Offset())

	e.SetViewport(60, 80)
	assert.Equal(t, 40, e.Offset())

	e.SetContent(30, 80)
	assert.Equal(t, 0, e.Offset())
}

func TestHorizontal(t *testing.T) {
	e := New()
	e.SetViewport(10, 20)
	e.SetContent(10, 50)
	e.ScrollXBy(100)
	assert.Equal(t, 30, e.Extent().X)
	e.SetViewport(10, 45)
	assert.Equal(t, 5, e.Extent().X)
}

func TestBoundsHoldUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	e := New()

	for range 2000 {
		switch rng.IntN(6) {
		case 0:
			e.ScrollBy(rng.IntN(200) - 100)
		case 1:
			e.SetViewport(rng.IntN(60), rng.IntN(100))
		case 2:
			e.SetContent(rng.IntN(300), rng.IntN(200))
		case 3:
			e.HalfPage(Direction(1 - 2*rng.IntN(2)))
		case 4:
			e.ToBottom()
		case 5:
			e.ScrollXBy(rng.IntN(50) - 25)
		}

		ext := e.Extent()
		assert.GreaterOrEqual(t, ext.Y, 0)
		assert.LessOrEqual(t, ext.Y, max(0, ext.ContentHeight-ext.ViewportHeight))
		assert.GreaterOrEqual(t, ext.X, 0)
		assert.LessOrEqual(t, ext.X, max(0, ext.ContentWidth-ext.ViewportWidth))
	}
}

func TestFollowing(t *testing.T) {
	e := NewFollowing()
	e.SetViewport(10, 80)
	e.SetContent(30, 80)
	assert.Equal(t, 20, e.Offset(), "pinned to bottom")

	e.SetContent(35, 80)
	assert.Equal(t, 25, e.Offset(), "follows growth")

	e.ScrollBy(-5)
	assert.False(t, e.Following())
	e.SetContent(40, 80)
	assert.Equal(t, 20, e.Offset(), "stays put once scrolled up")

	e.ToBottom()
	assert.True(t, e.Following())
}

func TestRestore(t *testing.T) {
	e := sized(100, 20)
	e.ScrollBy(30)
	saved := e.Extent()

	e.ToBottom()
	e.Restore(saved)
	assert.Equal(t, 30, e.Offset())

	e.SetContent(40, 80)
	e.Restore(saved)
	assert.Equal(t, 20, e.Offset(), "restored offset is clamped")
}

func TestEnsureVisibleAndCenter(t *testing.T) {
	e := sized(100, 10)
	e.EnsureVisible(15)
	assert.Equal(t, 6, e.Offset())
	e.EnsureVisible(2)
	assert.Equal(t, 2, e.Offset())

	e.Center(50)
	assert.Equal(t, 45, e.Offset())
	e.Center(99)
	assert.Equal(t, 90, e.Offset())
}
