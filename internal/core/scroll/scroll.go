// Package scroll implements per-pane scroll offset arithmetic against known
// content and viewport extents.
package scroll

// Direction is the direction of a page scroll.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// Extent is the scroll record of a single pane.
type Extent struct {
	ContentHeight  int
	ContentWidth   int
	ViewportHeight int
	ViewportWidth  int
	X              int
	Y              int
}

// MaxY returns the largest valid vertical offset.
func (e Extent) MaxY() int { return max(0, e.ContentHeight-e.ViewportHeight) }

// MaxX returns the largest valid horizontal offset.
func (e Extent) MaxX() int { return max(0, e.ContentWidth-e.ViewportWidth) }

// AtBottom reports whether the viewport shows the end of the content.
func (e Extent) AtBottom() bool { return e.Y >= e.MaxY() }

// Engine owns the scroll record of one pane and keeps its offsets inside
// [0, max] across every mutation.
type Engine struct {
	ext Extent

	// follow pins the viewport to the bottom as content grows until the
	// user scrolls up.
	follow    bool
	canFollow bool
}

// New returns an engine with an empty extent.
func New() *Engine { return &Engine{} }

// NewFollowing returns an engine that sticks to the bottom of its content
// while the user has not scrolled away from it.
func NewFollowing() *Engine { return &Engine{follow: true, canFollow: true} }

// Extent returns a copy of the current scroll record.
func (e *Engine) Extent() Extent { return e.ext }

// Offset returns the vertical offset.
func (e *Engine) Offset() int { return e.ext.Y }

// Following reports whether the engine is pinned to the bottom.
func (e *Engine) Following() bool { return e.follow }

// ScrollBy moves the vertical offset by n lines, clamped to bounds.
func (e *Engine) ScrollBy(n int) {
	e.ext.Y += n
	e.clamp()
	e.updateFollow()
}

// ScrollXBy moves the horizontal offset by n columns, clamped to bounds.
func (e *Engine) ScrollXBy(n int) {
	e.ext.X += n
	e.clamp()
}

// HalfPage scrolls by half the viewport height (at least one line).
func (e *Engine) HalfPage(dir Direction) {
	e.ScrollBy(int(dir) * HalfPageSize(e.ext.ViewportHeight))
}

// ToTop scrolls to the first line.
func (e *Engine) ToTop() {
	e.ext.Y = 0
	e.updateFollow()
}

// ToBottom scrolls to the last page.
func (e *Engine) ToBottom() {
	e.ext.Y = e.ext.MaxY()
	e.updateFollow()
}

// EnsureVisible scrolls the minimum amount needed to bring line into view.
func (e *Engine) EnsureVisible(line int) {
	switch {
	case line < e.ext.Y:
		e.ext.Y = line
	case e.ext.ViewportHeight > 0 && line >= e.ext.Y+e.ext.ViewportHeight:
		e.ext.Y = line - e.ext.ViewportHeight + 1
	}
	e.clamp()
	e.updateFollow()
}

// Center scrolls so line sits in the middle of the viewport where possible.
func (e *Engine) Center(line int) {
	e.ext.Y = line - e.ext.ViewportHeight/2
	e.clamp()
	e.updateFollow()
}

// SetContent updates the content extent and re-clamps the offsets.
func (e *Engine) SetContent(height, width int) {
	e.ext.ContentHeight = max(0, height)
	e.ext.ContentWidth = max(0, width)
	e.settle()
}

// SetViewport updates the viewport extent and re-clamps the offsets.
func (e *Engine) SetViewport(height, width int) {
	e.ext.ViewportHeight = max(0, height)
	e.ext.ViewportWidth = max(0, width)
	e.settle()
}

// Reset returns the offsets to the origin.
func (e *Engine) Reset() {
	e.ext.X, e.ext.Y = 0, 0
	if e.canFollow {
		e.follow = true
		e.ext.Y = e.ext.MaxY()
	}
}

// Restore applies offsets from a previously captured extent. The current
// content and viewport sizes are kept, so the offsets are clamped to them.
func (e *Engine) Restore(prev Extent) {
	e.ext.X, e.ext.Y = prev.X, prev.Y
	e.clamp()
	e.updateFollow()
}

// HalfPageSize returns half of height rounded down, never less than one.
func HalfPageSize(height int) int {
	return max(1, height/2)
}

func (e *Engine) settle() {
	if e.follow {
		e.ext.Y = e.ext.MaxY()
	}
	e.clamp()
}

func (e *Engine) clamp() {
	e.ext.Y = min(max(e.ext.Y, 0), e.ext.MaxY())
	e.ext.X = min(max(e.ext.X, 0), e.ext.MaxX())
}

func (e *Engine) updateFollow() {
	if e.canFollow {
		e.follow = e.ext.AtBottom()
	}
}
