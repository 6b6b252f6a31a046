// Package focus tracks which pane owns keyboard input and maps terminal
// coordinates to panes.
package focus

import "github.com/colonyops/docent/internal/core/layout"

// Hit is the result of resolving a mouse position.
type Hit struct {
	Pane layout.Pane
	// InPane is false when the position falls outside every visible pane.
	InPane bool
	// Divider is set when the position is inside a divider grab zone.
	Divider layout.Divider
	// Row is the 0-based content row under the position, negative on a
	// pane's border or title.
	Row int
}

// Router owns the active pane.
type Router struct {
	active layout.Pane
	layout *layout.Engine
}

// NewRouter returns a router that resolves clicks against l.
func NewRouter(l *layout.Engine, initial layout.Pane) *Router {
	return &Router{active: initial, layout: l}
}

// Active returns the pane owning keyboard focus.
func (r *Router) Active() layout.Pane { return r.active }

// SetActive focuses p. While a pane is zoomed the zoom moves to p so the
// focused pane is always visible.
func (r *Router) SetActive(p layout.Pane) {
	r.active = p
	r.followZoom()
}

func (r *Router) followZoom() {
	if z, ok := r.layout.Zoomed(); ok && z != r.active {
		r.layout.ToggleZoom(r.active)
	}
}

// AcceptsChat reports whether chat keystrokes may be delivered. Only the
// chat pane accepts them.
func (r *Router) AcceptsChat() bool { return r.active == layout.PaneChat }

// CycleForward rotates focus Minimap -> Chat -> Diff -> Minimap. Zoom
// follows the focus like it does for SetActive.
func (r *Router) CycleForward() layout.Pane {
	switch r.active {
	case layout.PaneMinimap:
		r.active = layout.PaneChat
	case layout.PaneChat:
		r.active = layout.PaneDiff
	case layout.PaneDiff:
		r.active = layout.PaneMinimap
	}
	r.followZoom()
	return r.active
}

// CycleBackward rotates focus in the opposite order.
func (r *Router) CycleBackward() layout.Pane {
	switch r.active {
	case layout.PaneMinimap:
		r.active = layout.PaneDiff
	case layout.PaneChat:
		r.active = layout.PaneMinimap
	case layout.PaneDiff:
		r.active = layout.PaneChat
	}
	r.followZoom()
	return r.active
}

// Move shifts focus to the neighbouring pane in direction d. The minimap
// sits above the chat pane in the left column and the diff pane fills the
// right column.
func (r *Router) Move(d layout.Direction) layout.Pane {
	switch d {
	case layout.Left:
		if r.active == layout.PaneDiff {
			r.active = layout.PaneChat
		}
	case layout.Right:
		r.active = layout.PaneDiff
	case layout.Up:
		if r.active == layout.PaneChat {
			r.active = layout.PaneMinimap
		}
	case layout.Down:
		if r.active == layout.PaneMinimap {
			r.active = layout.PaneChat
		}
	}
	r.followZoom()
	return r.active
}

// ResolveClick maps terminal coordinates to the divider or pane under
// them using the current frame's rectangles. Dividers win over panes
// because their grab zones overlap pane edges.
func (r *Router) ResolveClick(x, y int) Hit {
	rects := r.layout.Rects()

	if d := rects.DividerAt(x, y); d != layout.DividerNone {
		return Hit{Divider: d}
	}

	p, ok := rects.PaneAt(x, y)
	if !ok {
		return Hit{}
	}
	return Hit{Pane: p, InPane: true, Row: rects.For(p).ContentRow(y)}
}

// PaneAt returns the visible pane under (x, y) ignoring dividers.
func (r *Router) PaneAt(x, y int) (layout.Pane, bool) {
	return r.layout.Rects().PaneAt(x, y)
}
