// Package layout computes pane rectangles from the terminal size and two
// adjustable split ratios.
package layout

import "fmt"

// Pane identifies one of the three walkthrough panes.
type Pane int

const (
	PaneMinimap Pane = iota
	PaneChat
	PaneDiff
)

// Panes lists every pane in focus cycle order.
var Panes = [...]Pane{PaneMinimap, PaneChat, PaneDiff}

func (p Pane) String() string {
	switch p {
	case PaneMinimap:
		return "minimap"
	case PaneChat:
		return "chat"
	case PaneDiff:
		return "diff"
	default:
		return fmt.Sprintf("pane(%d)", int(p))
	}
}

// Divider identifies a draggable split between panes.
type Divider int

const (
	DividerNone       Divider = iota
	DividerVertical           // between the left column and the diff pane
	DividerHorizontal         // between the minimap and the chat pane
)

func (d Divider) String() string {
	switch d {
	case DividerNone:
		return "none"
	case DividerVertical:
		return "vertical"
	case DividerHorizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("divider(%d)", int(d))
	}
}

// Direction is a geometric direction used for focus movement.
type Direction int

const (
	Left Direction = iota
	Down
	Up
	Right
)

const (
	// MinWidth and MinHeight are the smallest terminal sizes laid out
	// without degenerate panes. Smaller terminals are treated as this size.
	MinWidth  = 3
	MinHeight = 3

	// HelpBarHeight is the number of rows reserved for the help bar.
	HelpBarHeight = 1

	// DividerHitWidth is the width of the grab zone around the vertical divider.
	DividerHitWidth = 2

	// chromeRows and chromeCols are taken by a pane's border and title row.
	chromeRows = 3
	chromeCols = 2
)

// Rect is a rectangle of terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Viewport returns the rows and columns available for content once the
// pane border and title row are drawn. Both are at least one.
func (r Rect) Viewport() (height, width int) {
	return max(1, r.H-chromeRows), max(1, r.W-chromeCols)
}

// ContentRow converts a terminal row inside r to a 0-based content row.
// The result is negative for rows on the border or title.
func (r Rect) ContentRow(y int) int {
	return y - r.Y - (chromeRows - 1)
}

// Rects is the result of a layout pass.
type Rects struct {
	Minimap           Rect
	Chat              Rect
	Diff              Rect
	VerticalDivider   Rect
	HorizontalDivider Rect
	HelpBar           Rect

	// Content is the area above the help bar shared by all panes.
	Content Rect

	Zoomed   bool
	ZoomPane Pane
}

// For returns the rectangle of pane p. A zoomed pane fills the content
// area and the other panes are hidden.
func (r Rects) For(p Pane) Rect {
	if r.Zoomed {
		if p == r.ZoomPane {
			return r.Content
		}
		return Rect{}
	}
	switch p {
	case PaneMinimap:
		return r.Minimap
	case PaneChat:
		return r.Chat
	case PaneDiff:
		return r.Diff
	default:
		return Rect{}
	}
}

// PaneAt returns the visible pane under (x, y).
func (r Rects) PaneAt(x, y int) (Pane, bool) {
	for _, p := range Panes {
		if r.For(p).Contains(x, y) {
			return p, true
		}
	}
	return 0, false
}

// DividerAt returns the divider whose grab zone contains (x, y). Dividers
// cannot be grabbed while a pane is zoomed.
func (r Rects) DividerAt(x, y int) Divider {
	if r.Zoomed {
		return DividerNone
	}
	if r.VerticalDivider.Contains(x, y) {
		return DividerVertical
	}
	if r.HorizontalDivider.Contains(x, y) {
		return DividerHorizontal
	}
	return DividerNone
}
