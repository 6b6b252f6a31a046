package layout

import (
	"errors"
	"fmt"
	"math"
)

// Bounds is an inclusive range a split ratio must stay within.
type Bounds struct {
	Min float64
	Max float64
}

// Clamp limits v to the bounds.
func (b Bounds) Clamp(v float64) float64 {
	return math.Min(math.Max(v, b.Min), b.Max)
}

// Validate checks the bounds lie inside (0, 1) and are ordered.
func (b Bounds) Validate() error {
	if b.Min <= 0 || b.Max >= 1 || b.Min > b.Max {
		return fmt.Errorf("bounds [%.2f, %.2f]: %w", b.Min, b.Max, ErrInvalidBounds)
	}
	return nil
}

// ErrInvalidBounds is returned for ratio bounds outside (0, 1) or out of order.
var ErrInvalidBounds = errors.New("invalid ratio bounds")

// Ratios are the two split fractions of the layout.
type Ratios struct {
	// Vertical is the share of the width given to the left column.
	Vertical float64
	// Horizontal is the share of the left column height given to the minimap.
	Horizontal float64
}

// Config holds the initial ratios and their bounds.
type Config struct {
	Ratios           Ratios
	VerticalBounds   Bounds
	HorizontalBounds Bounds
}

// DefaultConfig returns the default split: an even left/right split with
// the minimap taking 40% of the left column.
func DefaultConfig() Config {
	return Config{
		Ratios:           Ratios{Vertical: 0.5, Horizontal: 0.4},
		VerticalBounds:   Bounds{Min: 0.20, Max: 0.80},
		HorizontalBounds: Bounds{Min: 0.15, Max: 0.85},
	}
}

// Engine turns a terminal size and the split ratios into pane rectangles.
type Engine struct {
	cfg    Config
	ratios Ratios

	width  int
	height int
	rects  Rects

	dragging Divider

	zoomed   bool
	zoomPane Pane
}

// New returns an engine using cfg. Initial ratios are clamped to their bounds.
func New(cfg Config) *Engine {
	e := &Engine{cfg: cfg}
	e.ratios = Ratios{
		Vertical:   cfg.VerticalBounds.Clamp(cfg.Ratios.Vertical),
		Horizontal: cfg.HorizontalBounds.Clamp(cfg.Ratios.Horizontal),
	}
	e.Resize(MinWidth, MinHeight)
	return e
}

// Ratios returns the current split ratios.
func (e *Engine) Ratios() Ratios { return e.ratios }

// Rects returns the rectangles of the last layout pass.
func (e *Engine) Rects() Rects { return e.rects }

// Size returns the terminal size last laid out.
func (e *Engine) Size() (width, height int) { return e.width, e.height }

// Resize recomputes the rectangles for a new terminal size. Ratios are
// resolution independent and are not changed.
func (e *Engine) Resize(width, height int) Rects {
	e.width = max(width, MinWidth)
	e.height = max(height, MinHeight)
	e.rects = e.compute()
	return e.rects
}

// Dragging returns the divider being dragged, or DividerNone.
func (e *Engine) Dragging() Divider { return e.dragging }

// BeginDrag starts dragging d. It reports false when d is DividerNone.
func (e *Engine) BeginDrag(d Divider) bool {
	if d == DividerNone {
		return false
	}
	e.dragging = d
	return true
}

// UpdateDrag moves the dragged divider by delta cells. Movement past a
// ratio bound stops at the bound.
func (e *Engine) UpdateDrag(delta int) {
	e.Nudge(e.dragging, delta)
}

// EndDrag stops dragging.
func (e *Engine) EndDrag() { e.dragging = DividerNone }

// Nudge moves divider d by delta cells, clamped to the ratio bounds.
func (e *Engine) Nudge(d Divider, delta int) {
	switch d {
	case DividerVertical:
		e.ratios.Vertical = e.cfg.VerticalBounds.Clamp(e.ratios.Vertical + float64(delta)/float64(e.width))
	case DividerHorizontal:
		e.ratios.Horizontal = e.cfg.HorizontalBounds.Clamp(e.ratios.Horizontal + float64(delta)/float64(e.contentHeight()))
	case DividerNone:
		return
	}
	e.rects = e.compute()
}

// ToggleZoom zooms p to fill the content area, or restores the split when
// p is already zoomed. Zooming another pane switches the zoom to it.
func (e *Engine) ToggleZoom(p Pane) {
	if e.zoomed && e.zoomPane == p {
		e.zoomed = false
	} else {
		e.zoomed = true
		e.zoomPane = p
	}
	e.rects = e.compute()
}

// Zoomed returns the zoomed pane, if any.
func (e *Engine) Zoomed() (Pane, bool) { return e.zoomPane, e.zoomed }

func (e *Engine) contentHeight() int {
	return max(e.height-HelpBarHeight, 2)
}

func (e *Engine) compute() Rects {
	w, h := e.width, e.contentHeight()

	// Every pane keeps at least one cell whatever the ratio says.
	leftW := clampInt(int(math.Round(float64(w)*e.ratios.Vertical)), 1, w-1)
	minimapH := clampInt(int(math.Round(float64(h)*e.ratios.Horizontal)), 1, h-1)

	return Rects{
		Minimap: Rect{X: 0, Y: 0, W: leftW, H: minimapH},
		Chat:    Rect{X: 0, Y: minimapH, W: leftW, H: h - minimapH},
		Diff:    Rect{X: leftW, Y: 0, W: w - leftW, H: h},

		VerticalDivider:   Rect{X: leftW - 1, Y: 0, W: DividerHitWidth, H: h},
		HorizontalDivider: Rect{X: 0, Y: minimapH - 1, W: leftW, H: 2},
		HelpBar:           Rect{X: 0, Y: h, W: w, H: HelpBarHeight},
		Content:           Rect{X: 0, Y: 0, W: w, H: h},

		Zoomed:   e.zoomed,
		ZoomPane: e.zoomPane,
	}
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
