package session

import (
	"github.com/colonyops/docent/internal/core/input"
	"github.com/colonyops/docent/internal/core/layout"
)

// MouseKind classifies a mouse event.
type MouseKind int

const (
	MousePress MouseKind = iota
	MouseMotion
	MouseRelease
	MouseWheelUp
	MouseWheelDown
)

// wheelLines is how far one wheel notch scrolls.
const wheelLines = 3

// Mouse is a mouse event in terminal cell coordinates.
type Mouse struct {
	Kind MouseKind
	X, Y int
}

// HandleMouse applies a mouse event. Mouse input bypasses the key modes.
func (s *Session) HandleMouse(m Mouse) []Effect {
	switch m.Kind {
	case MousePress:
		return s.press(m.X, m.Y)
	case MouseMotion:
		return s.drag(m.X, m.Y)
	case MouseRelease:
		s.layout.EndDrag()
	case MouseWheelUp, MouseWheelDown:
		p, ok := s.router.PaneAt(m.X, m.Y)
		if !ok {
			return nil
		}
		n := wheelLines
		if m.Kind == MouseWheelUp {
			n = -n
		}
		return s.Apply(input.Scroll(p, n))
	}
	return nil
}

func (s *Session) press(x, y int) []Effect {
	hit := s.router.ResolveClick(x, y)
	if s.layout.BeginDrag(hit.Divider) {
		s.dragX, s.dragY = x, y
		return nil
	}
	if !hit.InPane {
		return nil
	}

	effects := s.Apply(input.SetFocus(hit.Pane))
	if hit.Pane == layout.PaneMinimap && hit.Row >= 0 {
		row := s.scrolls[layout.PaneMinimap].Offset() + hit.Row
		effects = append(effects, s.Apply(input.JumpToStep(row))...)
	}
	return effects
}

func (s *Session) drag(x, y int) []Effect {
	d := s.layout.Dragging()
	var delta int
	switch d {
	case layout.DividerVertical:
		delta = x - s.dragX
	case layout.DividerHorizontal:
		delta = y - s.dragY
	case layout.DividerNone:
		return nil
	}
	s.dragX, s.dragY = x, y
	if delta == 0 {
		return nil
	}
	return s.Apply(input.ResizeLayout(d, delta))
}
