package input

import (
	"github.com/colonyops/docent/internal/core/layout"
	"github.com/colonyops/docent/internal/core/scroll"
)

// ActionType identifies the kind of state change an Action requests.
type ActionType int

const (
	ActionTypeScrollLines ActionType = iota
	ActionTypeScrollHalfPage
	ActionTypeScrollTop
	ActionTypeScrollBottom
	ActionTypeScrollColumns
	ActionTypeNextStep
	ActionTypePrevStep
	ActionTypeJumpToStep
	ActionTypeCompleteAndAdvance
	ActionTypeUndoComplete
	ActionTypeCycleFocus
	ActionTypeFocusDirection
	ActionTypeSetFocus
	ActionTypeEnterInsert
	ActionTypeExitInsert
	ActionTypeSubmitMessage
	ActionTypeInsertNewline
	ActionTypeOpenBranch
	ActionTypeCloseBranch
	ActionTypeRequestExplanation
	ActionTypeToggleZoom
	ActionTypeResizeLayout
	ActionTypeBeginSearch
	ActionTypeUpdateSearch
	ActionTypeCommitSearch
	ActionTypeCancelSearch
	ActionTypeClearSearch
	ActionTypeNextMatch
	ActionTypePrevMatch
	ActionTypeQuit
)

var actionNames = map[ActionType]string{
	ActionTypeScrollLines:        "scroll-lines",
	ActionTypeScrollHalfPage:     "scroll-half-page",
	ActionTypeScrollTop:          "scroll-top",
	ActionTypeScrollBottom:       "scroll-bottom",
	ActionTypeScrollColumns:      "scroll-columns",
	ActionTypeNextStep:           "next-step",
	ActionTypePrevStep:           "prev-step",
	ActionTypeJumpToStep:         "jump-to-step",
	ActionTypeCompleteAndAdvance: "complete-and-advance",
	ActionTypeUndoComplete:       "undo-complete",
	ActionTypeCycleFocus:         "cycle-focus",
	ActionTypeFocusDirection:     "focus-direction",
	ActionTypeSetFocus:           "set-focus",
	ActionTypeEnterInsert:        "enter-insert",
	ActionTypeExitInsert:         "exit-insert",
	ActionTypeSubmitMessage:      "submit-message",
	ActionTypeInsertNewline:      "insert-newline",
	ActionTypeOpenBranch:         "open-branch",
	ActionTypeCloseBranch:        "close-branch",
	ActionTypeRequestExplanation: "request-explanation",
	ActionTypeToggleZoom:         "toggle-zoom",
	ActionTypeResizeLayout:       "resize-layout",
	ActionTypeBeginSearch:        "begin-search",
	ActionTypeUpdateSearch:       "update-search",
	ActionTypeCommitSearch:       "commit-search",
	ActionTypeCancelSearch:       "cancel-search",
	ActionTypeClearSearch:        "clear-search",
	ActionTypeNextMatch:          "next-match",
	ActionTypePrevMatch:          "prev-match",
	ActionTypeQuit:               "quit",
}

func (t ActionType) String() string {
	if s, ok := actionNames[t]; ok {
		return s
	}
	return "unknown"
}

// Action is an abstract state change produced by the resolver or by mouse
// handling. Only the fields relevant to Type are set.
type Action struct {
	Type      ActionType
	Pane      layout.Pane
	Delta     int
	Dir       scroll.Direction
	Direction layout.Direction
	Divider   layout.Divider
	Index     int
	Text      string
	// Comment is the comment recorded when closing a branch; nil closes
	// without one.
	Comment *string
}

func (a Action) String() string { return a.Type.String() }

// ScrollLines scrolls pane p by n lines.
func ScrollLines(p layout.Pane, n int) Action {
	return Action{Type: ActionTypeScrollLines, Pane: p, Delta: n}
}

// Scroll is the mouse wheel form of ScrollLines.
func Scroll(p layout.Pane, n int) Action { return ScrollLines(p, n) }

// SetFocus focuses pane p.
func SetFocus(p layout.Pane) Action { return Action{Type: ActionTypeSetFocus, Pane: p} }

// JumpToStep selects step i.
func JumpToStep(i int) Action { return Action{Type: ActionTypeJumpToStep, Index: i} }

// ResizeLayout moves divider d by delta cells.
func ResizeLayout(d layout.Divider, delta int) Action {
	return Action{Type: ActionTypeResizeLayout, Divider: d, Delta: delta}
}

// CloseBranch closes the open branch, recording comment when non-nil.
func CloseBranch(comment *string) Action {
	return Action{Type: ActionTypeCloseBranch, Comment: comment}
}

func simple(t ActionType) Action { return Action{Type: t} }

func onPane(t ActionType, p layout.Pane) Action { return Action{Type: t, Pane: p} }
