// Package display implements the display-buffer arbitration core of evsd:
// the state machine that owns one display surface, negotiates buffer
// hand-off with a single remote client, and presents frames through one of
// two backends (compositor proxy or direct hardware layer).
package display

import "fmt"

// State is the presentation lifecycle of the display. The display starts
// NOT_VISIBLE; the client normally requests VISIBLE_ON_NEXT_FRAME and then
// streams frames, which advances the state to VISIBLE. DEAD is terminal and
// entered only through ForceShutdown (ownership revocation); no transition
// ever leaves it.
type State int32

const (
	StateNotVisible State = iota
	StateVisibleOnNextFrame
	StateVisible
	StateDead

	numStates
)

// Valid reports whether s is a recognized state value. Requests outside
// the range are client protocol errors.
func (s State) Valid() bool {
	return s >= StateNotVisible && s < numStates
}

func (s State) String() string {
	switch s {
	case StateNotVisible:
		return "NOT_VISIBLE"
	case StateVisibleOnNextFrame:
		return "VISIBLE_ON_NEXT_FRAME"
	case StateVisible:
		return "VISIBLE"
	case StateDead:
		return "DEAD"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}
