package mirror

import "fmt"

// State describes a node's standing in the mirror.
//
// Nodes move through this state machine:
//
//	             creation succeeds
//	StateUnmapped ─────────────────────► StateMapped
//	      │                                  ▲   │
//	      │ creation declined                │   │ node removed
//	      ▼                                  │   ▼
//	StatePending ────────────────────────────┘ StateUnmapped
//	      │        retry succeeds
//	      │
//	      └──────────────────────────────► StateUnmapped
//	               node removed
//
// Transitions are driven by creation attempts during traversal, retry
// attempts on change notifications, and removal events.
type State int

const (
	// StateUnmapped means the node has no counterparts and no retry armed.
	StateUnmapped State = iota
	// StatePending means creation was declined; the next change
	// notification triggers another attempt.
	StatePending
	// StateMapped means the node currently has live counterparts.
	StateMapped
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateUnmapped:
		return "unmapped"
	case StatePending:
		return "pending"
	case StateMapped:
		return "mapped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
