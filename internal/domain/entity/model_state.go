package entity

// ModelState is the lifecycle state of the process-wide model handle.
//
// Transitions: Unloaded -> Loading at startup, then Loading -> Ready or
// Loading -> Failed. Ready and Failed are terminal for the process lifetime.
type ModelState int32

const (
	ModelStateUnloaded ModelState = iota
	ModelStateLoading
	ModelStateReady
	ModelStateFailed
)

func (s ModelState) String() string {
	switch s {
	case ModelStateUnloaded:
		return "unloaded"
	case ModelStateLoading:
		return "loading"
	case ModelStateReady:
		return "ready"
	case ModelStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further transition can happen
func (s ModelState) IsTerminal() bool {
	return s == ModelStateReady || s == ModelStateFailed
}

// CanTransitionTo reports whether moving from s to next is allowed
func (s ModelState) CanTransitionTo(next ModelState) bool {
	switch s {
	case ModelStateUnloaded:
		return next == ModelStateLoading
	case ModelStateLoading:
		return next == ModelStateReady || next == ModelStateFailed
	default:
		return false
	}
}
