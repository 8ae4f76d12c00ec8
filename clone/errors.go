package clone

import "fmt"

// StateError indicates an operation was called in a session state that
// does not permit it, e.g. Upload before a successful Verify.
type StateError struct {
	// Op is the operation that was attempted
	Op string

	// State is the session state at the time
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s in state %s", e.Op, e.State)
}
