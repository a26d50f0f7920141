package tutor

import "fmt"

// ErrSessionNotFound indicates the caller referenced an unknown session.
// A caller programming error, never a degraded path.
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session %s not found", e.ID)
}

// ErrInvalidTransition indicates an event arrived in a state that does
// not accept it, e.g. submit after Completed. No state is mutated.
type ErrInvalidTransition struct {
	State State
	Event string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("event %q not valid in state %s", e.Event, e.State)
}
