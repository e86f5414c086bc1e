package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProyectoNotFound is returned when a proyecto id does not resolve.
	ErrProyectoNotFound = errors.New("proyecto not found")

	// ErrVersionConflict is returned by the repository when a concurrent
	// writer saved the aggregate first.
	ErrVersionConflict = errors.New("proyecto version conflict")
)

// InvalidStateError indicates a transition attempted from a state that does
// not permit it.
type InvalidStateError struct {
	Op       string
	Current  State
	Expected State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: invalid state %q, expected %q", e.Op, e.Current, e.Expected)
}

func newInvalidState(op string, current, expected State) *InvalidStateError {
	return &InvalidStateError{Op: op, Current: current, Expected: expected}
}

// ValidationError indicates a value object or entity invariant was violated.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func newValidation(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

// MaxAttemptsError indicates a resubmission was attempted after the Formato A
// attempt ceiling was reached.
type MaxAttemptsError struct {
	Attempt int
}

func (e *MaxAttemptsError) Error() string {
	return fmt.Sprintf("formato A attempt limit reached (attempt %d of %d)", e.Attempt, MaxFormatoAAttempts)
}

// UnauthorizedActorError indicates the caller is not the participant required
// for the action.
type UnauthorizedActorError struct {
	ActorID string
	Reason  string
}

func (e *UnauthorizedActorError) Error() string {
	return fmt.Sprintf("actor %s not allowed: %s", e.ActorID, e.Reason)
}
