package nfa

import (
	"fmt"
	"strings"
)

// ErrorKind names the structural problem that stopped an automaton from building.
type ErrorKind string

const (
	KindNoInitialState        ErrorKind = "no_initial_state"
	KindMultipleInitialStates ErrorKind = "multiple_initial_states"
	KindUnnamedState          ErrorKind = "unnamed_state"
	KindDuplicateState        ErrorKind = "duplicate_state"
)

// ValidationError reports a structural problem in a Definition.
// It matches the sentinel of the same Kind under errors.Is.
type ValidationError struct {
	Kind   ErrorKind
	States []string // offending states, when there are any
}

func (e *ValidationError) Error() string {
	var msg string
	switch e.Kind {
	case KindNoInitialState:
		msg = "no initial state"
	case KindMultipleInitialStates:
		msg = "multiple initial states"
	case KindUnnamedState:
		msg = "unnamed state"
	case KindDuplicateState:
		msg = "duplicate state"
	default:
		msg = string(e.Kind)
	}
	if len(e.States) == 0 {
		return msg
	}
	return fmt.Sprintf("%s: %s", msg, strings.Join(e.States, ", "))
}

// Is matches any ValidationError with the same Kind.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

var (
	ErrNoInitialState        = &ValidationError{Kind: KindNoInitialState}
	ErrMultipleInitialStates = &ValidationError{Kind: KindMultipleInitialStates}
	ErrUnnamedState          = &ValidationError{Kind: KindUnnamedState}
	ErrDuplicateState        = &ValidationError{Kind: KindDuplicateState}
)
