package nn

import (
	"errors"
	"fmt"
)

// ErrUnsetState is returned when a buffer is read, or a backward pass is
// requested, before the call that computes it.
var ErrUnsetState = errors.New("state not computed")

// StateError names the component and buffer that were read too early.
type StateError struct {
	Component string // e.g. "dense", "softmax", "categorical_cross_entropy"
	Slot      string // e.g. "inputs", "dweights"
}

// Error implements the error interface.
func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s %v (call %s first)", e.Component, e.Slot, ErrUnsetState, e.prerequisite())
}

// Unwrap lets errors.Is match ErrUnsetState.
func (e *StateError) Unwrap() error {
	return ErrUnsetState
}

func (e *StateError) prerequisite() string {
	switch e.Slot {
	case "dweights", "dbias", "dinputs":
		return "Backward"
	default:
		return "Forward"
	}
}
