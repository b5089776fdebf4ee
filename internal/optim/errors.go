package optim

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrUnknownHyperparameter = errors.New("unknown hyperparameter")
	ErrInvalidHyperparameter = errors.New("invalid hyperparameter value")
	ErrIncompatibleState     = errors.New("layer carries state from another optimizer")
	ErrUnknownKind           = errors.New("unknown optimizer")
)

// HyperparameterError reports a rejected hyperparameter name or value.
type HyperparameterError struct {
	Kind  Kind    // Optimizer variant that rejected it
	Name  string  // Hyperparameter name as given by the caller
	Value float64 // Rejected value (zero for unknown names)
	Err   error   // ErrUnknownHyperparameter or ErrInvalidHyperparameter
}

// Error implements the error interface.
func (e *HyperparameterError) Error() string {
	if errors.Is(e.Err, ErrUnknownHyperparameter) {
		return fmt.Sprintf("%s: %v %q (accepted: %v)", e.Kind, e.Err, e.Name, e.Kind.hyperparameters())
	}
	return fmt.Sprintf("%s: %v: %s = %g", e.Kind, e.Err, e.Name, e.Value)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *HyperparameterError) Unwrap() error {
	return e.Err
}
