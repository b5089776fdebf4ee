package tensor

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrInvalidLabel      = errors.New("invalid label")
)

// ShapeError describes an operation whose operands have incompatible shapes.
type ShapeError struct {
	Op      string // Operation that rejected the operands (e.g., "dense.forward")
	Want    Shape  // Expected shape; a -1 entry means "any"
	Got     Shape  // Shape that was supplied
	Details string // Optional free-form context
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	msg := fmt.Sprintf("%s: %v: want %v, got %v", e.Op, ErrDimensionMismatch, e.Want, e.Got)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

// Unwrap lets errors.Is match ErrDimensionMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrDimensionMismatch
}

// Mismatch builds a ShapeError for op.
func Mismatch(op string, want, got Shape) error {
	return &ShapeError{Op: op, Want: want.Clone(), Got: got.Clone()}
}

// LabelError reports a malformed sparse or one-hot label.
type LabelError struct {
	Row     int
	Details string
}

// Error implements the error interface.
func (e *LabelError) Error() string {
	return fmt.Sprintf("%v at row %d: %s", ErrInvalidLabel, e.Row, e.Details)
}

// Unwrap lets errors.Is match ErrInvalidLabel.
func (e *LabelError) Unwrap() error {
	return ErrInvalidLabel
}
