package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for unparsable numbers and empty room names.
	ErrInvalidInput = errors.New("invalid input")
	// ErrOutOfRange is returned when a delete position is outside [1, count].
	ErrOutOfRange = errors.New("position out of range")
)

// PositionError reports a rejected 1-based position.
type PositionError struct {
	Position int
	Count    int
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("position %d not in [1, %d]", e.Position, e.Count)
}

func (e *PositionError) Unwrap() error { return ErrOutOfRange }
