package blau

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMove      = errors.New("invalid move")
	ErrMalformedState   = errors.New("malformed state")
	ErrStructuralBounds = errors.New("move out of bounds")
	ErrPlayers          = fmt.Errorf("player count must be between %d and %d", MinPlayers, MaxPlayers)
)

// InvalidMoveError is returned when a move is not in the legal move
// set of the state it was applied to.
type InvalidMoveError struct {
	State  State
	Move   Move
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move %s (round %d, player %d to move, state %x): %s",
		e.Move, e.State.Round(), e.State.ToMove(), e.State.Hash(), e.Reason)
}

func (e *InvalidMoveError) Unwrap() error {
	return ErrInvalidMove
}

// MalformedStateError is returned when transported data does not
// describe a structurally valid State.
type MalformedStateError struct {
	Reason string
}

func (e *MalformedStateError) Error() string {
	return fmt.Sprintf("malformed state: %s", e.Reason)
}

func (e *MalformedStateError) Unwrap() error {
	return ErrMalformedState
}

func malformed(format string, args ...interface{}) error {
	return &MalformedStateError{Reason: fmt.Sprintf(format, args...)}
}

type StructuralBoundsError struct {
	Source, Color, Line int
}

func (e *StructuralBoundsError) Error() string {
	return fmt.Sprintf("move (%d, %d, %d) out of bounds: source must be 0-%d, color 0-%d, line 0-%d",
		e.Source, e.Color, e.Line, MaxFactories, NumColors-1, FloorLine)
}

func (e *StructuralBoundsError) Unwrap() error {
	return ErrStructuralBounds
}
