package board

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is matched by every OutOfBoundsError.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// OutOfBoundsError is the panic value raised when a caller addresses a square
// outside the 8x8 grid. Such calls are programming errors: user input is
// validated before it reaches the board.
type OutOfBoundsError struct {
	Move Move
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("board: (%d,%d) is outside [1,%d]x[1,%d]", e.Move.Col, e.Move.Row, Size, Size)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
