// Package board implements the Reversi board: legal-move generation, the
// flipping rule and scoring.
package board

// Cell is the content of a single square. Black and White double as the
// colour of a player.
type Cell uint8

const (
	Empty Cell = iota
	Black
	White
)

// Size is the width and height of the board.
const Size = 8

// Opposite returns the other player's colour (Black<->White).
func Opposite(c Cell) Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

// Opposite returns the other player's colour.
func (c Cell) Opposite() Cell {
	return Opposite(c)
}

func (c Cell) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "Empty"
}

// symbol is the ascii representation used by Board.String.
func (c Cell) symbol() byte {
	switch c {
	case Black:
		return 'X'
	case White:
		return 'O'
	}
	return ' '
}

func (c Cell) index() int {
	return int(c) - 1
}
