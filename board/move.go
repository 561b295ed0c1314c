package board

import "fmt"

// Move is a (column, row) pair, both 1-indexed. Column 1 is 'a', row 1 is
// the top row.
type Move struct {
	Col int
	Row int
}

// NoMove marks the absence of a move: no last move yet, a skipped turn or a
// search without any action.
var NoMove = Move{}

// IsNone reports whether m is the NoMove sentinel.
func (m Move) IsNone() bool {
	return m == NoMove
}

// String renders the move as a column letter followed by the row, e.g. "c4".
func (m Move) String() string {
	if m.IsNone() {
		return "--"
	}
	if m.Col < 1 || m.Col > Size || m.Row < 1 || m.Row > Size {
		return fmt.Sprintf("(%d,%d)", m.Col, m.Row)
	}
	return fmt.Sprintf("%c%d", 'a'+rune(m.Col-1), m.Row)
}

// directions walked by the flip scan: W, N, E, S and the four diagonals.
var directions = [8]Move{
	{-1, 0}, {0, -1}, {1, 0}, {0, 1},
	{1, 1}, {-1, -1}, {-1, 1}, {1, -1},
}

func (m Move) add(d Move) Move {
	return Move{m.Col + d.Col, m.Row + d.Row}
}

// Corners lists the four corner squares.
var Corners = [4]Move{{1, 1}, {1, Size}, {Size, 1}, {Size, Size}}
