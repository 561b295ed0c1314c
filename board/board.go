package board

import (
	"fmt"
	"strings"
)

// Board is the complete state of a game. It is a plain value: assigning a
// Board copies the grid, which is how the search takes private snapshots.
type Board struct {
	// grid is indexed [col-1][row-1].
	grid   [Size][Size]Cell
	toMove Cell
	last   Move
	score  [2]int
}

// New returns the standard opening position with Black to move.
func New() Board {
	var b Board
	b.grid[3][3], b.grid[4][4] = White, White
	b.grid[3][4], b.grid[4][3] = Black, Black
	b.toMove = Black
	b.last = Move{4, 4}
	b.recount()
	return b
}

// IsOnBoard reports whether both coordinates lie in [1,8].
func (b *Board) IsOnBoard(m Move) bool {
	return m.Col >= 1 && m.Col <= Size && m.Row >= 1 && m.Row <= Size
}

// At returns the content of the square at m. It panics with an
// *OutOfBoundsError if m is not on the board.
func (b *Board) At(m Move) Cell {
	b.mustBeOnBoard(m)
	return b.grid[m.Col-1][m.Row-1]
}

// Set places c at m without applying any rule. It is meant for building
// positions; the score is kept in sync.
func (b *Board) Set(m Move, c Cell) {
	b.mustBeOnBoard(m)
	b.grid[m.Col-1][m.Row-1] = c
	b.recount()
}

// SetSideToMove overrides whose turn it is, for building positions.
func (b *Board) SetSideToMove(c Cell) {
	b.toMove = c
}

// SideToMove returns the colour whose turn it is.
func (b *Board) SideToMove() Cell {
	return b.toMove
}

// LastMove returns the most recently applied move, or NoMove after a skipped
// turn.
func (b *Board) LastMove() Move {
	return b.last
}

// Score returns the number of discs of the given colour.
func (b *Board) Score(c Cell) int {
	if c != Black && c != White {
		return 0
	}
	return b.score[c.index()]
}

// Empties returns the number of empty squares.
func (b *Board) Empties() int {
	return Size*Size - b.score[0] - b.score[1]
}

// IsFull reports whether no empty square remains.
func (b *Board) IsFull() bool {
	return b.Empties() == 0
}

// flipsInDir walks from m in direction d and returns the run of opposing
// discs closed by a disc of the mover's colour. A run interrupted by an empty
// square or by the edge of the board flips nothing.
func (b *Board) flipsInDir(m Move, d Move, color Cell, flips []Move) []Move {
	foe := Opposite(color)
	n := 0
	for step := m.add(d); b.IsOnBoard(step); step = step.add(d) {
		switch b.grid[step.Col-1][step.Row-1] {
		case foe:
			n++
		case color:
			for i, s := 1, m.add(d); i <= n; i, s = i+1, s.add(d) {
				flips = append(flips, s)
			}
			return flips
		default:
			return flips
		}
	}
	return flips
}

// Flips returns every disc that playing color at m would turn over. The
// result is empty when m is off the board or occupied.
func (b *Board) Flips(m Move, color Cell) []Move {
	if !b.IsOnBoard(m) || b.grid[m.Col-1][m.Row-1] != Empty {
		return nil
	}
	var flips []Move
	for _, d := range directions {
		flips = b.flipsInDir(m, d, color, flips)
	}
	return flips
}

// IsLegalMove reports whether color may play at m.
func (b *Board) IsLegalMove(m Move, color Cell) bool {
	if !b.IsOnBoard(m) || b.grid[m.Col-1][m.Row-1] != Empty {
		return false
	}
	for _, d := range directions {
		if len(b.flipsInDir(m, d, color, nil)) > 0 {
			return true
		}
	}
	return false
}

// LegalMoves returns the legal moves of color, scanning columns a..h and
// within each column rows 1..8.
func (b *Board) LegalMoves(color Cell) []Move {
	var moves []Move
	for col := 1; col <= Size; col++ {
		for row := 1; row <= Size; row++ {
			m := Move{col, row}
			if b.IsLegalMove(m, color) {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// HasMoves reports whether color has at least one legal move.
func (b *Board) HasMoves(color Cell) bool {
	for col := 1; col <= Size; col++ {
		for row := 1; row <= Size; row++ {
			if b.IsLegalMove(Move{col, row}, color) {
				return true
			}
		}
	}
	return false
}

// Apply plays color at m. An illegal move returns false and leaves the board
// untouched. A legal one places the disc, flips every captured run, hands the
// turn to the opponent and updates the last move and the score.
func (b *Board) Apply(m Move, color Cell) bool {
	flips := b.Flips(m, color)
	if len(flips) == 0 {
		return false
	}
	b.grid[m.Col-1][m.Row-1] = color
	for _, f := range flips {
		b.grid[f.Col-1][f.Row-1] = color
	}
	b.toMove = Opposite(color)
	b.last = m
	b.recount()
	return true
}

// Pass hands the turn to the opponent without placing a disc.
func (b *Board) Pass() {
	b.toMove = Opposite(b.toMove)
	b.last = NoMove
}

// GameOver reports whether the board is full or neither side can move.
func (b *Board) GameOver() bool {
	if b.IsFull() {
		return true
	}
	return !b.HasMoves(Black) && !b.HasMoves(White)
}

// Winner returns the colour holding more discs, or Empty on a draw.
func (b *Board) Winner() Cell {
	switch black, white := b.Score(Black), b.Score(White); {
	case black > white:
		return Black
	case white > black:
		return White
	}
	return Empty
}

// recount derives the score from the grid.
func (b *Board) recount() {
	b.score = [2]int{}
	for col := range b.grid {
		for _, c := range b.grid[col] {
			if c == Black || c == White {
				b.score[c.index()]++
			}
		}
	}
}

func (b *Board) mustBeOnBoard(m Move) {
	if !b.IsOnBoard(m) {
		panic(&OutOfBoundsError{Move: m})
	}
}

// String draws the board as an ascii grid, columns across and rows down.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for col := 1; col <= Size; col++ {
		fmt.Fprintf(&sb, " %c. ", 'a'+rune(col-1))
	}
	sb.WriteString("\n   " + strings.Repeat("+---", Size) + "+\n")
	for row := 1; row <= Size; row++ {
		fmt.Fprintf(&sb, "%d. ", row)
		for col := 1; col <= Size; col++ {
			fmt.Fprintf(&sb, "| %c ", b.grid[col-1][row-1].symbol())
		}
		sb.WriteString("|\n   " + strings.Repeat("+---", Size) + "+\n")
	}
	return sb.String()
}
