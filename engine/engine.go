// Package engine defines the interface between the game front end and the
// game it drives.
package engine

import (
	"errors"
	"fmt"

	"termversi/board"
	"termversi/engine/search"
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrGameOver     = errors.New("game is over")
	ErrNotConnected = errors.New("engine not connected")
)

// MoveError reports a rejected move together with who tried it.
type MoveError struct {
	Move  board.Move
	Color board.Cell
	Err   error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Color, e.Move, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// GameEngine defines the interface for playing Reversi against the computer.
type GameEngine interface {
	// Connect initializes the game. If the computer plays first it starts
	// thinking right away.
	Connect() error

	// GetBoardState returns a copy of the current board.
	GetBoardState() board.Board

	// PlayMove plays the human's disc at m.
	// Returns an error if it is not the human's turn or the move is illegal.
	PlayMove(m board.Move) error

	// Hint returns the move the engine would play for the human in the
	// current position and turns hints on for the rest of the game.
	Hint() (board.Move, error)

	// IsMyTurn returns true if it's the human player's turn.
	IsMyTurn() bool

	// GetPlayerColor returns the human player's color.
	GetPlayerColor() board.Cell

	// OnMove registers a callback for when a move is played (by either player).
	// m is board.NoMove when color had to skip its turn.
	OnMove(func(m board.Move, color board.Cell, state board.Board))

	// OnGameEnd registers a callback for when the game ends.
	OnGameEnd(func(outcome string))

	// OnHint registers a callback for hints found at the start of the
	// human's turn while hints are on.
	OnHint(func(m board.Move))

	// Close shuts down the engine.
	Close()
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	PlayerColor board.Cell    // Human's color
	Hints       bool          // Search for a hint at the start of every human turn
	Seed        int64         // Tie-break seed, 0 seeds from the clock
	Search      search.Config // Cutoff depth and evaluation weights
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		PlayerColor: board.Black, // Human plays black
		Search:      search.DefaultConfig(),
	}
}

// Validate checks the player color and the search settings.
func (c GameConfig) Validate() error {
	if c.PlayerColor != board.Black && c.PlayerColor != board.White {
		return fmt.Errorf("player color must be Black or White, got %s", c.PlayerColor)
	}
	return c.Search.Validate()
}
