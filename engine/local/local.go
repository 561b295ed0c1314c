// Package local runs a game against the built-in alpha-beta player.
package local

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"termversi/board"
	"termversi/engine"
	"termversi/engine/search"
)

var _ engine.GameEngine = (*LocalEngine)(nil)

// Status is the result of one Update call.
type Status int

const (
	// Waiting means the human is to move and nothing else is pending.
	Waiting Status = iota
	// HintReady means a hint was computed for the human's turn.
	HintReady
	// Moved means the computer played a move.
	Moved
	// Skipped means the side to move had no legal move and passed.
	Skipped
	// Over means the game has ended.
	Over
)

func (s Status) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case HintReady:
		return "hint"
	case Moved:
		return "moved"
	case Skipped:
		return "skipped"
	case Over:
		return "over"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// LocalEngine implements the GameEngine interface with an in-process
// searcher. It owns the live board.
type LocalEngine struct {
	id       uuid.UUID
	config   engine.GameConfig
	board    board.Board
	searcher *search.Searcher
	log      *zap.SugaredLogger

	connected bool
	closed    bool
	gameOver  bool
	outcome   string
	hints     bool
	ply       int // moves and skipped turns so far
	hintPly   int // ply the cached hint belongs to, -1 if none
	hint      board.Move
	searches  int

	moveCallback func(m board.Move, color board.Cell, state board.Board)
	endCallback  func(outcome string)
	hintCallback func(m board.Move)

	// trigger lets the computer respond after the human moved.
	trigger func()

	mu        sync.Mutex
	searchMu  sync.Mutex
	advanceMu sync.Mutex

	// notifyMu is held while a callback runs. Lock order: notifyMu, then mu.
	notifyMu sync.Mutex
}

// NewLocalEngine creates a new engine for a game with the given configuration.
func NewLocalEngine(cfg engine.GameConfig, log *zap.SugaredLogger) *LocalEngine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	id := uuid.New()
	log = log.With("game", id.String())

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	e := &LocalEngine{
		id:       id,
		config:   cfg,
		board:    board.New(),
		searcher: search.NewSearcher(cfg.Search, rng, log.Named("search")),
		log:      log,
		hints:    cfg.Hints,
		hintPly:  -1,
	}
	e.trigger = func() { go e.Advance() }
	return e
}

// ID returns the identifier used to tag this game's log lines.
func (e *LocalEngine) ID() uuid.UUID {
	return e.id
}

// Connect starts the game. The computer starts thinking immediately when it
// plays Black.
func (e *LocalEngine) Connect() error {
	if err := e.config.Validate(); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	e.mu.Lock()
	e.connected = true
	e.mu.Unlock()

	e.log.Infow("game started",
		"human", e.config.PlayerColor.String(),
		"depth", e.config.Search.Depth,
		"hints", e.config.Hints,
		"seed", e.config.Seed,
	)
	e.trigger()
	return nil
}

// Update advances the game by at most one step:
//   - a full board, or no legal move for either side, ends the game;
//   - a side without a legal move passes if its opponent can move;
//   - on the human's turn a hint is searched once per turn when hints are on;
//   - on the computer's turn a fresh search runs and its move is played.
func (e *LocalEngine) Update() Status {
	e.mu.Lock()

	if e.gameOver || e.closed {
		e.mu.Unlock()
		return Over
	}

	side := e.board.SideToMove()
	if e.board.IsFull() || (!e.board.HasMoves(side) && !e.board.HasMoves(side.Opposite())) {
		outcome := e.finishLocked()
		e.mu.Unlock()

		e.notify(func() {
			if e.endCallback != nil {
				e.endCallback(outcome)
			}
		})
		return Over
	}

	if !e.board.HasMoves(side) {
		e.board.Pass()
		e.ply++
		state := e.board
		e.mu.Unlock()

		e.log.Infow("turn skipped", "color", side.String())
		e.notify(func() {
			if e.moveCallback != nil {
				e.moveCallback(board.NoMove, side, state)
			}
		})
		return Skipped
	}

	human := side == e.config.PlayerColor
	if human && (!e.hints || e.hintPly == e.ply) {
		e.mu.Unlock()
		return Waiting
	}

	snapshot, ply := e.board, e.ply
	e.mu.Unlock()

	res := e.search(snapshot, side)

	e.mu.Lock()
	if e.ply != ply || e.gameOver || e.closed {
		// The position changed while searching.
		e.mu.Unlock()
		return Waiting
	}
	if human {
		e.hint, e.hintPly = res.Move, ply
		e.mu.Unlock()
		return HintReady
	}

	e.board.Apply(res.Move, side)
	e.ply++
	state := e.board
	e.mu.Unlock()

	e.log.Infow("computer moved",
		"color", side.String(),
		"move", res.Move.String(),
		"value", res.Value,
		"black", state.Score(board.Black),
		"white", state.Score(board.White),
	)
	e.notify(func() {
		if e.moveCallback != nil {
			e.moveCallback(res.Move, side, state)
		}
	})
	return Moved
}

// Advance calls Update until the human has to act or the game is over.
func (e *LocalEngine) Advance() {
	e.advanceMu.Lock()
	defer e.advanceMu.Unlock()

	for {
		switch e.Update() {
		case Moved, Skipped:
			continue
		case HintReady:
			e.mu.Lock()
			hint := e.hint
			e.mu.Unlock()
			e.notify(func() {
				if e.hintCallback != nil {
					e.hintCallback(hint)
				}
			})
			return
		default:
			return
		}
	}
}

// notify runs a callback unless the engine has been closed. Callbacks must
// not call Close.
func (e *LocalEngine) notify(fn func()) {
	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()

	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return
	}
	fn()
}

// search runs the searcher, which is not safe for concurrent use.
func (e *LocalEngine) search(b board.Board, side board.Cell) search.Result {
	e.searchMu.Lock()
	defer e.searchMu.Unlock()
	res := e.searcher.Search(b, side)

	e.mu.Lock()
	e.searches++
	e.mu.Unlock()
	return res
}

// finishLocked ends the game and returns the outcome.
// Must be called while holding the lock.
func (e *LocalEngine) finishLocked() string {
	e.gameOver = true
	e.outcome = outcome(&e.board)
	e.log.Infow("game over", "outcome", e.outcome, "plies", e.ply)
	return e.outcome
}

func outcome(b *board.Board) string {
	black, white := b.Score(board.Black), b.Score(board.White)
	switch b.Winner() {
	case board.Black:
		return fmt.Sprintf("Black wins %d-%d", black, white)
	case board.White:
		return fmt.Sprintf("White wins %d-%d", white, black)
	}
	return fmt.Sprintf("Draw %d-%d", black, white)
}

// GetBoardState returns a copy of the current board.
func (e *LocalEngine) GetBoardState() board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board
}

// PlayMove plays the human's disc at m and lets the computer reply.
func (e *LocalEngine) PlayMove(m board.Move) error {
	e.mu.Lock()

	if !e.connected || e.closed {
		e.mu.Unlock()
		return engine.ErrNotConnected
	}

	if e.gameOver {
		e.mu.Unlock()
		return engine.ErrGameOver
	}

	color := e.config.PlayerColor
	if e.board.SideToMove() != color {
		e.mu.Unlock()
		return engine.ErrNotYourTurn
	}

	if !e.board.Apply(m, color) {
		e.mu.Unlock()
		return &engine.MoveError{Move: m, Color: color, Err: engine.ErrIllegalMove}
	}
	e.ply++
	state := e.board
	e.mu.Unlock()

	e.log.Infow("human moved",
		"color", color.String(),
		"move", m.String(),
		"black", state.Score(board.Black),
		"white", state.Score(board.White),
	)
	e.notify(func() {
		if e.moveCallback != nil {
			e.moveCallback(m, color, state)
		}
	})

	e.trigger()
	return nil
}

// Hint returns the best move for the human in the current position and
// turns hints on for the following turns.
func (e *LocalEngine) Hint() (board.Move, error) {
	e.mu.Lock()

	if !e.connected || e.closed {
		e.mu.Unlock()
		return board.NoMove, engine.ErrNotConnected
	}
	if e.gameOver {
		e.mu.Unlock()
		return board.NoMove, engine.ErrGameOver
	}
	side := e.board.SideToMove()
	if side != e.config.PlayerColor {
		e.mu.Unlock()
		return board.NoMove, engine.ErrNotYourTurn
	}

	e.hints = true
	if e.hintPly == e.ply {
		hint := e.hint
		e.mu.Unlock()
		return hint, nil
	}
	snapshot, ply := e.board, e.ply
	e.mu.Unlock()

	res := e.search(snapshot, side)

	e.mu.Lock()
	if e.ply == ply {
		e.hint, e.hintPly = res.Move, ply
	}
	e.mu.Unlock()
	return res.Move, nil
}

// IsMyTurn returns true if it's the human player's turn.
func (e *LocalEngine) IsMyTurn() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.connected && !e.closed && !e.gameOver && e.board.SideToMove() == e.config.PlayerColor
}

// GetPlayerColor returns the human player's color.
func (e *LocalEngine) GetPlayerColor() board.Cell {
	return e.config.PlayerColor
}

// OnMove registers a callback for when a move is played or a turn skipped.
func (e *LocalEngine) OnMove(callback func(m board.Move, color board.Cell, state board.Board)) {
	e.moveCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (e *LocalEngine) OnGameEnd(callback func(outcome string)) {
	e.endCallback = callback
}

// OnHint registers a callback for hints computed at the start of the human's
// turn.
func (e *LocalEngine) OnHint(callback func(m board.Move)) {
	e.hintCallback = callback
}

// Close stops the game. A search in progress finishes but its result is
// dropped. Close waits for a running callback to return; no callback runs
// after Close returns.
func (e *LocalEngine) Close() {
	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.log.Infow("game closed", "plies", e.ply)
}
