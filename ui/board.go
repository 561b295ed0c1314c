// Package ui specifies custom controls for tview to assist in playing Reversi in the terminal.
package ui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termversi/board"
	"termversi/config"
	"termversi/engine"
)

// MoveEntry is one line of the move list. Move is board.NoMove for a
// skipped turn.
type MoveEntry struct {
	Color board.Cell
	Move  board.Move
}

type BoardUI struct {
	Box       *tview.Box
	hint      *tview.TextView
	cfg       *config.Config
	app       *tview.Application
	eng       engine.GameEngine
	styles    []tcell.Color

	// refreshMu keeps status and panel updates in the order their state was read.
	refreshMu sync.Mutex

	// mu guards everything below. Engine callbacks arrive on the engine's
	// goroutine while drawing happens on the application's.
	mu         sync.Mutex
	infoPanel  *GameInfoPanel
	focusMode  bool
	state      board.Board
	history    []MoveEntry
	finished   bool
	outcome    string
	sel        board.Move
	skipped    board.Cell // color that skipped the last turn
	suggestion board.Move
	errMsg     string
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *BoardUI) ToggleFocusMode() bool {
	g.mu.Lock()
	g.focusMode = !g.focusMode
	enabled := g.focusMode
	g.mu.Unlock()
	g.refreshHint()
	return enabled
}

// SetFocusMode sets focus mode to the given state.
func (g *BoardUI) SetFocusMode(enabled bool) {
	g.mu.Lock()
	g.focusMode = enabled
	g.mu.Unlock()
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *BoardUI) IsFocusMode() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.focusMode
}

// setInfoPanel replaces the panel that mirrors the game state.
func (g *BoardUI) setInfoPanel(p *GameInfoPanel) {
	g.mu.Lock()
	g.infoPanel = p
	g.mu.Unlock()
	g.refreshHint()
}

// SelectedTile returns the square under the cursor, or false if there is no
// cursor.
func (g *BoardUI) SelectedTile() (board.Move, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sel, !g.sel.IsNone()
}

func (g *BoardUI) MoveSelection(dc, dr int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finished {
		g.sel = board.NoMove
		return
	}
	if g.sel.IsNone() {
		g.sel = g.state.LastMove()
		if g.sel.IsNone() {
			g.sel = board.Move{Col: board.Size / 2, Row: board.Size / 2}
		}
		return
	}
	next := board.Move{Col: g.sel.Col + dc, Row: g.sel.Row + dr}
	if !g.state.IsOnBoard(next) {
		return
	}
	g.sel = next
}

func (g *BoardUI) ResetSelection() {
	g.mu.Lock()
	g.sel = board.NoMove
	g.mu.Unlock()
}

func NewBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *BoardUI {
	b := &BoardUI{
		Box:   tview.NewBox(),
		hint:  hint,
		app:   app,
		state: board.New(),
	}
	b.SetConfig(c)
	b.Box.SetDrawFunc(b.draw)
	return b
}

func (g *BoardUI) draw(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	theme := g.cfg.Theme
	human := board.Empty
	if g.eng != nil && !g.finished {
		human = g.eng.GetPlayerColor()
	}
	humanToMove := human != board.Empty && g.state.SideToMove() == human
	last := g.state.LastMove()

	for row := 1; row <= board.Size; row++ {
		for col := 1; col <= board.Size; col++ {
			m := board.Move{Col: col, Row: row}
			bg := g.styles[0]
			if (col+row)%2 == 1 {
				bg = g.styles[1]
			}
			fg := g.styles[7]
			drawRune := theme.Symbols.EmptySquare

			switch g.state.At(m) {
			case board.Black:
				drawRune, fg = theme.Symbols.BlackDisc, g.styles[2]
			case board.White:
				drawRune, fg = theme.Symbols.WhiteDisc, g.styles[3]
			default:
				if theme.ShowLegalMoves && humanToMove && g.state.IsLegalMove(m, human) {
					drawRune = theme.Symbols.LegalMove
				}
			}

			if humanToMove && m == g.suggestion {
				bg = g.styles[6]
			}
			if m == last && theme.DrawLastPlayedBackground {
				bg = g.styles[5]
			}
			cursor := ' '
			if m == g.sel {
				if theme.DrawCursorBackground {
					bg = g.styles[4]
				} else {
					cursor = '◂'
				}
			}
			drawDiscCell(screen, tcell.StyleDefault.Background(bg).Foreground(fg), drawRune, cursor, col-1, row-1, x+4, y)
		}
	}
	drawCoordinates(screen, x, y, g)
	// Add offset for coordinate display
	return x, y, board.Size*2 + 4, board.Size + 2
}

// ConnectEngine connects the board to a game engine and starts the game.
func (g *BoardUI) ConnectEngine(e engine.GameEngine) error {
	g.mu.Lock()
	g.eng = e
	g.state = e.GetBoardState()
	g.history = nil
	g.finished = false
	g.outcome = ""
	g.sel = board.NoMove
	g.skipped = board.Empty
	g.suggestion = board.NoMove
	g.errMsg = ""
	g.mu.Unlock()

	e.OnMove(func(m board.Move, color board.Cell, state board.Board) {
		g.mu.Lock()
		g.state = state
		g.history = append(g.history, MoveEntry{Color: color, Move: m})
		g.skipped = board.Empty
		if m.IsNone() {
			g.skipped = color
		}
		g.suggestion = board.NoMove
		g.errMsg = ""
		g.mu.Unlock()
		g.refreshHint()
		g.redraw()
	})

	e.OnHint(func(m board.Move) {
		g.mu.Lock()
		g.suggestion = m
		g.mu.Unlock()
		g.refreshHint()
		g.redraw()
	})

	e.OnGameEnd(func(outcome string) {
		state := e.GetBoardState()
		g.mu.Lock()
		g.finished = true
		g.outcome = outcome
		g.state = state
		g.sel = board.NoMove
		g.suggestion = board.NoMove
		g.mu.Unlock()
		g.refreshHint()
		g.redraw()
	})

	if err := e.Connect(); err != nil {
		return err
	}
	g.refreshHint()
	return nil
}

// redraw asks the application for a new frame. It spawns a goroutine to
// avoid a deadlock when called from the main thread.
func (g *BoardUI) redraw() {
	if g.app == nil {
		return
	}
	go g.app.QueueUpdateDraw(func() {})
}

// PlayMove plays the human's disc at m.
func (g *BoardUI) PlayMove(m board.Move) {
	g.mu.Lock()
	finished, eng := g.finished, g.eng
	g.mu.Unlock()
	if finished || eng == nil || !eng.IsMyTurn() {
		return
	}
	if err := eng.PlayMove(m); err != nil {
		g.mu.Lock()
		g.errMsg = err.Error()
		g.mu.Unlock()
		g.refreshHint()
	}
}

// RequestHint asks the engine for a hint without blocking the caller. Hints
// stay on for the rest of the game.
func (g *BoardUI) RequestHint() {
	g.mu.Lock()
	finished, eng := g.finished, g.eng
	g.mu.Unlock()
	if finished || eng == nil || !eng.IsMyTurn() {
		return
	}
	go func() {
		m, err := eng.Hint()
		g.mu.Lock()
		if err != nil {
			g.errMsg = err.Error()
		} else {
			g.suggestion = m
		}
		g.mu.Unlock()
		g.refreshHint()
		g.redraw()
	}()
}

// Close disconnects the engine.
func (g *BoardUI) Close() {
	g.mu.Lock()
	eng := g.eng
	g.mu.Unlock()
	if eng == nil {
		return
	}
	eng.Close()
}

func (g *BoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),        // 0
		tcell.PaletteColor(c.Theme.Colors.BoardColorAlt),     // 1
		tcell.PaletteColor(c.Theme.Colors.BlackColor),        // 2
		tcell.PaletteColor(c.Theme.Colors.WhiteColor),        // 3
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG),     // 4
		tcell.PaletteColor(c.Theme.Colors.LastPlayedColorBG), // 5
		tcell.PaletteColor(c.Theme.Colors.HintColorBG),       // 6
		tcell.PaletteColor(c.Theme.Colors.LegalColor),        // 7
	}
	g.cfg = c
}

func (g *BoardUI) refreshHint() {
	g.refreshMu.Lock()
	defer g.refreshMu.Unlock()

	g.mu.Lock()
	state := g.state
	history := append([]MoveEntry(nil), g.history...)
	finished, outcome := g.finished, g.outcome
	skipped, suggestion, errMsg := g.skipped, g.suggestion, g.errMsg
	eng := g.eng
	panel, focus := g.infoPanel, g.focusMode
	g.mu.Unlock()

	human := board.Empty
	if eng != nil {
		human = eng.GetPlayerColor()
	}
	if panel != nil {
		panel.SetState(state, history, human)
	}
	if g.hint == nil {
		return
	}

	// Focus mode shows minimal hint
	if focus {
		g.hint.SetText("  f to toggle")
		return
	}

	var statusLine, turnLine, controlsLine string

	if finished {
		statusLine = "───────── Game Complete ─────────\n\n"
		turnLine = fmt.Sprintf("  Result: %s\n", outcome)
		controlsLine = "\n  q · return to menu"
	} else {
		switch {
		case errMsg != "":
			statusLine = fmt.Sprintf("  ✗ %s\n\n", errMsg)
		case skipped == human && human != board.Empty:
			statusLine = "  ○ You had no move and skipped\n\n"
		case skipped != board.Empty:
			statusLine = "  ○ Opponent had no move and skipped\n\n"
		}

		if eng != nil && eng.IsMyTurn() {
			turnLine = fmt.Sprintf("  %s Your move (%s)", discGlyph(human), human)
			if !suggestion.IsNone() {
				turnLine += fmt.Sprintf("   hint: %s", suggestion)
			}
			turnLine += "\n"
		} else {
			turnLine = "  ◌ Thinking...\n"
		}

		controlsLine = `
  hjkl/↑↓←→ move   ⏎ play
         ? hint   f focus   q quit`
	}

	g.hint.SetText(fmt.Sprintf("%s%s%s", statusLine, turnLine, controlsLine))
}

// IsFinished returns true if the game is over.
func (g *BoardUI) IsFinished() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.finished
}

func discGlyph(c board.Cell) string {
	if c == board.White {
		return "○"
	}
	return "●"
}

// drawDiscCell draws a square 2 characters wide at column x, row y
// (both from 0).
func drawDiscCell(s tcell.Screen, c tcell.Style, r, right rune, x, y, l, t int) {
	s.SetContent(l+x*2, t+y, r, nil, c)
	s.SetContent(l+x*2+1, t+y, right, nil, c)
}

// drawCoordinates draws the column letters below the board and the row
// numbers to its left. Must be called while holding the lock.
func drawCoordinates(s tcell.Screen, x, y int, ui *BoardUI) {
	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(ui.styles[4])
	lpHighlight := tcell.StyleDefault.Background(ui.styles[5])
	last := ui.state.LastMove()

	for col := 1; col <= board.Size; col++ {
		_style := style
		if col == ui.sel.Col {
			_style = highlight
		} else if col == last.Col {
			_style = lpHighlight
		}
		s.SetContent(x+4+(col-1)*2, y+board.Size+1, rune('a'+col-1), nil, _style)
		s.SetContent(x+4+(col-1)*2+1, y+board.Size+1, ' ', nil, _style)
	}

	for row := 1; row <= board.Size; row++ {
		_style := style
		if row == ui.sel.Row {
			_style = highlight
		} else if row == last.Row {
			_style = lpHighlight
		}
		s.SetContent(x+1, y+row-1, ' ', nil, _style)
		s.SetContent(x+2, y+row-1, rune('0'+row), nil, _style)
	}
}
