package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rivo/tview"

	"termversi/board"
)

// GameInfoPanel displays the score and move history alongside the board.
type GameInfoPanel struct {
	box *tview.TextView

	mu      sync.Mutex
	state   board.Board
	history []MoveEntry
	human   board.Cell
	ready   bool
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetState updates the panel with the current board and move list.
func (p *GameInfoPanel) SetState(state board.Board, history []MoveEntry, human board.Cell) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = state
	p.history = history
	p.human = human
	p.ready = true
	p.box.SetText(p.render())
}

// render must be called while holding the lock.
func (p *GameInfoPanel) render() string {
	if !p.ready {
		return ""
	}
	var text strings.Builder

	text.WriteString("[white::b]Game Info[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")

	text.WriteString(fmt.Sprintf("[white]Black:[-:-:-] %2d%s\n", p.state.Score(board.Black), p.youMarker(board.Black)))
	text.WriteString(fmt.Sprintf("[white]White:[-:-:-] %2d%s\n", p.state.Score(board.White), p.youMarker(board.White)))
	text.WriteString(fmt.Sprintf("[white]Empty:[-:-:-] %2d\n", p.state.Empties()))
	if side := p.state.SideToMove(); side != board.Empty {
		text.WriteString(fmt.Sprintf("[white]To move:[-:-:-] %s\n", side))
	}

	if len(p.history) == 0 {
		return text.String()
	}

	text.WriteString("\n[white::b]Moves[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")

	// Show last N moves that fit
	maxVisible := 12
	start := 0
	if len(p.history) > maxVisible {
		start = len(p.history) - maxVisible
	}

	for i := start; i < len(p.history); i++ {
		m := p.history[i]

		colorStr := "[white]B[-]"
		if m.Color == board.White {
			colorStr = "[dimgray]W[-]"
		}

		marker := " "
		if i == len(p.history)-1 {
			marker = "[white]>[-]"
		}

		text.WriteString(fmt.Sprintf("%s[dimgray]%3d.[-] %s %s\n", marker, i+1, colorStr, m.Move))
	}

	if start > 0 {
		text.WriteString(fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start))
	}
	return text.String()
}

func (p *GameInfoPanel) youMarker(c board.Cell) string {
	if c == p.human {
		return " [dimgray](you)[-]"
	}
	return ""
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(b *BoardUI, hint *tview.TextView) *tview.Flex {
	mainFlex := tview.NewFlex()
	RebuildNormalLayout(mainFlex, b, hint)
	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form *tview.Flex, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)        // Left spacer
	centered.AddItem(form, maxWidth, 0, true) // Form with max width
	centered.AddItem(nil, 0, 1, false)        // Right spacer

	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, b *BoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	// Store panel reference in board for updates
	infoPanel := NewGameInfoPanel()
	b.setInfoPanel(infoPanel)

	// Create horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(b.Box, 0, 1, true)             // Board (flexible, takes remaining space)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false) // Info panel (fixed width)

	// Main vertical flex: board area on top, status box at bottom
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 6, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, b *BoardUI) {
	gameFrame.Clear()

	boardWidth := board.Size*2 + 4 // 2 chars per square + coordinates
	boardHeight := board.Size + 2  // + coordinates

	// Center board with flex spacers
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false) // top spacer

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)           // left spacer
	centerRow.AddItem(b.Box, boardWidth, 0, true) // board (fixed width)
	centerRow.AddItem(nil, 0, 1, false)           // right spacer

	gameFrame.AddItem(centerRow, boardHeight, 0, true) // center row (fixed height)
	gameFrame.AddItem(nil, 0, 1, false)                // bottom spacer
}
