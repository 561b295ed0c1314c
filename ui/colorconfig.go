package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termversi/board"
	"termversi/config"
)

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	// Current selection
	selectedLight int
	selectedDark  int
	editingDark   bool // true = editing the dark squares, false = the light ones

	sample board.Board
}

type paletteEntry struct {
	code int
	name string
}

// Felt greens and other colors that keep both disc colors readable.
var lightSquareColors = []paletteEntry{
	{28, "Green"},
	{34, "Bright Green"},
	{35, "Sea Green"},
	{29, "Jade"},
	{30, "Teal"},
	{31, "Steel Teal"},
	{64, "Olive"},
	{65, "Moss"},
	{94, "Saddle Brown"},
	{130, "Dark Orange"},
	{136, "Dark Gold"},
	{24, "Dark Cyan"},
	{60, "Slate"},
	{240, "Gray"},
}

var darkSquareColors = []paletteEntry{
	{22, "Dark Green"},
	{23, "Deep Teal"},
	{58, "Dark Olive"},
	{52, "Dark Maroon"},
	{88, "Dark Red"},
	{17, "Navy Blue"},
	{54, "Purple"},
	{236, "Dark Gray"},
	{238, "Charcoal"},
	{28, "Green"},
}

// NewColorConfig creates a new color configuration screen. Confirming a
// light square color saves the config and calls onDone.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:           cfg,
		onDone:        onDone,
		selectedLight: cfg.Theme.Colors.BoardColor,
		selectedDark:  cfg.Theme.Colors.BoardColorAlt,
		sample:        previewPosition(),
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)

	cc.populateColorList()

	// Handle selection change (preview)
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		palette := cc.palette()
		if index < 0 || index >= len(palette) {
			return
		}
		if cc.editingDark {
			cc.selectedDark = palette[index].code
		} else {
			cc.selectedLight = palette[index].code
		}
	})

	// Handle selection confirm (apply)
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(cc.palette()) {
			return
		}
		if cc.editingDark {
			cc.cfg.Theme.Colors.BoardColorAlt = cc.selectedDark
			cc.save()
			// Switch back to light square selection
			cc.editingDark = false
			cc.populateColorList()
			return
		}
		cc.cfg.Theme.Colors.BoardColor = cc.selectedLight
		cc.save()
		onDone()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	// Layout: list on left, preview on right
	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

// previewPosition is the opening after c4, c3.
func previewPosition() board.Board {
	b := board.New()
	b.Apply(board.Move{Col: 3, Row: 4}, board.Black)
	b.Apply(board.Move{Col: 3, Row: 3}, board.White)
	return b
}

func (cc *ColorConfigUI) palette() []paletteEntry {
	if cc.editingDark {
		return darkSquareColors
	}
	return lightSquareColors
}

func (cc *ColorConfigUI) save() {
	if _, err := cc.cfg.Save(); err != nil {
		cc.colorList.SetTitle(fmt.Sprintf(" Save failed: %s ", err))
	}
}

// populateColorList fills the list with the palette for the squares being edited.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	current := cc.selectedLight
	if cc.editingDark {
		current = cc.selectedDark
		cc.colorList.SetTitle(" Dark Squares (Tab: light) ")
	} else {
		cc.colorList.SetTitle(" Light Squares (Tab: dark) ")
	}

	palette := cc.palette()
	for i, c := range palette {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range palette {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	light := tcell.PaletteColor(cc.selectedLight)
	dark := tcell.PaletteColor(cc.selectedDark)
	blackColor := tcell.PaletteColor(cc.cfg.Theme.Colors.BlackColor)
	whiteColor := tcell.PaletteColor(cc.cfg.Theme.Colors.WhiteColor)
	symbols := cc.cfg.Theme.Symbols

	startX := x + 2
	startY := y + 1

	if width < board.Size*2+4 || height < board.Size+4 {
		return x, y, width, height
	}

	for row := 1; row <= board.Size; row++ {
		for col := 1; col <= board.Size; col++ {
			bg := light
			if (col+row)%2 == 1 {
				bg = dark
			}
			style := tcell.StyleDefault.Background(bg)
			r := symbols.EmptySquare
			switch cc.sample.At(board.Move{Col: col, Row: row}) {
			case board.Black:
				r, style = symbols.BlackDisc, style.Foreground(blackColor)
			case board.White:
				r, style = symbols.WhiteDisc, style.Foreground(whiteColor)
			}
			drawDiscCell(screen, style, r, ' ', col-1, row-1, startX, startY)
		}
	}

	info := fmt.Sprintf("Light: %d  Dark: %d", cc.selectedLight, cc.selectedDark)
	for i, ch := range []rune(info) {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+board.Size+1, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between editing the light and the dark squares.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingDark = !cc.editingDark
	cc.populateColorList()
}
