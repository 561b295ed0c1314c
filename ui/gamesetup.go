package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termversi/board"
	"termversi/engine"
	"termversi/engine/search"
)

// maxSetupDepth caps the depths offered in the form. A deeper depth from the
// config file is offered as an extra option.
const maxSetupDepth = 8

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	onStart  func(engine.GameConfig)
	onCancel func()
	onColors func()

	cfg engine.GameConfig
}

// NewGameSetup creates a new game setup form. Fields start from defaults;
// settings without a field (seed, weights) are passed through unchanged.
func NewGameSetup(defaults engine.GameConfig, onStart func(engine.GameConfig), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:  onStart,
		onCancel: onCancel,
		onColors: onColors,
		cfg:      defaults,
	}

	colors := []string{"Black (play first)", "White (play second)"}
	depthValues, depths := depthOptions(defaults.Search.Depth)

	form := tview.NewForm()

	initialColor := 0
	if defaults.PlayerColor == board.White {
		initialColor = 1
	}
	form.AddDropDown("Your Color", colors, initialColor, func(option string, index int) {
		setup.cfg.PlayerColor = board.Black
		if index == 1 {
			setup.cfg.PlayerColor = board.White
		}
	})

	initialDepth := 0
	for i, d := range depthValues {
		if d == setup.cfg.Search.Depth {
			initialDepth = i
		}
	}
	form.AddDropDown("Search Depth", depths, initialDepth, func(option string, index int) {
		setup.cfg.Search.Depth = depthValues[index]
	})

	form.AddCheckbox("Hints", defaults.Hints, func(checked bool) {
		setup.cfg.Hints = checked
	})

	form.AddButton("Start Game", func() {
		onStart(setup.cfg)
	})

	form.AddButton("Board Color", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(tcell.ColorDarkCyan)
	form.SetButtonTextColor(tcell.ColorWhite)

	// Create help text
	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(tcell.ColorGray)

	// Create flex layout with form and help text
	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// depthOptions lists the depths offered in the form and their labels. A
// current depth outside [search.MinDepth, maxSetupDepth] is appended so it
// is kept unless the user picks another one.
func depthOptions(current int) ([]int, []string) {
	var values []int
	var labels []string
	for d := search.MinDepth; d <= maxSetupDepth; d++ {
		values = append(values, d)
		labels = append(labels, strconv.Itoa(d))
	}
	labels[0] += " (fastest)"
	labels[len(labels)-1] += " (strongest)"
	if current < search.MinDepth || current > maxSetupDepth {
		values = append(values, current)
		labels = append(labels, strconv.Itoa(current)+" (from config)")
	}
	return values, labels
}

// Config returns the settings currently selected in the form.
func (s *GameSetupUI) Config() engine.GameConfig {
	return s.cfg
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
