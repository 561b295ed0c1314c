package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termversi/board"
	"termversi/engine"
	"termversi/engine/search"
)

func pressButton(t *testing.T, s *GameSetupUI, label string) {
	t.Helper()
	index := s.form.GetButtonIndex(label)
	if index < 0 {
		t.Fatalf("no button %q", label)
	}
	enter := tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
	s.form.GetButton(index).InputHandler()(enter, func(tview.Primitive) {})
}

func depthDropDown(t *testing.T, s *GameSetupUI) *tview.DropDown {
	t.Helper()
	dd, ok := s.form.GetFormItemByLabel("Search Depth").(*tview.DropDown)
	if !ok {
		t.Fatal("no Search Depth dropdown")
	}
	return dd
}

func TestSetupKeepsDeepConfiguredDepth(t *testing.T) {
	defaults := engine.GameConfig{
		PlayerColor: board.White,
		Seed:        5,
		Search:      search.Config{Depth: 10, Weights: search.DefaultWeights()},
	}
	if err := defaults.Validate(); err != nil {
		t.Fatalf("fixture invalid: %v", err)
	}

	var started []engine.GameConfig
	s := NewGameSetup(defaults, func(c engine.GameConfig) { started = append(started, c) }, func() {}, nil)

	dd := depthDropDown(t, s)
	if _, text := dd.GetCurrentOption(); text != "10 (from config)" {
		t.Errorf("selected depth option = %q", text)
	}

	pressButton(t, s, "Start Game")
	if len(started) != 1 || started[0] != defaults {
		t.Fatalf("Start Game used %+v, want %+v", started, defaults)
	}

	dd.SetCurrentOption(1)
	pressButton(t, s, "Start Game")
	if got := started[len(started)-1].Search.Depth; got != search.MinDepth+1 {
		t.Errorf("depth after choosing option 1 = %d, want %d", got, search.MinDepth+1)
	}
}

func TestDepthOptions(t *testing.T) {
	tests := []struct {
		current int
		count   int
	}{
		{search.DefaultConfig().Depth, maxSetupDepth - search.MinDepth + 1},
		{maxSetupDepth, maxSetupDepth - search.MinDepth + 1},
		{search.MaxDepth, maxSetupDepth - search.MinDepth + 2},
	}
	for _, tt := range tests {
		values, labels := depthOptions(tt.current)
		if len(values) != tt.count || len(labels) != tt.count {
			t.Errorf("depthOptions(%d) gave %d values, %d labels, want %d", tt.current, len(values), len(labels), tt.count)
		}
		found := false
		for _, v := range values {
			found = found || v == tt.current
		}
		if !found {
			t.Errorf("depthOptions(%d) does not offer the current depth: %v", tt.current, values)
		}
	}
}
