package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"termversi/board"
	"termversi/engine"
	"termversi/engine/search"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestReadPartialConfig(t *testing.T) {
	path := writeTempConfig(t, `{
  "engine": {
    "color": "white",
    "depth": 6,
    "weights": {"corner": 250}
  },
  "theme": {
    "show_legal_moves": false,
    "symbols": {"legal": 42}
  }
}`)

	c := DefaultConfig
	if err := readCfgFile(path, &c); err != nil {
		t.Fatalf("readCfgFile: %v", err)
	}

	if c.Engine.Color != "white" {
		t.Errorf("Color = %q, want %q", c.Engine.Color, "white")
	}
	if c.Engine.Depth != 6 {
		t.Errorf("Depth = %d, want 6", c.Engine.Depth)
	}
	want := search.Weights{Score: 500, Corner: 250, Mobility: 300}
	if diff := cmp.Diff(want, c.Engine.Weights); diff != "" {
		t.Errorf("Weights mismatch (-want +got):\n%s", diff)
	}
	if c.Theme.ShowLegalMoves {
		t.Error("ShowLegalMoves should be overridden to false")
	}
	if c.Theme.Symbols.LegalMove != '*' {
		t.Errorf("LegalMove = %q, want '*'", c.Theme.Symbols.LegalMove)
	}
	if c.Theme.Symbols.BlackDisc != DefaultTheme.Symbols.BlackDisc {
		t.Errorf("BlackDisc = %q, want default %q", c.Theme.Symbols.BlackDisc, DefaultTheme.Symbols.BlackDisc)
	}
	if c.Theme.Colors != DefaultTheme.Colors {
		t.Error("colors missing from the file should keep their defaults")
	}
}

func TestReadBrokenConfig(t *testing.T) {
	path := writeTempConfig(t, `{"engine": {"depth": `)
	c := DefaultConfig
	if err := readCfgFile(path, &c); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestSaveAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	saved := DefaultConfig
	saved.Engine.Color = "white"
	saved.Engine.Hints = true
	saved.Engine.Seed = 99
	saved.Theme.Colors.HintColorBG = 3

	if err := saveCfgFile(path, &saved, 0644); err != nil {
		t.Fatalf("saveCfgFile: %v", err)
	}
	var loaded Config
	if err := readCfgFile(path, &loaded); err != nil {
		t.Fatalf("readCfgFile: %v", err)
	}
	if diff := cmp.Diff(saved, loaded); diff != "" {
		t.Errorf("config changed on save (-saved +loaded):\n%s", diff)
	}
}

func TestSeedKeepsPrecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	saved := DefaultConfig
	saved.Engine.Seed = 9007199254740993

	if err := saveCfgFile(path, &saved, 0644); err != nil {
		t.Fatalf("saveCfgFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if !strings.Contains(string(data), `"seed": "9007199254740993"`) {
		t.Errorf("seed not written as a string:\n%s", data)
	}

	loaded := DefaultConfig
	if err := readCfgFile(path, &loaded); err != nil {
		t.Fatalf("readCfgFile: %v", err)
	}
	if loaded.Engine.Seed != saved.Engine.Seed {
		t.Errorf("Seed = %d, want %d", loaded.Engine.Seed, saved.Engine.Seed)
	}
}

func TestReadNumericSeed(t *testing.T) {
	path := writeTempConfig(t, `{"engine": {"seed": 42}}`)
	c := DefaultConfig
	if err := readCfgFile(path, &c); err != nil {
		t.Fatalf("readCfgFile: %v", err)
	}
	if c.Engine.Seed != 42 {
		t.Errorf("Seed = %d, want 42", c.Engine.Seed)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"control character", func(c *Config) { c.Theme.Symbols.EmptySquare = '\t' }},
		{"C1 control character", func(c *Config) { c.Theme.Symbols.WhiteDisc = 0x85 }},
		{"unknown color", func(c *Config) { c.Engine.Color = "red" }},
		{"depth too low", func(c *Config) { c.Engine.Depth = 1 }},
		{"depth too high", func(c *Config) { c.Engine.Depth = search.MaxDepth + 1 }},
		{"negative weight", func(c *Config) { c.Engine.Weights.Mobility = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig
			tt.modify(&c)
			err := c.Validate()
			var invalid *InvalidConfig
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *InvalidConfig, got %v", err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want board.Cell
		ok   bool
	}{
		{"black", board.Black, true},
		{"B", board.Black, true},
		{" White ", board.White, true},
		{"w", board.White, true},
		{"", board.Empty, false},
		{"grey", board.Empty, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v, ok=%v", tt.in, got, err, tt.want, tt.ok)
		}
	}
}

func TestGameConfig(t *testing.T) {
	c := DefaultConfig
	c.Engine.Color = "white"
	c.Engine.Depth = 5
	c.Engine.Hints = true
	c.Engine.Seed = 42

	want := engine.GameConfig{
		PlayerColor: board.White,
		Hints:       true,
		Seed:        42,
		Search:      search.Config{Depth: 5, Weights: search.DefaultWeights()},
	}
	got := c.GameConfig()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GameConfig mismatch (-want +got):\n%s", diff)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("GameConfig from a valid config should validate: %v", err)
	}
}
