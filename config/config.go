package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"termversi/board"
	"termversi/engine"
	"termversi/engine/search"
)

var (
	cfgFile = "termversi/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor        int `json:"board" mapstructure:"board"`
	BoardColorAlt     int `json:"board_alt" mapstructure:"board_alt"`
	BlackColor        int `json:"black" mapstructure:"black"`
	WhiteColor        int `json:"white" mapstructure:"white"`
	CursorColorBG     int `json:"cursor_bg" mapstructure:"cursor_bg"`
	LastPlayedColorBG int `json:"last_played_bg" mapstructure:"last_played_bg"`
	HintColorBG       int `json:"hint_bg" mapstructure:"hint_bg"`
	LegalColor        int `json:"legal" mapstructure:"legal"`
}

type ConfigSymbols struct {
	BlackDisc   rune `json:"black" mapstructure:"black"`
	WhiteDisc   rune `json:"white" mapstructure:"white"`
	EmptySquare rune `json:"empty" mapstructure:"empty"`
	LegalMove   rune `json:"legal" mapstructure:"legal"`
}

type Theme struct {
	DrawCursorBackground     bool          `json:"draw_cursor_bg" mapstructure:"draw_cursor_bg"`
	DrawLastPlayedBackground bool          `json:"draw_last_played_bg" mapstructure:"draw_last_played_bg"`
	ShowLegalMoves           bool          `json:"show_legal_moves" mapstructure:"show_legal_moves"`
	Colors                   ConfigColors  `json:"colors" mapstructure:"colors"`
	Symbols                  ConfigSymbols `json:"symbols" mapstructure:"symbols"`
}

// EngineConfig holds the computer player's settings.
type EngineConfig struct {
	Color   string         `json:"color" mapstructure:"color"` // human's color: "black" or "white"
	Depth   int            `json:"depth" mapstructure:"depth"`
	Hints   bool           `json:"hints" mapstructure:"hints"`
	Seed    int64          `json:"seed,string" mapstructure:"seed"` // quoted so viper does not round it through float64
	Weights search.Weights `json:"weights" mapstructure:"weights"`
}

type Config struct {
	Theme  Theme        `json:"theme" mapstructure:"theme"`
	Engine EngineConfig `json:"engine" mapstructure:"engine"`
}

// InitConfig loads the user's config file, if any, over the defaults.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.BlackDisc, c.Theme.Symbols.WhiteDisc, c.Theme.Symbols.EmptySquare, c.Theme.Symbols.LegalMove} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if _, err := ParseColor(c.Engine.Color); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if err := c.searchConfig().Validate(); err != nil {
		return &InvalidConfig{err.Error()}
	}
	return nil
}

// ParseColor converts "black"/"b" or "white"/"w" to a player color.
func ParseColor(s string) (board.Cell, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black", "b":
		return board.Black, nil
	case "white", "w":
		return board.White, nil
	}
	return board.Empty, fmt.Errorf("unknown color %q, expected black or white", s)
}

func (c *Config) searchConfig() search.Config {
	return search.Config{Depth: c.Engine.Depth, Weights: c.Engine.Weights}
}

// GameConfig builds the settings for a new game. The config must have been
// validated.
func (c *Config) GameConfig() engine.GameConfig {
	color, err := ParseColor(c.Engine.Color)
	if err != nil {
		color = board.Black
	}
	return engine.GameConfig{
		PlayerColor: color,
		Hints:       c.Engine.Hints,
		Seed:        c.Engine.Seed,
		Search:      c.searchConfig(),
	}
}

// Save writes the config to the user's config directory and returns the path.
func (c *Config) Save() (string, error) {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", err
	}
	return absPath, saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

// readCfgFile decodes a JSON config file into a. Keys missing from the file
// keep the value already in a.
func readCfgFile(filePath string, a interface{}) error {
	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	if err := v.Unmarshal(a); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filePath, err)
	}
	return nil
}
