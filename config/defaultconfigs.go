package config

import "termversi/engine/search"

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCursorBackground:     true,
		DrawLastPlayedBackground: true,
		ShowLegalMoves:           true,
		Colors: ConfigColors{
			BoardColor:        28,
			BoardColorAlt:     22,
			BlackColor:        232,
			WhiteColor:        255,
			CursorColorBG:     4,
			LastPlayedColorBG: 94,
			HintColorBG:       136,
			LegalColor:        120,
		},
		Symbols: ConfigSymbols{
			BlackDisc:   '●',
			WhiteDisc:   '●',
			EmptySquare: ' ',
			LegalMove:   '·',
		},
	}

	defaults := search.DefaultConfig()
	DefaultConfig = Config{
		Theme: DefaultTheme,
		Engine: EngineConfig{
			Color:   "black",
			Depth:   defaults.Depth,
			Hints:   false,
			Weights: defaults.Weights,
		},
	}
}
