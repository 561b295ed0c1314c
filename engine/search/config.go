// Package search picks moves for the computer player with a depth-limited
// minimax search and alpha-beta pruning.
package search

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid search configuration")

// Bounds on the cutoff depth accepted by Validate. The root counts as the
// first ply, so MinDepth is the smallest depth that still looks at a move.
const (
	MinDepth = 2
	MaxDepth = 12
)

// Weights scales the three terms of the evaluation. Each term lies in
// [-weight, +weight].
type Weights struct {
	Score    float64 `json:"score" mapstructure:"score"`
	Corner   float64 `json:"corner" mapstructure:"corner"`
	Mobility float64 `json:"mobility" mapstructure:"mobility"`
}

// Config tunes a Searcher. Depth is the ply at which the search stops
// expanding and evaluates instead.
type Config struct {
	Depth   int     `json:"depth" mapstructure:"depth"`
	Weights Weights `json:"weights" mapstructure:"weights"`
}

// DefaultWeights returns the stock evaluation weights.
func DefaultWeights() Weights {
	return Weights{
		Score:    500,
		Corner:   100,
		Mobility: 300,
	}
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() Config {
	return Config{
		Depth:   4,
		Weights: DefaultWeights(),
	}
}

// Validate checks that the depth is in [MinDepth, MaxDepth] and no weight is
// negative.
func (c Config) Validate() error {
	if c.Depth < MinDepth || c.Depth > MaxDepth {
		return fmt.Errorf("%w: depth %d not in [%d,%d]", ErrInvalidConfig, c.Depth, MinDepth, MaxDepth)
	}
	w := c.Weights
	if w.Score < 0 || w.Corner < 0 || w.Mobility < 0 {
		return fmt.Errorf("%w: negative weight in %+v", ErrInvalidConfig, w)
	}
	return nil
}
