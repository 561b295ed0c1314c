package search

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"termversi/board"
)

// Stats counts the work done by one search.
type Stats struct {
	Nodes   int // positions visited
	Leaves  int // positions scored by Evaluate
	Cutoffs int // siblings skipped by pruning
}

// Result is the outcome of a search.
type Result struct {
	// Move is the chosen action, board.NoMove when the root is terminal.
	Move board.Move
	// Value is the minimax value of the root.
	Value float64
	// Ties lists every root action whose value equals Value, in move
	// generation order. Move is one of them.
	Ties []board.Move
	// Line is the continuation expected after Move, starting with Move.
	Line  []board.Move
	Stats Stats
}

// Searcher runs alpha-beta searches with a fixed configuration. A Searcher
// reuses its node arena between searches and is not safe for concurrent use.
type Searcher struct {
	cfg   Config
	rng   *rand.Rand
	log   *zap.SugaredLogger
	tree  tree
	me    board.Cell
	stats Stats
}

// NewSearcher creates a Searcher. rng drives the choice among equally good
// moves; pass a seeded source for reproducible play. A nil rng is seeded from
// the clock and a nil logger discards output.
func NewSearcher(cfg Config, rng *rand.Rand, log *zap.SugaredLogger) *Searcher {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Searcher{
		cfg: cfg,
		rng: rng,
		log: log,
	}
}

// Config returns the configuration the searcher was built with.
func (s *Searcher) Config() Config {
	return s.cfg
}

// Search finds the best move for me in b, me being the side to move at the
// root. The caller's board is never modified.
func (s *Searcher) Search(b board.Board, me board.Cell) Result {
	start := time.Now()
	b.SetSideToMove(me)
	s.me = me
	s.stats = Stats{}

	root := s.tree.reset(b)
	value := s.maxValue(root, math.Inf(-1), math.Inf(1), 0)

	res := Result{Move: board.NoMove, Value: value}
	var tied []int
	for i := range s.tree.nodes {
		if s.tree.nodes[i].parent == root && s.tree.nodes[i].value == value {
			tied = append(tied, i)
			res.Ties = append(res.Ties, s.tree.nodes[i].move)
		}
	}
	if len(tied) > 0 {
		pick := s.rng.Intn(len(tied))
		res.Move = res.Ties[pick]
		res.Line = s.tree.line(tied[pick])
	}
	res.Stats = s.stats

	s.log.Debugw("search finished",
		"color", me.String(),
		"depth", s.cfg.Depth,
		"move", res.Move.String(),
		"value", res.Value,
		"ties", len(res.Ties),
		"nodes", res.Stats.Nodes,
		"leaves", res.Stats.Leaves,
		"cutoffs", res.Stats.Cutoffs,
		"elapsed", time.Since(start),
	)
	return res
}

// Hint searches on behalf of the side to move in b.
func (s *Searcher) Hint(b board.Board) Result {
	return s.Search(b, b.SideToMove())
}

// terminal reports whether the search must stop at a node and evaluate it.
func (s *Searcher) terminal(state *board.Board, depth int) bool {
	if depth >= s.cfg.Depth {
		return true
	}
	return state.IsFull() || !state.HasMoves(state.SideToMove())
}

func (s *Searcher) leaf(n int, state board.Board) float64 {
	s.stats.Leaves++
	v := Evaluate(state, s.me, s.cfg.Weights)
	s.tree.nodes[n].value = v
	return v
}

// maxValue and minValue stop expanding a node once its running value falls
// strictly outside the window. A child whose value ties the best one is
// therefore always searched exactly. Cutting on equality would let a child
// return a bound equal to the root value and join the tie set unproven.
func (s *Searcher) maxValue(n int, alpha, beta float64, depth int) float64 {
	depth++
	s.stats.Nodes++
	state := s.tree.nodes[n].state
	if s.terminal(&state, depth) {
		return s.leaf(n, state)
	}

	v := math.Inf(-1)
	moves := state.LegalMoves(state.SideToMove())
	for i, m := range moves {
		child := s.tree.addChild(n, m)
		v = math.Max(v, s.minValue(child, alpha, beta, depth))
		if v > beta {
			s.stats.Cutoffs += len(moves) - i - 1
			break
		}
		alpha = math.Max(alpha, v)
	}
	s.tree.nodes[n].value = v
	return v
}

func (s *Searcher) minValue(n int, alpha, beta float64, depth int) float64 {
	depth++
	s.stats.Nodes++
	state := s.tree.nodes[n].state
	if s.terminal(&state, depth) {
		return s.leaf(n, state)
	}

	v := math.Inf(1)
	moves := state.LegalMoves(state.SideToMove())
	for i, m := range moves {
		child := s.tree.addChild(n, m)
		v = math.Min(v, s.maxValue(child, alpha, beta, depth))
		if v < alpha {
			s.stats.Cutoffs += len(moves) - i - 1
			break
		}
		beta = math.Min(beta, v)
	}
	s.tree.nodes[n].value = v
	return v
}
