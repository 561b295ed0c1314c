package search

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"termversi/board"
)

// minimax is a full-width search with the same cutoff rule as Searcher,
// used as the reference for the pruned search.
func minimax(b board.Board, me board.Cell, cfg Config, depth int, maximizing bool) float64 {
	depth++
	if depth >= cfg.Depth || b.IsFull() || !b.HasMoves(b.SideToMove()) {
		return Evaluate(b, me, cfg.Weights)
	}
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	for _, m := range b.LegalMoves(b.SideToMove()) {
		child := b
		child.Apply(m, child.SideToMove())
		v := minimax(child, me, cfg, depth, !maximizing)
		if maximizing {
			best = math.Max(best, v)
		} else {
			best = math.Min(best, v)
		}
	}
	return best
}

// optimalMoves returns the root moves whose full-width value equals the root
// value.
func optimalMoves(b board.Board, cfg Config) (float64, []board.Move) {
	me := b.SideToMove()
	values := map[board.Move]float64{}
	best := math.Inf(-1)
	moves := b.LegalMoves(me)
	for _, m := range moves {
		child := b
		child.Apply(m, me)
		values[m] = minimax(child, me, cfg, 1, false)
		best = math.Max(best, values[m])
	}
	var optimal []board.Move
	for _, m := range moves {
		if values[m] == best {
			optimal = append(optimal, m)
		}
	}
	return best, optimal
}

// positions plays a few random games and returns the positions met along the
// way.
func positions(seed int64, games, plies int) []board.Board {
	rng := rand.New(rand.NewSource(seed))
	var out []board.Board
	for g := 0; g < games; g++ {
		b := board.New()
		for p := 0; p < plies && !b.GameOver(); p++ {
			moves := b.LegalMoves(b.SideToMove())
			if len(moves) == 0 {
				b.Pass()
				continue
			}
			b.Apply(moves[rng.Intn(len(moves))], b.SideToMove())
			if b.HasMoves(b.SideToMove()) {
				out = append(out, b)
			}
		}
	}
	return out
}

func TestEvaluateOpening(t *testing.T) {
	b := board.New()
	if v := Evaluate(b, board.Black, DefaultWeights()); v != 0 {
		t.Fatalf("symmetric opening should evaluate to 0, got %v", v)
	}

	b.Apply(board.Move{Col: 3, Row: 4}, board.Black)
	// 4 discs to 1, no corners, 3 moves each.
	if v := Evaluate(b, board.Black, DefaultWeights()); v != 300 {
		t.Fatalf("expected 300 for Black, got %v", v)
	}
	if v := Evaluate(b, board.White, DefaultWeights()); v != -300 {
		t.Fatalf("expected -300 for White, got %v", v)
	}
}

func TestEvaluateCorners(t *testing.T) {
	var b board.Board
	b.Set(board.Move{Col: 1, Row: 1}, board.Black)
	b.Set(board.Move{Col: 8, Row: 8}, board.Black)
	b.Set(board.Move{Col: 1, Row: 8}, board.White)

	w := Weights{Corner: 100}
	want := 100 * ratio(2, 1)
	if v := Evaluate(b, board.Black, w); v != want {
		t.Fatalf("expected %v, got %v", want, v)
	}

	var empty board.Board
	if v := Evaluate(empty, board.Black, DefaultWeights()); v != 0 {
		t.Fatalf("empty board should evaluate to 0, got %v", v)
	}
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	for depth := MinDepth; depth <= 4; depth++ {
		cfg := Config{Depth: depth, Weights: DefaultWeights()}
		s := NewSearcher(cfg, rand.New(rand.NewSource(1)), nil)
		for i, b := range positions(int64(depth), 6, 20) {
			want, optimal := optimalMoves(b, cfg)
			got := s.Search(b, b.SideToMove())
			if got.Value != want {
				t.Fatalf("depth %d position %d: alpha-beta value %v, minimax %v\n%s", depth, i, got.Value, want, b.String())
			}
			if diff := cmp.Diff(optimal, got.Ties); diff != "" {
				t.Fatalf("depth %d position %d: tie set mismatch (-minimax +alpha-beta):\n%s", depth, i, diff)
			}
		}
	}
}

func TestSearchPicksFromTies(t *testing.T) {
	s := NewSearcher(DefaultConfig(), rand.New(rand.NewSource(3)), nil)
	for _, b := range positions(11, 4, 30) {
		res := s.Search(b, b.SideToMove())
		found := false
		for _, m := range res.Ties {
			if m == res.Move {
				found = true
			}
		}
		if !found {
			t.Fatalf("chosen move %v not in tie set %v", res.Move, res.Ties)
		}
		if !b.IsLegalMove(res.Move, b.SideToMove()) {
			t.Fatalf("chosen move %v is not legal", res.Move)
		}
		if len(res.Line) == 0 || res.Line[0] != res.Move {
			t.Fatalf("line %v should start with %v", res.Line, res.Move)
		}
	}
}

func TestSearchOpeningTies(t *testing.T) {
	// The four opening moves are symmetric, so every one of them ties.
	s := NewSearcher(Config{Depth: 3, Weights: DefaultWeights()}, rand.New(rand.NewSource(5)), nil)
	res := s.Search(board.New(), board.Black)
	want := []board.Move{{Col: 3, Row: 4}, {Col: 4, Row: 3}, {Col: 5, Row: 6}, {Col: 6, Row: 5}}
	if diff := cmp.Diff(want, res.Ties); diff != "" {
		t.Fatalf("tie set mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchReproducibleWithSeed(t *testing.T) {
	play := func(seed int64) []board.Move {
		s := NewSearcher(Config{Depth: 3, Weights: DefaultWeights()}, rand.New(rand.NewSource(seed)), nil)
		b := board.New()
		var moves []board.Move
		for i := 0; i < 12 && !b.GameOver(); i++ {
			if !b.HasMoves(b.SideToMove()) {
				b.Pass()
				continue
			}
			res := s.Search(b, b.SideToMove())
			b.Apply(res.Move, b.SideToMove())
			moves = append(moves, res.Move)
		}
		return moves
	}
	first, second := play(99), play(99)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("same seed gave different games (-first +second):\n%s", diff)
	}
}

func TestSearchDoesNotModifyBoard(t *testing.T) {
	b := board.New()
	before := b
	NewSearcher(DefaultConfig(), nil, nil).Search(b, board.Black)
	if b != before {
		t.Fatal("search modified the caller's board")
	}
}

func TestSearchTerminalRoot(t *testing.T) {
	var b board.Board
	b.Set(board.Move{Col: 1, Row: 1}, board.Black)
	b.Set(board.Move{Col: 8, Row: 8}, board.White)
	b.SetSideToMove(board.Black)

	s := NewSearcher(DefaultConfig(), nil, nil)
	res := s.Search(b, board.Black)
	if !res.Move.IsNone() {
		t.Fatalf("expected no move, got %v", res.Move)
	}
	if res.Ties != nil {
		t.Fatalf("expected no ties, got %v", res.Ties)
	}
	if want := Evaluate(b, board.Black, DefaultWeights()); res.Value != want {
		t.Fatalf("expected root evaluation %v, got %v", want, res.Value)
	}
}

func TestArenaReuse(t *testing.T) {
	b := positions(21, 1, 10)[0]
	s := NewSearcher(DefaultConfig(), rand.New(rand.NewSource(8)), nil)
	first := s.Search(b, b.SideToMove())
	if len(s.tree.nodes) != first.Stats.Nodes {
		t.Fatalf("arena holds %d nodes, search visited %d", len(s.tree.nodes), first.Stats.Nodes)
	}
	capacity := cap(s.tree.nodes)

	s.Search(board.New(), board.Black)
	second := s.Search(b, b.SideToMove())
	if second.Value != first.Value || second.Stats != first.Stats {
		t.Fatalf("reused arena changed the result: %+v vs %+v", first, second)
	}
	if cap(s.tree.nodes) < capacity {
		t.Fatal("arena should keep its capacity between searches")
	}
}

func TestHintUsesSideToMove(t *testing.T) {
	b := board.New()
	b.Apply(board.Move{Col: 3, Row: 4}, board.Black)
	res := NewSearcher(DefaultConfig(), nil, nil).Hint(b)
	if !b.IsLegalMove(res.Move, board.White) {
		t.Fatalf("hint %v is not a legal White move", res.Move)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"default", DefaultConfig(), true},
		{"too shallow", Config{Depth: 1, Weights: DefaultWeights()}, false},
		{"too deep", Config{Depth: MaxDepth + 1, Weights: DefaultWeights()}, false},
		{"negative weight", Config{Depth: 4, Weights: Weights{Score: -1}}, false},
		{"zero weights", Config{Depth: 4}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
