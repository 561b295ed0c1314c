package search

import "termversi/board"

const noParent = -1

// node is one position of the game tree. Nodes live in the tree's arena and
// refer to each other by index.
type node struct {
	state    board.Board
	parent   int
	children []int
	move     board.Move
	value    float64
}

// tree is the arena holding every node of a single search. It is truncated,
// not freed, between searches.
type tree struct {
	nodes []node
}

func (t *tree) reset(root board.Board) int {
	t.nodes = t.nodes[:0]
	t.nodes = append(t.nodes, node{state: root, parent: noParent, move: board.NoMove})
	return 0
}

// addChild plays m on a copy of the parent's state and links the result
// under parent.
func (t *tree) addChild(parent int, m board.Move) int {
	state := t.nodes[parent].state
	state.Apply(m, state.SideToMove())
	t.nodes = append(t.nodes, node{state: state, parent: parent, move: m})
	id := len(t.nodes) - 1
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

// line follows the children whose value matches their parent's from n,
// giving the continuation the search expects after n.
func (t *tree) line(n int) []board.Move {
	moves := []board.Move{t.nodes[n].move}
	for {
		next := -1
		for _, c := range t.nodes[n].children {
			if t.nodes[c].value == t.nodes[n].value {
				next = c
				break
			}
		}
		if next < 0 {
			return moves
		}
		moves = append(moves, t.nodes[next].move)
		n = next
	}
}
