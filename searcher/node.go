package searcher

import (
	"math"

	"splendor/game"
	"splendor/rng"
)

// NodeID addresses a node in its tree's arena.
type NodeID int32

const noParent NodeID = -1

type node struct {
	state    *game.GameState
	parent   NodeID
	move     int // Catalog index of the move that produced this node, -1 for the root
	children []NodeID
	order    []int // Random permutation of the move catalog
	cursor   int   // order[cursor:] has not been tried yet
	visits   int
	score    float64
}

// update records one outcome and returns the parent.
func (n *node) update(outcome float64) NodeID {
	n.visits++
	n.score += outcome
	return n.parent
}

func (n *node) expandable() bool {
	return n.cursor < len(n.order)
}

// tree owns every node of one search. Nodes are never removed, so a tree
// only grows until it is dropped.
type tree struct {
	nodes  []node
	moves  *game.MoveSet
	source rng.Source
	c      float64
}

func newTree(moves *game.MoveSet, source rng.Source, c float64) *tree {
	return &tree{moves: moves, source: source, c: c}
}

func (t *tree) add(parent NodeID, move int, state *game.GameState) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		state:  state,
		parent: parent,
		move:   move,
		order:  t.source.Perm(len(t.moves)),
	})
	if parent != noParent {
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}
	return id
}

// expand adds one child for the next valid untried move of id. It reports
// false when every remaining move has been tried.
func (t *tree) expand(id NodeID) bool {
	n := &t.nodes[id]
	for n.expandable() {
		index := n.order[n.cursor]
		n.cursor++
		if v, ok := t.moves[index].Validate(n.state); ok {
			t.add(id, index, v.Perform())
			return true
		}
	}
	return false
}

// expandAll adds a child for every valid move of id in catalog order.
func (t *tree) expandAll(id NodeID) {
	state := t.nodes[id].state
	for index, m := range t.moves {
		if v, ok := m.Validate(state); ok {
			t.add(id, index, v.Perform())
		}
	}
	t.nodes[id].cursor = len(t.nodes[id].order)
}

// pick selects a child of id: the first unvisited one, otherwise the first
// with the highest UCB1 value.
func (t *tree) pick(id NodeID) NodeID {
	n := &t.nodes[id]
	if len(n.children) == 0 {
		panic("node has no children")
	}

	for _, child := range n.children {
		if t.nodes[child].visits == 0 {
			return child
		}
	}

	policy := newUCB1(t.c, n.visits)
	best := noParent
	bestScore := math.Inf(-1)
	for _, child := range n.children {
		c := &t.nodes[child]
		if score := policy.score(c.score, c.visits); score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

// selectLeaf descends from id by pick through fully expanded nodes. It stops
// at the first node with untried moves, without children or with a finished
// game.
func (t *tree) selectLeaf(id NodeID) NodeID {
	for {
		n := &t.nodes[id]
		if n.expandable() || len(n.children) == 0 || n.state.IsTerminal() {
			return id
		}
		id = t.pick(id)
	}
}

// rollout walks down from id, expanding one move per node on the way, until
// a round ends with a winner or no move is possible. It returns the last
// node reached, its outcome for player 0 and whether it was a dead end.
func (t *tree) rollout(id NodeID) (NodeID, float64, bool) {
	for !t.nodes[id].state.IsTerminal() {
		if t.nodes[id].expandable() {
			t.expand(id)
		}
		if len(t.nodes[id].children) == 0 {
			return id, Loss, true
		}
		id = t.pick(id)
	}
	return id, outcome(t.nodes[id].state), false
}

func outcome(state *game.GameState) float64 {
	if state.Player(0).Points() == state.MaxPoints() {
		return Win
	}
	return Loss
}

// backup walks from id to the root, flipping the sign of the outcome at
// every level.
func (t *tree) backup(id NodeID, outcome float64) {
	for id != noParent {
		id = t.nodes[id].update(outcome)
		outcome = -outcome
	}
}
