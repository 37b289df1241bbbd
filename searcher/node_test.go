package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"splendor/game"
	"splendor/rng"
)

// unaffordableCatalog deals cards nobody can ever build, so every game
// ends in a position without legal moves.
func unaffordableCatalog() *game.Catalog {
	c := &game.Catalog{}
	for tier := 0; tier < game.Tiers; tier++ {
		for i := 0; i < 6; i++ {
			c.Cards = append(c.Cards, game.Card{
				ID:         len(c.Cards),
				Tier:       game.Tier(tier),
				Production: game.Green,
				Points:     1,
				Cost:       game.Cost{7, 7, 7, 7, 7},
			})
		}
	}
	c.Nobles = []game.Noble{{ID: 0, Cost: game.Cost{9, 9, 9, 9, 9}}, {ID: 1, Cost: game.Cost{9, 9, 9, 9, 9}}}
	return c
}

func newGame(t *testing.T, catalog *game.Catalog) *game.GameState {
	t.Helper()
	s, err := game.NewGameState(catalog, 2, rng.New(1))
	require.NoError(t, err)
	return s
}

// deadEnd plays the first valid move until none is left.
func deadEnd(t *testing.T) *game.GameState {
	t.Helper()
	moves := game.NewMoveSet()
	s := newGame(t, unaffordableCatalog())
	for {
		valid := moves.Valid(s)
		if len(valid) == 0 {
			return s
		}
		next, err := game.Apply(s, moves[valid[0]])
		require.NoError(t, err)
		s = next
	}
}

func TestTreeExpand(t *testing.T) {
	moves := game.NewMoveSet()
	state := newGame(t, game.StandardCatalog())

	t.Run("expanding one move at a time", func(t *testing.T) {
		tr := newTree(moves, rng.New(3), Exploration)
		root := tr.add(noParent, -1, state)

		require.True(t, tr.expand(root), "Node with valid moves should expand")
		require.Len(t, tr.nodes[root].children, 1, "Expansion should add exactly one child")

		for tr.expand(root) {
		}

		n := tr.nodes[root]
		require.Equal(t, game.MoveCount, n.cursor, "Cursor should reach the end of the move order")
		require.Len(t, n.children, len(moves.Valid(state)), "Every valid move should be expanded once")

		seen := map[int]bool{}
		for _, id := range n.children {
			child := tr.nodes[id]
			require.Equal(t, root, child.parent)
			require.False(t, seen[child.move], "Move %d should be expanded once", child.move)
			seen[child.move] = true

			want, err := game.Apply(state, moves[child.move])
			require.NoError(t, err)
			require.Equal(t, want, child.state, "Child should hold the state after its move")
		}
	})

	t.Run("move order is a permutation of the catalog", func(t *testing.T) {
		tr := newTree(moves, rng.New(4), Exploration)
		root := tr.add(noParent, -1, state)

		all := make([]int, game.MoveCount)
		for i := range all {
			all[i] = i
		}
		require.ElementsMatch(t, all, tr.nodes[root].order)
	})

	t.Run("expanding all moves in catalog order", func(t *testing.T) {
		tr := newTree(moves, rng.New(5), Exploration)
		root := tr.add(noParent, -1, state)
		tr.expandAll(root)

		got := make([]int, 0)
		for _, id := range tr.nodes[root].children {
			got = append(got, tr.nodes[id].move)
		}
		require.Equal(t, moves.Valid(state), got)
		require.False(t, tr.expand(root), "Fully expanded root should not expand again")
	})

	t.Run("node without legal moves does not expand", func(t *testing.T) {
		tr := newTree(moves, rng.New(6), Exploration)
		root := tr.add(noParent, -1, deadEnd(t))

		require.False(t, tr.expand(root))
		require.Empty(t, tr.nodes[root].children)
	})
}

func TestTreePick(t *testing.T) {
	state := newGame(t, game.StandardCatalog())
	build := func(stats ...[2]float64) (*tree, NodeID, []NodeID) {
		tr := newTree(game.NewMoveSet(), rng.New(1), Exploration)
		root := tr.add(noParent, -1, state)
		var children []NodeID
		total := 0
		for i, s := range stats {
			id := tr.add(root, i, state)
			tr.nodes[id].visits = int(s[0])
			tr.nodes[id].score = s[1]
			total += int(s[0])
			children = append(children, id)
		}
		tr.nodes[root].visits = total
		return tr, root, children
	}

	t.Run("prefers the first unvisited child", func(t *testing.T) {
		tr, root, children := build([2]float64{3, 3}, [2]float64{0, 0}, [2]float64{0, 0})

		require.Equal(t, children[1], tr.pick(root), "Unvisited child should be picked before UCB1")
	})

	t.Run("picks the max UCB1 child once all are visited", func(t *testing.T) {
		tr, root, children := build([2]float64{5, 1}, [2]float64{5, 3}, [2]float64{5, -2})

		require.Equal(t, children[1], tr.pick(root), "Child with the best mean should win at equal visits")
	})

	t.Run("favours rarely visited children", func(t *testing.T) {
		tr, root, children := build([2]float64{50, 10}, [2]float64{2, 0})

		require.Equal(t, children[1], tr.pick(root), "Exploration term should dominate for a rarely visited child")
	})

	t.Run("ties go to the first maximum", func(t *testing.T) {
		tr, root, children := build([2]float64{4, 2}, [2]float64{4, 2}, [2]float64{4, 2})

		require.Equal(t, children[0], tr.pick(root))
		require.Equal(t, tr.pick(root), tr.pick(root), "Selection should be repeatable")
	})

	t.Run("panics without children", func(t *testing.T) {
		tr, root, _ := build()

		require.Panics(t, func() { tr.pick(root) })
	})
}

func TestTreeBackup(t *testing.T) {
	state := newGame(t, game.StandardCatalog())
	tr := newTree(game.NewMoveSet(), rng.New(1), Exploration)
	root := tr.add(noParent, -1, state)
	a := tr.add(root, 0, state)
	b := tr.add(a, 1, state)

	tr.backup(b, Win)
	tr.backup(b, Loss)
	tr.backup(a, Win)

	require.Equal(t, 2, tr.nodes[b].visits)
	require.Equal(t, 0.0, tr.nodes[b].score)
	require.Equal(t, 3, tr.nodes[a].visits)
	require.Equal(t, Win, tr.nodes[a].score, "Parent should receive negated outcomes")
	require.Equal(t, 3, tr.nodes[root].visits, "Root should count every backup")
	require.Equal(t, Loss, tr.nodes[root].score)
}

func TestTreeRollout(t *testing.T) {
	t.Run("dead end scores a loss up to the root", func(t *testing.T) {
		state := newGame(t, unaffordableCatalog())
		tr := newTree(game.NewMoveSet(), rng.New(1), Exploration)
		root := tr.add(noParent, -1, state)
		tr.nodes[root].cursor = game.MoveCount
		mid := tr.add(root, 0, state)
		tr.nodes[mid].cursor = game.MoveCount
		end := tr.add(mid, 0, deadEnd(t))

		leaf := tr.selectLeaf(root)
		require.Equal(t, end, leaf, "Selection should reach the unexpanded node")

		last, outcome, dead := tr.rollout(leaf)
		require.True(t, dead, "Rollout should report the dead end")
		require.Equal(t, end, last)
		require.Equal(t, Loss, outcome)

		tr.backup(last, outcome)
		require.Equal(t, Loss, tr.nodes[end].score)
		require.Equal(t, Win, tr.nodes[mid].score)
		require.Equal(t, Loss, tr.nodes[root].score)
		for _, id := range []NodeID{end, mid, root} {
			require.Equal(t, 1, tr.nodes[id].visits, "Every ancestor should be visited once")
		}
	})

	t.Run("rollout stops at the end of a round or a dead end", func(t *testing.T) {
		tr := newTree(game.NewMoveSet(), rng.New(2), Exploration)
		root := tr.add(noParent, -1, newGame(t, game.StandardCatalog()))

		last, outcome, dead := tr.rollout(root)

		state := tr.nodes[last].state
		if dead {
			require.Empty(t, game.NewMoveSet().Valid(state), "Dead end should have no legal moves")
			require.Equal(t, Loss, outcome)
		} else {
			require.True(t, state.IsTerminal(), "Rollout should end on a finished round")
			require.Equal(t, 0, state.Current())
			require.GreaterOrEqual(t, state.MaxPoints(), game.WinningPoints)
			require.Equal(t, outcome == Win, state.Player(0).Points() == state.MaxPoints())
		}

		depth := 0
		for id := last; id != root; id = tr.nodes[id].parent {
			depth++
		}
		require.Equal(t, len(tr.nodes)-1, depth, "Rollout should add one node per step")
	})
}
