package game

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"splendor/rng"
)

func newTestState(t *testing.T, players int) *GameState {
	t.Helper()
	s, err := NewGameState(StandardCatalog(), players, rng.New(42))
	require.NoError(t, err)
	return s
}

// cloneState deep-copies s so later comparisons catch any shared write.
func cloneState(s *GameState) *GameState {
	c := &GameState{
		players: make([]Player, len(s.players)),
		current: s.current,
		board: Board{
			bank:   s.board.bank,
			nobles: slices.Clone(s.board.nobles),
		},
	}
	for i, p := range s.players {
		p.deck = slices.Clone(p.deck)
		p.reserve = slices.Clone(p.reserve)
		p.nobles = slices.Clone(p.nobles)
		c.players[i] = p
	}
	for t, r := range s.board.rows {
		c.board.rows[t] = Row{visible: slices.Clone(r.visible), hidden: slices.Clone(r.hidden)}
	}
	return c
}

// playRandom performs up to steps random valid moves, calling check on every
// transition.
func playRandom(s *GameState, seed uint64, steps int, check func(before, after *GameState, index int)) *GameState {
	moves := NewMoveSet()
	src := rng.New(seed)
	for i := 0; i < steps; i++ {
		valid := moves.Valid(s)
		if len(valid) == 0 || s.IsTerminal() {
			return s
		}
		index := valid[src.Intn(len(valid))]
		v, _ := moves[index].Validate(s)
		next := v.Perform()
		if check != nil {
			check(s, next, index)
		}
		s = next
	}
	return s
}

func card(tier Tier, production Resource, points uint8, cost Cost) Card {
	return Card{ID: -1, Tier: tier, Production: production, Points: points, Cost: cost}
}
