package engine

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/rng"
	"splendor/searcher"
	"splendor/searcher/agent"
	"splendor/server"
)

type fixedAgent struct{ move int }

func (a fixedAgent) FindMove(*game.GameState) (int, metrics.SearchMetric) {
	return a.move, metrics.SearchMetric{}
}

func newState(t *testing.T, players int, seed uint64) *game.GameState {
	t.Helper()
	s, err := game.NewGameState(game.StandardCatalog(), players, rng.New(seed))
	require.NoError(t, err)
	return s
}

func requireConsistent(t *testing.T, state *game.GameState, winner int, gm metrics.GameMetric, mm []metrics.MoveMetric) {
	t.Helper()
	require.Equal(t, len(mm), gm.TotalMoves)
	require.Equal(t, winner, gm.Winner)
	require.Len(t, gm.Points, state.Players())
	for i, m := range mm {
		require.Equal(t, i, m.Step)
		require.Equal(t, i%state.Players(), m.Player, "Players should move in turn order")
	}
	if winner >= 0 {
		require.True(t, state.IsTerminal())
		require.Equal(t, state.MaxPoints(), gm.Points[winner])
		require.GreaterOrEqual(t, gm.Points[winner], game.WinningPoints)
	}
}

func TestLocal(t *testing.T) {
	moves := game.NewMoveSet()

	t.Run("random agents play to the end", func(t *testing.T) {
		for seed := uint64(0); seed < 4; seed++ {
			state := newState(t, 3, seed)
			agents := []agent.Agent{
				agent.NewRandomAgent(moves, rng.New(seed+10)),
				agent.NewRandomAgent(moves, rng.New(seed+20)),
				agent.NewRandomAgent(moves, rng.New(seed+30)),
			}
			e := NewLocal(state, moves, agents)
			winner, gm, mm, err := e.Run()

			require.NoError(t, err)
			requireConsistent(t, e.State, winner, gm, mm)
			require.True(t, e.State.IsTerminal() || len(moves.Valid(e.State)) == 0 || gm.TotalMoves == MaxMoves)
		}
	})

	t.Run("search agent against random agent", func(t *testing.T) {
		mcts := searcher.NewMCTS(moves, searcher.WithRollouts(5), searcher.WithSource(rng.New(1)), searcher.WithMetrics())
		e := NewLocal(newState(t, 2, 7), moves, []agent.Agent{
			agent.NewEvaluationAgent(mcts),
			agent.NewRandomAgent(moves, rng.New(2)),
		})
		winner, gm, mm, err := e.Run()

		require.NoError(t, err)
		requireConsistent(t, e.State, winner, gm, mm)
		for _, m := range mm {
			if m.Player == 0 {
				require.Equal(t, 5, m.Rollouts, "Search metrics should be recorded per move")
			}
		}
	})

	t.Run("search agent beats a random agent from either seat", func(t *testing.T) {
		if testing.Short() {
			t.Skip("plays full games with 300 rollouts per move")
		}
		wins, losses := 0, 0
		for seat := 0; seat < 2; seat++ {
			for seed := uint64(0); seed < 6; seed++ {
				mcts := searcher.NewMCTS(moves, searcher.WithRollouts(300), searcher.WithSource(rng.New(seed+100)))
				agents := []agent.Agent{
					agent.NewRandomAgent(moves, rng.New(seed+200)),
					agent.NewRandomAgent(moves, rng.New(seed+300)),
				}
				agents[seat] = agent.NewEvaluationAgent(mcts)

				winner, _, _, err := NewLocal(newState(t, 2, seed), moves, agents).Run()
				require.NoError(t, err)
				switch winner {
				case seat:
					wins++
				case 1 - seat:
					losses++
				}
			}
		}

		require.Positive(t, wins, "Search agent should finish some games as the winner")
		require.Greater(t, wins, losses, "Search agent should win more games than it loses")
	})

	t.Run("illegal choices fall back to the first legal move", func(t *testing.T) {
		state := newState(t, 2, 3)
		first := moves.Valid(state)[0]
		e := NewLocal(state, moves, []agent.Agent{fixedAgent{move: 44}, fixedAgent{move: -1}})
		_, _, mm, err := e.Run()

		require.NoError(t, err)
		require.NotEmpty(t, mm)
		require.Equal(t, first, mm[0].Move)
	})

	t.Run("panics when agents do not match players", func(t *testing.T) {
		require.Panics(t, func() {
			NewLocal(newState(t, 3, 1), moves, []agent.Agent{fixedAgent{}, fixedAgent{}})
		})
	})
}

func TestRemote(t *testing.T) {
	ts := httptest.NewServer(server.New(zerolog.New(io.Discard), 10))
	t.Cleanup(ts.Close)

	t.Run("plays through the analysis server", func(t *testing.T) {
		e, err := NewRemote(2, 5, []string{ts.URL, ts.URL}, 3)
		require.NoError(t, err)

		winner, gm, mm, err := e.Run()
		require.NoError(t, err)
		requireConsistent(t, e.State, winner, gm, mm)

		replayed, err := server.GameSpec{Players: 2, Seed: 5, Moves: playedMoves(mm)}.State(game.StandardCatalog(), game.NewMoveSet())
		require.NoError(t, err)
		require.Equal(t, e.State, replayed, "Remote game should be reproducible from its history")
	})

	t.Run("rejected requests surface as errors", func(t *testing.T) {
		e, err := NewRemote(2, 5, []string{ts.URL, ts.URL}, 11)
		require.NoError(t, err)

		_, _, _, err = e.Run()
		require.ErrorContains(t, err, "status 400")
	})

	t.Run("url count must match players", func(t *testing.T) {
		_, err := NewRemote(3, 5, []string{ts.URL}, 3)
		require.Error(t, err)
	})
}

func playedMoves(mm []metrics.MoveMetric) []int {
	out := make([]int, len(mm))
	for i, m := range mm {
		out[i] = m.Move
	}
	return out
}
