package engine

import (
	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/searcher/agent"
)

// Local plays a game between in-process agents, one per seat.
type Local struct {
	State  *game.GameState
	moves  *game.MoveSet
	agents []agent.Agent
}

func NewLocal(state *game.GameState, moves *game.MoveSet, agents []agent.Agent) *Local {
	if len(agents) != state.Players() {
		panic("number of players does not match number of agents")
	}
	return &Local{State: state, moves: moves, agents: agents}
}

func (e *Local) Run() (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	final, winner, gameMetric, moveMetrics, err := play(e.State, e.moves, func(state *game.GameState, _ []int) (int, metrics.SearchMetric, error) {
		index, metric := e.agents[state.Current()].FindMove(state)
		return index, metric, nil
	})
	e.State = final
	return winner, gameMetric, moveMetrics, err
}
