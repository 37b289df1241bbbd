package agent

import (
	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/rng"
)

type randomAgent struct {
	moves  *game.MoveSet
	source rng.Source
}

// NewRandomAgent returns an agent that plays a uniformly random legal move.
func NewRandomAgent(moves *game.MoveSet, source rng.Source) Agent {
	return randomAgent{moves: moves, source: source}
}

func (a randomAgent) FindMove(state *game.GameState) (int, metrics.SearchMetric) {
	valid := a.moves.Valid(state)
	if len(valid) == 0 {
		return NoMove, metrics.SearchMetric{}
	}
	return valid[a.source.Intn(len(valid))], metrics.SearchMetric{}
}
