package agent

import (
	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an agent that plays the root move with the best
// value for the player to move.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state *game.GameState) (int, metrics.SearchMetric) {
	report, metric := a.mcts.Search(state)
	best, ok := report.Best()
	if !ok {
		return NoMove, metric
	}
	return best.Move, metric
}
