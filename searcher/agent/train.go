package agent

import (
	"math"

	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/rng"
	"splendor/searcher"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	source      rng.Source
}

// NewTrainingAgent returns an agent for self-play that samples root moves in
// proportion to wins^(1/temperature), counting the rollouts each move won for
// the player to move.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, source rng.Source) Agent {
	if temperature <= 0 {
		temperature = 1.0
	}
	return trainingAgent{mcts: mcts, temperature: temperature, source: source}
}

func (a trainingAgent) FindMove(state *game.GameState) (int, metrics.SearchMetric) {
	report, metric := a.mcts.Search(state)
	if len(report.Children) == 0 {
		return NoMove, metric
	}
	wins := make([]float64, len(report.Children))
	for i, child := range report.Children {
		wins[i] = child.MoverWins()
	}
	policy := adjustTemperature(wins, a.temperature)
	return report.Children[sample(policy, a.source.Float64())].Move, metric
}

// adjustTemperature raises every weight to 1/temperature and normalises the
// result. All-zero weights become uniform.
func adjustTemperature(weights []float64, temperature float64) []float64 {
	exponent := 1.0 / temperature
	adjusted := make([]float64, len(weights))
	sum := 0.0
	for i, w := range weights {
		adjusted[i] = math.Pow(w, exponent)
		sum += adjusted[i]
	}
	for i := range adjusted {
		if sum == 0 {
			adjusted[i] = 1 / float64(len(adjusted))
		} else {
			adjusted[i] /= sum
		}
	}
	return adjusted
}

// sample returns the index whose cumulative probability first exceeds u.
func sample(policy []float64, u float64) int {
	cumulative := 0.0
	for i, p := range policy {
		cumulative += p
		if u < cumulative {
			return i
		}
	}
	return len(policy) - 1 // Rounding errors
}
