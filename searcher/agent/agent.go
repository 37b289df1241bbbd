package agent

import (
	"splendor/experiments/metrics"
	"splendor/game"
)

// NoMove is returned by FindMove when the state has no legal move.
const NoMove = -1

type Agent interface {
	// FindMove returns a catalog move index and the search metrics (if collected)
	FindMove(state *game.GameState) (int, metrics.SearchMetric)
}
