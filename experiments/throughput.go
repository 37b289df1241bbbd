package experiments

import (
	"github.com/rs/zerolog/log"

	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/rng"
	"splendor/searcher"
)

// RunThroughput times one search per rollout budget from the same opening
// position and writes the rates under root.
func RunThroughput(root string, players int, budgets []int, seed uint64) ([]metrics.ThroughputRecord, error) {
	state, err := game.NewGameState(game.StandardCatalog(), players, rng.New(seed))
	if err != nil {
		return nil, err
	}
	moves := game.NewMoveSet()

	log.Info().Msg("starting throughput experiment...")

	records := make([]metrics.ThroughputRecord, 0, len(budgets))
	for _, rollouts := range budgets {
		mcts := searcher.NewMCTS(moves,
			searcher.WithRollouts(rollouts),
			searcher.WithSource(rng.New(seed+uint64(rollouts))),
			searcher.WithMetrics(),
		)
		_, metric := mcts.Search(state)

		record := metrics.ThroughputRecord{SearchMetric: metric}
		records = append(records, record)
		log.Info().Msgf("%d rollouts in %s (%.0f/s, %d nodes)", rollouts, metric.Duration, record.Rate(), metric.Nodes)
	}

	writer, err := metrics.NewWriter(root)
	if err != nil {
		return nil, err
	}
	if err := writer.WriteThroughputRecords(records); err != nil {
		return nil, err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored throughput records")
	return records, nil
}
