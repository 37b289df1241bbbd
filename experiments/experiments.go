package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"splendor/engine"
	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/rng"
	"splendor/searcher"
	"splendor/searcher/agent"
)

// AgentConfig describes one seat of a match up.
type AgentConfig struct {
	Name        string
	Kind        string // "mcts", "train" or "random"
	Rollouts    int
	Exploration float64
	Temperature float64
}

func (c AgentConfig) String() string {
	if c.Kind == "random" {
		return c.Name + "(random)"
	}
	return fmt.Sprintf("%s(%s,%d)", c.Name, c.Kind, c.Rollouts)
}

// Summary counts the winners of one match up. Wins[i] belongs to seat i.
type Summary struct {
	Agents     []AgentConfig
	Wins       []int
	Unfinished int
}

// RunMatches plays games games for every match up and writes game and move
// records under root. Seeds are derived from seed so every run is
// reproducible.
func RunMatches(root string, matchUps [][]AgentConfig, games int, seed uint64) ([]Summary, string, error) {
	count := 0
	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord
	summaries := make([]Summary, len(matchUps))

	catalog := game.StandardCatalog()
	moves := game.NewMoveSet()

	for mi, matchUp := range matchUps {
		summaries[mi] = Summary{Agents: matchUp, Wins: make([]int, len(matchUp))}
		log.Info().Msgf("starting matchup %d of %d between %v...", mi+1, len(matchUps), matchUp)

		for i := 0; i < games; i++ {
			gameSeed := seed + uint64(count)
			state, err := game.NewGameState(catalog, len(matchUp), rng.New(gameSeed))
			if err != nil {
				return nil, "", err
			}
			agents := make([]agent.Agent, len(matchUp))
			for seat, config := range matchUp {
				if agents[seat], err = newAgent(config, moves, gameSeed+uint64(seat)+1); err != nil {
					return nil, "", err
				}
			}

			winner, gameMetric, moveMetrics, err := engine.NewLocal(state, moves, agents).Run()
			if err != nil {
				return nil, "", err
			}
			count++

			names := make([]string, len(matchUp))
			for seat, config := range matchUp {
				names[seat] = config.String()
			}
			gameRecords = append(gameRecords, metrics.GameRecord{ID: count, Agents: names, GameMetric: gameMetric})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: count, MoveMetric: mm})
			}

			if winner >= 0 {
				summaries[mi].Wins[winner]++
			} else {
				summaries[mi].Unfinished++
			}
			log.Info().Msgf("completed matchup %d game %d of %d with winner: %d", mi+1, i+1, games, winner)
		}
	}

	writer, err := metrics.NewWriter(root)
	if err != nil {
		return nil, "", err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return nil, "", err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return nil, "", err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored game and move records")
	return summaries, writer.Dir(), nil
}

func newAgent(config AgentConfig, moves *game.MoveSet, seed uint64) (agent.Agent, error) {
	if config.Kind == "random" {
		return agent.NewRandomAgent(moves, rng.New(seed)), nil
	}
	mcts := createMCTS(config, moves, seed)
	switch config.Kind {
	case "mcts", "":
		return agent.NewEvaluationAgent(mcts), nil
	case "train":
		return agent.NewTrainingAgent(mcts, config.Temperature, rng.New(^seed)), nil
	}
	return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
}

func createMCTS(config AgentConfig, moves *game.MoveSet, seed uint64) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithRollouts(config.Rollouts),
		searcher.WithSource(rng.New(seed)),
		searcher.WithMetrics(),
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	return searcher.NewMCTS(moves, options...)
}
