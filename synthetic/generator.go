package synthetic

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"splendor/features"
	"splendor/game"
	"splendor/rng"
)

// Sample is one labelled position: the latest state of an accepted random
// game in which player 0 was to move.
type Sample struct {
	State    []byte // features.Encode output
	Label    int8
	Moves    int    // Length of the game the state was taken from
	Snapshot []byte // Generator state before the game was dealt
}

type Generator struct {
	catalog   *game.Catalog
	moves     *game.MoveSet
	players   int
	source    *rng.PCG
	encoder   features.Encoder
	moveLimit int
	maxDepth  int
}

func NewGenerator(catalog *game.Catalog, players int, source *rng.PCG, encoder features.Encoder, moveLimit, maxDepth int) *Generator {
	return &Generator{
		catalog:   catalog,
		moves:     game.NewMoveSet(),
		players:   players,
		source:    source,
		encoder:   encoder,
		moveLimit: moveLimit,
		maxDepth:  maxDepth,
	}
}

// Generate plays random games until n of them finish within the move
// limit, and labels the latest player 0 state of each.
func (g *Generator) Generate(n int) ([]Sample, error) {
	samples := make([]Sample, 0, n)
	skipped := 0
	for len(samples) < n {
		snapshot, err := g.source.Snapshot()
		if err != nil {
			return samples, err
		}
		played, err := PlayRandomGame(g.catalog, g.moves, g.players, g.source)
		if err != nil {
			return samples, fmt.Errorf("failed to play game: %w", err)
		}
		if len(played.Moves) > g.moveLimit {
			skipped++
			continue
		}

		state, ok := LatestPlayerZeroState(played.States)
		if !ok {
			return samples, fmt.Errorf("game of %d moves has no player 0 state", len(played.Moves))
		}
		result := Evaluate(state, g.moves, g.maxDepth)
		samples = append(samples, Sample{
			State:    features.Encode(state.Observe(), g.encoder),
			Label:    result.Label(),
			Moves:    len(played.Moves),
			Snapshot: snapshot,
		})
		log.Debug().
			Int("sample", len(samples)).
			Int("moves", len(played.Moves)).
			Stringer("result", result).
			Msg("sample generated")
	}
	log.Info().Int("samples", n).Int("skipped", skipped).Msg("generation complete")
	return samples, nil
}
