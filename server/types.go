package server

import (
	"fmt"

	"splendor/game"
	"splendor/rng"
	"splendor/searcher"
)

// GameSpec identifies a position by the seed that dealt the standard
// catalog and the catalog indices played since.
type GameSpec struct {
	Players int    `json:"players"`
	Seed    uint64 `json:"seed"`
	Moves   []int  `json:"moves"`
}

// State deals the game and replays its moves.
func (g GameSpec) State(catalog *game.Catalog, moves *game.MoveSet) (*game.GameState, error) {
	s, err := game.NewGameState(catalog, g.Players, rng.New(g.Seed))
	if err != nil {
		return nil, err
	}
	for i, index := range g.Moves {
		if index < 0 || index >= game.MoveCount {
			return nil, fmt.Errorf("move %d: %w: %s", i, game.ErrInvalidMove, game.Describe(index))
		}
		if s, err = game.Apply(s, moves[index]); err != nil {
			return nil, fmt.Errorf("move %d: %w", i, err)
		}
	}
	return s, nil
}

type MoveInfo struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
}

type ObserveResponse struct {
	Observation game.Observation `json:"observation"`
	Valid       []int            `json:"valid"`
	Terminal    bool             `json:"terminal"`
}

type SearchRequest struct {
	GameSpec
	Rollouts   int    `json:"rollouts"`
	SearchSeed uint64 `json:"search_seed"`
}

type SearchResponse struct {
	Report      searcher.Report `json:"report"`
	Best        int             `json:"best"` // -1 without legal moves
	Description string          `json:"description,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
