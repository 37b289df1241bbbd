// Package synthetic produces labelled positions from random self-play.
package synthetic

import (
	"splendor/game"
	"splendor/rng"
)

// Game is a finished random game. States[i] is the position before
// Moves[i] was played.
type Game struct {
	Moves  []int
	States []*game.GameState
	Final  *game.GameState
}

// Winner is the player who made the last move.
func (g Game) Winner() int {
	return g.Final.LastMover()
}

// PlayRandomGame deals a game and plays uniformly random legal moves until
// the player who just moved has reached WinningPoints. A game that runs
// out of legal moves is discarded and a new one is dealt from the same
// source.
func PlayRandomGame(catalog *game.Catalog, moves *game.MoveSet, players int, source rng.Source) (Game, error) {
	for {
		g, ok, err := playOnce(catalog, moves, players, source)
		if err != nil || ok {
			return g, err
		}
	}
}

func playOnce(catalog *game.Catalog, moves *game.MoveSet, players int, source rng.Source) (Game, bool, error) {
	state, err := game.NewGameState(catalog, players, source)
	if err != nil {
		return Game{}, false, err
	}
	var g Game
	for {
		valid := moves.Valid(state)
		if len(valid) == 0 {
			return Game{}, false, nil
		}
		index := valid[source.Intn(len(valid))]
		v, _ := moves[index].Validate(state)
		g.Moves = append(g.Moves, index)
		g.States = append(g.States, state)
		state = v.Perform()
		if state.Player(state.LastMover()).Points() >= game.WinningPoints {
			g.Final = state
			return g, true, nil
		}
	}
}

// LatestPlayerZeroState returns the most recent state in which player 0
// was to move.
func LatestPlayerZeroState(states []*game.GameState) (*game.GameState, bool) {
	for i := len(states) - 1; i >= 0; i-- {
		if states[i].Current() == 0 {
			return states[i], true
		}
	}
	return nil, false
}
