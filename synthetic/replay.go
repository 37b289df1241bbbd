package synthetic

import (
	"fmt"

	"splendor/game"
	"splendor/rng"
)

// Step is one move of a replayed game, with the mover's position after it.
type Step struct {
	Number      int    `json:"number"`
	Player      int    `json:"player"`
	Move        int    `json:"move"`
	Description string `json:"description"`
	After       string `json:"after"`
}

// Replay plays the random game source would produce and describes every
// move of it. A generator restored from a Sample's snapshot replays the
// game that sample came from.
func Replay(catalog *game.Catalog, players int, source rng.Source) ([]Step, Game, error) {
	g, err := PlayRandomGame(catalog, game.NewMoveSet(), players, source)
	if err != nil {
		return nil, Game{}, err
	}
	steps := make([]Step, len(g.Moves))
	for i, index := range g.Moves {
		player := g.States[i].Current()
		after := g.Final
		if i+1 < len(g.States) {
			after = g.States[i+1]
		}
		steps[i] = Step{
			Number:      i + 1,
			Player:      player,
			Move:        index,
			Description: game.Describe(index),
			After:       FormatPlayer(after.Player(player)),
		}
	}
	return steps, g, nil
}

// FormatPlayer renders tokens, production and points of a player.
func FormatPlayer(p game.Player) string {
	h, prod := p.Holdings(), p.Production()
	return fmt.Sprintf("Resources=[G:%d B:%d R:%d W:%d K:%d Gold:%d] Production=[G:%d B:%d R:%d W:%d K:%d] Points=%d",
		h[game.Green], h[game.Blue], h[game.Red], h[game.White], h[game.Black], h[game.Gold],
		prod[game.Green], prod[game.Blue], prod[game.Red], prod[game.White], prod[game.Black],
		p.Points())
}
