package game

import (
	"fmt"
	"slices"

	"splendor/rng"
)

// GameState is an immutable snapshot of a game. States are only produced by
// NewGameState and by performing a validated move on an earlier state; they
// may share memory with the states they were derived from.
type GameState struct {
	players []Player
	current int
	board   Board
}

// NewGameState deals a new game from catalog. Each tier is shuffled and its
// first VisibleSlots cards turned face up; as many nobles as players are
// drawn at random.
func NewGameState(catalog *Catalog, players int, source rng.Source) (*GameState, error) {
	colors, ok := bankSize(players)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrPlayerCount, players)
	}
	if len(catalog.Nobles) < players {
		return nil, fmt.Errorf("catalog has %d nobles, need %d", len(catalog.Nobles), players)
	}

	var board Board
	for i := 0; i < Colors; i++ {
		board.bank[i] = colors
	}
	board.bank[Gold] = StartingGold

	for t := 0; t < Tiers; t++ {
		cards := catalog.Tier(Tier(t))
		source.Shuffle(len(cards), func(i, j int) {
			cards[i], cards[j] = cards[j], cards[i]
		})
		board.rows[t] = newRow(cards)
	}

	perm := source.Perm(len(catalog.Nobles))
	board.nobles = make([]Noble, players)
	for i := 0; i < players; i++ {
		board.nobles[i] = catalog.Nobles[perm[i]]
	}

	return &GameState{
		players: make([]Player, players),
		current: 0,
		board:   board,
	}, nil
}

func (s *GameState) Players() int {
	return len(s.players)
}

func (s *GameState) Player(i int) Player {
	return s.players[i]
}

// Current is the index of the player to move.
func (s *GameState) Current() int {
	return s.current
}

func (s *GameState) CurrentPlayer() Player {
	return s.players[s.current]
}

// LastMover is the index of the player who made the previous move.
func (s *GameState) LastMover() int {
	n := len(s.players)
	return (s.current + n - 1) % n
}

func (s *GameState) Board() Board {
	return s.board
}

func (s *GameState) Bank() Holdings {
	return s.board.bank
}

func (s *GameState) Row(t Tier) Row {
	return s.board.rows[t]
}

func (s *GameState) Nobles() []Noble {
	return slices.Clone(s.board.nobles)
}

func (s *GameState) MaxPoints() int {
	best := 0
	for _, p := range s.players {
		best = max(best, int(p.points))
	}
	return best
}

// Leader is the first player holding MaxPoints.
func (s *GameState) Leader() int {
	best := s.MaxPoints()
	for i, p := range s.players {
		if int(p.points) == best {
			return i
		}
	}
	return 0
}

// IsTerminal reports whether a round has just been completed with some
// player at or above WinningPoints.
func (s *GameState) IsTerminal() bool {
	return s.current == 0 && s.MaxPoints() >= WinningPoints
}
