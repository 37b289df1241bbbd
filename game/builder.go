package game

import "slices"

// stateBuilder is a writable shadow of a GameState. It starts out sharing
// everything with its base state and copies only what a move touches.
type stateBuilder struct {
	players []Player
	current int
	bank    Holdings
	rows    [Tiers]Row
	nobles  []Noble
	owned   bool // players slice has been copied
}

func newBuilder(s *GameState) *stateBuilder {
	return &stateBuilder{
		players: s.players,
		current: s.current,
		bank:    s.board.bank,
		rows:    s.board.rows,
		nobles:  s.board.nobles,
	}
}

// player returns the builder's private copy of the player to move.
func (b *stateBuilder) player() *Player {
	if !b.owned {
		b.players = slices.Clone(b.players)
		b.owned = true
	}
	return &b.players[b.current]
}

// claimNoble awards the first noble in board order the current player's
// production covers. At most one noble is awarded.
func (b *stateBuilder) claimNoble() {
	p := b.player()
	for i, noble := range b.nobles {
		if noble.ClaimableBy(p.production) {
			p.addNoble(noble)
			b.nobles = slices.Delete(slices.Clone(b.nobles), i, i+1)
			return
		}
	}
}

// finalize ends the turn. Every performed move goes through it exactly once.
func (b *stateBuilder) finalize() {
	b.current = (b.current + 1) % len(b.players)
}

func (b *stateBuilder) build() *GameState {
	return &GameState{
		players: b.players,
		current: b.current,
		board: Board{
			bank:   b.bank,
			rows:   b.rows,
			nobles: b.nobles,
		},
	}
}
