package game

import "errors"

const (
	WinningPoints = 15 // Points that end the game at the next round boundary
	NoblePoints   = 3  // Points awarded per noble
	MaxHoldings   = 10 // Max tokens (colors + gold) a player may hold
	MaxReserve    = 3  // Max reserved cards per player
	VisibleSlots  = 4  // Face-up cards per tier
	StartingGold  = 5
	MinPlayers    = 2
	MaxPlayers    = 4
)

var (
	ErrInvalidMove = errors.New("invalid move")
	ErrPlayerCount = errors.New("unsupported number of players")
)

// bankSize returns the number of tokens of each color in the starting bank.
func bankSize(players int) (uint8, bool) {
	switch players {
	case 2:
		return 4, true
	case 3:
		return 5, true
	case 4:
		return 7, true
	}
	return 0, false
}
