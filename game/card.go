package game

import "fmt"

type Tier uint8

const (
	Tier1 Tier = iota
	Tier2
	Tier3
)

// Tiers is the number of card rows on the board.
const Tiers = 3

func (t Tier) String() string {
	return fmt.Sprintf("Tier %d", uint8(t)+1)
}

// Card is a development card. ID is the card's position in its Catalog.
type Card struct {
	ID         int      `json:"id"`
	Tier       Tier     `json:"tier"`
	Production Resource `json:"production"`
	Points     uint8    `json:"points"`
	Cost       Cost     `json:"cost"`
}

// Noble is claimed automatically by the first player whose production
// covers its cost.
type Noble struct {
	ID   int  `json:"id"`
	Cost Cost `json:"cost"`
}

func (n Noble) ClaimableBy(production Cost) bool {
	return production.Covers(n.Cost)
}
