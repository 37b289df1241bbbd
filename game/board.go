package game

import "slices"

// Board holds the bank, one Row per tier and the nobles still in play.
type Board struct {
	bank   Holdings
	rows   [Tiers]Row
	nobles []Noble
}

func (b Board) Bank() Holdings {
	return b.bank
}

func (b Board) Row(t Tier) Row {
	return b.rows[t]
}

func (b Board) Nobles() []Noble {
	return slices.Clone(b.nobles)
}
