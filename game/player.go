package game

import "slices"

// Player is one seat at the table. Production and points are kept alongside
// the deck and nobles they are derived from.
type Player struct {
	deck       []Card
	holdings   Holdings
	reserve    []Card
	nobles     []Noble
	production Cost
	points     uint8
}

func (p Player) Holdings() Holdings { return p.holdings }
func (p Player) Production() Cost   { return p.production }
func (p Player) Points() int        { return int(p.points) }
func (p Player) DeckSize() int      { return len(p.deck) }
func (p Player) ReserveSize() int   { return len(p.reserve) }
func (p Player) Deck() []Card       { return slices.Clone(p.deck) }
func (p Player) Reserve() []Card    { return slices.Clone(p.reserve) }
func (p Player) Nobles() []Noble    { return slices.Clone(p.nobles) }

func (p Player) Reserved(slot int) (Card, bool) {
	if slot < 0 || slot >= len(p.reserve) {
		return Card{}, false
	}
	return p.reserve[slot], true
}

// canReceive reports whether n more tokens keep the player within MaxHoldings.
func (p Player) canReceive(n int) bool {
	return p.holdings.Total()+n <= MaxHoldings
}

func (p Player) canAfford(cost Cost) bool {
	return shortfall(remaining(cost, p.production), p.holdings) <= int(p.holdings[Gold])
}

// The mutators below are only called on a builder's private copy. Slices
// shared with earlier states are clipped or cloned before they are written.

// pay deducts cost from the holdings and returns the colored tokens spent.
func (p *Player) pay(cost Cost) Cost {
	var spent Cost
	owed := remaining(cost, p.production)
	gold := uint8(0)
	for i := range owed {
		paid := min(owed[i], p.holdings[i])
		p.holdings[i] -= paid
		spent[i] = paid
		gold += owed[i] - paid
	}
	if gold > p.holdings[Gold] {
		panic("player cannot afford card")
	}
	p.holdings[Gold] -= gold
	return spent
}

func (p *Player) addCard(card Card) {
	p.deck = append(slices.Clip(p.deck), card)
	p.production[card.Production]++
	p.points += card.Points
}

func (p *Player) addReserve(card Card) {
	p.reserve = append(slices.Clip(p.reserve), card)
}

func (p *Player) takeReserve(slot int) Card {
	card := p.reserve[slot]
	p.reserve = slices.Delete(slices.Clone(p.reserve), slot, slot+1)
	return card
}

func (p *Player) addNoble(noble Noble) {
	p.nobles = append(slices.Clip(p.nobles), noble)
	p.points += NoblePoints
}
