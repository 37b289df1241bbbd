package game

// Catalog is the fixed set of cards and nobles a game is dealt from. A
// session builds one with StandardCatalog and passes it to NewGameState.
type Catalog struct {
	Cards  []Card
	Nobles []Noble
}

type cardDef struct {
	tier       Tier
	production Resource
	points     uint8
	cost       Cost
}

// StandardCatalog returns the 87 development cards and 10 nobles.
// Costs are listed Green, Blue, Red, White, Black.
func StandardCatalog() *Catalog {
	c := &Catalog{
		Cards:  make([]Card, len(standardCards)),
		Nobles: make([]Noble, len(standardNobles)),
	}
	for i, def := range standardCards {
		c.Cards[i] = Card{
			ID:         i,
			Tier:       def.tier,
			Production: def.production,
			Points:     def.points,
			Cost:       def.cost,
		}
	}
	for i, cost := range standardNobles {
		c.Nobles[i] = Noble{ID: i, Cost: cost}
	}
	return c
}

// Tier returns a copy of the catalog's cards of tier t, in catalog order.
func (c *Catalog) Tier(t Tier) []Card {
	var cards []Card
	for _, card := range c.Cards {
		if card.Tier == t {
			cards = append(cards, card)
		}
	}
	return cards
}

var standardNobles = [...]Cost{
	{0, 0, 4, 0, 4},
	{0, 0, 3, 3, 3},
	{0, 4, 0, 4, 0},
	{0, 0, 0, 4, 4},
	{0, 4, 0, 0, 4},
	{0, 3, 3, 3, 0},
	{0, 3, 3, 3, 3},
	{0, 0, 0, 4, 4},
	{0, 3, 0, 3, 3},
	{0, 3, 3, 0, 3},
}

var standardCards = [...]cardDef{
	// Tier 1
	{Tier1, Black, 0, Cost{1, 1, 1, 1, 0}},
	{Tier1, Black, 0, Cost{1, 2, 1, 1, 0}},
	{Tier1, Black, 0, Cost{0, 2, 1, 2, 0}},
	{Tier1, Black, 0, Cost{1, 0, 3, 0, 1}},
	{Tier1, Black, 0, Cost{2, 0, 1, 0, 0}},
	{Tier1, Black, 0, Cost{2, 0, 0, 2, 0}},
	{Tier1, Black, 0, Cost{3, 0, 0, 0, 0}},
	{Tier1, Black, 1, Cost{0, 4, 0, 0, 0}},
	{Tier1, Blue, 0, Cost{1, 0, 1, 1, 1}},
	{Tier1, Blue, 0, Cost{1, 0, 2, 1, 1}},
	{Tier1, Blue, 0, Cost{2, 0, 2, 1, 0}},
	{Tier1, Blue, 0, Cost{3, 1, 1, 0, 0}},
	{Tier1, Blue, 0, Cost{0, 0, 0, 1, 2}},
	{Tier1, Blue, 0, Cost{2, 0, 0, 0, 2}},
	{Tier1, Blue, 0, Cost{0, 0, 0, 0, 3}},
	{Tier1, Blue, 1, Cost{0, 0, 0, 0, 4}},
	{Tier1, White, 0, Cost{1, 1, 1, 0, 1}},
	{Tier1, White, 0, Cost{2, 1, 1, 0, 1}},
	{Tier1, White, 0, Cost{2, 2, 0, 0, 1}},
	{Tier1, White, 0, Cost{0, 1, 0, 3, 1}},
	{Tier1, White, 0, Cost{0, 0, 2, 0, 1}},
	{Tier1, White, 0, Cost{0, 0, 0, 2, 2}},
	{Tier1, White, 0, Cost{0, 0, 0, 3, 0}},
	{Tier1, White, 1, Cost{4, 0, 0, 0, 0}},
	{Tier1, Green, 0, Cost{0, 1, 1, 1, 1}},
	{Tier1, Green, 0, Cost{0, 1, 1, 1, 2}},
	{Tier1, Green, 0, Cost{0, 0, 2, 1, 2}},
	{Tier1, Green, 0, Cost{1, 3, 0, 1, 0}},
	{Tier1, Green, 0, Cost{0, 2, 0, 1, 0}},
	{Tier1, Green, 0, Cost{0, 0, 2, 2, 0}},
	{Tier1, Green, 0, Cost{0, 0, 3, 0, 0}},
	{Tier1, Green, 1, Cost{0, 0, 0, 0, 4}},
	{Tier1, Red, 0, Cost{1, 1, 0, 1, 1}},
	{Tier1, Red, 0, Cost{1, 2, 0, 1, 1}},
	{Tier1, Red, 0, Cost{1, 2, 0, 0, 2}},
	{Tier1, Red, 0, Cost{0, 0, 1, 0, 3}},
	{Tier1, Red, 0, Cost{1, 0, 0, 2, 0}},
	{Tier1, Red, 0, Cost{0, 0, 2, 0, 2}},
	{Tier1, Red, 0, Cost{0, 0, 0, 3, 0}},
	{Tier1, Red, 1, Cost{0, 0, 0, 4, 0}},

	// Tier 2
	{Tier2, Black, 1, Cost{2, 2, 0, 3, 0}},
	{Tier2, Black, 1, Cost{3, 3, 0, 0, 2}},
	{Tier2, Black, 2, Cost{4, 1, 2, 0, 0}},
	{Tier2, Black, 2, Cost{5, 0, 3, 0, 0}},
	{Tier2, Black, 3, Cost{0, 0, 0, 0, 6}},
	{Tier2, Blue, 1, Cost{2, 2, 3, 0, 0}},
	{Tier2, Blue, 1, Cost{3, 3, 0, 2, 0}},
	{Tier2, Blue, 2, Cost{0, 3, 0, 5, 0}},
	{Tier2, Blue, 2, Cost{0, 0, 1, 2, 4}},
	{Tier2, Blue, 2, Cost{0, 0, 0, 5, 0}},
	{Tier2, Blue, 3, Cost{0, 0, 0, 6, 0}},
	{Tier2, White, 1, Cost{3, 0, 2, 0, 2}},
	{Tier2, White, 1, Cost{0, 0, 3, 2, 3}},
	{Tier2, White, 2, Cost{1, 0, 4, 0, 2}},
	{Tier2, White, 2, Cost{0, 0, 5, 0, 3}},
	{Tier2, White, 2, Cost{0, 0, 5, 0, 0}},
	{Tier2, White, 3, Cost{0, 0, 0, 6, 0}},
	{Tier2, Green, 2, Cost{2, 0, 3, 0, 1}},
	{Tier2, Green, 2, Cost{3, 3, 0, 0, 0}},
	{Tier2, Green, 2, Cost{0, 5, 0, 0, 0}},
	{Tier2, Green, 3, Cost{0, 6, 0, 0, 0}},
	{Tier2, Red, 1, Cost{0, 0, 2, 2, 3}},
	{Tier2, Red, 1, Cost{0, 0, 2, 3, 3}},
	{Tier2, Red, 2, Cost{2, 4, 0, 1, 0}},
	{Tier2, Red, 2, Cost{0, 0, 0, 3, 5}},
	{Tier2, Red, 2, Cost{0, 0, 0, 0, 5}},
	{Tier2, Red, 3, Cost{0, 0, 6, 0, 0}},

	// Tier 3
	{Tier3, Black, 3, Cost{5, 3, 3, 3, 0}},
	{Tier3, Black, 4, Cost{0, 0, 7, 0, 0}},
	{Tier3, Black, 4, Cost{3, 0, 6, 0, 3}},
	{Tier3, Black, 5, Cost{0, 0, 7, 0, 3}},
	{Tier3, Blue, 3, Cost{3, 3, 3, 0, 5}},
	{Tier3, Blue, 4, Cost{0, 0, 0, 0, 7}},
	{Tier3, Blue, 4, Cost{0, 3, 0, 6, 3}},
	{Tier3, Blue, 5, Cost{0, 0, 0, 0, 7}},
	{Tier3, White, 3, Cost{3, 3, 5, 3, 0}},
	{Tier3, White, 4, Cost{0, 0, 0, 7, 0}},
	{Tier3, White, 4, Cost{3, 3, 0, 0, 6}},
	{Tier3, White, 5, Cost{3, 0, 0, 0, 7}},
	{Tier3, Green, 3, Cost{0, 3, 3, 5, 3}},
	{Tier3, Green, 4, Cost{0, 0, 0, 7, 0}},
	{Tier3, Green, 4, Cost{3, 3, 0, 6, 0}},
	{Tier3, Green, 5, Cost{3, 3, 0, 7, 0}},
	{Tier3, Red, 3, Cost{3, 3, 0, 5, 3}},
	{Tier3, Red, 4, Cost{7, 0, 0, 0, 0}},
	{Tier3, Red, 4, Cost{6, 0, 3, 3, 0}},
	{Tier3, Red, 5, Cost{7, 0, 3, 0, 0}},
}
