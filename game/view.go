package game

// CardView describes a card slot. Absent slots have Present false and zero
// values elsewhere.
type CardView struct {
	Present    bool     `json:"present"`
	ID         int      `json:"id"`
	Points     uint8    `json:"points"`
	Cost       Cost     `json:"cost"`
	Production Resource `json:"production"`
}

type PlayerView struct {
	Index      int                  `json:"index"`
	Points     int                  `json:"points"`
	Holdings   Holdings             `json:"holdings"`
	Production Cost                 `json:"production"`
	Reserved   [MaxReserve]CardView `json:"reserved"`
}

type TierView struct {
	Visible [VisibleSlots]CardView `json:"visible"`
	Hidden  int                    `json:"hidden"`
}

// Observation is the read-only view of a state used by encoders and the
// HTTP API. Players are listed in turn order starting with the player to
// move.
type Observation struct {
	Current int             `json:"current"`
	Bank    Holdings        `json:"bank"`
	Nobles  []Noble         `json:"nobles"`
	Players []PlayerView    `json:"players"`
	Tiers   [Tiers]TierView `json:"tiers"`
}

func viewCard(card Card) CardView {
	return CardView{
		Present:    true,
		ID:         card.ID,
		Points:     card.Points,
		Cost:       card.Cost,
		Production: card.Production,
	}
}

func (s *GameState) Observe() Observation {
	n := len(s.players)
	obs := Observation{
		Current: s.current,
		Bank:    s.board.bank,
		Nobles:  s.Nobles(),
		Players: make([]PlayerView, n),
	}

	for i := 0; i < n; i++ {
		index := (s.current + i) % n
		p := s.players[index]
		view := PlayerView{
			Index:      index,
			Points:     int(p.points),
			Holdings:   p.holdings,
			Production: p.production,
		}
		for slot, card := range p.reserve {
			view.Reserved[slot] = viewCard(card)
		}
		obs.Players[i] = view
	}

	for t, row := range s.board.rows {
		for slot, card := range row.visible {
			obs.Tiers[t].Visible[slot] = viewCard(card)
		}
		obs.Tiers[t].Hidden = row.Hidden()
	}
	return obs
}
