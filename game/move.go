package game

import (
	"fmt"
	"strings"
)

type Kind uint8

const (
	KindGetThree Kind = iota
	KindGetTwo
	KindReserveVisible
	KindReserveHidden
	KindBuildBoard
	KindBuildReserve
)

// Move is one of the closed set of turn actions. Which fields are meaningful
// depends on Kind: Colors for the token moves (GetTwo uses Colors[0]), Tier
// and Slot for the card moves.
type Move struct {
	Kind   Kind
	Colors [3]Resource
	Tier   Tier
	Slot   int
}

func GetThree(a, b, c Resource) Move {
	return Move{Kind: KindGetThree, Colors: [3]Resource{a, b, c}}
}

func GetTwo(c Resource) Move {
	return Move{Kind: KindGetTwo, Colors: [3]Resource{c}}
}

func ReserveVisible(t Tier, slot int) Move {
	return Move{Kind: KindReserveVisible, Tier: t, Slot: slot}
}

func ReserveHidden(t Tier) Move {
	return Move{Kind: KindReserveHidden, Tier: t}
}

func BuildFromBoard(t Tier, slot int) Move {
	return Move{Kind: KindBuildBoard, Tier: t, Slot: slot}
}

func BuildFromReserve(slot int) Move {
	return Move{Kind: KindBuildReserve, Slot: slot}
}

// Validated is a move checked against one specific state. It is the only way
// to perform a move.
type Validated struct {
	move  Move
	state *GameState
}

func (v Validated) Move() Move {
	return v.move
}

// Perform applies the move to the state it was validated against and
// returns the resulting state. The validated state is left untouched.
func (v Validated) Perform() *GameState {
	if v.state == nil {
		panic("performing a move that was not validated")
	}

	b := newBuilder(v.state)
	m := v.move
	switch m.Kind {
	case KindGetThree:
		p := b.player()
		for _, c := range m.Colors {
			b.bank[c]--
			p.holdings[c]++
		}
	case KindGetTwo:
		c := m.Colors[0]
		p := b.player()
		b.bank[c] -= 2
		p.holdings[c] += 2
	case KindReserveVisible:
		row, card := b.rows[m.Tier].takeVisible(m.Slot)
		b.rows[m.Tier] = row
		b.reserve(card)
	case KindReserveHidden:
		row, card := b.rows[m.Tier].takeHidden()
		b.rows[m.Tier] = row
		b.reserve(card)
	case KindBuildBoard:
		row, card := b.rows[m.Tier].takeVisible(m.Slot)
		b.rows[m.Tier] = row
		b.purchase(card)
	case KindBuildReserve:
		card := b.player().takeReserve(m.Slot)
		b.purchase(card)
	default:
		panic(fmt.Sprintf("unknown move kind %d", m.Kind))
	}
	b.finalize()
	return b.build()
}

func (b *stateBuilder) reserve(card Card) {
	p := b.player()
	p.addReserve(card)
	b.bank[Gold]--
	p.holdings[Gold]++
}

// purchase pays for card, returns the spent colored tokens to the bank and
// attempts a noble claim.
func (b *stateBuilder) purchase(card Card) {
	p := b.player()
	spent := p.pay(card.Cost)
	for i, n := range spent {
		b.bank[i] += n
	}
	p.addCard(card)
	b.claimNoble()
}

// Validate checks m against s.
func (m Move) Validate(s *GameState) (Validated, bool) {
	if !m.IsValid(s) {
		return Validated{}, false
	}
	return Validated{move: m, state: s}, true
}

func (m Move) IsValid(s *GameState) bool {
	p := s.players[s.current]
	bank := s.board.bank
	switch m.Kind {
	case KindGetThree:
		a, b, c := m.Colors[0], m.Colors[1], m.Colors[2]
		if a == b || b == c || a == c {
			return false
		}
		for _, r := range m.Colors {
			if int(r) >= Colors || bank[r] < 1 {
				return false
			}
		}
		return p.canReceive(3)
	case KindGetTwo:
		c := m.Colors[0]
		return int(c) < Colors && bank[c] >= 4 && p.canReceive(2)
	case KindReserveVisible:
		return m.canReserve(p, bank) && int(m.Tier) < Tiers &&
			m.Slot >= 0 && m.Slot < s.board.rows[m.Tier].Len()
	case KindReserveHidden:
		return m.canReserve(p, bank) && int(m.Tier) < Tiers &&
			s.board.rows[m.Tier].Hidden() > 0
	case KindBuildBoard:
		if int(m.Tier) >= Tiers {
			return false
		}
		card, ok := s.board.rows[m.Tier].Card(m.Slot)
		return ok && p.canAfford(card.Cost)
	case KindBuildReserve:
		card, ok := p.Reserved(m.Slot)
		return ok && p.canAfford(card.Cost)
	default:
		panic(fmt.Sprintf("unknown move kind %d", m.Kind))
	}
}

func (m Move) canReserve(p Player, bank Holdings) bool {
	return bank[Gold] >= 1 && len(p.reserve) < MaxReserve && p.canReceive(1)
}

// Apply validates m against s and performs it.
func Apply(s *GameState, m Move) (*GameState, error) {
	v, ok := m.Validate(s)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMove, m)
	}
	return v.Perform(), nil
}

func (m Move) String() string {
	switch m.Kind {
	case KindGetThree:
		names := make([]string, len(m.Colors))
		for i, c := range m.Colors {
			names[i] = c.String()
		}
		return "Get 3: " + strings.Join(names, ", ")
	case KindGetTwo:
		return "Get 2: " + m.Colors[0].String()
	case KindReserveVisible:
		return fmt.Sprintf("Reserve card from board (%s, Position %d)", m.Tier, m.Slot)
	case KindReserveHidden:
		return fmt.Sprintf("Reserve from hidden deck (%s)", m.Tier)
	case KindBuildBoard:
		return fmt.Sprintf("Build card from board (%s, Position %d)", m.Tier, m.Slot)
	case KindBuildReserve:
		return fmt.Sprintf("Build from reserve (Slot %d)", m.Slot)
	default:
		return fmt.Sprintf("Move(kind=%d)", m.Kind)
	}
}
