// Package features turns observations into flat byte vectors for training.
package features

import (
	"fmt"

	"splendor/game"
)

const (
	// CardSlots is the one-hot width per visible position.
	CardSlots = 90
	// CardParams is the width of one parameter-encoded card: points, five
	// cost entries and a one-hot production.
	CardParams = 1 + game.Colors + game.Colors
	// PlayerSize is the width of one player block: points, six holdings,
	// five production entries and the reserved cards.
	PlayerSize = 1 + game.Colors + 1 + game.Colors + game.MaxReserve*CardParams
)

// Order of the colored entries in every encoded block.
var (
	amountOrder     = [game.Colors]game.Resource{game.Green, game.Red, game.Blue, game.Black, game.White}
	productionOrder = [game.Colors]game.Resource{game.Green, game.Red, game.Blue, game.White, game.Black}
)

// Encoder lays out the visible cards of one tier.
type Encoder interface {
	EncodeRow(row game.TierView) []byte
	RowSize() int
}

// ParameterEncoder writes every visible card as its parameters.
type ParameterEncoder struct{}

func (ParameterEncoder) EncodeRow(row game.TierView) []byte {
	out := make([]byte, 0, CardParams*game.VisibleSlots)
	for _, card := range row.Visible {
		out = appendCard(out, card)
	}
	return out
}

func (ParameterEncoder) RowSize() int {
	return CardParams * game.VisibleSlots
}

// OneHotEncoder marks, per visible position, the catalog ID of the card.
type OneHotEncoder struct{}

func (OneHotEncoder) EncodeRow(row game.TierView) []byte {
	out := make([]byte, CardSlots*game.VisibleSlots)
	for pos, card := range row.Visible {
		if card.Present && card.ID >= 0 && card.ID < CardSlots {
			out[pos*CardSlots+card.ID] = 1
		}
	}
	return out
}

func (OneHotEncoder) RowSize() int {
	return CardSlots * game.VisibleSlots
}

// ByName returns the encoder registered under name.
func ByName(name string) (Encoder, error) {
	switch name {
	case "parameter":
		return ParameterEncoder{}, nil
	case "onehot":
		return OneHotEncoder{}, nil
	}
	return nil, fmt.Errorf("unknown encoder %q", name)
}

// Size returns the length of Encode's output for the given player count.
func Size(players int, enc Encoder) int {
	return players*PlayerSize + game.Tiers*enc.RowSize()
}

// Encode writes the players in turn order, starting with the player to
// move, followed by the three tiers.
func Encode(obs game.Observation, enc Encoder) []byte {
	out := make([]byte, 0, Size(len(obs.Players), enc))
	for _, p := range obs.Players {
		out = append(out, uint8(p.Points))
		for _, r := range amountOrder {
			out = append(out, p.Holdings[r])
		}
		out = append(out, p.Holdings[game.Gold])
		for _, r := range amountOrder {
			out = append(out, p.Production[r])
		}
		for _, card := range p.Reserved {
			out = appendCard(out, card)
		}
	}
	for _, tier := range obs.Tiers {
		out = append(out, enc.EncodeRow(tier)...)
	}
	return out
}

func appendCard(out []byte, card game.CardView) []byte {
	if !card.Present {
		return append(out, make([]byte, CardParams)...)
	}
	out = append(out, card.Points)
	for _, r := range amountOrder {
		out = append(out, card.Cost[r])
	}
	for _, r := range productionOrder {
		if card.Production == r {
			out = append(out, 1)
		} else {
			out = append(out, 0)
		}
	}
	return out
}
