package game

import "slices"

// Row is one tier's card supply: up to VisibleSlots face-up cards backed by
// a hidden pile. A Row is never modified in place; take* methods return a new
// Row and leave the receiver untouched.
type Row struct {
	visible []Card
	hidden  []Card
}

func newRow(cards []Card) Row {
	n := min(VisibleSlots, len(cards))
	return Row{
		visible: slices.Clone(cards[:n]),
		hidden:  slices.Clone(cards[n:]),
	}
}

// Len is the number of face-up cards.
func (r Row) Len() int {
	return len(r.visible)
}

func (r Row) Hidden() int {
	return len(r.hidden)
}

func (r Row) Card(slot int) (Card, bool) {
	if slot < 0 || slot >= len(r.visible) {
		return Card{}, false
	}
	return r.visible[slot], true
}

func (r Row) Visible() []Card {
	return slices.Clone(r.visible)
}

// takeVisible removes the face-up card at slot. The slot is refilled from
// the top of the hidden pile; with an empty pile the window shrinks.
func (r Row) takeVisible(slot int) (Row, Card) {
	visible := slices.Clone(r.visible)
	card := visible[slot]
	if len(r.hidden) > 0 {
		visible[slot] = r.hidden[0]
		return Row{visible: visible, hidden: r.hidden[1:]}, card
	}
	return Row{visible: slices.Delete(visible, slot, slot+1), hidden: r.hidden}, card
}

// takeHidden removes the top hidden card without revealing a new one.
func (r Row) takeHidden() (Row, Card) {
	return Row{visible: r.visible, hidden: r.hidden[1:]}, r.hidden[0]
}
