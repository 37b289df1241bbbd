package game

import "fmt"

// Move catalog layout. Indices are stable and decoded by external tools.
const (
	getThreeBase      = 0
	getTwoBase        = 10
	boardBase         = 15 // per tier: reserve/build pairs for each slot
	reserveHiddenBase = boardBase + Tiers*VisibleSlots*2
	buildReserveBase  = reserveHiddenBase + Tiers
	MoveCount         = buildReserveBase + MaxReserve
)

// MoveSet is the full move catalog in index order.
type MoveSet [MoveCount]Move

func NewMoveSet() *MoveSet {
	var ms MoveSet
	for i := range ms {
		m, _ := MoveAt(i)
		ms[i] = m
	}
	return &ms
}

// Valid returns the indices of the moves that are valid in s, ascending.
func (ms *MoveSet) Valid(s *GameState) []int {
	var valid []int
	for i, m := range ms {
		if m.IsValid(s) {
			valid = append(valid, i)
		}
	}
	return valid
}

// MoveAt decodes a catalog index.
func MoveAt(index int) (Move, bool) {
	switch {
	case index < 0:
		return Move{}, false
	case index < getTwoBase:
		return GetThree(colorTriple(index - getThreeBase)), true
	case index < boardBase:
		return GetTwo(Resource(index - getTwoBase)), true
	case index < reserveHiddenBase:
		offset := index - boardBase
		t := Tier(offset / (VisibleSlots * 2))
		slot := offset % (VisibleSlots * 2) / 2
		if offset%2 == 0 {
			return ReserveVisible(t, slot), true
		}
		return BuildFromBoard(t, slot), true
	case index < buildReserveBase:
		return ReserveHidden(Tier(index - reserveHiddenBase)), true
	case index < MoveCount:
		return BuildFromReserve(index - buildReserveBase), true
	}
	return Move{}, false
}

// colorTriple returns the i-th combination of three distinct colors in
// lexicographic order over Resources.
func colorTriple(i int) (Resource, Resource, Resource) {
	n := 0
	for a := 0; a < Colors; a++ {
		for b := a + 1; b < Colors; b++ {
			for c := b + 1; c < Colors; c++ {
				if n == i {
					return Resource(a), Resource(b), Resource(c)
				}
				n++
			}
		}
	}
	panic(fmt.Sprintf("no color triple %d", i))
}

// Index is the inverse of MoveAt. It returns -1 for moves outside the
// catalog, such as GetThree with colors out of order.
func (m Move) Index() int {
	switch m.Kind {
	case KindGetThree:
		for i := getThreeBase; i < getTwoBase; i++ {
			if a, b, c := colorTriple(i - getThreeBase); m.Colors == [3]Resource{a, b, c} {
				return i
			}
		}
	case KindGetTwo:
		if int(m.Colors[0]) < Colors {
			return getTwoBase + int(m.Colors[0])
		}
	case KindReserveVisible, KindBuildBoard:
		if int(m.Tier) < Tiers && m.Slot >= 0 && m.Slot < VisibleSlots {
			index := boardBase + int(m.Tier)*VisibleSlots*2 + m.Slot*2
			if m.Kind == KindBuildBoard {
				index++
			}
			return index
		}
	case KindReserveHidden:
		if int(m.Tier) < Tiers {
			return reserveHiddenBase + int(m.Tier)
		}
	case KindBuildReserve:
		if m.Slot >= 0 && m.Slot < MaxReserve {
			return buildReserveBase + m.Slot
		}
	}
	return -1
}

// Describe returns the human-readable form of a catalog index.
func Describe(index int) string {
	m, ok := MoveAt(index)
	if !ok {
		return fmt.Sprintf("Unknown move index: %d", index)
	}
	return m.String()
}
