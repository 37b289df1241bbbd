package game

import "golang.org/x/exp/constraints"

// Cost is a per-color quantity. It doubles as a production vector.
type Cost [Colors]uint8

func (c Cost) Total() int {
	total := 0
	for _, n := range c {
		total += int(n)
	}
	return total
}

// Covers reports whether c is at least other in every color.
func (c Cost) Covers(other Cost) bool {
	for i := range c {
		if c[i] < other[i] {
			return false
		}
	}
	return true
}

// Holdings are the tokens of a player or the bank: five colors then gold.
type Holdings [Colors + 1]uint8

func (h Holdings) Total() int {
	total := 0
	for _, n := range h {
		total += int(n)
	}
	return total
}

func (h Holdings) Of(r Resource) uint8 {
	return h[r]
}

func (h Holdings) Wildcards() uint8 {
	return h[Gold]
}

func saturatingSub[T constraints.Unsigned](a, b T) T {
	if b >= a {
		return 0
	}
	return a - b
}

// remaining is what a player still owes for a card after production
// discounts, per color.
func remaining(cost, production Cost) Cost {
	var owed Cost
	for i := range cost {
		owed[i] = saturatingSub(cost[i], production[i])
	}
	return owed
}

// shortfall is the number of gold tokens needed to pay owed from held.
func shortfall(owed Cost, held Holdings) int {
	short := 0
	for i := range owed {
		short += int(saturatingSub(owed[i], held[i]))
	}
	return short
}
