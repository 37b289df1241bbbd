package synthetic

import (
	"fmt"

	"splendor/game"
)

type Result int

const (
	Draw Result = iota
	Winning
	Losing
)

// Label maps Winning to 1, Losing to -1 and Draw to 0.
func (r Result) Label() int8 {
	switch r {
	case Winning:
		return 1
	case Losing:
		return -1
	}
	return 0
}

func (r Result) String() string {
	switch r {
	case Winning:
		return "winning"
	case Losing:
		return "losing"
	case Draw:
		return "draw"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// value ranks a state for the player who just moved: more points first,
// then fewer cards.
type value struct {
	points int
	cards  int
}

func valueOf(s *game.GameState) value {
	p := s.Player(s.LastMover())
	return value{points: p.Points(), cards: p.DeckSize()}
}

func (v value) beats(o value) bool {
	if v.points != o.points {
		return v.points > o.points
	}
	return v.cards < o.cards
}

// branch is a child of the evaluated state with every sequence of replies
// the other players can make.
type branch struct {
	child  *game.GameState
	traces [][]*game.GameState
}

func expandTraces(state *game.GameState, moves *game.MoveSet, players int) []branch {
	var branches []branch
	for _, index := range moves.Valid(state) {
		v, _ := moves[index].Validate(state)
		child := v.Perform()

		traces := [][]*game.GameState{nil}
		for i := 0; i < players-1; i++ {
			var next [][]*game.GameState
			for _, trace := range traces {
				from := child
				if len(trace) > 0 {
					from = trace[len(trace)-1]
				}
				for _, reply := range moves.Valid(from) {
					rv, _ := moves[reply].Validate(from)
					extended := append(trace[:len(trace):len(trace)], rv.Perform())
					next = append(next, extended)
				}
			}
			traces = next
		}
		branches = append(branches, branch{child: child, traces: traces})
	}
	return branches
}

// Evaluate labels a position where player 0 is to move by exhaustive
// search over full rounds, up to maxDepth rounds deep.
//
// A move wins if it reaches WinningPoints and strictly beats every reply
// the others can make in the same round. A move loses if some reply
// reaches WinningPoints. Otherwise the positions after the round are
// evaluated recursively. Ties at the finish count as draws, as does
// running out of depth.
func Evaluate(state *game.GameState, moves *game.MoveSet, maxDepth int) Result {
	if maxDepth <= 0 {
		return Draw
	}
	players := state.Players()

	allLosing := true
	draw := false
	var next []*game.GameState

	for _, b := range expandTraces(state, moves, players) {
		childValue := valueOf(b.child)

		if childValue.points >= game.WinningPoints {
			better, equal := true, false
			for _, trace := range b.traces {
				for _, s := range trace {
					v := valueOf(s)
					if !childValue.beats(v) {
						better = false
					}
					if v == childValue {
						equal = true
					}
				}
			}
			if better {
				return Winning
			}
			if equal {
				draw = true
			}
		}

		overtaken := false
		for _, trace := range b.traces {
			for _, s := range trace {
				if valueOf(s).points >= game.WinningPoints {
					overtaken = true
				}
			}
		}
		if overtaken {
			continue
		}

		allLosing = false
		for _, trace := range b.traces {
			if n := len(trace); n > 0 && trace[n-1].Current() == 0 {
				next = append(next, trace[n-1])
			}
		}
	}

	if allLosing {
		return Losing
	}
	for _, s := range next {
		switch Evaluate(s, moves, maxDepth-1) {
		case Winning:
			return Winning
		case Draw:
			draw = true
		}
	}
	if draw {
		return Draw
	}
	return Losing
}
