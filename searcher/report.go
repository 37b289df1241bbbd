package searcher

import (
	"math"

	"splendor/game"
)

// ChildStat summarises one child of the search root.
type ChildStat struct {
	Move    int     `json:"move"`
	Visits  int     `json:"visits"`
	Score   float64 `json:"score"`
	WinRate float64 `json:"win_rate"`
}

type Report struct {
	Children []ChildStat `json:"children"`
	Nodes    int         `json:"nodes"`
}

func (t *tree) report(root NodeID) Report {
	r := Report{
		Children: make([]ChildStat, 0, len(t.nodes[root].children)),
		Nodes:    len(t.nodes),
	}
	for _, id := range t.nodes[root].children {
		n := &t.nodes[id]
		r.Children = append(r.Children, ChildStat{
			Move:    n.move,
			Visits:  n.visits,
			Score:   n.score,
			WinRate: winRate(n.visits, n.score),
		})
	}
	return r
}

// winRate maps a score in [-visits, visits] to [0, 1].
func winRate(visits int, score float64) float64 {
	if visits == 0 {
		return 0
	}
	return (float64(visits) + score) / float64(visits) / 2
}

// Value is the mean outcome of the child for the player to move at the
// root. Child scores are stored from the other side of the table, so the
// sign flips. Only two-player games read exactly; with more players the
// child score tracks player 0 against everyone else.
func (c ChildStat) Value() float64 {
	if c.Visits == 0 {
		return math.Inf(-1)
	}
	return -c.Score / float64(c.Visits)
}

// MoverWins is the number of rollouts through the child that the player to
// move at the root won.
func (c ChildStat) MoverWins() float64 {
	return (float64(c.Visits) - c.Score) / 2
}

// Best returns the child with the highest Value. Ties go to the more
// visited child, then to the first one.
func (r Report) Best() (ChildStat, bool) {
	if len(r.Children) == 0 {
		return ChildStat{}, false
	}
	best := r.Children[0]
	for _, child := range r.Children[1:] {
		v, bv := child.Value(), best.Value()
		if v > bv || (v == bv && child.Visits > best.Visits) {
			best = child
		}
	}
	return best, true
}

// Visits returns the total visits over all root children.
func (r Report) Visits() int {
	total := 0
	for _, child := range r.Children {
		total += child.Visits
	}
	return total
}

// Describe returns the catalog description of every child move, in report
// order.
func (r Report) Describe() []string {
	descriptions := make([]string, len(r.Children))
	for i, child := range r.Children {
		descriptions[i] = game.Describe(child.Move)
	}
	return descriptions
}
