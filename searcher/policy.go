package searcher

import "math"

// Hyperparameters for MCTS

const Exploration = 2.0 // C in the UCB1 exploration term

const Win = 1.0   // Player 0 finished the round with the most points
const Loss = -Win // Anything else, including dead ends

// ucb1 ranks the children of one parent.
type ucb1 struct {
	c2LnN float64 // c^2 * ln(parent visits)
}

func newUCB1(c float64, parentVisits int) ucb1 {
	if parentVisits <= 0 {
		panic("parent has visited children but no visits")
	}
	return ucb1{c2LnN: c * c * math.Log(float64(parentVisits))}
}

// score is q/n + c*sqrt(ln(N)/n).
func (u ucb1) score(q float64, n int) float64 {
	if n <= 0 {
		panic("child has no visits")
	}
	return q/float64(n) + math.Sqrt(u.c2LnN/float64(n))
}
