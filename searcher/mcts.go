package searcher

import (
	"time"

	"github.com/rs/zerolog/log"

	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/rng"
)

type Option func(mcts *MCTS)

// MCTS runs single-threaded searches from a given state. Each Search builds
// a fresh tree that lives until the search returns.
type MCTS struct {
	moves       *game.MoveSet
	rollouts    int
	exploration float64
	source      rng.Source
	metrics     metrics.Collector
}

func WithRollouts(rollouts int) Option {
	return func(m *MCTS) {
		if rollouts > 0 {
			m.rollouts = rollouts
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

func WithSource(source rng.Source) Option {
	return func(m *MCTS) {
		if source != nil {
			m.source = source
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(moves *game.MoveSet, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		moves:       moves,
		exploration: Exploration,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rollouts <= 0 {
		panic("Must specify search rollouts")
	}
	if m.source == nil {
		m.source = rng.New(uint64(time.Now().UnixNano()))
	}
	return m
}

func (m *MCTS) Rollouts() int {
	return m.rollouts
}

// Search expands every valid move of state, runs the configured number of
// rollouts and reports the statistics of the root's children.
func (m *MCTS) Search(state *game.GameState) (Report, metrics.SearchMetric) {
	t := newTree(m.moves, m.source, m.exploration)
	root := t.add(noParent, -1, state)
	t.expandAll(root)

	m.metrics.Start(m.rollouts)
	if len(t.nodes[root].children) > 0 {
		for i := 0; i < m.rollouts; i++ {
			m.simulate(t, root)
		}
	}
	metric := m.metrics.Complete(len(t.nodes))

	report := t.report(root)
	log.Debug().
		Int("rollouts", m.rollouts).
		Int("children", len(report.Children)).
		Int("nodes", report.Nodes).
		Msg("search complete")
	return report, metric
}

func (m *MCTS) simulate(t *tree, root NodeID) {
	leaf := t.selectLeaf(root)
	end, outcome, deadEnd := t.rollout(leaf)
	t.backup(end, outcome)

	switch {
	case deadEnd:
		m.metrics.AddDeadEnd()
	case outcome == Win:
		m.metrics.AddWin()
	default:
		m.metrics.AddLoss()
	}
}
