package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	StartTime time.Time
	Duration  time.Duration
	Rollouts  int // Rollouts requested
	Completed int // Rollouts run to an outcome
	Wins      int
	Losses    int
	DeadEnds  int // Losses caused by a node without legal moves
	Nodes     int // Tree size at the end of the search
}

type MoveMetric struct {
	Step   int
	Player int
	Move   int // Catalog index
	SearchMetric
}

type GameMetric struct {
	Players    int
	Winner     int // -1 if the game did not finish
	Points     []int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(rollouts int)
	AddWin()
	AddLoss()
	AddDeadEnd()
	Complete(nodes int) SearchMetric
}

type collector struct {
	rollouts  int
	startTime time.Time
	wins      atomic.Int32
	losses    atomic.Int32
	deadEnds  atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(rollouts int) {
	m.startTime = time.Now()
	m.rollouts = rollouts
	m.wins.Store(0)
	m.losses.Store(0)
	m.deadEnds.Store(0)
}

func (m *collector) AddWin() {
	m.wins.Add(1)
}

func (m *collector) AddLoss() {
	m.losses.Add(1)
}

// AddDeadEnd counts a dead end. Dead ends are also losses.
func (m *collector) AddDeadEnd() {
	m.deadEnds.Add(1)
	m.losses.Add(1)
}

func (m *collector) Complete(nodes int) SearchMetric {
	wins, losses := int(m.wins.Load()), int(m.losses.Load())
	return SearchMetric{
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Rollouts:  m.rollouts,
		Completed: wins + losses,
		Wins:      wins,
		Losses:    losses,
		DeadEnds:  int(m.deadEnds.Load()),
		Nodes:     nodes,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(rollouts int)              {}
func (m *dummyCollector) AddWin()                         {}
func (m *dummyCollector) AddLoss()                        {}
func (m *dummyCollector) AddDeadEnd()                     {}
func (m *dummyCollector) Complete(nodes int) SearchMetric { return SearchMetric{} }
