package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	PlyCap       int
	TimeBudget   time.Duration
	Duration     time.Duration
	Nodes        int
	Leaves       int
	DepthCutoffs int
	TimeCutoffs  int
	AlphaCutoffs int
	BetaCutoffs  int
	MaxDepth     int // Deepest ply visited
	TimedOut     bool
}

type MoveMetric struct {
	Step   int
	Move   string
	Gained int // Points scored by merges on this move
	SearchMetric
}

type GameMetric struct {
	Seed       uint64
	Score      int
	MaxTile    int
	Won        bool
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(plyCap int, timeBudget time.Duration)
	AddNode(depth int)
	AddLeaf()
	AddDepthCutoff()
	AddTimeCutoff()
	AddAlphaCutoff()
	AddBetaCutoff()
	Complete() SearchMetric
}

type collector struct {
	plyCap       int
	timeBudget   time.Duration
	startTime    time.Time
	nodes        atomic.Int32
	leaves       atomic.Int32
	depthCutoffs atomic.Int32
	timeCutoffs  atomic.Int32
	alphaCutoffs atomic.Int32
	betaCutoffs  atomic.Int32
	maxDepth     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(plyCap int, timeBudget time.Duration) {
	m.startTime = time.Now()
	m.plyCap = plyCap
	m.timeBudget = timeBudget
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.depthCutoffs.Store(0)
	m.timeCutoffs.Store(0)
	m.alphaCutoffs.Store(0)
	m.betaCutoffs.Store(0)
	m.maxDepth.Store(0)
}

func (m *collector) AddNode(depth int) {
	m.nodes.Add(1)
	for {
		current := m.maxDepth.Load()
		if int32(depth) <= current || m.maxDepth.CompareAndSwap(current, int32(depth)) {
			return
		}
	}
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddDepthCutoff() {
	m.depthCutoffs.Add(1)
}

func (m *collector) AddTimeCutoff() {
	m.timeCutoffs.Add(1)
}

func (m *collector) AddAlphaCutoff() {
	m.alphaCutoffs.Add(1)
}

func (m *collector) AddBetaCutoff() {
	m.betaCutoffs.Add(1)
}

func (m *collector) Complete() SearchMetric {
	timeCutoffs := int(m.timeCutoffs.Load())
	return SearchMetric{
		PlyCap:       m.plyCap,
		TimeBudget:   m.timeBudget,
		Duration:     time.Since(m.startTime),
		Nodes:        int(m.nodes.Load()),
		Leaves:       int(m.leaves.Load()),
		DepthCutoffs: int(m.depthCutoffs.Load()),
		TimeCutoffs:  timeCutoffs,
		AlphaCutoffs: int(m.alphaCutoffs.Load()),
		BetaCutoffs:  int(m.betaCutoffs.Load()),
		MaxDepth:     int(m.maxDepth.Load()),
		TimedOut:     timeCutoffs > 0,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(plyCap int, timeBudget time.Duration) {}
func (m *dummyCollector) AddNode(depth int)                         {}
func (m *dummyCollector) AddLeaf()                                  {}
func (m *dummyCollector) AddDepthCutoff()                           {}
func (m *dummyCollector) AddTimeCutoff()                            {}
func (m *dummyCollector) AddAlphaCutoff()                           {}
func (m *dummyCollector) AddBetaCutoff()                            {}
func (m *dummyCollector) Complete() SearchMetric                    { return SearchMetric{} }
