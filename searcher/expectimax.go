package searcher

import (
	"fmt"
	"math"
	"time"

	"twenty48/experiments/metrics"
	"twenty48/game"

	"github.com/rs/zerolog/log"
)

type Option func(e *Expectimax)

// Expectimax searches alternating player and tile-insertion plies with
// alpha-beta pruning, bounded by a ply cap and a wall-clock budget. It holds
// no per-decision state and may be shared between goroutines.
type Expectimax struct {
	timeBudget time.Duration
	plyCap     int
	evaluate   game.Evaluate
	spawns     []game.Spawn
	clock      func() time.Time
	pruning    bool
	collector  func() metrics.Collector
}

func WithTimeBudget(budget time.Duration) Option {
	return func(e *Expectimax) {
		if budget > 0 {
			e.timeBudget = budget
		}
	}
}

func WithPlyCap(plyCap int) Option {
	return func(e *Expectimax) {
		e.plyCap = plyCap
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(e *Expectimax) {
		if evaluate != nil {
			e.evaluate = evaluate
		}
	}
}

func WithWeights(weights game.Weights) Option {
	return func(e *Expectimax) {
		e.evaluate = game.NewEvaluator(weights)
	}
}

func WithSpawns(spawns []game.Spawn) Option {
	return func(e *Expectimax) {
		if len(spawns) > 0 {
			e.spawns = spawns
		}
	}
}

// WithClock replaces time.Now, mostly so tests can drive the deadline.
func WithClock(clock func() time.Time) Option {
	return func(e *Expectimax) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithPruning toggles alpha-beta cutoffs. Without them the search is plain
// expectimax over the same tree.
func WithPruning(enabled bool) Option {
	return func(e *Expectimax) {
		e.pruning = enabled
	}
}

func WithMetrics() Option {
	return func(e *Expectimax) {
		e.collector = metrics.NewCollector
	}
}

func NewExpectimax(options ...Option) *Expectimax {
	e := &Expectimax{ // Default values
		timeBudget: DefaultTimeBudget,
		plyCap:     DefaultPlyCap,
		evaluate:   game.EvaluateDefault,
		spawns:     game.DefaultSpawns(),
		clock:      time.Now,
		pruning:    true,
		collector:  metrics.NewDummyCollector,
	}
	for _, option := range options {
		option(e)
	}
	if e.plyCap < 0 {
		panic("ply cap cannot be negative")
	}
	if err := game.ValidateSpawns(e.spawns); err != nil {
		panic(fmt.Sprintf("invalid spawns: %v", err))
	}
	return e
}

func (e *Expectimax) ChooseMove(grid game.Grid) (game.Move, bool) {
	result, _ := e.Search(grid)
	return result.Move, result.HasMove
}

// Search runs one decision and returns the root result with its metrics.
func (e *Expectimax) Search(grid game.Grid) (Result, metrics.SearchMetric) {
	collector := e.collector()
	collector.Start(e.plyCap, e.timeBudget)

	outcomes := grid.AvailableMoves()
	if len(outcomes) == 0 {
		return Result{Grid: grid, Utility: e.evaluate(grid)}, collector.Complete()
	}

	s := &search{
		plyCap:   e.plyCap,
		evaluate: e.evaluate,
		spawns:   e.spawns,
		clock:    e.clock,
		pruning:  e.pruning,
		metrics:  collector,
	}
	deadline := e.clock().Add(e.timeBudget)
	result := s.maximize(grid, 0, math.Inf(-1), math.Inf(1), deadline)

	if !result.HasMove {
		// The budget ran out before any root child was scored
		first := outcomes[len(outcomes)-1]
		result = Result{Move: first.Move, HasMove: true, Grid: first.Grid, Utility: result.Utility}
	}

	metric := collector.Complete()
	log.Debug().
		Stringer("move", result.Move).
		Float64("utility", result.Utility).
		Int("nodes", metric.Nodes).
		Int("max_depth", metric.MaxDepth).
		Bool("timed_out", metric.TimedOut).
		Msg("search complete")

	return result, metric
}

// search carries the read-only settings of one decision. The deadline is
// passed explicitly through every ply.
type search struct {
	plyCap   int
	evaluate game.Evaluate
	spawns   []game.Spawn
	clock    func() time.Time
	pruning  bool
	metrics  metrics.Collector
}

func (s *search) cutoff(depth int, deadline time.Time) bool {
	if s.clock().After(deadline) {
		s.metrics.AddTimeCutoff()
		return true
	}
	if depth > s.plyCap {
		s.metrics.AddDepthCutoff()
		return true
	}
	return false
}

func (s *search) leaf(grid game.Grid) float64 {
	s.metrics.AddLeaf()
	return s.evaluate(grid)
}
