package game

import (
	"github.com/samber/lo"
)

// Weights scales each heuristic in the linear evaluation.
type Weights struct {
	TileSum         float64 `mapstructure:"tile_sum" json:"tile_sum"`
	EmptyCells      float64 `mapstructure:"empty_cells" json:"empty_cells"`
	MaxTile         float64 `mapstructure:"max_tile" json:"max_tile"`
	Smoothness      float64 `mapstructure:"smoothness" json:"smoothness"`
	Monotonicity    float64 `mapstructure:"monotonicity" json:"monotonicity"`
	PossibleMergers float64 `mapstructure:"possible_mergers" json:"possible_mergers"`
}

// DefaultWeights are the hand-tuned weights the engine ships with.
func DefaultWeights() Weights {
	return Weights{
		TileSum:         3.0,
		EmptyCells:      2.0,
		MaxTile:         4.0,
		Smoothness:      0.1,
		Monotonicity:    1.0,
		PossibleMergers: 2.0,
	}
}

type term struct {
	weight    float64
	heuristic func(Grid) float64
}

// NewEvaluator returns the weighted sum of the six board heuristics.
func NewEvaluator(w Weights) Evaluate {
	terms := []term{
		{w.TileSum, TileSum},
		{w.EmptyCells, EmptyCells},
		{w.MaxTile, MaxTile},
		{w.Smoothness, Smoothness},
		{w.Monotonicity, Monotonicity},
		{w.PossibleMergers, PossibleMergers},
	}
	return func(g Grid) float64 {
		return lo.SumBy(terms, func(t term) float64 {
			return t.weight * t.heuristic(g)
		})
	}
}

// EvaluateDefault scores a grid with DefaultWeights.
var EvaluateDefault = NewEvaluator(DefaultWeights())

// TileSum rewards raw progress.
func TileSum(g Grid) float64 {
	size := g.Size()
	sum := 0
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			sum += g.At(r, c)
		}
	}
	return float64(sum)
}

func EmptyCells(g Grid) float64 {
	return float64(len(g.AvailableCells()))
}

func MaxTile(g Grid) float64 {
	return float64(g.MaxTile())
}

var neighborOffsets = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// Smoothness penalises every cell by its absolute difference to each occupied
// neighbour. Empty cells are visited too and count as zero.
func Smoothness(g Grid) float64 {
	size := g.Size()
	smoothness := 0
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			value := g.At(r, c)
			for _, d := range neighborOffsets {
				nr, nc := r+d[0], c+d[1]
				if nr < 0 || nr >= size || nc < 0 || nc >= size {
					continue
				}
				if neighbor := g.At(nr, nc); neighbor != 0 {
					smoothness -= abs(value - neighbor)
				}
			}
		}
	}
	return float64(smoothness)
}

// Monotonicity sums, over rows, the fraction of adjacent pairs that do not
// increase from left to right. Columns are not scored.
func Monotonicity(g Grid) float64 {
	size := g.Size()
	if size < 2 {
		return 0
	}
	monotonicity := 0.0
	for r := 0; r < size; r++ {
		local := 0
		for c := 0; c < size-1; c++ {
			if g.At(r, c) >= g.At(r, c+1) {
				local++
			}
		}
		monotonicity += float64(local) / float64(size-1)
	}
	return monotonicity
}

// PossibleMergers counts, for every occupied cell, the neighbours holding the
// same value. Each adjacent pair is therefore counted from both sides.
func PossibleMergers(g Grid) float64 {
	size := g.Size()
	mergers := 0
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			value := g.At(r, c)
			if value == 0 {
				continue
			}
			for _, d := range neighborOffsets {
				nr, nc := r+d[0], c+d[1]
				if nr < 0 || nr >= size || nc < 0 || nc >= size {
					continue
				}
				if g.At(nr, nc) == value {
					mergers++
				}
			}
		}
	}
	return float64(mergers)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
