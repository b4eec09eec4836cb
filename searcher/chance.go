package searcher

import (
	"math"
	"time"

	"twenty48/game"
)

// minimize scores the tile-insertion ply. Each empty cell is worth the
// spawn-weighted average of its outcomes and the ply takes the worst cell.
func (s *search) minimize(grid game.Grid, depth int, alpha, beta float64, deadline time.Time) Result {
	s.metrics.AddNode(depth)

	if s.cutoff(depth, deadline) {
		return Result{Utility: s.leaf(grid)}
	}

	cells := grid.AvailableCells()
	if len(cells) == 0 {
		return Result{Grid: grid, Utility: s.leaf(grid)}
	}

	worst := Result{Grid: grid, Utility: math.Inf(1)}
	for _, cell := range cells {
		utility := 0.0
		for _, spawn := range s.spawns {
			child := grid.Clone()
			child.InsertTile(cell, spawn.Value)
			utility += spawn.Probability * s.maximize(child, depth+1, alpha, beta, deadline).Utility
		}
		if utility < worst.Utility {
			worst.Utility = utility
		}
		if s.pruning && worst.Utility <= alpha {
			s.metrics.AddAlphaCutoff()
			break
		}
		if worst.Utility < beta {
			beta = worst.Utility
		}
	}
	return worst
}
