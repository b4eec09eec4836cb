package searcher

import (
	"math"
	"time"

	"twenty48/game"
)

// maximize scores the player's ply: the best move over all legal moves.
func (s *search) maximize(grid game.Grid, depth int, alpha, beta float64, deadline time.Time) Result {
	s.metrics.AddNode(depth)

	if s.cutoff(depth, deadline) {
		return Result{Utility: s.leaf(grid)}
	}

	outcomes := grid.AvailableMoves()
	if len(outcomes) == 0 { // Dead end: the grid itself stands in for a move
		return Result{Grid: grid, Utility: s.leaf(grid)}
	}

	best := Result{Utility: math.Inf(-1)}
	// Canonical order puts Up first; it is the weakest move, so search it last
	for i := len(outcomes) - 1; i >= 0; i-- {
		child := outcomes[i]
		utility := s.minimize(child.Grid, depth+1, alpha, beta, deadline).Utility
		if utility > best.Utility {
			best = Result{Move: child.Move, HasMove: true, Grid: child.Grid, Utility: utility}
		}
		if s.pruning && best.Utility >= beta {
			s.metrics.AddBetaCutoff()
			break
		}
		if best.Utility > alpha {
			alpha = best.Utility
		}
	}
	return best
}
