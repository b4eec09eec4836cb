package searcher

import (
	"twenty48/game"
)

// Result is what every ply of the search returns. Only the root's Move is
// used by callers.
type Result struct {
	Move    game.Move
	HasMove bool
	// Grid is the board the result refers to: the board after Move, the
	// terminal board itself, or the pre-insertion board of a chance ply.
	Grid    game.Grid
	Utility float64
}

// Searcher picks the next move for a grid. The bool is false only when the
// grid has no legal move.
type Searcher interface {
	ChooseMove(grid game.Grid) (game.Move, bool)
}
