package game

// Grid is the board contract the searcher consumes. Implementations must
// treat boards returned from AvailableMoves and Clone as independent copies.
type Grid interface {
	// AvailableMoves returns every legal move with its resulting grid, in
	// canonical order (Up, Down, Left, Right).
	AvailableMoves() []Outcome
	AvailableCells() []Cell
	Clone() Grid
	// InsertTile places value at an empty cell, mutating the grid.
	InsertTile(cell Cell, value int)
	MaxTile() int
	Size() int
	At(row, col int) int
}

// Outcome pairs a legal move with the grid it produces.
type Outcome struct {
	Move Move
	Grid Grid
}

type Cell struct {
	Row int
	Col int
}

// Evaluates a grid to a desirability score for the player; higher is better.
type Evaluate func(Grid) float64
