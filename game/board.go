package game

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// DefaultSize is the side length of a standard 2048 board.
const DefaultSize = 4

var ErrMalformedBoard = errors.New("malformed board")

// Board is a square 2048 grid stored row-major. The zero value is not
// usable; create boards with NewBoard or NewBoardFromCells.
type Board struct {
	size  int
	cells []int
}

var _ Grid = (*Board)(nil)

func NewBoard(size int) *Board {
	if size < 1 {
		panic("board size must be positive")
	}
	return &Board{size: size, cells: make([]int, size*size)}
}

// NewBoardFromCells copies cells into a new board. Rows must form a square
// and every value must be zero or a power of two.
func NewBoardFromCells(cells [][]int) (*Board, error) {
	size := len(cells)
	if size == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedBoard)
	}
	b := NewBoard(size)
	for r, row := range cells {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedBoard, r, len(row), size)
		}
		for c, v := range row {
			if v < 0 || (v != 0 && bits.OnesCount(uint(v)) != 1) {
				return nil, fmt.Errorf("%w: cell (%d,%d) holds %d", ErrMalformedBoard, r, c, v)
			}
			b.cells[r*size+c] = v
		}
	}
	return b, nil
}

// MustBoard is NewBoardFromCells for literals known to be well formed.
func MustBoard(cells [][]int) *Board {
	b, err := NewBoardFromCells(cells)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) At(row, col int) int {
	return b.cells[row*b.size+col]
}

func (b *Board) set(row, col, value int) {
	b.cells[row*b.size+col] = value
}

func (b *Board) Clone() Grid {
	return b.Copy()
}

// Copy is Clone with the concrete type.
func (b *Board) Copy() *Board {
	cells := make([]int, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

func (b *Board) InsertTile(cell Cell, value int) {
	b.set(cell.Row, cell.Col, value)
}

func (b *Board) MaxTile() int {
	maxVal := 0
	for _, v := range b.cells {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// Sum is the total of all tile values.
func (b *Board) Sum() int {
	sum := 0
	for _, v := range b.cells {
		sum += v
	}
	return sum
}

func (b *Board) AvailableCells() []Cell {
	cells := make([]Cell, 0, len(b.cells))
	for i, v := range b.cells {
		if v == 0 {
			cells = append(cells, Cell{Row: i / b.size, Col: i % b.size})
		}
	}
	return cells
}

func (b *Board) AvailableMoves() []Outcome {
	outcomes := make([]Outcome, 0, len(Moves))
	for _, move := range Moves {
		next, _, moved := b.Slide(move)
		if moved {
			outcomes = append(outcomes, Outcome{Move: move, Grid: next})
		}
	}
	return outcomes
}

func (b *Board) IsGameOver() bool {
	for _, move := range Moves {
		if _, _, moved := b.Slide(move); moved {
			return false
		}
	}
	return true
}

// Slide returns a new board with every line pushed towards move, the points
// gained from merges and whether any tile shifted. b is left untouched.
func (b *Board) Slide(move Move) (*Board, int, bool) {
	next := b.Copy()
	score := 0
	line := make([]int, b.size)
	for i := 0; i < b.size; i++ {
		for j := 0; j < b.size; j++ {
			r, c := b.lineCell(move, i, j)
			line[j] = b.At(r, c)
		}
		merged, gained := mergeLine(line)
		score += gained
		for j, v := range merged {
			r, c := b.lineCell(move, i, j)
			next.set(r, c, v)
		}
	}
	return next, score, !next.Equal(b)
}

// lineCell maps position j of line i, read in the direction tiles travel
// towards, to board coordinates.
func (b *Board) lineCell(move Move, i, j int) (int, int) {
	last := b.size - 1
	switch move {
	case Up:
		return j, i
	case Down:
		return last - j, i
	case Left:
		return i, j
	case Right:
		return i, last - j
	default:
		panic(fmt.Sprintf("unexpected move %d", int(move)))
	}
}

// mergeLine packs a line towards index 0, merging each equal pair once.
func mergeLine(line []int) ([]int, int) {
	result := make([]int, len(line))
	score := 0
	write := 0
	pending := 0
	for _, v := range line {
		if v == 0 {
			continue
		}
		if pending == v {
			result[write-1] = 2 * v
			score += 2 * v
			pending = 0
			continue
		}
		result[write] = v
		write++
		pending = v
	}
	return result, score
}

func (b *Board) Equal(other *Board) bool {
	if b.size != other.size {
		return false
	}
	for i, v := range b.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// Cells returns the grid as rows.
func (b *Board) Cells() [][]int {
	rows := make([][]int, b.size)
	for r := range rows {
		rows[r] = make([]int, b.size)
		copy(rows[r], b.cells[r*b.size:(r+1)*b.size])
	}
	return rows
}

func (b *Board) String() string {
	var sb strings.Builder
	line := "+" + strings.Repeat("------+", b.size) + "\n"
	sb.WriteString(line)
	for r := 0; r < b.size; r++ {
		sb.WriteString("|")
		for c := 0; c < b.size; c++ {
			if v := b.At(r, c); v == 0 {
				sb.WriteString("      |")
			} else {
				fmt.Fprintf(&sb, "%5d |", v)
			}
		}
		sb.WriteString("\n")
		sb.WriteString(line)
	}
	return sb.String()
}
