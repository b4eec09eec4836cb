package searcher

import (
	"time"

	"twenty48/experiments/metrics"
	"twenty48/game"
)

// mockNode is one position of a hand-built game tree. Decision positions
// list moves, chance positions list cells with the position each spawn
// value leads to.
type mockNode struct {
	value   float64
	moves   []mockEdge
	cells   []game.Cell
	spawned map[game.Cell]map[int]*mockNode
}

type mockEdge struct {
	move game.Move
	to   *mockNode
}

type mockOutcome struct {
	two  *mockNode
	four *mockNode
}

func leaf(value float64) *mockNode {
	return &mockNode{value: value}
}

func edge(move game.Move, to *mockNode) mockEdge {
	return mockEdge{move: move, to: to}
}

// same makes a cell whose 2 and 4 insertions lead to the same position.
func same(node *mockNode) mockOutcome {
	return mockOutcome{two: node, four: node}
}

func decisionNode(edges ...mockEdge) *mockNode {
	return &mockNode{moves: edges}
}

func chanceNode(outcomes ...mockOutcome) *mockNode {
	node := &mockNode{spawned: map[game.Cell]map[int]*mockNode{}}
	for i, o := range outcomes {
		cell := game.Cell{Row: 0, Col: i}
		node.cells = append(node.cells, cell)
		node.spawned[cell] = map[int]*mockNode{2: o.two, 4: o.four}
	}
	return node
}

type mockGrid struct {
	node *mockNode
}

func (m *mockGrid) AvailableMoves() []game.Outcome {
	outcomes := make([]game.Outcome, len(m.node.moves))
	for i, e := range m.node.moves {
		outcomes[i] = game.Outcome{Move: e.move, Grid: &mockGrid{node: e.to}}
	}
	return outcomes
}

func (m *mockGrid) AvailableCells() []game.Cell {
	return m.node.cells
}

func (m *mockGrid) Clone() game.Grid {
	return &mockGrid{node: m.node}
}

func (m *mockGrid) InsertTile(cell game.Cell, value int) {
	m.node = m.node.spawned[cell][value]
}

func (m *mockGrid) MaxTile() int       { return 0 }
func (m *mockGrid) Size() int          { return 1 }
func (m *mockGrid) At(row, col int) int { return 0 }

func mockEvaluate(g game.Grid) float64 {
	return g.(*mockGrid).node.value
}

func newTestSearch(pruning bool) *search {
	return &search{
		plyCap:   10,
		evaluate: mockEvaluate,
		spawns:   game.DefaultSpawns(),
		clock:    time.Now,
		pruning:  pruning,
		metrics:  metrics.NewCollector(),
	}
}

func farDeadline() time.Time {
	return time.Now().Add(time.Hour)
}

// prunedTree needs both alpha and beta cutoffs below the root; the true
// best move is Left with utility 30.
func prunedTree() *mockNode {
	y := chanceNode(same(leaf(10)))

	high := chanceNode(same(leaf(30)))
	low := chanceNode(same(leaf(3)))
	m := decisionNode(edge(game.Up, low), edge(game.Down, high))

	q := chanceNode(same(leaf(40)))
	p := chanceNode(same(leaf(1)))
	m2 := decisionNode(edge(game.Up, p), edge(game.Down, q))

	x := chanceNode(same(m), same(m2))
	return decisionNode(edge(game.Left, x), edge(game.Right, y))
}

// shallowTree cuts off the Up branch at its first cell; the true best move
// is Down with utility 8.
func shallowTree() *mockNode {
	b := chanceNode(mockOutcome{two: leaf(10), four: leaf(20)}, same(leaf(8)))
	a := chanceNode(same(leaf(5)), same(leaf(100)))
	return decisionNode(edge(game.Up, a), edge(game.Down, b))
}
