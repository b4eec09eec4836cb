package game

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// Spawn is one possible tile insertion value and how likely it is.
type Spawn struct {
	Value       int     `mapstructure:"value" json:"value"`
	Probability float64 `mapstructure:"probability" json:"probability"`
}

// DefaultSpawns mirrors the game: a 2 nine times out of ten, otherwise a 4.
func DefaultSpawns() []Spawn {
	return []Spawn{
		{Value: 2, Probability: 0.9},
		{Value: 4, Probability: 0.1},
	}
}

// ValidateSpawns checks that values are powers of two and probabilities
// form a distribution.
func ValidateSpawns(spawns []Spawn) error {
	if len(spawns) == 0 {
		return fmt.Errorf("no spawn values")
	}
	total := 0.0
	for _, s := range spawns {
		if s.Value < 2 || s.Value&(s.Value-1) != 0 {
			return fmt.Errorf("spawn value %d is not a power of two", s.Value)
		}
		if s.Probability < 0 {
			return fmt.Errorf("spawn value %d has negative probability %v", s.Value, s.Probability)
		}
		total += s.Probability
	}
	if math.Abs(total-1) > 1e-9 {
		return fmt.Errorf("spawn probabilities sum to %v, want 1", total)
	}
	return nil
}

// Spawner inserts random tiles the way the game does after each move.
type Spawner struct {
	rng    *rand.Rand
	spawns []Spawn
}

func NewSpawner(seed uint64, spawns []Spawn) *Spawner {
	return &Spawner{
		rng:    rand.New(rand.NewSource(seed)),
		spawns: spawns,
	}
}

// Spawn places one random tile on a random empty cell. It reports false
// when the grid is full.
func (s *Spawner) Spawn(g Grid) (Cell, int, bool) {
	cells := g.AvailableCells()
	if len(cells) == 0 {
		return Cell{}, 0, false
	}
	cell := cells[s.rng.Intn(len(cells))]
	value := s.pickValue()
	g.InsertTile(cell, value)
	return cell, value, true
}

func (s *Spawner) pickValue() int {
	sampled := s.rng.Float64()
	cumulative := 0.0
	for _, spawn := range s.spawns {
		cumulative += spawn.Probability
		if sampled < cumulative {
			return spawn.Value
		}
	}
	return s.spawns[len(s.spawns)-1].Value // Fallback in case of rounding errors
}
