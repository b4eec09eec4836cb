package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpawner(t *testing.T) {
	t.Run("fills an empty cell with a spawn value", func(t *testing.T) {
		spawner := NewSpawner(1, DefaultSpawns())
		board := NewBoard(DefaultSize)

		cell, value, ok := spawner.Spawn(board)

		require.True(t, ok)
		require.Contains(t, []int{2, 4}, value)
		require.Equal(t, value, board.At(cell.Row, cell.Col), "Spawned tile should be on the board")
		require.Len(t, board.AvailableCells(), 15)
	})

	t.Run("full board", func(t *testing.T) {
		spawner := NewSpawner(1, DefaultSpawns())
		board := MustBoard(lockedCells)

		_, _, ok := spawner.Spawn(board)

		require.False(t, ok, "Nothing can spawn on a full board")
	})

	t.Run("same seed reproduces the same tiles", func(t *testing.T) {
		a, b := NewBoard(DefaultSize), NewBoard(DefaultSize)
		sa, sb := NewSpawner(42, DefaultSpawns()), NewSpawner(42, DefaultSpawns())
		for i := 0; i < 8; i++ {
			sa.Spawn(a)
			sb.Spawn(b)
		}

		require.True(t, a.Equal(b))
	})

	t.Run("follows the distribution", func(t *testing.T) {
		spawner := NewSpawner(7, DefaultSpawns())
		fours := 0
		const draws = 20000
		for i := 0; i < draws; i++ {
			if spawner.pickValue() == 4 {
				fours++
			}
		}

		require.InDelta(t, 0.1, float64(fours)/draws, 0.02)
	})
}

func TestValidateSpawns(t *testing.T) {
	require.NoError(t, ValidateSpawns(DefaultSpawns()))
	require.Error(t, ValidateSpawns(nil))
	require.Error(t, ValidateSpawns([]Spawn{{Value: 3, Probability: 1}}), "Values must be powers of two")
	require.Error(t, ValidateSpawns([]Spawn{{Value: 2, Probability: 0.5}}), "Probabilities must sum to one")
	require.Error(t, ValidateSpawns([]Spawn{{Value: 2, Probability: 1.5}, {Value: 4, Probability: -0.5}}))
}
