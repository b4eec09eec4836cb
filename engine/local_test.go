package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"twenty48/agent"
	"twenty48/experiments/metrics"
	"twenty48/game"
	"twenty48/searcher"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

// fixedAgent always plays the same move.
type fixedAgent struct {
	move    game.Move
	hasMove bool
	err     error
}

func (a fixedAgent) FindMove(ctx context.Context, board *game.Board) (agent.Decision, error) {
	return agent.Decision{Move: a.move, HasMove: a.hasMove}, a.err
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("fresh board starts with two tiles", func(t *testing.T) {
		e := NewLocalEngine(fixedAgent{}, 1, WithMaxMoves(1))
		e.reset()

		require.Len(t, e.Board().AvailableCells(), game.DefaultSize*game.DefaultSize-2)
	})

	t.Run("same seed replays the same game", func(t *testing.T) {
		play := func() (int, int, int) {
			e := NewLocalEngine(agent.NewRandomAgent(3), 42, WithMaxMoves(200))
			gameMetric, _, err := e.Run(context.Background())
			require.NoError(t, err)
			return gameMetric.Score, gameMetric.MaxTile, gameMetric.TotalMoves
		}

		score1, max1, moves1 := play()
		score2, max2, moves2 := play()

		require.Equal(t, score1, score2)
		require.Equal(t, max1, max2)
		require.Equal(t, moves1, moves2)
	})

	t.Run("stops at the move limit", func(t *testing.T) {
		e := NewLocalEngine(agent.NewRandomAgent(3), 7, WithMaxMoves(5))

		gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, 5, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 5)
		require.Equal(t, []int{1, 2, 3, 4, 5}, lo.Map(moveMetrics, func(m metrics.MoveMetric, _ int) int { return m.Step }))
		require.Equal(t, lo.SumBy(moveMetrics, func(m metrics.MoveMetric) int { return m.Gained }), gameMetric.Score,
			"Score should be the sum of merge points")
	})

	t.Run("plays until no move is legal", func(t *testing.T) {
		e := NewLocalEngine(agent.NewRandomAgent(5), 11)

		gameMetric, _, err := e.Run(context.Background())

		require.NoError(t, err)
		require.True(t, e.Board().IsGameOver(), "Game should end on a locked board")
		require.Equal(t, e.Board().MaxTile(), gameMetric.MaxTile)
		require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))
	})

	t.Run("locked start board plays nothing", func(t *testing.T) {
		board := game.MustBoard([][]int{
			{2, 4, 2, 4},
			{4, 2, 4, 2},
			{2, 4, 2, 4},
			{4, 2, 4, 2},
		})
		e := NewLocalEngine(fixedAgent{}, 1, WithBoard(board))

		gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Zero(t, gameMetric.TotalMoves)
		require.Empty(t, moveMetrics)
		require.Equal(t, 4, gameMetric.MaxTile)
	})

	t.Run("reaching the winning tile wins", func(t *testing.T) {
		board := game.MustBoard([][]int{
			{1024, 1024, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		})
		e := NewLocalEngine(fixedAgent{move: game.Left, hasMove: true}, 1, WithBoard(board), WithMaxMoves(1))

		gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.True(t, gameMetric.Won)
		require.Equal(t, 2048, gameMetric.MaxTile)
		require.Equal(t, 2048, gameMetric.Score)
		require.Equal(t, "LEFT", moveMetrics[0].Move)
		require.Equal(t, 1024, board.At(0, 0), "Start board should not be modified")
	})

	t.Run("illegal move is rejected", func(t *testing.T) {
		board := game.NewBoard(game.DefaultSize)
		board.InsertTile(game.Cell{Row: 0, Col: 0}, 2)
		e := NewLocalEngine(fixedAgent{move: game.Up, hasMove: true}, 1, WithBoard(board))

		_, _, err := e.Run(context.Background())

		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("passing while moves remain is rejected", func(t *testing.T) {
		board := game.NewBoard(game.DefaultSize)
		board.InsertTile(game.Cell{Row: 0, Col: 0}, 2)
		e := NewLocalEngine(fixedAgent{}, 1, WithBoard(board))

		_, _, err := e.Run(context.Background())

		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("agent errors propagate", func(t *testing.T) {
		boom := errors.New("boom")
		e := NewLocalEngine(fixedAgent{err: boom}, 1)

		_, _, err := e.Run(context.Background())

		require.ErrorIs(t, err, boom)
		require.NotErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("cancelled context stops the game", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e := NewLocalEngine(agent.NewRandomAgent(1), 1)

		gameMetric, _, err := e.Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
		require.Zero(t, gameMetric.TotalMoves)
	})

	t.Run("search agent records metrics per move", func(t *testing.T) {
		a := agent.NewSearchAgent(searcher.NewExpectimax(
			searcher.WithPlyCap(1),
			searcher.WithTimeBudget(time.Hour),
			searcher.WithMetrics(),
		))
		e := NewLocalEngine(a, 9, WithMaxMoves(3))

		_, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Len(t, moveMetrics, 3)
		for _, m := range moveMetrics {
			require.Positive(t, m.Nodes)
			require.Equal(t, 1, m.PlyCap)
		}
	})
}

func TestNewLocalEngine(t *testing.T) {
	require.Panics(t, func() { NewLocalEngine(nil, 1) })
	require.Panics(t, func() {
		NewLocalEngine(fixedAgent{}, 1, WithSpawns([]game.Spawn{{Value: 2, Probability: 2}}))
	})
}
