package engine

import (
	"context"
	"fmt"
	"time"

	"twenty48/agent"
	"twenty48/experiments/metrics"
	"twenty48/game"
	"twenty48/meta"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type Option func(e *LocalEngine)

func WithMaxMoves(maxMoves int) Option {
	return func(e *LocalEngine) {
		if maxMoves > 0 {
			e.maxMoves = maxMoves
		}
	}
}

func WithSpawns(spawns []game.Spawn) Option {
	return func(e *LocalEngine) {
		if len(spawns) > 0 {
			e.spawns = spawns
		}
	}
}

func WithBoardSize(size int) Option {
	return func(e *LocalEngine) {
		if size > 0 {
			e.size = size
		}
	}
}

// WithBoard starts the game from a copy of board instead of a fresh board
// with random tiles.
func WithBoard(board *game.Board) Option {
	return func(e *LocalEngine) {
		e.start = board
	}
}

// LocalEngine plays a single-player game in process: the agent moves, then
// the engine inserts a random tile.
type LocalEngine struct {
	agent    agent.Agent
	seed     uint64
	maxMoves int
	size     int
	spawns   []game.Spawn
	start    *game.Board
	spawner  *game.Spawner
	board    *game.Board
}

var _ Engine = (*LocalEngine)(nil)

func NewLocalEngine(a agent.Agent, seed uint64, options ...Option) *LocalEngine {
	if a == nil {
		panic("engine needs an agent")
	}
	e := &LocalEngine{ // Default values
		agent:    a,
		seed:     seed,
		maxMoves: meta.MAX_MOVES,
		size:     game.DefaultSize,
		spawns:   game.DefaultSpawns(),
	}
	for _, option := range options {
		option(e)
	}
	if err := game.ValidateSpawns(e.spawns); err != nil {
		panic(fmt.Sprintf("invalid spawns: %v", err))
	}
	e.spawner = game.NewSpawner(seed, e.spawns)
	return e
}

// Board returns the current board; after Run it is the final position.
func (e *LocalEngine) Board() *game.Board {
	return e.board
}

func (e *LocalEngine) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{Seed: e.seed, StartTime: time.Now()}
	moveMetrics := []metrics.MoveMetric{}
	e.reset()

	log.Debug().Uint64("seed", e.seed).Msgf("game started on\n%v", e.board)

	var err error
	for gameMetric.TotalMoves < e.maxMoves && !e.board.IsGameOver() {
		var moveMetric metrics.MoveMetric
		moveMetric, err = e.step(ctx, gameMetric.TotalMoves+1)
		if err != nil {
			break
		}
		gameMetric.TotalMoves++
		gameMetric.Score += moveMetric.Gained
		moveMetrics = append(moveMetrics, moveMetric)
	}

	gameMetric.MaxTile = e.board.MaxTile()
	gameMetric.Won = gameMetric.MaxTile >= meta.WINNING_TILE
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)

	if err != nil {
		return gameMetric, moveMetrics, err
	}
	log.Debug().
		Uint64("seed", e.seed).
		Int("score", gameMetric.Score).
		Int("max_tile", gameMetric.MaxTile).
		Int("moves", gameMetric.TotalMoves).
		Msg("game over")
	return gameMetric, moveMetrics, nil
}

func (e *LocalEngine) reset() {
	if e.start != nil {
		e.board = e.start.Copy()
		return
	}
	e.board = game.NewBoard(e.size)
	for i := 0; i < meta.INITIAL_TILES; i++ {
		e.spawner.Spawn(e.board)
	}
}

// step asks the agent for one move, applies it and spawns the next tile.
func (e *LocalEngine) step(ctx context.Context, step int) (metrics.MoveMetric, error) {
	if err := ctx.Err(); err != nil {
		return metrics.MoveMetric{}, err
	}

	decision, err := e.agent.FindMove(ctx, e.board.Copy())
	if err != nil {
		return metrics.MoveMetric{}, fmt.Errorf("move %d: %w", step, err)
	}
	legal := lo.Map(e.board.AvailableMoves(), func(o game.Outcome, _ int) game.Move {
		return o.Move
	})
	if !decision.HasMove {
		return metrics.MoveMetric{}, fmt.Errorf("%w: move %d: agent passed with %v available", ErrIllegalMove, step, legal)
	}
	if !lo.Contains(legal, decision.Move) {
		return metrics.MoveMetric{}, fmt.Errorf("%w: move %d: %v on\n%v", ErrIllegalMove, step, decision.Move, e.board)
	}

	next, gained, _ := e.board.Slide(decision.Move)
	e.board = next
	e.spawner.Spawn(e.board)

	log.Debug().Int("step", step).Stringer("move", decision.Move).Int("gained", gained).Msg("move played")

	return metrics.MoveMetric{
		Step:         step,
		Move:         decision.Move.String(),
		Gained:       gained,
		SearchMetric: decision.Metric,
	}, nil
}
