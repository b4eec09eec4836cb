package engine

import (
	"context"
	"errors"

	"twenty48/experiments/metrics"
)

var ErrIllegalMove = errors.New("illegal move")

type Engine interface {
	// Run plays a game until no move is legal or a max number of moves is reached
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
