package agent

import (
	"context"

	"twenty48/experiments/metrics"
	"twenty48/game"
	"twenty48/searcher"
)

// Decision is an agent's answer for one board. HasMove is false only when
// the board has no legal move.
type Decision struct {
	Move    game.Move
	HasMove bool
	Metric  metrics.SearchMetric
}

type Agent interface {
	// FindMove returns the move to play and the search metrics (if collected)
	FindMove(ctx context.Context, board *game.Board) (Decision, error)
}

type searchAgent struct {
	expectimax *searcher.Expectimax
}

// NewSearchAgent returns an agent that plays the expectimax decision.
func NewSearchAgent(expectimax *searcher.Expectimax) Agent {
	return searchAgent{expectimax: expectimax}
}

func (a searchAgent) FindMove(ctx context.Context, board *game.Board) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}
	result, metric := a.expectimax.Search(board)
	return Decision{Move: result.Move, HasMove: result.HasMove, Metric: metric}, nil
}
