package agent

import (
	"context"
	"sync"

	"twenty48/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that plays a uniformly sampled
// legal move.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(ctx context.Context, board *game.Board) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}
	outcomes := board.AvailableMoves()
	if len(outcomes) == 0 {
		return Decision{}, nil
	}
	a.mu.Lock()
	sampled := a.rng.Intn(len(outcomes))
	a.mu.Unlock()
	return Decision{Move: outcomes[sampled].Move, HasMove: true}, nil
}
