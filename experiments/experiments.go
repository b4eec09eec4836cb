package experiments

import (
	"context"
	"fmt"

	"twenty48/agent"
	"twenty48/config"
	"twenty48/engine"
	"twenty48/experiments/metrics"
	"twenty48/searcher"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Summary reports the outcome of every game of an experiment, in game order.
type Summary struct {
	MaxTiles  []int
	Scores    []int
	Best      int
	Wins      int
	MeanScore float64
	Dir       string // Where the CSV records went, if anywhere
}

// Run plays cfg.Games games with the configured agent and reports each
// game's max tile.
func Run(ctx context.Context, cfg config.Config) (Summary, error) {
	configs := []metrics.AgentConfig{
		{ID: 1, TimeBudget: cfg.TimeBudget, PlyCap: cfg.PlyCap, Pruning: cfg.Pruning},
	}
	return runExperiment(ctx, "games", cfg, configs)
}

// RunPruningExperiment plays the same seeded games with and without
// alpha-beta cutoffs.
func RunPruningExperiment(ctx context.Context, cfg config.Config) (Summary, error) {
	configs := []metrics.AgentConfig{
		{ID: 1, TimeBudget: cfg.TimeBudget, PlyCap: cfg.PlyCap, Pruning: true},
		{ID: 2, TimeBudget: cfg.TimeBudget, PlyCap: cfg.PlyCap, Pruning: false},
	}
	return runExperiment(ctx, "pruning", cfg, configs)
}

type gameResult struct {
	record metrics.GameRecord
	moves  []metrics.MoveMetric
}

func runExperiment(ctx context.Context, name string, cfg config.Config, configs []metrics.AgentConfig) (Summary, error) {
	log.Info().Msgf("starting %s experiment...", name)

	results := make([]gameResult, len(configs)*cfg.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Goroutines)

	for ci, agentConfig := range configs {
		agentConfig := agentConfig
		for i := 0; i < cfg.Games; i++ {
			id := ci*cfg.Games + i + 1
			// Every agent config sees the same sequence of seeds
			seed := cfg.Seed + uint64(i)
			g.Go(func() error {
				gameMetric, moveMetrics, err := runGame(ctx, cfg, agentConfig, seed)
				if err != nil {
					return fmt.Errorf("game %d: %w", id, err)
				}
				results[id-1] = gameResult{
					record: metrics.GameRecord{ID: id, Agent: agentConfig.ID, GameMetric: gameMetric},
					moves:  moveMetrics,
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := summarize(results)
	for i, maxTile := range summary.MaxTiles {
		log.Info().Msgf("game %d: max tile is %d", i+1, maxTile)
	}
	log.Info().
		Ints("max_tiles", summary.MaxTiles).
		Int("best", summary.Best).
		Int("wins", summary.Wins).
		Float64("mean_score", summary.MeanScore).
		Msgf("completed %s experiment", name)

	if cfg.OutputDir == "" {
		return summary, nil
	}
	dir, err := store(cfg.OutputDir, name, configs, results)
	if err != nil {
		return summary, err
	}
	summary.Dir = dir
	return summary, nil
}

// runGame executes a single game and returns its metrics
func runGame(ctx context.Context, cfg config.Config, agentConfig metrics.AgentConfig, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	e := engine.NewLocalEngine(
		createAgent(cfg, agentConfig),
		seed,
		engine.WithMaxMoves(cfg.MaxMoves),
		engine.WithSpawns(cfg.Spawns),
	)
	return e.Run(ctx)
}

func createAgent(cfg config.Config, agentConfig metrics.AgentConfig) agent.Agent {
	if cfg.AgentURL != "" {
		return agent.NewRemoteAgent(cfg.AgentURL, nil)
	}
	options := append(cfg.SearcherOptions(),
		searcher.WithTimeBudget(agentConfig.TimeBudget),
		searcher.WithPlyCap(agentConfig.PlyCap),
		searcher.WithPruning(agentConfig.Pruning),
		searcher.WithMetrics(),
	)
	return agent.NewSearchAgent(searcher.NewExpectimax(options...))
}

func summarize(results []gameResult) Summary {
	maxTiles := lo.Map(results, func(r gameResult, _ int) int { return r.record.MaxTile })
	scores := lo.Map(results, func(r gameResult, _ int) int { return r.record.Score })
	summary := Summary{
		MaxTiles: maxTiles,
		Scores:   scores,
		Best:     lo.Max(maxTiles),
		Wins:     lo.CountBy(results, func(r gameResult) bool { return r.record.Won }),
	}
	if len(scores) > 0 {
		summary.MeanScore = float64(lo.Sum(scores)) / float64(len(scores))
	}
	return summary
}

func store(root, name string, configs []metrics.AgentConfig, results []gameResult) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	gameRecords := lo.Map(results, func(r gameResult, _ int) metrics.GameRecord { return r.record })
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	moveRecords := lo.FlatMap(results, func(r gameResult, _ int) []metrics.MoveRecord {
		return lo.Map(r.moves, func(m metrics.MoveMetric, _ int) metrics.MoveRecord {
			return metrics.MoveRecord{Game: r.record.ID, MoveMetric: m}
		})
	})
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}
