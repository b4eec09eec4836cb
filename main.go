package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"twenty48/agent"
	"twenty48/config"
	"twenty48/experiments"
	"twenty48/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML, JSON or TOML config file")
	serve := flag.Bool("serve", false, "Serve the agent over HTTP instead of playing games")
	addr := flag.String("addr", "", "Listen address when serving")
	games := flag.Int("games", 0, "Number of games to play")
	out := flag.String("out", "", "Directory for CSV records")
	experiment := flag.String("experiment", "games", "Experiment to run: games or pruning")
	agentURL := flag.String("agent", "", "Base URL of a remote agent to play with")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	// Flags win over file and environment
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *games > 0 {
		cfg.Games = *games
	}
	if *out != "" {
		cfg.OutputDir = *out
	}
	if *agentURL != "" {
		cfg.AgentURL = *agentURL
	}
	zerolog.SetGlobalLevel(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *serve {
		a := agent.NewSearchAgent(searcher.NewExpectimax(cfg.SearcherOptions()...))
		if err := agent.NewServer(a).ListenAndServe(ctx, cfg.Addr); err != nil {
			log.Fatal().Err(err).Msg("agent server failed")
		}
		return
	}

	var summary experiments.Summary
	switch *experiment {
	case "games":
		summary, err = experiments.Run(ctx, cfg)
	case "pruning":
		summary, err = experiments.RunPruningExperiment(ctx, cfg)
	default:
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}

	fmt.Println("Max tile of each game:")
	fmt.Println(summary.MaxTiles)
}
