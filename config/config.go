package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"twenty48/game"
	"twenty48/meta"
	"twenty48/searcher"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. TWENTY48_PLY_CAP or
// TWENTY48_WEIGHTS_TILE_SUM.
const EnvPrefix = "TWENTY48"

type Config struct {
	TimeBudget time.Duration `mapstructure:"time_budget"`
	PlyCap     int           `mapstructure:"ply_cap"`
	Pruning    bool          `mapstructure:"pruning"`
	Weights    game.Weights  `mapstructure:"weights"`
	Spawns     []game.Spawn  `mapstructure:"spawns"`

	Games      int    `mapstructure:"games"`
	Goroutines int    `mapstructure:"goroutines"`
	Seed       uint64 `mapstructure:"seed"`
	MaxMoves   int    `mapstructure:"max_moves"`
	OutputDir  string `mapstructure:"output_dir"` // Empty: no CSV output

	LogLevel string `mapstructure:"log_level"`
	Addr     string `mapstructure:"addr"`
	AgentURL string `mapstructure:"agent_url"` // Play against a remote agent instead of searching in process
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("time_budget", searcher.DefaultTimeBudget)
	v.SetDefault("ply_cap", searcher.DefaultPlyCap)
	v.SetDefault("pruning", true)

	w := game.DefaultWeights()
	v.SetDefault("weights.tile_sum", w.TileSum)
	v.SetDefault("weights.empty_cells", w.EmptyCells)
	v.SetDefault("weights.max_tile", w.MaxTile)
	v.SetDefault("weights.smoothness", w.Smoothness)
	v.SetDefault("weights.monotonicity", w.Monotonicity)
	v.SetDefault("weights.possible_mergers", w.PossibleMergers)
	v.SetDefault("spawns", game.DefaultSpawns())

	v.SetDefault("games", meta.GAMES)
	v.SetDefault("goroutines", meta.GO_ROUTINES)
	v.SetDefault("seed", 1)
	v.SetDefault("max_moves", meta.MAX_MOVES)
	v.SetDefault("output_dir", "")

	v.SetDefault("log_level", "info")
	v.SetDefault("addr", ":8080")
	v.SetDefault("agent_url", "")
}

// Load reads defaults, then the optional file at path (YAML, JSON or TOML
// by extension), then TWENTY48_* environment variables.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.TimeBudget <= 0 {
		errs = append(errs, fmt.Errorf("time_budget must be positive, got %v", c.TimeBudget))
	}
	if c.PlyCap < 0 {
		errs = append(errs, fmt.Errorf("ply_cap cannot be negative, got %d", c.PlyCap))
	}
	if c.Games < 1 {
		errs = append(errs, fmt.Errorf("games must be positive, got %d", c.Games))
	}
	if c.Goroutines < 1 {
		errs = append(errs, fmt.Errorf("goroutines must be positive, got %d", c.Goroutines))
	}
	if c.MaxMoves < 1 {
		errs = append(errs, fmt.Errorf("max_moves must be positive, got %d", c.MaxMoves))
	}
	if err := game.ValidateSpawns(c.Spawns); err != nil {
		errs = append(errs, fmt.Errorf("spawns: %w", err))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// SearcherOptions translates the search settings into expectimax options.
func (c Config) SearcherOptions() []searcher.Option {
	return []searcher.Option{
		searcher.WithTimeBudget(c.TimeBudget),
		searcher.WithPlyCap(c.PlyCap),
		searcher.WithWeights(c.Weights),
		searcher.WithSpawns(c.Spawns),
		searcher.WithPruning(c.Pruning),
	}
}
