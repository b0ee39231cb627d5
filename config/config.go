// Package config binds the CLI flags of spec §6 to a single Config
// struct via viper, following junjiewwang-perf-analysis/pkg/config's
// defaults-then-file-then-env-then-flags layering so the same solve can
// be driven from a config file, environment variables, or flags
// interchangeably.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every tunable the driver and CLI need for one solve
// (spec §6's flag list plus SPEC_FULL.md §14's additions).
type Config struct {
	// ContinuationPath is the path to a continuation table produced by
	// cmd/continuationgen.
	ContinuationPath string `mapstructure:"continuation"`
	// OutputPath is where the solved result (state-to-class mapping,
	// quotient CSR, and per-class value vector) is written.
	OutputPath string `mapstructure:"output"`

	// Preview is the bag/uniform automaton's preview queue depth (0..13).
	Preview int `mapstructure:"preview"`
	// Hold enables the hold-piece slot in the sequence automaton.
	Hold bool `mapstructure:"hold"`
	// Bag selects the 7-bag randomizer; otherwise the uniform-random
	// automaton is used.
	Bag bool `mapstructure:"bag"`

	// Epsilon is the value-iteration convergence threshold.
	Epsilon float64 `mapstructure:"epsilon"`
	// PosetBackend selects "dense" or "hierarchical"; "auto" defers to
	// the 1e5-class break-even point of SPEC_FULL.md §10.
	PosetBackend string `mapstructure:"poset-backend"`
	// Workers is accepted and validated as a flag but not passed to the
	// worker pool, which always runs runtime.NumCPU() goroutines.
	Workers int `mapstructure:"workers"`
}

// Sentinel errors for the config package.
var (
	// ErrBadPosetBackend indicates a --poset-backend value outside
	// {dense, hierarchical, auto}.
	ErrBadPosetBackend = fmt.Errorf("config: poset backend must be dense, hierarchical, or auto")
)

// Defaults returns a Config carrying spec §6's default values.
func Defaults() Config {
	return Config{
		OutputPath:   "values.bin",
		Preview:      6,
		Hold:         true,
		Bag:          true,
		Epsilon:      1e-6,
		PosetBackend: "auto",
		Workers:      0,
	}
}

// BindFlags registers every flag spec §6 and SPEC_FULL.md §14 require
// onto fs, seeded from Defaults().
func BindFlags(fs *pflag.FlagSet) {
	d := Defaults()
	fs.String("continuation", "", "path to the continuation table (required)")
	fs.String("output", d.OutputPath, "path to write the solved mapping, quotient and value vector")
	fs.Int("preview", d.Preview, "sequence automaton preview queue depth (0..13)")
	fs.Bool("hold", d.Hold, "enable the hold-piece slot")
	fs.Bool("bag", d.Bag, "use the 7-bag randomizer instead of uniform-random")
	fs.Float64("epsilon", d.Epsilon, "value-iteration convergence threshold")
	fs.String("poset-backend", d.PosetBackend, "poset backend: dense, hierarchical, or auto")
	fs.Int("workers", d.Workers, "worker pool size (accepted but not applied; the pool uses runtime.NumCPU())")
}

// Load builds a Config from fs's bound flags, environment variables
// (C4W_ prefixed), and an optional config file, in viper's usual
// precedence order (flags > env > file > defaults).
func Load(fs *pflag.FlagSet, configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("c4w")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", configFile, err)
		}
	}

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: binding flags: %w", err)
	}

	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants spec §6/§7 place on these flags.
func (c *Config) Validate() error {
	if c.Preview < 0 || c.Preview > 13 {
		return fmt.Errorf("config: preview must be in 0..13, got %d", c.Preview)
	}
	switch c.PosetBackend {
	case "dense", "hierarchical", "auto":
	default:
		return ErrBadPosetBackend
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("config: epsilon must be positive, got %g", c.Epsilon)
	}
	return nil
}
