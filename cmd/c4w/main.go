// Command c4w is the solver CLI of spec §6: it loads a continuation
// table produced offline by cmd/continuationgen, builds the product
// state space for the chosen sequence-automaton parameters, and either
// fully solves it (`solve`) or produces the unpruned minimized baseline
// (`build`) cmd/statecheck verifies a solve against.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/narrowstack/c4w/config"
	"github.com/narrowstack/c4w/continuation"
	"github.com/narrowstack/c4w/driver"
	"github.com/narrowstack/c4w/logging"
	"github.com/narrowstack/c4w/product"
	"github.com/narrowstack/c4w/sequence"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	root := &cobra.Command{
		Use:   "c4w",
		Short: "Expected-line-clears solver for the center-4-wide stacking game",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "optional config file (yaml/json/toml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level progress logging")

	root.AddCommand(solveCmd(), buildCmd())

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("c4w failed")
		os.Exit(1)
	}
}

func solveCmd() *cobra.Command {
	fs := pflag.NewFlagSet("solve", pflag.ContinueOnError)
	config.BindFlags(fs)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run the full build/minimize/prune/prove/value-iterate pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(fs, false)
		},
	}
	cmd.Flags().AddFlagSet(fs)
	cmd.MarkFlagRequired("continuation")
	return cmd
}

func buildCmd() *cobra.Command {
	fs := pflag.NewFlagSet("build", pflag.ContinueOnError)
	config.BindFlags(fs)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Materialize and minimize only, skipping prune/prove (baseline for statecheck)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(fs, true)
		},
	}
	cmd.Flags().AddFlagSet(fs)
	cmd.MarkFlagRequired("continuation")
	return cmd
}

func runPipeline(fs *pflag.FlagSet, baselineOnly bool) error {
	logger := logging.Default(verbose)

	cfg, err := config.Load(fs, cfgFile)
	if err != nil {
		return err
	}

	f, err := os.Open(cfg.ContinuationPath)
	if err != nil {
		return fmt.Errorf("opening continuation table: %w", err)
	}
	defer f.Close()

	table, err := continuation.Load(f)
	if err != nil {
		return fmt.Errorf("loading continuation table: %w", err)
	}
	logger.Info().Int("fields", table.Len()).Msg("loaded continuation table")

	var automaton sequence.Automaton
	if cfg.Bag {
		automaton = sequence.NewBag(cfg.Preview, cfg.Hold)
	} else {
		automaton = sequence.NewUniform(cfg.Preview, cfg.Hold)
	}

	enumerator, err := product.New(table, automaton)
	if err != nil {
		return fmt.Errorf("building product enumerator: %w", err)
	}
	logger.Info().Int("productSize", enumerator.Len()).Msg("product state space bounded")

	pipeline := driver.Pipeline{Epsilon: cfg.Epsilon, PosetBackend: cfg.PosetBackend, Log: logger}

	var result driver.Result
	if baselineOnly {
		result, err = pipeline.RunBaseline(enumerator)
	} else {
		result, err = pipeline.Run(enumerator)
	}
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	if err := driver.Save(out, result); err != nil {
		return fmt.Errorf("writing solved states: %w", err)
	}

	logger.Info().
		Int("classes", result.Quotient.RowCount()).
		Int("iterations", result.Iterations).
		Bool("hasLoop", result.HasLoop).
		Str("output", cfg.OutputPath).
		Msg("solve complete")
	return nil
}
