// Command statecheck is the safety-check tool of spec §8 ("Prover
// safety"): pruning and proof-based pruning are supposed to be
// value-preserving, so the unpruned minimized baseline (cmd/c4w build)
// and the fully proved solve (cmd/c4w solve) of the same continuation
// input must agree, per original row, to within epsilon. Disagreement
// means one of those passes has a bug, and statecheck exits non-zero.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/narrowstack/c4w/driver"
)

func main() {
	var (
		baselinePath string
		provedPath   string
		epsilon      float64
	)

	cmd := &cobra.Command{
		Use:   "statecheck",
		Short: "Verify a proved solve agrees with its unpruned baseline",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(baselinePath, provedPath, epsilon)
		},
	}
	cmd.Flags().StringVar(&baselinePath, "baseline", "", "path to the baseline output of `c4w build` (required)")
	cmd.Flags().StringVar(&provedPath, "proved", "", "path to the solved output of `c4w solve` (required)")
	cmd.Flags().Float64Var(&epsilon, "epsilon", 1e-6, "maximum allowed per-state value disagreement")
	cmd.MarkFlagRequired("baseline")
	cmd.MarkFlagRequired("proved")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(baselinePath, provedPath string, epsilon float64) error {
	baseline, err := loadResult(baselinePath)
	if err != nil {
		return fmt.Errorf("loading baseline: %w", err)
	}
	proved, err := loadResult(provedPath)
	if err != nil {
		return fmt.Errorf("loading proved solve: %w", err)
	}

	if len(baseline.Mapping) != len(proved.Mapping) {
		return fmt.Errorf("statecheck: baseline covers %d original states, proved covers %d — not the same continuation input", len(baseline.Mapping), len(proved.Mapping))
	}

	worst := 0.0
	mismatches := 0
	for i := range baseline.Mapping {
		bv := baseline.Values[baseline.Mapping[i]]
		pv := proved.Values[proved.Mapping[i]]
		diff := math.Abs(bv - pv)
		if diff > worst {
			worst = diff
		}
		if diff > epsilon {
			mismatches++
		}
	}

	if mismatches > 0 {
		return fmt.Errorf("statecheck: %d of %d original states disagree beyond epsilon=%g (worst=%g)", mismatches, len(baseline.Mapping), epsilon, worst)
	}

	fmt.Printf("statecheck: OK — %d original states agree within epsilon=%g (worst=%g)\n", len(baseline.Mapping), epsilon, worst)
	return nil
}

func loadResult(path string) (driver.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return driver.Result{}, err
	}
	defer f.Close()
	return driver.Load(f)
}
