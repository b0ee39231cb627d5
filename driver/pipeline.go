package driver

import (
	"github.com/rs/zerolog"

	"github.com/narrowstack/c4w/csr"
	"github.com/narrowstack/c4w/evaluator"
	"github.com/narrowstack/c4w/minimizer"
	"github.com/narrowstack/c4w/poset"
	"github.com/narrowstack/c4w/product"
	"github.com/narrowstack/c4w/prover"
	"github.com/narrowstack/c4w/pruner"
)

// hierarchicalBreakEven is the class-count threshold above which
// PosetBackend "auto" switches from poset.NewDense to
// poset.NewHierarchical (SPEC_FULL.md §10's "defaulting to hierarchical
// automatically above 1e5 classes").
const hierarchicalBreakEven = 100_000

// Pipeline carries the knobs a solve needs beyond the transitions
// themselves: the convergence threshold, the poset backend selector, and
// the logger progress events are emitted to.
type Pipeline struct {
	Epsilon      float64
	PosetBackend string // "dense", "hierarchical", or "auto"
	Log          zerolog.Logger
}

// Result is the outcome of one full solve (spec §2's driver pipeline).
type Result struct {
	// Mapping carries each row of the built product CSR to its final
	// proved-and-minimized class id.
	Mapping []int32
	// Quotient is the final proved quotient transition system.
	Quotient *csr.CSR
	// Values holds the expected-line-clears value of each class in
	// Quotient, indexed by class id.
	Values []float64
	// Iterations is the number of Jacobi sweeps value iteration took to
	// converge.
	Iterations int
	// HasLoop is true when the proved quotient still contains a subset
	// of states that can survive forever, which makes Values
	// (spec §4.8) not a meaningful fixed point.
	HasLoop bool
}

// Run executes build -> minimize -> (prune <-> minimize)* -> prove ->
// value-iterate over enumerator, logging a progress event after every
// pass (spec §6).
func (p Pipeline) Run(enumerator *product.Enumerator) (Result, error) {
	built, err := Build(enumerator)
	if err != nil {
		return Result{}, err
	}
	p.Log.Info().
		Int("states", built.RowCount()).
		Int("edges", built.EdgeCount()).
		Msg("build: materialized reachable product states")

	min0 := minimizer.Minimize(built)
	mapping := min0.ClassOf
	current := min0.Quotient
	p.Log.Info().
		Int("original", built.RowCount()).
		Int("classes", current.RowCount()).
		Msg("minimize: partition-refinement converged")

	for {
		pruned := pruner.Prune(current)
		p.Log.Info().
			Int("classes", current.RowCount()).
			Int("pruned", pruned.Pruned).
			Bool("changed", pruned.Changed).
			Msg("prune: dominance pass complete")
		if !pruned.Changed {
			break
		}

		min := minimizer.Minimize(pruned.Quotient)
		mapping = compose(mapping, min.ClassOf)
		current = min.Quotient
		p.Log.Info().
			Int("previous", pruned.Quotient.RowCount()).
			Int("classes", current.RowCount()).
			Msg("minimize: re-converged after pruning")
	}

	preProve := current.RowCount()
	newPoset := p.posetFactory(preProve)
	proved := prover.RunWithBackend(current, newPoset)
	mapping = compose(mapping, proved.Mapping)
	current = proved.Quotient
	p.Log.Info().
		Int("previous", preProve).
		Int("classes", current.RowCount()).
		Msg("prove: proof-based pruning converged")

	loop := evaluator.HasLoop(current)
	if loop {
		p.Log.Warn().Msg("evaluate: transition system contains a surviving loop; values are not a fixed point")
	}

	values, iterations := evaluator.ValueIterate(current, p.Epsilon)
	p.Log.Info().
		Int("iterations", iterations).
		Float64("epsilon", p.Epsilon).
		Msg("evaluate: value iteration converged")

	return Result{
		Mapping:    mapping,
		Quotient:   current,
		Values:     values,
		Iterations: iterations,
		HasLoop:    loop,
	}, nil
}

// RunBaseline executes only build -> minimize -> value-iterate, skipping
// dominance pruning and proof-based pruning entirely. cmd/c4w's `build`
// subcommand uses this to produce the baseline cmd/statecheck compares a
// full Run's output against (spec §8 "Prover safety"): since pruning and
// proving are value-preserving by construction, the unpruned minimized
// system's values must agree with the fully reduced system's values up
// to epsilon, or one of those passes has a bug.
func (p Pipeline) RunBaseline(enumerator *product.Enumerator) (Result, error) {
	built, err := Build(enumerator)
	if err != nil {
		return Result{}, err
	}
	p.Log.Info().
		Int("states", built.RowCount()).
		Int("edges", built.EdgeCount()).
		Msg("build: materialized reachable product states")

	min0 := minimizer.Minimize(built)
	p.Log.Info().
		Int("original", built.RowCount()).
		Int("classes", min0.Quotient.RowCount()).
		Msg("minimize: partition-refinement converged")

	values, iterations := evaluator.ValueIterate(min0.Quotient, p.Epsilon)
	p.Log.Info().
		Int("iterations", iterations).
		Float64("epsilon", p.Epsilon).
		Msg("evaluate: value iteration converged (baseline, unpruned)")

	return Result{
		Mapping:    min0.ClassOf,
		Quotient:   min0.Quotient,
		Values:     values,
		Iterations: iterations,
		HasLoop:    evaluator.HasLoop(min0.Quotient),
	}, nil
}

// posetFactory resolves "dense"/"hierarchical"/"auto" against the state
// count the prover is about to run over.
func (p Pipeline) posetFactory(classCount int) func(n int, geq func(i, j int) bool) poset.Poset {
	backend := p.PosetBackend
	if backend == "" || backend == "auto" {
		if classCount > hierarchicalBreakEven {
			backend = "hierarchical"
		} else {
			backend = "dense"
		}
	}
	if backend == "hierarchical" {
		return func(n int, geq func(i, j int) bool) poset.Poset { return poset.NewHierarchical(n, geq) }
	}
	return func(n int, geq func(i, j int) bool) poset.Poset { return poset.NewDense(n, geq) }
}

// compose chains prev (originalRow -> classA) with next (classA ->
// classB) into a single originalRow -> classB mapping.
func compose(prev, next []int32) []int32 {
	out := make([]int32, len(prev))
	for i, c := range prev {
		out[i] = next[c]
	}
	return out
}
