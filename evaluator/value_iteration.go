// Package evaluator implements spec §4.7's Jacobi value iteration and
// spec §4.8's loop-existence check, the two closing passes of the
// pipeline that turn a proved, minimized transition system into the
// expected-line-clears number the whole system exists to compute.
//
// Grounded on original_source/src/evaluator/value_iteration.rs's
// ValueIterator (the "+1 per non-empty branch, averaged over all
// branches including losing ones" Jacobi sweep — the Open Question
// spec §9 leaves unresolved and SPEC_FULL.md §12 fixes) and
// .../evaluator/loop_finder.rs's LoopFinder (reverse-BFS dead-edge
// elimination from states with an already-empty branch).
package evaluator

import (
	"math"

	"github.com/narrowstack/c4w/csr"
	"github.com/narrowstack/c4w/internal/workerpool"
)

// ValueIterate runs the Jacobi fixed-point sweep to convergence: for
// state c, for each branch b, branchValue = max(0, max over s in b of
// values[s]+1); values[c] = mean over ALL branches (including empty
// ones, which contribute 0). Iterates until the largest per-state
// change drops below epsilon, returning the converged values and the
// iteration count.
func ValueIterate(c *csr.CSR, epsilon float64) ([]float64, int) {
	n := c.RowCount()
	values := make([]float64, n)

	for iterations := 0; ; iterations++ {
		newValues := make([]float64, n)
		diffs := make([]float64, n)

		workerpool.ForEachIndex(n, func(state int) {
			arity := c.Arity(state)
			var sum float64
			for k := 0; k < arity; k++ {
				begin, end := c.Branch(state, k)
				succ := c.Successors(begin, end)
				branchValue := 0.0
				for _, s := range succ {
					if v := values[s] + 1; v > branchValue {
						branchValue = v
					}
				}
				sum += branchValue
			}
			newValue := 0.0
			if arity > 0 {
				newValue = sum / float64(arity)
			}
			newValues[state] = newValue
			diffs[state] = math.Abs(newValue - values[state])
		})

		maxDiff := 0.0
		for _, d := range diffs {
			if d > maxDiff {
				maxDiff = d
			}
		}
		values = newValues
		if maxDiff < epsilon {
			return values, iterations + 1
		}
	}
}
