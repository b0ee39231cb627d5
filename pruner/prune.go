// Package pruner implements the dominance-pruning pass of spec §4.5 /
// SPEC_FULL.md §9: within a single branch, a successor state the player
// would never rationally choose over another reachable successor in the
// same branch is redundant and can be dropped from the CSR, shrinking
// the state space before (and between) rounds of minimization.
//
// Grounded on original_source/src/pruner/plain.rs's PlainPruner: collect
// candidate pairs of states that co-occur as alternatives within some
// branch, test each pair for dominance via the GCD/LCM-multiplier
// bipartite-matching construction in dominance.go, then filter every
// branch's successor list against the discovered dominance edges.
package pruner

import (
	"github.com/narrowstack/c4w/csr"
	"github.com/narrowstack/c4w/internal/workerpool"
)

// Result is the outcome of one pruning pass.
type Result struct {
	Quotient *csr.CSR
	// Pruned is the number of (node, branch, successor) entries removed.
	Pruned int
	// Changed is true when at least one successor was removed, signalling
	// the driver should re-minimize and prune again.
	Changed bool
}

type pair struct{ a, b int32 }

// Prune runs one dominance-pruning pass over c.
func Prune(c *csr.CSR) Result {
	n := c.RowCount()

	pairSets := workerpool.AggregateIndex(n,
		func(i int) (int, map[pair]struct{}) {
			local := make(map[pair]struct{})
			arity := c.Arity(i)
			for k := 0; k < arity; k++ {
				begin, end := c.Branch(i, k)
				succ := c.Successors(begin, end)
				for x := 0; x < len(succ); x++ {
					for y := x + 1; y < len(succ); y++ {
						local[orderedPair(succ[x], succ[y])] = struct{}{}
					}
				}
			}
			return 0, local
		},
		func(a, b map[pair]struct{}) map[pair]struct{} {
			for p := range b {
				a[p] = struct{}{}
			}
			return a
		},
	)
	candidates := make([]pair, 0)
	for _, local := range pairSets {
		for p := range local {
			candidates = append(candidates, p)
		}
	}

	// dominatedBy[smaller] is the set of states known to dominate it;
	// a successor is prunable from a branch if any state in this set is
	// also present in that same branch.
	type verdict struct {
		bigger, smaller int32
		ok              bool
	}
	verdicts := make([]verdict, len(candidates))
	workerpool.ForEachIndex(len(candidates), func(i int) {
		p := candidates[i]
		bigger, smaller, ok := dominance(c, p.a, p.b)
		verdicts[i] = verdict{bigger, smaller, ok}
	})

	dominatedBy := make(map[int32]map[int32]struct{})
	for _, v := range verdicts {
		if !v.ok || v.bigger == v.smaller {
			continue
		}
		set, exists := dominatedBy[v.smaller]
		if !exists {
			set = make(map[int32]struct{})
			dominatedBy[v.smaller] = set
		}
		set[v.bigger] = struct{}{}
	}

	quotient := csr.New(n, c.EdgeCount())
	pruned := 0
	for i := 0; i < n; i++ {
		arity := c.Arity(i)
		branches := make([][]int32, arity)
		for k := 0; k < arity; k++ {
			begin, end := c.Branch(i, k)
			succ := c.Successors(begin, end)
			present := make(map[int32]struct{}, len(succ))
			for _, s := range succ {
				present[s] = struct{}{}
			}
			kept := make([]int32, 0, len(succ))
			for _, s := range succ {
				dominators, has := dominatedBy[s]
				redundant := false
				if has {
					for d := range dominators {
						if d == s {
							continue
						}
						if _, alsoPresent := present[d]; alsoPresent {
							redundant = true
							break
						}
					}
				}
				if redundant {
					pruned++
					continue
				}
				kept = append(kept, s)
			}
			branches[k] = kept
		}
		quotient.Push(branches)
	}
	quotient.ShrinkToFit()

	return Result{Quotient: quotient, Pruned: pruned, Changed: pruned > 0}
}

func orderedPair(a, b int32) pair {
	if a <= b {
		return pair{a, b}
	}
	return pair{b, a}
}
