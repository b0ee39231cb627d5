// Package minimizer implements the parallel partition-refinement
// minimization of spec §4.4: repeatedly re-signature every state against
// its current tentative class, growing the class count only when a
// state's signature does not match any class discovered so far, until a
// round resolves every state against the previous round's classes.
//
// Grounded on original_source/src/minimizer/parallel.rs's
// ParallelMinimizer (fold/reduce over worker-local maps, merged each
// round) and .../minimizer/dashmap.rs's uniform-branch signature
// collapse. Where the Rust version's fold-local map can tentatively
// assign two different raw-state representatives to the same signature
// across two different worker shards (reconciled afterward via a
// "seed_dedup" fixup pass), this implementation's
// workerpool.AggregateIndexFiltered already merges same-signature groups
// across every shard before any representative is chosen, so every
// member of a newly discovered class is assigned the SAME representative
// in one pass and no reconciliation pass is needed — an equivalent end
// result reached through workerpool's generic aggregate-then-merge
// primitive rather than a bespoke fold/reduce/reconcile.
package minimizer

import (
	"sort"

	"github.com/narrowstack/c4w/csr"
	"github.com/narrowstack/c4w/internal/workerpool"
)

// Result is the outcome of Minimize: ClassOf maps each original state
// index to its class id in [0, Quotient.RowCount()); Quotient is the
// reduced transition system over those classes.
type Result struct {
	ClassOf  []int32
	Quotient *csr.CSR
}

// Minimize reduces c to its coarsest partition-refinement quotient.
func Minimize(c *csr.CSR) Result {
	n := c.RowCount()
	classOf := make([]int32, n) // all states start in class "state 0"
	seeds := []int32{0}

	for {
		global := make(map[string]int32, len(seeds))
		for _, seed := range seeds {
			global[signature(c, int(seed), classOf)] = seed
		}

		newClassOf := make([]int32, n)
		groups := workerpool.AggregateIndexFiltered(n,
			func(i int) (string, []int32, bool) {
				sig := signature(c, i, classOf)
				if seed, ok := global[sig]; ok {
					newClassOf[i] = seed
					return "", nil, false
				}
				return sig, []int32{int32(i)}, true
			},
			func(a, b []int32) []int32 { return append(a, b...) },
		)

		if len(groups) == 0 {
			classOf = newClassOf
			break
		}
		for _, members := range groups {
			rep := members[0]
			for _, i := range members {
				newClassOf[i] = rep
			}
			seeds = append(seeds, rep)
		}
		classOf = newClassOf
	}

	return finalize(c, classOf, seeds)
}

// finalize renumbers the representative-state-index class ids used
// during refinement into sequential [0, k) class ids, and builds the
// quotient CSR from each final seed's signature.
func finalize(c *csr.CSR, classOf []int32, seeds []int32) Result {
	seedToFinal := make(map[int32]int32, len(seeds))
	for i, seed := range seeds {
		seedToFinal[seed] = int32(i)
	}

	final := make([]int32, len(classOf))
	workerpool.ForEachIndex(len(classOf), func(i int) {
		final[i] = seedToFinal[classOf[i]]
	})

	quotient := csr.New(len(seeds), 0)
	for _, seed := range seeds {
		arity := c.Arity(int(seed))
		branches := make([][]int32, arity)
		for k := 0; k < arity; k++ {
			begin, end := c.Branch(int(seed), k)
			succ := c.Successors(begin, end)
			seen := make(map[int32]struct{})
			var ids []int32
			for _, s := range succ {
				cls := final[s]
				if _, dup := seen[cls]; dup {
					continue
				}
				seen[cls] = struct{}{}
				ids = append(ids, cls)
			}
			sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
			branches[k] = ids
		}
		quotient.Push(branches)
	}
	quotient.ShrinkToFit()

	return Result{ClassOf: final, Quotient: quotient}
}
