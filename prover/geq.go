// Package prover implements spec §4.6's proof-based pruning: starting
// from the coarsest possible grouping (every state in one class), it
// alternates splitting classes whose members' reachable branch
// structure actually differs (try_replace_node) with verifying that
// every direct "A >= B" relation the poset currently claims still holds
// at the branch level (try_remove_edges), retracting any that don't,
// until a full round finds nothing left to split or retract.
//
// Grounded on original_source/src/prover/mod.rs's Branch/Next
// comparison primitives and .../prover/provers/raw.rs's
// WorkingRawProver state machine (spec §4.6's
// Start -> Split -> Verify -> (Split | Verify | Done)).
package prover

import (
	"math"
	"sort"

	"github.com/narrowstack/c4w/csr"
	"github.com/narrowstack/c4w/internal/flow"
	"github.com/narrowstack/c4w/poset"
)

// branch is one branch's surviving alternatives: the class ids reachable
// through it that no other alternative in the same branch dominates,
// sorted ascending. Corresponds to mod.rs's Branch.
type branch []int32

// next is a state's full branch list in original branch order —
// mod.rs's Next, generalized from ArrayVec<_,7> to a plain slice.
type next []branch

// branchGeq reports whether left dominates right: every alternative in
// right has a dominating (or equal) alternative in left. Ported from
// mod.rs's Branch::is_geq ("max(left) >= max(right) <=> forall r in
// right, exists l in left, l >= r").
func branchGeq(p poset.Poset, left, right branch) bool {
	for _, r := range right {
		ok := false
		for _, l := range left {
			if p.Geq(int(l), int(r)) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// nextGeq reports whether left's branch structure dominates right's,
// reconciling differing branch counts by a weighted bipartite flow
// rather than branchGeq's simple forall/exists — ported from mod.rs's
// Next::is_geq, whose rs_graph PushRelabel instance this mirrors
// directly over internal/flow (capacities right_len / left_len / "no
// limit" on the source, sink, and covering edges respectively; a
// saturating flow of left_len*right_len means every branch on both
// sides is covered with the fractional weighting the differing counts
// require).
func nextGeq(p poset.Poset, left, right next) bool {
	if len(right) == 0 {
		return true
	}
	if len(left) == 0 {
		return false
	}
	ll, rl := len(left), len(right)
	leftBase := int32(1)
	rightBase := int32(1 + ll)
	source := int32(0)
	sink := int32(1 + ll + rl)

	g := flow.NewGraph(int(sink) + 1)
	for i := 0; i < ll; i++ {
		g.AddEdge(source, leftBase+int32(i), int32(rl))
	}
	for j := 0; j < rl; j++ {
		g.AddEdge(rightBase+int32(j), sink, int32(ll))
	}
	const unlimited = int32(math.MaxInt32 / 2)
	for i := 0; i < ll; i++ {
		for j := 0; j < rl; j++ {
			if branchGeq(p, left[i], right[j]) {
				g.AddEdge(leftBase+int32(i), rightBase+int32(j), unlimited)
			}
		}
	}

	want := int32(ll) * int32(rl)
	return g.MaxFlow(source, sink) == want
}

// buildBranch folds raw mapped class ids into a reduced, sorted
// antichain: each new id first evicts any already-kept id it dominates,
// then is itself kept only if nothing remaining dominates it. Ported
// from raw.rs's static_get_next inner loop.
func buildBranch(ids []int32, p poset.Poset) branch {
	var result []int32
	for _, id := range ids {
		kept := result[:0]
		for _, j := range result {
			if !p.Geq(int(id), int(j)) {
				kept = append(kept, j)
			}
		}
		result = kept
		dominated := false
		for _, j := range result {
			if p.Geq(int(j), int(id)) {
				dominated = true
				break
			}
		}
		if !dominated {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return branch(result)
}

// getNext computes state's reduced branch list under the current
// mapping and poset.
func getNext(c *csr.CSR, mapping []int32, p poset.Poset, state int) next {
	arity := c.Arity(state)
	out := make(next, arity)
	for k := 0; k < arity; k++ {
		begin, end := c.Branch(state, k)
		succ := c.Successors(begin, end)
		ids := make([]int32, len(succ))
		for i, s := range succ {
			ids[i] = mapping[s]
		}
		out[k] = buildBranch(ids, p)
	}
	return out
}

func nextEqual(a, b next) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
