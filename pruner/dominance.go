package pruner

import (
	"sort"

	"github.com/narrowstack/c4w/csr"
	"github.com/narrowstack/c4w/internal/flow"
)

// branchSet is one branch's successor set: sorted, deduplicated state
// indices the player may choose among after that piece is revealed.
type branchSet []int32

// branchSets returns node's branches as sorted-unique sets, sorted
// shortest-first (the order find_smaller's original Rust traversal used,
// irrelevant to correctness here but kept for readability).
func branchSets(c *csr.CSR, node int32) []branchSet {
	arity := c.Arity(int(node))
	sets := make([]branchSet, arity)
	for k := 0; k < arity; k++ {
		begin, end := c.Branch(int(node), k)
		succ := c.Successors(begin, end)
		set := make([]int32, len(succ))
		copy(set, succ)
		sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
		set = dedupSorted(set)
		sets[k] = set
	}
	sort.Slice(sets, func(i, j int) bool { return len(sets[i]) < len(sets[j]) })
	return sets
}

func dedupSorted(s []int32) []int32 {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// covers reports whether every element of small is present in large
// (small is a subset of large), used to decide whether one branch's
// player-choice set can stand in for another's.
func covers(large, small branchSet) bool {
	if len(small) > len(large) {
		return false
	}
	i := 0
	for _, v := range small {
		for i < len(large) && large[i] < v {
			i++
		}
		if i == len(large) || large[i] != v {
			return false
		}
	}
	return true
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// dominance reports whether u1 or u2 dominates the other: u1 >= u2 means
// u1's branches can always cover u2's obligations one-to-one, so u2 is
// redundant wherever both are reachable. Ported from
// original_source/src/pruner/plain.rs's find_smaller: branch counts are
// reconciled via their LCM (replicate the smaller side by
// other-count/gcd copies) so states with a different number of branches
// can still be compared fairly, then a bipartite "does every replicated
// unit have a distinct covering partner" test is a max-flow computation
// over internal/flow instead of the Rust port's hopcroft_karp crate.
func dominance(c *csr.CSR, u1, u2 int32) (bigger, smaller int32, ok bool) {
	nexts1 := branchSets(c, u1)
	nexts2 := branchSets(c, u2)

	if len(nexts1) == 0 && len(nexts2) == 0 {
		// Both are terminal: neither offers anything the other lacks.
		return 0, 0, false
	}
	if len(nexts1) == 0 {
		return u2, u1, true
	}
	if len(nexts2) == 0 {
		return u1, u2, true
	}

	l1, l2 := len(nexts1), len(nexts2)
	g := gcd(l1, l2)
	m1, m2 := l2/g, l1/g
	edgingSize := l1 * m1

	// u2 covers u1 everywhere => u2 dominates (bigger=u2, smaller=u1).
	if matches(nexts1, nexts2, m1, m2, edgingSize, covers) {
		return u2, u1, true
	}
	// u1 covers u2 everywhere => u1 dominates (bigger=u1, smaller=u2).
	if matches(nexts2, nexts1, m2, m1, edgingSize, covers) {
		return u1, u2, true
	}
	return 0, 0, false
}

// matches builds the replicated bipartite graph between left (sized
// lenLeft, replicated leftMul times) and right (sized lenRight,
// replicated rightMul times), with an edge between a left index and a
// right index whenever right's set "covers" left's (per the cover
// predicate), and reports whether a perfect matching of size total
// exists — i.e. whether every replicated left unit can be matched to a
// distinct covering right unit.
func matches(left, right []branchSet, leftMul, rightMul, total int, coverFn func(large, small branchSet) bool) bool {
	lenLeft, lenRight := len(left), len(right)
	leftNodes := lenLeft * leftMul
	rightNodes := lenRight * rightMul
	source := int32(leftNodes + rightNodes)
	sink := source + 1
	g := flow.NewGraph(int(sink) + 1)

	for i := 0; i < leftNodes; i++ {
		g.AddEdge(source, int32(i), 1)
	}
	for j := 0; j < rightNodes; j++ {
		g.AddEdge(int32(leftNodes+j), sink, 1)
	}
	for i1, s1 := range left {
		for i2, s2 := range right {
			if !coverFn(s2, s1) {
				continue
			}
			for b1 := 0; b1 < leftMul; b1++ {
				for b2 := 0; b2 < rightMul; b2++ {
					u := int32(b1*lenLeft + i1)
					v := int32(leftNodes + b2*lenRight + i2)
					g.AddEdge(u, v, 1)
				}
			}
		}
	}

	return int(g.MaxFlow(source, sink)) >= total
}
