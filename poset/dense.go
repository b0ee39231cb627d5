package poset

import "github.com/narrowstack/c4w/internal/boolmatrix"

// Dense is the adjacency-bit-matrix poset backend (spec §4.6/§9), the
// default backend below the ~1e5-class break-even point. Grounded on
// original_source/src/prover/posets/bitvec.rs's BitVectorPoset: the
// matrix stores the full (already transitively closed) relation
// directly rather than a minimal edge set, so Geq is a single bit read
// and RemoveEdge is a single bit clear.
type Dense struct {
	edges *boolmatrix.Dense
}

// NewDense builds a Dense poset over n classes from a complete,
// already-reflexive-and-transitive relation function.
func NewDense(n int, geq func(i, j int) bool) *Dense {
	m := boolmatrix.New(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || geq(i, j) {
				m.Set(i, j, true)
			}
		}
	}
	return &Dense{edges: m}
}

func (d *Dense) Len() int { return d.edges.N() }

func (d *Dense) Geq(left, right int) bool {
	if left == right {
		return true
	}
	return d.edges.Get(left, right)
}

func (d *Dense) RemoveEdge(left, right int) {
	if !d.edges.Get(left, right) {
		panic("poset: RemoveEdge on a relation that does not hold")
	}
	d.edges.Set(left, right, false)
}

// Reduction returns the covering relation: pairs (left, right) with
// left >= right, left != right, and no class k strictly between them.
func (d *Dense) Reduction() [][2]int {
	n := d.Len()
	var out [][2]int
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || !d.Geq(i, j) {
				continue
			}
			covered := false
			for k := 0; k < n; k++ {
				if k == i || k == j {
					continue
				}
				if d.Geq(i, k) && d.Geq(k, j) {
					covered = true
					break
				}
			}
			if !covered {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}

// Replace substitutes node with replacement's relation in place: node
// keeps its external id for replacement's node 0, and replacement's
// remaining nodes are appended as fresh ids, each inheriting node's
// former relation to every other surviving class. Ported from
// bitvec.rs's replace.
func (d *Dense) Replace(node int, replacement Poset) Poset {
	k := replacement.Len()
	oldN := d.Len()
	newN := oldN - 1 + k
	nd := boolmatrix.New(newN)

	newID := func(r int) int {
		if r == 0 {
			return node
		}
		return oldN - 1 + r
	}

	for i := 0; i < oldN; i++ {
		if i == node {
			continue
		}
		for j := 0; j < oldN; j++ {
			if j == node {
				continue
			}
			if d.edges.Get(i, j) {
				nd.Set(i, j, true)
			}
		}
	}
	for i := 0; i < oldN; i++ {
		if i == node {
			continue
		}
		iDominatesNode := d.edges.Get(i, node)
		nodeDominatesI := d.edges.Get(node, i)
		for r := 0; r < k; r++ {
			nid := newID(r)
			if iDominatesNode {
				nd.Set(i, nid, true)
			}
			if nodeDominatesI {
				nd.Set(nid, i, true)
			}
		}
	}
	for r1 := 0; r1 < k; r1++ {
		for r2 := 0; r2 < k; r2++ {
			if r1 == r2 || replacement.Geq(r1, r2) {
				nd.Set(newID(r1), newID(r2), true)
			}
		}
	}

	d.edges = nd
	return d
}
