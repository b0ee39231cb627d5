// Package poset implements the "poset over classes" of spec §3: a
// reflexive, antisymmetric, transitive relation over class ids, queried
// as Geq(left, right) during the prover's verification loop and mutated
// by Replace/RemoveEdge as the prover incorporates finer relations and
// retracts ones later shown false (spec §4.6, §8 "Poset axioms").
//
// Two backends share this interface (spec §4.6/§9): Dense, a bit-matrix
// over internal/boolmatrix, and Hierarchical, a recursive DAG-of-DAGs
// ported from original_source/src/prover/posets/raw.rs's HierarchDAG.
// Grounded on original_source/src/prover/posets/mod.rs's Poset trait
// (new/len/is_geq/get_reduction/remove_edge/replace), narrowed to the
// subset the prover actually drives at runtime — header/footer are
// internal helpers of Hierarchical, not part of the shared contract, and
// no merge of sub-DAGs is implemented.
package poset

// Poset is the shared contract both backends satisfy.
type Poset interface {
	// Len returns the number of class ids the poset covers.
	Len() int
	// Geq reports whether left >= right under the relation. Always true
	// when left == right (reflexivity).
	Geq(left, right int) bool
	// Reduction returns the transitive-reduction edges (left, right)
	// with left >= right and no intermediate class k strictly between
	// them — the covering relation, used to pick the next edge to verify.
	Reduction() [][2]int
	// RemoveEdge retracts a direct left >= right relation shown false by
	// the prover's verifier. Panics if the relation did not hold.
	RemoveEdge(left, right int)
	// Replace substitutes node with an entire finer sub-poset, used when
	// the prover splits a class it could not verify as a single node.
	// replacement's node 0 takes node's place; replacement's other nodes
	// are appended as new ids mapped into id space [Len(), Len()+k-1),
	// where k is replacement.Len().
	// Returns the poset with node replaced (backends may mutate in place
	// and return themselves).
	Replace(node int, replacement Poset) Poset
}
