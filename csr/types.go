// Package csr provides a compressed-sparse-row container for bounded-arity
// branching successor lists — the representation shared by the
// continuation table, the minimizer's reduced automaton, the pruner, and
// the prover's quotient automata (spec §4.1).
//
// Two flat arrays plus a small per-node inline array of (begin,end) ranges
// eliminate pointer chasing in the hot inner loops: nodes outnumber
// branches, branches outnumber successors, and scanning successors of a
// branch is just a contiguous slice read.
package csr

// MaxArity bounds the number of branches a single node may have (one per
// piece, at most seven).
const MaxArity = 7

// CSR is an append-only, then randomly-readable compressed sparse row
// container. Rows are pushed once via Push; random reads via Branch and
// Successors are O(1).
type CSR struct {
	// index holds MaxArity*nodeCount (begin,end) pairs, two int32s per
	// branch slot; unused branch slots beyond a node's arity are zeroed.
	index []int32
	// arity[node] is the number of real branches for that node (≤ MaxArity).
	arity []uint8
	// flat is the flat successor vector all branches slice into.
	flat []int32
}

// New returns an empty CSR with capacity hints for nodeCount rows and
// edgeCount total successors.
func New(nodeCount, edgeCount int) *CSR {
	return &CSR{
		index: make([]int32, 0, nodeCount*MaxArity*2),
		arity: make([]uint8, 0, nodeCount),
		flat:  make([]int32, 0, edgeCount),
	}
}

// RowCount returns the number of nodes (rows) pushed so far.
func (c *CSR) RowCount() int {
	return len(c.arity)
}

// EdgeCount returns the total number of successor entries across all rows.
func (c *CSR) EdgeCount() int {
	return len(c.flat)
}

// Push appends a new row. Each element of branches is a pre-sorted,
// deduplicated slice of successor node indices for one outgoing branch;
// len(branches) must be ≤ MaxArity. Returns the new row's index.
func (c *CSR) Push(branches [][]int32) int {
	if len(branches) > MaxArity {
		panic("csr: row arity exceeds MaxArity")
	}
	node := len(c.arity)
	for _, branch := range branches {
		begin := int32(len(c.flat))
		c.flat = append(c.flat, branch...)
		end := int32(len(c.flat))
		c.index = append(c.index, begin, end)
	}
	for i := len(branches); i < MaxArity; i++ {
		c.index = append(c.index, 0, 0)
	}
	c.arity = append(c.arity, uint8(len(branches)))
	return node
}

// Arity returns the number of branches node has.
func (c *CSR) Arity(node int) int {
	return int(c.arity[node])
}

// Branch returns the (begin, end) successor-vector range for the k-th
// branch of node. begin == end denotes an empty (losing) branch.
func (c *CSR) Branch(node, k int) (begin, end int32) {
	base := node*MaxArity*2 + k*2
	return c.index[base], c.index[base+1]
}

// Successors returns the slice of the flat successor vector between begin
// and end (inclusive-exclusive), as produced by Branch.
func (c *CSR) Successors(begin, end int32) []int32 {
	return c.flat[begin:end]
}

// ShrinkToFit trims spare capacity from the backing arrays, matching the
// teacher domain's "shrink_to_fit between passes" memory discipline
// (spec §5, §9).
func (c *CSR) ShrinkToFit() {
	if cap(c.index) > len(c.index) {
		trimmed := make([]int32, len(c.index))
		copy(trimmed, c.index)
		c.index = trimmed
	}
	if cap(c.arity) > len(c.arity) {
		trimmed := make([]uint8, len(c.arity))
		copy(trimmed, c.arity)
		c.arity = trimmed
	}
	if cap(c.flat) > len(c.flat) {
		trimmed := make([]int32, len(c.flat))
		copy(trimmed, c.flat)
		c.flat = trimmed
	}
}
