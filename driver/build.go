// Package driver orchestrates the full pipeline of spec §2: materialize
// the reachable product state space, minimize, alternate pruning with
// re-minimization until a round changes nothing, prove, then run value
// iteration — emitting zerolog progress events after each pass (spec §6
// "Progress reporting").
//
// Grounded on main.rs's top-level `run` function, which performs exactly
// this pass sequence and logs `eprintln!` class/edge counts between
// stages; this is that driver expressed as a Go struct with an injected
// zerolog.Logger rather than a free function writing to stderr directly.
package driver

import (
	"sort"

	"github.com/cheggaaa/pb/v3"

	"github.com/narrowstack/c4w/csr"
	"github.com/narrowstack/c4w/field"
	"github.com/narrowstack/c4w/product"
	"github.com/narrowstack/c4w/sequence"
)

// Build performs on-demand BFS materialization of the product state
// space (spec §4.3), starting from the single canonical seed state
// (empty field, sequence state 0 — the automaton's own zero state,
// exactly as field.Empty is the canonical seed continuationgen's BFS
// uses). Every reachable product state is assigned a dense row index in
// discovery order; unreachable states (product index combinations no
// sequence of reveals can actually produce) are never materialized,
// matching product.Enumerator's doc comment that "downstream passes can
// materialize only the states they actually reach."
func Build(enumerator *product.Enumerator) (*csr.CSR, error) {
	fieldIdx, ok := enumerator.FieldIndex(field.Empty)
	if !ok {
		return nil, ErrNoEmptyField
	}
	start := enumerator.Encode(fieldIdx, sequence.State(0))

	productToRow := make(map[int]int32)
	var order []int
	productToRow[start] = 0
	order = append(order, start)

	// enumerator.Len() bounds the reachable set from above (it is the
	// full virtual product space), so it doubles as the bar's total even
	// though BFS will usually stop well short of it.
	bar := pb.StartNew(enumerator.Len())
	defer bar.Finish()
	bar.Increment()

	c := csr.New(enumerator.Len(), 0)
	for head := 0; head < len(order); head++ {
		productIdx := order[head]
		branches := enumerator.Branches(productIdx)
		rows := make([][]int32, len(branches))
		for bi, succ := range branches {
			row := make([]int32, len(succ))
			for si, s := range succ {
				before := len(order)
				row[si] = resolveRow(int(s), productToRow, &order)
				if len(order) > before {
					bar.Increment()
				}
			}
			sort.Slice(row, func(i, j int) bool { return row[i] < row[j] })
			rows[bi] = row
		}
		c.Push(rows)
	}
	c.ShrinkToFit()
	return c, nil
}

// resolveRow returns the dense row index assigned to product index p,
// assigning it the next sequential row and enqueueing it for expansion
// if this is the first time it has been seen.
func resolveRow(p int, productToRow map[int]int32, order *[]int) int32 {
	if row, ok := productToRow[p]; ok {
		return row
	}
	row := int32(len(*order))
	productToRow[p] = row
	*order = append(*order, p)
	return row
}
