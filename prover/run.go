package prover

import (
	"github.com/narrowstack/c4w/csr"
	"github.com/narrowstack/c4w/poset"
)

// Result is the outcome of Run: Mapping carries every original state
// index to its final class id; Quotient is the CSR over those classes.
type Result struct {
	Mapping  []int32
	Quotient *csr.CSR
	Poset    poset.Poset
}

// prover carries the mutable state of one proof-pruning run: the
// current poset, the original-state -> class-id mapping, and one
// representative original state index ("seed") per current class.
type prover struct {
	transitions *csr.CSR
	poset       poset.Poset
	newPoset    func(n int, geq func(i, j int) bool) poset.Poset
	mapping     []int32
	seeds       []int32
}

// Run proves and prunes transitions down from the coarsest single-class
// grouping, alternating class splits with edge-retraction verification
// until a full round changes nothing (spec §4.6), using the dense
// bit-matrix poset backend throughout.
func Run(transitions *csr.CSR) Result {
	return RunWithBackend(transitions, func(n int, geq func(i, j int) bool) poset.Poset {
		return poset.NewDense(n, geq)
	})
}

// RunWithBackend is Run with the poset constructor left to the caller —
// the driver selects poset.NewDense or poset.NewHierarchical per the
// `--poset-backend` threshold (spec §9 "Open question").
func RunWithBackend(transitions *csr.CSR, newPoset func(n int, geq func(i, j int) bool) poset.Poset) Result {
	n := transitions.RowCount()
	pr := &prover{
		transitions: transitions,
		poset:       newPoset(1, func(i, j int) bool { return true }),
		newPoset:    newPoset,
		mapping:     make([]int32, n),
		seeds:       []int32{0},
	}

	// Mirrors provers/mod.rs's `while try_replace_node() || try_remove_edges() {}`:
	// drain replace-node splits to exhaustion, then try one edge-removal
	// round; if that round changed anything, go back and drain replace-node
	// again, since a removed edge can expose new splits.
	for {
		for pr.tryReplaceNode() {
		}
		if !pr.tryRemoveEdges() {
			break
		}
	}

	return pr.concrete()
}

// tryReplaceNode splits every current class whose members no longer
// share the same reduced branch structure, per raw.rs's
// try_replace_node.
func (pr *prover) tryReplaceNode() bool {
	prevNexts := make([]next, len(pr.seeds))
	for i, seed := range pr.seeds {
		prevNexts[i] = getNext(pr.transitions, pr.mapping, pr.poset, int(seed))
	}

	type splitMember struct {
		next next
		rep  int32
	}
	groups := make([][]splitMember, pr.poset.Len())
	newMapping := make([]int32, len(pr.mapping))

	for state := range pr.mapping {
		prevID := pr.mapping[state]
		nx := getNext(pr.transitions, pr.mapping, pr.poset, state)
		if nextEqual(nx, prevNexts[prevID]) {
			newMapping[state] = 0
			continue
		}
		matched := -1
		for gi, g := range groups[prevID] {
			if nextEqual(nx, g.next) {
				matched = gi
				break
			}
		}
		if matched >= 0 {
			newMapping[state] = int32(matched + 1)
			continue
		}
		groups[prevID] = append(groups[prevID], splitMember{next: nx, rep: int32(state)})
		newMapping[state] = int32(len(groups[prevID]))
	}

	largestNewDag := 1
	for _, g := range groups {
		if len(g)+1 > largestNewDag {
			largestNewDag = len(g) + 1
		}
	}
	if largestNewDag == 1 {
		return false
	}

	oldLen := pr.poset.Len()
	deltas := make([]int, len(groups))
	acc := oldLen
	for node, g := range groups {
		deltas[node] = acc
		acc += len(g)
	}

	for node, g := range groups {
		if len(g) == 0 {
			continue
		}
		for _, m := range g {
			pr.seeds = append(pr.seeds, m.rep)
		}
		members := make([]next, 0, len(g)+1)
		members = append(members, prevNexts[node])
		for _, m := range g {
			members = append(members, m.next)
		}
		sub := pr.newPoset(len(members), func(i, j int) bool {
			return nextGeq(pr.poset, members[i], members[j])
		})
		pr.poset = pr.poset.Replace(node, sub)
	}

	for state := range pr.mapping {
		nm := newMapping[state]
		if nm == 0 {
			continue
		}
		oldID := pr.mapping[state]
		pr.mapping[state] = int32(int(nm)-1) + int32(deltas[oldID])
	}

	return true
}

// tryRemoveEdges verifies every covering edge the poset currently
// claims at the branch level, retracting any that don't actually hold —
// driven from the prover side over poset.Reduction() rather than a
// poset-internal topological-order pass, per the simplification
// recorded in DESIGN.md's prover section.
func (pr *prover) tryRemoveEdges() bool {
	changed := false
	for _, e := range pr.poset.Reduction() {
		left, right := e[0], e[1]
		nextLeft := getNext(pr.transitions, pr.mapping, pr.poset, int(pr.seeds[left]))
		nextRight := getNext(pr.transitions, pr.mapping, pr.poset, int(pr.seeds[right]))
		if !nextGeq(pr.poset, nextLeft, nextRight) {
			pr.poset.RemoveEdge(left, right)
			changed = true
		}
	}
	return changed
}

// concrete builds the final Result once no further split or retraction
// changes anything.
func (pr *prover) concrete() Result {
	quotient := csr.New(len(pr.seeds), 0)
	for _, seed := range pr.seeds {
		nx := getNext(pr.transitions, pr.mapping, pr.poset, int(seed))
		branches := make([][]int32, len(nx))
		for k, b := range nx {
			branches[k] = []int32(b)
		}
		quotient.Push(branches)
	}
	quotient.ShrinkToFit()

	return Result{Mapping: pr.mapping, Quotient: quotient, Poset: pr.poset}
}
