package pruner_test

import (
	"testing"

	"github.com/narrowstack/c4w/csr"
	"github.com/narrowstack/c4w/pruner"
	"github.com/stretchr/testify/require"
)

// Node 2's only branch offers a choice between 0 (a terminal, arity-0
// dead end) and 1 (also terminal): both are equally bad, so no
// dominance holds and nothing should be pruned between equals.
func TestPruneLeavesEqualTerminalsAlone(t *testing.T) {
	c := csr.New(3, 2)
	c.Push(nil) // 0: terminal
	c.Push(nil) // 1: terminal
	c.Push([][]int32{{0, 1}}) // 2: choice between two equal terminals

	result := pruner.Prune(c)
	require.False(t, result.Changed)
	require.Equal(t, 0, result.Pruned)
}

// Node 0 has no branches: a dead end. Node 1 has one branch whose
// choice is between 0 and 3, and 3 has a branch of its own: 1's
// choice between {0, 3} should prune 0 once 3 is shown to dominate
// it (3 offers somewhere to go, 0 offers nothing).
func TestPruneRemovesDominatedChoice(t *testing.T) {
	c := csr.New(4, 4)
	c.Push(nil)              // 0: terminal, no branches — strictly worse
	c.Push([][]int32{{0, 3}}) // 1: choice between 0 (terminal) and 3
	c.Push(nil)              // 2: unused terminal
	c.Push([][]int32{{2}})   // 3: has an escape branch, dominates 0

	result := pruner.Prune(c)
	require.True(t, result.Changed)
	require.Equal(t, 1, result.Pruned)

	begin, end := result.Quotient.Branch(1, 0)
	kept := result.Quotient.Successors(begin, end)
	require.Equal(t, []int32{3}, kept)
}

func TestPruneHandlesEmptyGraph(t *testing.T) {
	c := csr.New(1, 0)
	c.Push(nil)

	result := pruner.Prune(c)
	require.False(t, result.Changed)
	require.Equal(t, 1, result.Quotient.RowCount())
}

// A node whose single branch has only one successor has nothing to
// compare against within that branch, so it can never be pruned no
// matter how it compares to states in other branches or other nodes.
func TestPruneNeverTouchesSingletonBranches(t *testing.T) {
	c := csr.New(2, 1)
	c.Push(nil)
	c.Push([][]int32{{0}})

	result := pruner.Prune(c)
	require.False(t, result.Changed)
	begin, end := result.Quotient.Branch(1, 0)
	require.Equal(t, []int32{0}, result.Quotient.Successors(begin, end))
}
