package prover

import (
	"testing"

	"github.com/narrowstack/c4w/csr"
	"github.com/narrowstack/c4w/poset"
	"github.com/stretchr/testify/require"
)

func trivialPoset() poset.Poset {
	return poset.NewDense(1, func(i, j int) bool { return true })
}

func TestBranchGeqSubsetCoverage(t *testing.T) {
	p := poset.NewDense(3, func(i, j int) bool { return i == j })
	require.True(t, branchGeq(p, branch{0, 1}, branch{0}))
	require.False(t, branchGeq(p, branch{0}, branch{0, 1}))
}

func TestNextGeqHandlesEmptyRight(t *testing.T) {
	p := trivialPoset()
	require.True(t, nextGeq(p, next{{0}}, next{}))
	require.False(t, nextGeq(p, next{}, next{{0}}))
}

func TestBuildBranchKeepsOnlyMaximalElements(t *testing.T) {
	p := poset.NewDense(3, func(i, j int) bool { return i >= j })
	b := buildBranch([]int32{0, 1, 2}, p)
	require.Equal(t, branch{2}, b)
}

func TestBuildBranchKeepsIncomparableElements(t *testing.T) {
	p := poset.NewDense(3, func(i, j int) bool { return false })
	b := buildBranch([]int32{2, 0, 1}, p)
	require.Equal(t, branch{0, 1, 2}, b)
}

// Two states whose single branch reaches the same two (mutually
// incomparable) terminals should prove down to a single class.
func TestRunCollapsesEquivalentStates(t *testing.T) {
	c := csr.New(4, 4)
	c.Push(nil)                  // 0: terminal
	c.Push(nil)                  // 1: terminal
	c.Push([][]int32{{0, 1}})    // 2: choice between the two terminals
	c.Push([][]int32{{0, 1}})    // 3: identical choice

	result := Run(c)
	require.Equal(t, result.Mapping[2], result.Mapping[3])
}

// A state whose branch can reach strictly more (and better) outcomes
// than another must remain in its own class.
func TestRunKeepsDistinguishableStatesApart(t *testing.T) {
	c := csr.New(3, 2)
	c.Push(nil)                // 0: terminal
	c.Push([][]int32{{0}})     // 1: one step from a terminal
	c.Push([][]int32{{1}})     // 2: two steps from a terminal

	result := Run(c)
	require.NotEqual(t, result.Mapping[0], result.Mapping[1])
	require.NotEqual(t, result.Mapping[1], result.Mapping[2])
}
