package evaluator_test

import (
	"testing"

	"github.com/narrowstack/c4w/csr"
	"github.com/narrowstack/c4w/evaluator"
	"github.com/stretchr/testify/require"
)

func TestValueIterateTerminalIsZero(t *testing.T) {
	c := csr.New(1, 0)
	c.Push(nil)

	values, iterations := evaluator.ValueIterate(c, 1e-6)
	require.Equal(t, 0.0, values[0])
	require.GreaterOrEqual(t, iterations, 1)
}

// 0 -> 1 (terminal): a single guaranteed branch should converge to 1.0.
func TestValueIterateSingleStepChain(t *testing.T) {
	c := csr.New(2, 1)
	c.Push([][]int32{{1}})
	c.Push(nil)

	values, _ := evaluator.ValueIterate(c, 1e-9)
	require.InDelta(t, 0.0, values[1], 1e-9)
	require.InDelta(t, 1.0, values[0], 1e-9)
}

// A branch offering a choice between two successors takes the best
// (max), not the average, within that branch.
func TestValueIterateTakesMaxWithinABranch(t *testing.T) {
	c := csr.New(3, 2)
	c.Push(nil)            // 0: worse terminal, value 0
	c.Push([][]int32{{0}}) // 1: one step from terminal 0, value 1
	c.Push([][]int32{{0, 1}})

	// max(0+1, 1+1) = 2; averaging the two choices would give 1.5.
	values, _ := evaluator.ValueIterate(c, 1e-9)
	require.InDelta(t, 2.0, values[2], 1e-9)
}

// Two branches average: one reaching a terminal (contributes 1), one
// already empty/losing (contributes 0) -> mean 0.5.
func TestValueIterateAveragesAcrossBranches(t *testing.T) {
	c := csr.New(2, 1)
	c.Push(nil)                    // 0: terminal
	c.Push([][]int32{{0}, {}})      // 1: one branch reaches 0, one branch is a loss

	values, _ := evaluator.ValueIterate(c, 1e-9)
	require.InDelta(t, 0.5, values[1], 1e-9)
}

func TestHasLoopFalseOnDag(t *testing.T) {
	c := csr.New(3, 2)
	c.Push([][]int32{{1}})
	c.Push([][]int32{{2}})
	c.Push(nil)

	require.False(t, evaluator.HasLoop(c))
}

// A 2-cycle with no escape can never be forced to terminate.
func TestHasLoopTrueOnCycle(t *testing.T) {
	c := csr.New(2, 2)
	c.Push([][]int32{{1}})
	c.Push([][]int32{{0}})

	require.True(t, evaluator.HasLoop(c))
}

// A cycle is not a loop once one branch of a state on it can only
// reach a terminal: that branch empties out, the state is marked
// terminating, and the rest of the cycle is marked after it.
func TestHasLoopFalseWhenOneBranchForcesTermination(t *testing.T) {
	c := csr.New(3, 3)
	c.Push([][]int32{{1}, {2}}) // 0: piece A loops to 1, piece B reaches only terminal 2
	c.Push([][]int32{{0}})      // 1: only loops back to 0
	c.Push(nil)                 // 2: terminal

	require.False(t, evaluator.HasLoop(c))
}
