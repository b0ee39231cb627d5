package csr_test

import (
	"testing"

	"github.com/narrowstack/c4w/csr"
	"github.com/stretchr/testify/require"
)

func TestPushAndReadBack(t *testing.T) {
	c := csr.New(4, 8)
	n0 := c.Push([][]int32{{1, 2}, {3}})
	n1 := c.Push(nil)
	n2 := c.Push([][]int32{{0}})

	require.Equal(t, 0, n0)
	require.Equal(t, 1, n1)
	require.Equal(t, 2, n2)
	require.Equal(t, 3, c.RowCount())
	require.Equal(t, 4, c.EdgeCount())

	require.Equal(t, 2, c.Arity(n0))
	begin, end := c.Branch(n0, 0)
	require.Equal(t, []int32{1, 2}, c.Successors(begin, end))
	begin, end = c.Branch(n0, 1)
	require.Equal(t, []int32{3}, c.Successors(begin, end))

	require.Equal(t, 0, c.Arity(n1))

	require.Equal(t, 1, c.Arity(n2))
	begin, end = c.Branch(n2, 0)
	require.Equal(t, []int32{0}, c.Successors(begin, end))
}

func TestPushRejectsExcessArity(t *testing.T) {
	c := csr.New(1, 1)
	branches := make([][]int32, csr.MaxArity+1)
	require.Panics(t, func() { c.Push(branches) })
}

func TestRowRoundTrips(t *testing.T) {
	c := csr.New(2, 4)
	c.Push([][]int32{{5, 6}, {}, {7}})

	row := c.Row(0)
	require.Equal(t, [][]int32{{5, 6}, {}, {7}}, row)

	// Row returns independent copies: mutating it must not alias the CSR.
	row[0][0] = 99
	begin, end := c.Branch(0, 0)
	require.Equal(t, []int32{5, 6}, c.Successors(begin, end))
}

func TestAllSuccessorsDeduplicates(t *testing.T) {
	c := csr.New(1, 4)
	c.Push([][]int32{{1, 2}, {2, 3}})
	require.ElementsMatch(t, []int32{1, 2, 3}, c.AllSuccessors(0))
}

func TestShrinkToFit(t *testing.T) {
	c := csr.New(16, 32)
	c.Push([][]int32{{1}})
	c.ShrinkToFit()
	require.Equal(t, 1, c.RowCount())
	require.Equal(t, 1, c.EdgeCount())
}
