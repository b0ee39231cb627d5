package boolmatrix_test

import (
	"testing"

	"github.com/narrowstack/c4w/internal/boolmatrix"
	"github.com/stretchr/testify/require"
)

func TestSetGetRoundTrip(t *testing.T) {
	d := boolmatrix.New(130) // spans more than one 64-bit word per row
	require.False(t, d.Get(0, 0))
	d.Set(0, 0, true)
	d.Set(0, 127, true)
	require.True(t, d.Get(0, 0))
	require.True(t, d.Get(0, 127))
	require.False(t, d.Get(0, 64))

	d.Set(0, 0, false)
	require.False(t, d.Get(0, 0))
}

func TestSubset(t *testing.T) {
	d := boolmatrix.New(4)
	d.Set(0, 1, true)
	d.Set(1, 1, true)
	d.Set(1, 2, true)
	require.True(t, d.Subset(0, 1))
	require.False(t, d.Subset(1, 0))
}

func TestPopCountRow(t *testing.T) {
	d := boolmatrix.New(65)
	require.Equal(t, 0, d.PopCountRow(0))
	d.Set(0, 0, true)
	d.Set(0, 64, true)
	require.Equal(t, 2, d.PopCountRow(0))
}
