package csr_test

import (
	"bytes"
	"testing"

	"github.com/narrowstack/c4w/csr"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	c := csr.New(3, 4)
	c.Push([][]int32{{1, 2}, {}})
	c.Push(nil)
	c.Push([][]int32{{0}})

	var buf bytes.Buffer
	require.NoError(t, csr.Save(&buf, c))

	loaded, err := csr.Load(&buf)
	require.NoError(t, err)
	require.Equal(t, c.RowCount(), loaded.RowCount())
	require.Equal(t, c.EdgeCount(), loaded.EdgeCount())

	for i := 0; i < c.RowCount(); i++ {
		require.Equal(t, c.Arity(i), loaded.Arity(i))
		for k := 0; k < c.Arity(i); k++ {
			begin, end := c.Branch(i, k)
			lBegin, lEnd := loaded.Branch(i, k)
			require.Equal(t, c.Successors(begin, end), loaded.Successors(lBegin, lEnd))
		}
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	_, err := csr.Load(bytes.NewReader([]byte{0, 0, 0, 0}))
	require.Error(t, err)
}
