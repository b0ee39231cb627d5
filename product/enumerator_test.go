package product_test

import (
	"testing"

	"github.com/narrowstack/c4w/continuation"
	"github.com/narrowstack/c4w/field"
	"github.com/narrowstack/c4w/product"
	"github.com/narrowstack/c4w/sequence"
	"github.com/stretchr/testify/require"
)

func twoFieldTable() *continuation.Table {
	t := continuation.New()
	a := field.Empty
	b := field.Field{1, 0, 0, 0}
	t.Put(a, field.O, []field.Field{b})
	t.Put(b, field.O, []field.Field{a})
	return t
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tbl := twoFieldTable()
	seq := sequence.NewUniform(1, false)
	e, err := product.New(tbl, seq)
	require.NoError(t, err)
	require.Equal(t, 2*seq.Len(), e.Len())

	for i := 0; i < e.Len(); i++ {
		fi, s := e.Decode(i)
		require.Equal(t, i, e.Encode(fi, s))
	}
}

func TestBranchesStayWithinBounds(t *testing.T) {
	tbl := twoFieldTable()
	seq := sequence.NewUniform(1, false)
	e, err := product.New(tbl, seq)
	require.NoError(t, err)

	for i := 0; i < e.Len(); i++ {
		rows := e.Branches(i)
		require.LessOrEqual(t, len(rows), 7)
		for _, row := range rows {
			for _, succ := range row {
				require.GreaterOrEqual(t, int(succ), 0)
				require.Less(t, int(succ), e.Len())
			}
		}
	}
}

func TestFieldIndexLookup(t *testing.T) {
	tbl := twoFieldTable()
	seq := sequence.NewUniform(0, false)
	e, err := product.New(tbl, seq)
	require.NoError(t, err)

	fi, ok := e.FieldIndex(field.Empty)
	require.True(t, ok)
	require.Equal(t, field.Empty, e.Field(fi))

	_, ok = e.FieldIndex(field.Field{1, 1, 1, 1})
	require.False(t, ok)
}

func TestDegenerateEmptyPreviewMatchesFieldCount(t *testing.T) {
	tbl := twoFieldTable()
	seq := sequence.NewUniform(0, false)
	e, err := product.New(tbl, seq)
	require.NoError(t, err)
	require.Equal(t, e.FieldCount(), e.Len())
}
