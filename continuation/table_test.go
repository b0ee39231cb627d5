package continuation_test

import (
	"bytes"
	"testing"

	"github.com/narrowstack/c4w/continuation"
	"github.com/narrowstack/c4w/field"
	"github.com/stretchr/testify/require"
)

func TestPutGetRoundTrip(t *testing.T) {
	tbl := continuation.New()
	landings := []field.Field{{0, 1, 1, 1}, {1, 0, 0, 0}}
	tbl.Put(field.Empty, field.I, landings)

	require.Equal(t, landings, tbl.Get(field.Empty, field.I))
	require.Nil(t, tbl.Get(field.Empty, field.O))
	require.Nil(t, tbl.Get(field.Field{1, 1, 1, 1}, field.I))
	require.Equal(t, 1, tbl.Len())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tbl := continuation.New()
	tbl.Put(field.Empty, field.I, []field.Field{{0, 1, 1, 1}})
	tbl.Put(field.Empty, field.O, []field.Field{{1, 1, 0, 0}, {0, 0, 1, 1}})
	tbl.Put(field.Field{1, 1, 1, 1}, field.T, nil)

	var buf bytes.Buffer
	require.NoError(t, continuation.Save(&buf, tbl))

	loaded, err := continuation.Load(&buf)
	require.NoError(t, err)
	require.Equal(t, tbl.Len(), loaded.Len())
	require.ElementsMatch(t, tbl.Get(field.Empty, field.I), loaded.Get(field.Empty, field.I))
	require.ElementsMatch(t, tbl.Get(field.Empty, field.O), loaded.Get(field.Empty, field.O))
}

func TestLoadRejectsBadMagic(t *testing.T) {
	buf := bytes.NewReader([]byte{0, 0, 0, 0})
	_, err := continuation.Load(buf)
	require.ErrorIs(t, err, continuation.ErrBadMagic)
}

func TestCloseIsNoop(t *testing.T) {
	tbl := continuation.New()
	require.NoError(t, tbl.Close())
}
