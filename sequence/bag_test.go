package sequence_test

import (
	"testing"

	"github.com/narrowstack/c4w/field"
	"github.com/narrowstack/c4w/sequence"
	"github.com/stretchr/testify/require"
)

func TestBagNoHoldEverySuccessorInRange(t *testing.T) {
	b := sequence.NewBag(4, false)
	require.Greater(t, b.Len(), 0)
	for i := 0; i < b.Len(); i++ {
		branches := b.NextPieces(b.Decode(i))
		require.NotEmpty(t, branches)
		for _, br := range branches {
			require.True(t, br.Revealed.Valid())
			require.Len(t, br.Transitions, 1)
			require.Less(t, b.Encode(br.Transitions[0].Next), b.Len())
		}
	}
}

func TestBagHoldMultipliesStateSpaceBySeven(t *testing.T) {
	noHold := sequence.NewBag(4, false)
	withHold := sequence.NewBag(4, true)
	require.Equal(t, noHold.Len()*len(field.PIECES), withHold.Len())
}

func TestBagHoldOffersSwapWhenDiffers(t *testing.T) {
	b := sequence.NewBag(2, true)
	sawSwap := false
	for i := 0; i < b.Len(); i++ {
		for _, br := range b.NextPieces(b.Decode(i)) {
			if len(br.Transitions) == 2 {
				sawSwap = true
			}
			require.LessOrEqual(t, len(br.Transitions), 2)
		}
	}
	require.True(t, sawSwap)
}

func TestBagZeroPreviewStillEnumerates(t *testing.T) {
	b := sequence.NewBag(0, false)
	require.Greater(t, b.Len(), 0)
	branches := b.NextPieces(b.Decode(0))
	require.Len(t, branches, len(field.PIECES))
}

func TestBagPanicsOnPreviewOutOfRange(t *testing.T) {
	require.Panics(t, func() { sequence.NewBag(14, false) })
	require.Panics(t, func() { sequence.NewBag(-1, false) })
}
