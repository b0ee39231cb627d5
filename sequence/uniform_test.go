package sequence_test

import (
	"testing"

	"github.com/narrowstack/c4w/field"
	"github.com/narrowstack/c4w/sequence"
	"github.com/stretchr/testify/require"
)

func TestUniformDegenerateSingleState(t *testing.T) {
	u := sequence.NewUniform(0, false)
	require.Equal(t, 1, u.Len())

	branches := u.NextPieces(u.Decode(0))
	require.Len(t, branches, len(field.PIECES))
	for _, b := range branches {
		require.Len(t, b.Transitions, 1)
		require.Equal(t, b.Revealed, b.Transitions[0].Label)
		require.Equal(t, u.Decode(0), b.Transitions[0].Next)
	}
}

func TestUniformLenGrowsWithPreviewAndHold(t *testing.T) {
	require.Equal(t, 7, sequence.NewUniform(1, false).Len())
	require.Equal(t, 49, sequence.NewUniform(2, false).Len())
	require.Equal(t, 49, sequence.NewUniform(1, true).Len())
}

func TestUniformNoHoldSingleTransitionPerBranch(t *testing.T) {
	u := sequence.NewUniform(2, false)
	for i := 0; i < u.Len(); i++ {
		branches := u.NextPieces(u.Decode(i))
		require.Len(t, branches, len(field.PIECES))
		for _, b := range branches {
			require.Len(t, b.Transitions, 1)
			require.True(t, b.Transitions[0].Label.Valid())
			require.GreaterOrEqual(t, int(b.Transitions[0].Next), 0)
			require.Less(t, u.Encode(b.Transitions[0].Next), u.Len())
		}
	}
}

func TestUniformHoldOffersSwapWhenDigitsDiffer(t *testing.T) {
	u := sequence.NewUniform(1, true)
	sawSwap := false
	for i := 0; i < u.Len(); i++ {
		branches := u.NextPieces(u.Decode(i))
		for _, b := range branches {
			if len(b.Transitions) == 2 {
				sawSwap = true
				require.NotEqual(t, b.Transitions[0].Label, b.Transitions[1].Label)
			} else {
				require.Len(t, b.Transitions, 1)
			}
		}
	}
	require.True(t, sawSwap, "some state should offer a swap transition")
}

func TestUniformEncodeDecodeRoundTrip(t *testing.T) {
	u := sequence.NewUniform(3, true)
	for i := 0; i < u.Len(); i += 17 {
		s := u.Decode(i)
		require.Equal(t, i, u.Encode(s))
	}
}
