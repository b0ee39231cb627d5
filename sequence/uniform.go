package sequence

import "github.com/narrowstack/c4w/field"

const pieceBase = uint64(len(field.PIECES))

// Uniform is the uniform-random sequence automaton of spec §4.2: each of
// the 7 pieces is equally likely on every reveal, independent of history.
// State is a base-7 integer with preview+hold? digits (grounded on
// original_source/src/states/field_sequence_states.rs's RandomSequenceState,
// whose div_rem-based digit shift becomes plain integer div/mod here).
// The least significant digit is always the piece about to be placed; a
// reveal shifts it out and appends the revealed piece as the new most
// significant digit. With hold enabled, an extra digit is carried and a
// second "swap" transition exchanges it with the piece about to be
// played, mirroring the Rust proxy's hold bookkeeping exactly.
type Uniform struct {
	preview int
	hold    bool
	seqLen  int
	top     uint64 // 7^(seqLen-1), the place value of the newest digit
}

// NewUniform constructs the uniform automaton for the given preview depth
// and hold setting. preview=0, hold=false degenerates to Len()==1: the
// single self-looping state of spec §4.2.
func NewUniform(preview int, hold bool) *Uniform {
	seqLen := preview
	if hold {
		seqLen++
	}
	top := uint64(1)
	for i := 0; i < seqLen-1; i++ {
		top *= pieceBase
	}
	return &Uniform{preview: preview, hold: hold, seqLen: seqLen, top: top}
}

func (u *Uniform) Len() int {
	if u.seqLen == 0 {
		return 1
	}
	n := uint64(1)
	for i := 0; i < u.seqLen; i++ {
		n *= pieceBase
	}
	return int(n)
}

func (u *Uniform) Decode(i int) State { return State(i) }
func (u *Uniform) Encode(s State) int { return int(s) }

func (u *Uniform) NextPieces(s State) []Branch {
	branches := make([]Branch, 0, pieceBase)
	for r := field.Piece(0); int(r) < len(field.PIECES); r++ {
		branches = append(branches, u.reveal(s, r))
	}
	return branches
}

// reveal computes the Branch produced by revealing piece r from state s.
func (u *Uniform) reveal(s State, r field.Piece) Branch {
	if u.seqLen == 0 {
		// No queue at all: the revealed piece is played immediately and
		// the single state never changes.
		return Branch{Revealed: r, Transitions: []Transition{{Label: r, Next: s}}}
	}

	idx := uint64(s)
	rest := idx / pieceBase
	current := field.Piece(idx % pieceBase)
	normalNext := State(rest + uint64(r)*u.top)

	transitions := []Transition{{Label: current, Next: normalNext}}
	if u.hold {
		nn := uint64(normalNext)
		swapDigit := field.Piece(nn % pieceBase)
		if swapDigit != current {
			swapNext := State(nn - uint64(swapDigit) + uint64(current))
			transitions = append(transitions, Transition{Label: swapDigit, Next: swapNext})
		}
	}
	return Branch{Revealed: r, Transitions: transitions}
}
