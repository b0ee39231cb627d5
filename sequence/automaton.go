// Package sequence implements the piece-sequence automata of spec §4.2:
// the uniform-random model and the 7-piece-bag model, both exposing the
// same Automaton contract so the product enumerator (package product) can
// stay agnostic to which randomness model backs a solve.
package sequence

import "github.com/narrowstack/c4w/field"

// State is an opaque, automaton-specific packed integer. Only the
// Automaton that produced it can Decode or transition it meaningfully.
type State uint64

// Transition is one (piece-to-place-now, resulting-state) pair.
type Transition struct {
	Label field.Piece
	Next  State
}

// Branch groups every Transition reachable by revealing a single new
// piece into the queue. NextPieces returns one Branch per piece the
// randomness source could reveal next (at most seven — spec §4.2's "7
// self-loops labeled by piece").  With hold disabled a Branch carries
// exactly one Transition; with hold enabled it carries two whenever the
// held piece differs from the piece about to be played, modeling "play
// revealed" and "play previous hold, store revealed" as alternatives
// reachable from the same random draw.
type Branch struct {
	Revealed    field.Piece
	Transitions []Transition
}

// Automaton is the sequence-automaton contract of spec §4.2.
type Automaton interface {
	// Len returns the number of distinct automaton states.
	Len() int
	// Decode returns the state at product index i.
	Decode(i int) State
	// Encode returns the product index of state s.
	Encode(s State) int
	// NextPieces enumerates every way the randomness source can reveal a
	// new piece from state s.
	NextPieces(s State) []Branch
}
