// Package product composes a continuation table and a sequence automaton
// into the full non-deterministic product state space of spec §4.3: a
// virtual enumeration of (field, sequence-state) pairs with mixed-radix
// encode/decode and an on-demand transition function, so downstream
// passes can materialize only the states they actually reach instead of
// allocating the full 10^8-10^9 state product up front.
package product

import (
	"bytes"
	"math"
	"sort"

	"github.com/narrowstack/c4w/continuation"
	"github.com/narrowstack/c4w/field"
	"github.com/narrowstack/c4w/sequence"
)

// Enumerator is the product state space over a fixed continuation table
// and sequence automaton. Field indices are the high-order digit and
// sequence indices the low-order digit of the mixed-radix encoding —
// arbitrary but fixed, and Encode/Decode are exact inverses of each
// other per spec §8's "Encode/decode round trip" scenario.
type Enumerator struct {
	fields     []field.Field
	fieldIndex map[field.Field]int
	table      *continuation.Table
	seq        sequence.Automaton
}

// New builds the product enumerator over t and seq. Fields are sorted for
// a deterministic, reproducible field-index assignment across runs of the
// same continuation table.
func New(t *continuation.Table, seq sequence.Automaton) (*Enumerator, error) {
	fields := t.Fields()
	sort.Slice(fields, func(i, j int) bool {
		return bytes.Compare(fields[i][:], fields[j][:]) < 0
	})

	seqLen := seq.Len()
	if seqLen == 0 {
		return nil, ErrProductOverflow
	}
	if len(fields) != 0 && seqLen > math.MaxInt64/len(fields) {
		return nil, ErrProductOverflow
	}

	idx := make(map[field.Field]int, len(fields))
	for i, f := range fields {
		idx[f] = i
	}
	return &Enumerator{fields: fields, fieldIndex: idx, table: t, seq: seq}, nil
}

// Len is the total product state count: |fields| * |sequence states|.
func (e *Enumerator) Len() int {
	return len(e.fields) * e.seq.Len()
}

// FieldCount returns the number of distinct fields in the underlying
// continuation table.
func (e *Enumerator) FieldCount() int {
	return len(e.fields)
}

// Encode packs a (field index, sequence state) pair into a single
// product index.
func (e *Enumerator) Encode(fieldIdx int, s sequence.State) int {
	return fieldIdx*e.seq.Len() + e.seq.Encode(s)
}

// Decode splits a product index back into its (field index, sequence
// state) pair, the exact inverse of Encode.
func (e *Enumerator) Decode(i int) (fieldIdx int, s sequence.State) {
	seqLen := e.seq.Len()
	fieldIdx = i / seqLen
	s = e.seq.Decode(i % seqLen)
	return fieldIdx, s
}

// Field returns the field at field index fi.
func (e *Enumerator) Field(fi int) field.Field {
	return e.fields[fi]
}

// FieldIndex returns the field index of f, or false if f is not in the
// underlying continuation table.
func (e *Enumerator) FieldIndex(f field.Field) (int, bool) {
	fi, ok := e.fieldIndex[f]
	return fi, ok
}

// Branches enumerates the non-deterministic transition relation out of
// product state i: one branch per piece the randomness source could
// reveal (spec §4.3 "next_pieces"), each branch's successor set being the
// union, over every (label, next-sequence-state) transition the
// automaton offers for that reveal, of every clearing hard-drop landing
// of the labeled piece onto the current field (spec §4.3's "next_states"
// — concatenating placements on the revealed piece and, when hold is on,
// on the hold piece too, since the sequence automaton already exposes
// the hold swap as a second Transition per Branch).
func (e *Enumerator) Branches(i int) [][]int32 {
	fieldIdx, s := e.Decode(i)
	f := e.fields[fieldIdx]
	branches := e.seq.NextPieces(s)

	rows := make([][]int32, len(branches))
	for bi, br := range branches {
		seen := make(map[int32]struct{})
		var succ []int32
		for _, tr := range br.Transitions {
			for _, landed := range e.table.Get(f, tr.Label) {
				lfi, ok := e.fieldIndex[landed]
				if !ok {
					continue
				}
				enc := int32(e.Encode(lfi, tr.Next))
				if _, dup := seen[enc]; dup {
					continue
				}
				seen[enc] = struct{}{}
				succ = append(succ, enc)
			}
		}
		rows[bi] = succ
	}
	return rows
}
