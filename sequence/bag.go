package sequence

import "github.com/narrowstack/c4w/field"

const maxBagPreview = 13

// Bag is the 7-piece-bag sequence automaton of spec §4.2: pieces are
// drawn without replacement from a rolling 7-piece bag, which refills
// once every piece has been drawn. State packs a fixed-length preview
// queue plus the bitset of pieces already drawn from the open bag, and,
// when hold is enabled, an explicit held piece — grounded on the
// Bag/BagState sketch in original_source/src/states/bag_states.rs, whose
// two-overlapping-bags bookkeeping is left entirely commented out and
// unfinished there; this models the same "no repeats until the bag
// empties" invariant with a single rolling bag, which is the standard
// 7-bag randomizer and is exactly what bag_states.rs's own comments
// describe as the steady-state behavior once the preview window is full.
//
// Reachable (queue, bag) configurations are discovered by BFS from the
// all-undrawn initial bag (grounded on the teacher bfs package's
// queue-driven traversal idiom) and tabulated once at construction; Bag
// itself is then a pure table lookup.
type Bag struct {
	preview int
	hold    bool

	// states[i] is the raw (queue,mask) packing for holdless index i.
	states []uint64
	// index maps a raw (queue,mask) packing back to its holdless index.
	index map[uint64]int
	// branches[i] is the precomputed reveal table for holdless index i.
	branches [][]rawBranch
}

type rawTransition struct {
	label field.Piece
	next  int // holdless index
}

type rawBranch struct {
	revealed     field.Piece
	transitions []rawTransition
}

// NewBag constructs the bag automaton for the given preview depth (0..13
// per spec §6) and hold setting.
func NewBag(preview int, hold bool) *Bag {
	if preview < 0 || preview > maxBagPreview {
		panic("sequence: bag preview out of range")
	}
	b := &Bag{preview: preview, hold: hold, index: make(map[uint64]int)}
	b.build()
	return b
}

func (b *Bag) Len() int {
	if b.hold {
		return len(b.states) * len(field.PIECES)
	}
	return len(b.states)
}

func (b *Bag) Decode(i int) State { return State(i) }
func (b *Bag) Encode(s State) int { return int(s) }

func (b *Bag) NextPieces(s State) []Branch {
	rawIdx, holdPiece := b.split(s)
	raw := b.branches[rawIdx]
	out := make([]Branch, len(raw))
	for i, rb := range raw {
		transitions := make([]Transition, 0, 2)
		for _, t := range rb.transitions {
			transitions = append(transitions, Transition{Label: t.label, Next: b.join(t.next, holdPiece)})
		}
		if b.hold {
			for _, t := range rb.transitions {
				if t.label == holdPiece {
					continue
				}
				transitions = append(transitions, Transition{Label: holdPiece, Next: b.join(t.next, t.label)})
			}
		}
		out[i] = Branch{Revealed: rb.revealed, Transitions: transitions}
	}
	return out
}

func (b *Bag) split(s State) (rawIdx int, holdPiece field.Piece) {
	if !b.hold {
		return int(s), 0
	}
	n := uint64(len(field.PIECES))
	return int(uint64(s) / n), field.Piece(uint64(s) % n)
}

func (b *Bag) join(rawIdx int, holdPiece field.Piece) State {
	if !b.hold {
		return State(rawIdx)
	}
	return State(uint64(rawIdx)*uint64(len(field.PIECES)) + uint64(holdPiece))
}

// build performs the two-phase BFS of original_source's State::new: first
// grow the queue to full length from the empty bag, then explore the
// steady-state push/pop transitions to closure.
func (b *Bag) build() {
	type seed struct{ queue, mask uint64 }
	frontier := []seed{{queue: 0, mask: 0}}
	for depth := 0; depth < b.preview; depth++ {
		var next []seed
		seen := make(map[seed]struct{})
		for _, st := range frontier {
			for r := field.Piece(0); int(r) < len(field.PIECES); r++ {
				if st.mask&(1<<uint(r)) != 0 {
					continue
				}
				nq, nm := appendPiece(st.queue, st.mask, depth, r)
				nxt := seed{queue: nq, mask: nm}
				if _, ok := seen[nxt]; ok {
					continue
				}
				seen[nxt] = struct{}{}
				next = append(next, nxt)
			}
		}
		frontier = next
	}

	pack := func(s seed) uint64 { return s.queue<<7 | s.mask }

	queue := make([]seed, 0, len(frontier))
	for _, st := range frontier {
		key := pack(st)
		if _, ok := b.index[key]; ok {
			continue
		}
		b.index[key] = len(b.states)
		b.states = append(b.states, key)
		queue = append(queue, st)
	}

	for i := 0; i < len(queue); i++ {
		st := queue[i]
		for r := field.Piece(0); int(r) < len(field.PIECES); r++ {
			if st.mask&(1<<uint(r)) != 0 {
				continue
			}
			played, nq, nm := shift(st.queue, st.mask, b.preview, r)
			nxt := seed{queue: nq, mask: nm}
			key := pack(nxt)
			if _, ok := b.index[key]; !ok {
				b.index[key] = len(b.states)
				b.states = append(b.states, key)
				queue = append(queue, nxt)
			}
			_ = played
		}
	}

	b.branches = make([][]rawBranch, len(b.states))
	for idx, key := range b.states {
		st := seed{queue: key >> 7, mask: key & 0x7F}
		raw := make([]rawBranch, 0, len(field.PIECES))
		for r := field.Piece(0); int(r) < len(field.PIECES); r++ {
			if st.mask&(1<<uint(r)) != 0 {
				continue
			}
			played, nq, nm := shift(st.queue, st.mask, b.preview, r)
			nextKey := pack(seed{queue: nq, mask: nm})
			nextIdx := b.index[nextKey]
			raw = append(raw, rawBranch{revealed: r, transitions: []rawTransition{{label: played, next: nextIdx}}})
		}
		b.branches[idx] = raw
	}
}

// appendPiece grows the queue by one slot during the initial fill phase
// (queue not yet at capacity): piece r is placed at position depth.
func appendPiece(queue, mask uint64, depth int, r field.Piece) (uint64, uint64) {
	nq := queue | (uint64(r) << uint(3*depth))
	nm := mask | (1 << uint(r))
	if nm == 0x7F {
		nm = 0
	}
	return nq, nm
}

// shift performs the steady-state operative transition: revealed piece r
// is appended at the back of a full-length preview queue and the front
// piece is popped and returned as played.
func shift(queue, mask uint64, preview int, r field.Piece) (played field.Piece, nq, nm uint64) {
	if preview == 0 {
		nm = mask | (1 << uint(r))
		if nm == 0x7F {
			nm = 0
		}
		return r, 0, nm
	}
	played = field.Piece(queue & 0x7)
	nq = (queue >> 3) | (uint64(r) << uint(3*(preview-1)))
	nm = mask | (1 << uint(r))
	if nm == 0x7F {
		nm = 0
	}
	return played, nq, nm
}
