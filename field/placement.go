package field

// Overlaps reports whether piece p collides with any occupied cell of f.
func (f Field) Overlaps(p RotatedPiece) bool {
	for i := 0; i < Width; i++ {
		if f[i]&p[i] != 0 {
			return true
		}
	}
	return false
}

// Put returns f with piece p merged in (f must not Overlap p).
func (f Field) Put(p RotatedPiece) Field {
	var out Field
	for i := 0; i < Width; i++ {
		out[i] = f[i] | p[i]
	}
	return out
}

// Clearable reports whether f has at least one full row (a row occupied in
// every column).
func (f Field) Clearable() bool {
	return f.fullRowsMask() != 0
}

// fullRowsMask returns a bitmask with bit j set iff row j is full across
// all four columns.
func (f Field) fullRowsMask() uint8 {
	mask := uint8(0xFF)
	for _, col := range f {
		mask &= col
	}
	return mask
}

// ClearLines removes every full row, compacting the rows above each
// cleared row downward by one per clear, and returns the number of rows
// cleared along with the resulting field.
func (f Field) ClearLines() (int, Field) {
	full := f.fullRowsMask()
	if full == 0 {
		return 0, f
	}
	out := f
	cleared := 0
	for row := 0; row < Height; row++ {
		if full&(1<<uint(row)) == 0 {
			continue
		}
		shift := uint(row - cleared)
		keepBelow := uint8((1 << shift) - 1)
		for i := 0; i < Width; i++ {
			above := (out[i] >> 1) &^ keepBelow
			below := out[i] & keepBelow
			out[i] = below | above
		}
		cleared++
	}
	return cleared, out
}

// PossiblePositions enumerates the hard-drop result fields reachable by
// lowering rotation p onto f one row at a time from its given (spawn) row.
// While a row is legal (no overlap) and line-clearing, it supersedes any
// clearing result recorded for the row just above it — a piece continuing
// to fall always rests at the deepest legal row, so only the last clearing
// landing in each contiguous run of clearing rows survives. The first row at which p
// would overlap the stack ends the drop (a hard drop goes no further); the
// interactive soft-drop confirmation that the original tool used to reach
// rows beyond an overlap is an external collaborator (spec §1) and is not
// modeled here.
func (f Field) PossiblePositions(p RotatedPiece) []Field {
	var result []Field
	lastPush := false
	cur := p
	for {
		if f.Overlaps(cur) {
			break
		}
		thisPush := false
		landed := f.Put(cur)
		if landed.Clearable() {
			if lastPush {
				result = result[:len(result)-1]
			}
			_, cleared := landed.ClearLines()
			result = append(result, cleared)
			thisPush = true
		}
		lastPush = thisPush
		next, ok := cur.MoveDown()
		if !ok {
			break
		}
		cur = next
	}
	return result
}
