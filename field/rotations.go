package field

// baseShapes lists, per piece, the leftmost silhouette of every distinct
// rotation. Rotations() slides each one rightward to enumerate every
// horizontal position, so only one (arbitrary) starting column is needed
// here — sliding is what produces the rest.
var baseShapes = [7][][Width]uint8{
	I: {
		{0b10000000, 0b10000000, 0b10000000, 0b10000000},
		{0b11110000, 0b00000000, 0b00000000, 0b00000000},
	},
	O: {
		{0b11000000, 0b11000000, 0b00000000, 0b00000000},
	},
	T: {
		{0b10000000, 0b11000000, 0b10000000, 0b00000000},
		{0b11100000, 0b01000000, 0b00000000, 0b00000000},
		{0b01000000, 0b11000000, 0b01000000, 0b00000000},
		{0b01000000, 0b11100000, 0b00000000, 0b00000000},
	},
	S: {
		{0b01000000, 0b11000000, 0b10000000, 0b00000000},
		{0b11000000, 0b01100000, 0b00000000, 0b00000000},
	},
	Z: {
		{0b10000000, 0b11000000, 0b01000000, 0b00000000},
		{0b01100000, 0b11000000, 0b00000000, 0b00000000},
	},
	J: {
		{0b11000000, 0b01000000, 0b01000000, 0b00000000},
		{0b11100000, 0b10000000, 0b00000000, 0b00000000},
		{0b10000000, 0b10000000, 0b11000000, 0b00000000},
		{0b00100000, 0b11100000, 0b00000000, 0b00000000},
	},
	L: {
		{0b01000000, 0b01000000, 0b11000000, 0b00000000},
		{0b11100000, 0b00100000, 0b00000000, 0b00000000},
		{0b11000000, 0b10000000, 0b10000000, 0b00000000},
		{0b10000000, 0b11100000, 0b00000000, 0b00000000},
	},
}

// MoveLeft shifts p one column toward column 0. Returns false if p already
// occupies column 0 (it would fall off the west wall).
func (p RotatedPiece) MoveLeft() (RotatedPiece, bool) {
	if p[0] != 0 {
		return RotatedPiece{}, false
	}
	return RotatedPiece{p[1], p[2], p[3], 0}, true
}

// MoveRight shifts p one column toward column Width-1. Returns false if p
// already occupies the last column (it would fall off the east wall).
func (p RotatedPiece) MoveRight() (RotatedPiece, bool) {
	if p[Width-1] != 0 {
		return RotatedPiece{}, false
	}
	return RotatedPiece{0, p[0], p[1], p[2]}, true
}

// MoveDown shifts p one row toward row 0. Returns false if p already rests
// on the floor (any column has bit 0 set).
func (p RotatedPiece) MoveDown() (RotatedPiece, bool) {
	for _, col := range p {
		if col&1 != 0 {
			return RotatedPiece{}, false
		}
	}
	return RotatedPiece{p[0] >> 1, p[1] >> 1, p[2] >> 1, p[3] >> 1}, true
}

// Rotations returns every (rotation, horizontal translation) silhouette of
// piece p, in canonical generation order: each distinct rotation's leftmost
// shape first, then the same rotation slid right column by column until it
// hits the east wall.
func Rotations(p Piece) []RotatedPiece {
	shapes := baseShapes[p]
	result := make([]RotatedPiece, 0, len(shapes)*Width)
	for _, shape := range shapes {
		cur := RotatedPiece(shape)
		for {
			result = append(result, cur)
			next, ok := cur.MoveRight()
			if !ok {
				break
			}
			cur = next
		}
	}
	return result
}
