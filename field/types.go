// Package field defines the Field and Piece primitives: the 4-column×8-row
// bitboard alphabet the rest of this module operates over, and the seven
// canonical tetromino shapes with their rotations.
//
// A Field packs eight rows into one byte per column, column-major, with
// bit 0 the bottom row. Rows above the packed byte (row ≥ 8) never occur
// on this board: a taller stack is a lost/topped-out branch (spec §4.3).
package field

import "fmt"

// Width is the number of columns on the board.
const Width = 4

// Height is the number of rows per column; a Field's topmost legal row
// is Height-1.
const Height = 8

// Field is a 4×8 board configuration, one packed byte per column.
// Bit j of Field[i] is set iff column i, row j is occupied.
type Field [Width]uint8

// Empty is the field with no occupied cells.
var Empty = Field{}

// String renders the field bottom row last (ASCII art, for debugging/tests).
func (f Field) String() string {
	out := make([]byte, 0, Height*(Width+2))
	for row := Height - 1; row >= 0; row-- {
		out = append(out, '|')
		for col := 0; col < Width; col++ {
			if f[col]&(1<<uint(row)) != 0 {
				out = append(out, 'X', 'X')
			} else {
				out = append(out, ' ', ' ')
			}
		}
		out = append(out, '|', '\n')
	}
	return string(out)
}

// Piece is one of the seven canonical tetromino shapes, in the fixed
// numeric order spec.md §3 requires (0..6).
type Piece int

// The seven tetromino shapes, in their canonical numeric order.
const (
	I Piece = iota
	O
	T
	S
	Z
	J
	L
)

// PIECES is the ordered list of all seven pieces (byte 0..6 on the wire).
var PIECES = [7]Piece{I, O, T, S, Z, J, L}

// String implements fmt.Stringer for readable test output and error messages.
func (p Piece) String() string {
	switch p {
	case I:
		return "I"
	case O:
		return "O"
	case T:
		return "T"
	case S:
		return "S"
	case Z:
		return "Z"
	case J:
		return "J"
	case L:
		return "L"
	default:
		return fmt.Sprintf("Piece(%d)", int(p))
	}
}

// Valid reports whether p is one of the seven canonical pieces.
func (p Piece) Valid() bool {
	return p >= I && p <= L
}

// RotatedPiece is a single rotation's silhouette, packed identically to Field.
type RotatedPiece [Width]uint8
