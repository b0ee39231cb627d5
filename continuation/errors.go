package continuation

import "errors"

var (
	// ErrBadMagic is returned by Load when the stream does not start with
	// the continuation-table magic number.
	ErrBadMagic = errors.New("continuation: not a continuation table (bad magic)")
	// ErrInvalidPiece is returned by Load when a piece byte is outside 0..6.
	ErrInvalidPiece = errors.New("continuation: invalid piece byte in table")
)
