package field

import "errors"

// Sentinel errors for the field package.
var (
	// ErrInvalidPiece indicates a byte outside the 0..6 piece range.
	ErrInvalidPiece = errors.New("field: invalid piece byte")
)
