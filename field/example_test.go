package field_test

import (
	"fmt"

	"github.com/narrowstack/c4w/field"
)

// Example demonstrates dropping a vertical I piece into the last open
// column of an otherwise-full bottom row and observing the line clear.
func Example() {
	f := field.Field{0, 1, 1, 1}
	vertical := field.RotatedPiece{0b11110000, 0, 0, 0}
	results := f.PossiblePositions(vertical)
	fmt.Println(len(results) > 0)
	// Output: true
}
