package csr_test

import (
	"fmt"

	"github.com/narrowstack/c4w/csr"
)

// Example builds a two-node row with one branch each and walks the
// successor list the way a minimizer or evaluator pass would.
func Example() {
	c := csr.New(2, 2)
	c.Push([][]int32{{1}})
	c.Push(nil)

	begin, end := c.Branch(0, 0)
	fmt.Println(c.Successors(begin, end))
	// Output: [1]
}
