package minimizer

import (
	"sort"
	"strconv"
	"strings"

	"github.com/narrowstack/c4w/csr"
)

// signature is the canonical per-node key used to test whether two nodes
// belong in the same class: for each branch, the sorted-deduplicated set
// of successor class ids; the branches themselves sorted so branch order
// never distinguishes otherwise-identical nodes (spec §4.4). If the sorted
// branch list has a nontrivial greatest-common-divisor of run-lengths
// (runs of identical branches repeat a uniform number of times), it is
// collapsed down to one copy per gcd via collapseRuns — e.g. [X,X,Y,Y]
// minimizes identically to [X,Y] — because successor distributions are
// maxed over pieces then averaged uniformly, so any integer repetition of
// the same branch is canonical (spec §9 "GCD-collapse correctness"). This
// generalizes original_source/src/minimizer/dashmap.rs's get_next, which
// only recognizes the all-branches-equal special case.
func signature(c *csr.CSR, node int, classOf []int32) string {
	arity := c.Arity(node)
	branches := make([][]int32, arity)
	for k := 0; k < arity; k++ {
		begin, end := c.Branch(node, k)
		succ := c.Successors(begin, end)
		ids := make([]int32, len(succ))
		for i, s := range succ {
			ids[i] = classOf[s]
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		ids = dedupSortedInt32(ids)
		branches[k] = ids
	}
	sort.Slice(branches, func(i, j int) bool { return lessBranch(branches[i], branches[j]) })
	branches = collapseRuns(branches)
	return encodeBranches(branches)
}

// collapseRuns implements spec §4.4's gcd-collapse: branches is sorted, so
// identical branches are already consecutive. Split it into runs of equal
// branches, take the gcd of the run lengths, and keep only run-length/gcd
// copies of each run. A uniform branch list (e.g. [X,X,Y,Y], one run of
// length 2 per distinct value) collapses to one copy per run ([X,Y]) since
// gcd(2,2)=2; a list with no common factor across run lengths (e.g.
// [X,X,X,Y], gcd(3,1)=1) is left untouched.
func collapseRuns(branches [][]int32) [][]int32 {
	if len(branches) < 2 {
		return branches
	}

	runLengths := make([]int, 0, len(branches))
	runStarts := make([]int, 0, len(branches))
	runStarts = append(runStarts, 0)
	runLen := 1
	for i := 1; i < len(branches); i++ {
		if equalBranch(branches[i], branches[i-1]) {
			runLen++
			continue
		}
		runLengths = append(runLengths, runLen)
		runStarts = append(runStarts, i)
		runLen = 1
	}
	runLengths = append(runLengths, runLen)

	g := runLengths[0]
	for _, l := range runLengths[1:] {
		g = gcdInt(g, l)
	}
	if g <= 1 {
		return branches
	}

	collapsed := make([][]int32, 0, len(branches)/g)
	for i, start := range runStarts {
		kept := runLengths[i] / g
		for k := 0; k < kept; k++ {
			collapsed = append(collapsed, branches[start])
		}
	}
	return collapsed
}

func gcdInt(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func dedupSortedInt32(s []int32) []int32 {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func lessBranch(a, b []int32) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func equalBranch(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// encodeBranches renders branches into a single string key, cheap to hash
// and compare, with no ambiguity between e.g. [[1,2],[3]] and [[1],[2,3]].
func encodeBranches(branches [][]int32) string {
	var b strings.Builder
	for _, branch := range branches {
		b.WriteByte('(')
		for i, v := range branch {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(int(v)))
		}
		b.WriteByte(')')
	}
	return b.String()
}
