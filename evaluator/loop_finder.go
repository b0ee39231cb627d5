package evaluator

import (
	"sort"

	"github.com/narrowstack/c4w/csr"
)

// HasLoop reports whether the transition system contains a subset of
// states that can survive forever — i.e. no sequence of piece reveals
// is guaranteed to force termination. Value iteration's fixed point is
// only meaningful when this returns false (spec §4.8).
//
// Ported from loop_finder.rs's reverse-BFS dead-edge elimination: seed
// the "provably terminates" set with every state carrying an
// already-empty branch (an instant loss), then repeatedly strip a
// terminating state's id out of every branch that mentions it; a
// branch that empties out this way makes its owning state terminate
// too. Any state never reached by this process can be kept alive
// forever by an adversarial piece sequence — a loop.
func HasLoop(c *csr.CSR) bool {
	n := c.RowCount()

	live := make([][][]int32, n)
	for i := 0; i < n; i++ {
		arity := c.Arity(i)
		live[i] = make([][]int32, arity)
		for k := 0; k < arity; k++ {
			begin, end := c.Branch(i, k)
			succ := c.Successors(begin, end)
			cp := make([]int32, len(succ))
			copy(cp, succ)
			live[i][k] = cp
		}
	}

	reverse := make([][]int32, n)
	for i := 0; i < n; i++ {
		for _, br := range live[i] {
			for _, to := range br {
				reverse[to] = append(reverse[to], int32(i))
			}
		}
	}
	for i := range reverse {
		sort.Slice(reverse[i], func(a, b int) bool { return reverse[i][a] < reverse[i][b] })
		reverse[i] = dedupSortedInt32s(reverse[i])
	}

	visited := make([]bool, n)
	var stack []int32
	for i := 0; i < n; i++ {
		// Arity zero (no branches at all) is itself a guaranteed
		// terminal in this CSR convention, not just a state carrying
		// one explicitly empty branch — unlike the fixed-one-branch-
		// per-piece original, a pruned/minimized state here can simply
		// have no branches left.
		if len(live[i]) == 0 {
			visited[i] = true
			stack = append(stack, int32(i))
			continue
		}
		for _, br := range live[i] {
			if len(br) == 0 {
				visited[i] = true
				stack = append(stack, int32(i))
				break
			}
		}
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, j := range reverse[i] {
			if visited[j] {
				continue
			}
			becameDead := false
			for bi, br := range live[j] {
				idx := -1
				for pos, v := range br {
					if v == i {
						idx = pos
						break
					}
				}
				if idx < 0 {
					continue
				}
				br[idx] = br[len(br)-1]
				br = br[:len(br)-1]
				live[j][bi] = br
				if len(br) == 0 {
					becameDead = true
				}
			}
			if becameDead {
				visited[j] = true
				stack = append(stack, j)
			}
		}
	}

	for _, v := range visited {
		if !v {
			return true
		}
	}
	return false
}

func dedupSortedInt32s(s []int32) []int32 {
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
