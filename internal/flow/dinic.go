// Package flow is an index-based port of the teacher flow package's
// Dinic max-flow (level graph + blocking flow, _examples/katalvlaran-lvlath/flow/dinic.go),
// specialized to int32 node indices and integer capacities. The
// pruner's dominance test and the prover's "A >= B" subroutine both
// reduce to bipartite matching with multiplicities (spec §4.5/§4.6), and
// at the class counts this pipeline runs at (often hundreds of millions
// of candidate pairs), the teacher's string-keyed core.Graph/map[string]
// representation is far too much allocation per call; this keeps the
// same BFS-level / DFS-blocking-flow shape over flat adjacency-list
// arrays instead.
package flow

// Graph is a mutable flow network over integer node indices [0, n). Add
// edges before calling MaxFlow; MaxFlow consumes (mutates) the graph's
// residual capacities, so build a fresh Graph per computation.
type Graph struct {
	n     int
	head  []int32 // head[u] = index of first edge out of u, or -1
	to    []int32 // edge endpoints
	next  []int32 // next[e] = next edge in u's adjacency list, or -1
	cap_  []int32 // residual capacity of edge e
}

// NewGraph returns an empty flow network over n nodes.
func NewGraph(n int) *Graph {
	head := make([]int32, n)
	for i := range head {
		head[i] = -1
	}
	return &Graph{n: n, head: head}
}

// AddEdge adds a directed edge u->v with the given capacity, plus its
// zero-capacity reverse edge for residual bookkeeping. Returns the
// forward edge's id (its reverse is always id^1).
func (g *Graph) AddEdge(u, v int32, capacity int32) int32 {
	id := int32(len(g.to))
	g.to = append(g.to, v)
	g.cap_ = append(g.cap_, capacity)
	g.next = append(g.next, g.head[u])
	g.head[u] = id

	g.to = append(g.to, u)
	g.cap_ = append(g.cap_, 0)
	g.next = append(g.next, g.head[v])
	g.head[v] = id + 1

	return id
}

// MaxFlow computes the maximum flow from source to sink, repeating BFS
// level-graph construction and DFS blocking-flow pushes until sink is
// unreachable, exactly the teacher's Dinic loop shape with maps replaced
// by index arrays.
func (g *Graph) MaxFlow(source, sink int32) int32 {
	var total int32
	level := make([]int32, g.n)
	iter := make([]int32, g.n)

	for {
		for i := range level {
			level[i] = -1
		}
		queue := []int32{source}
		level[source] = 0
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for e := g.head[u]; e != -1; e = g.next[e] {
				v := g.to[e]
				if g.cap_[e] > 0 && level[v] < 0 {
					level[v] = level[u] + 1
					queue = append(queue, v)
				}
			}
		}
		if level[sink] < 0 {
			break
		}

		for i := range g.head {
			iter[i] = g.head[i]
		}
		for {
			pushed := g.dfsPush(source, sink, maxInt32, level, iter)
			if pushed == 0 {
				break
			}
			total += pushed
		}
	}
	return total
}

const maxInt32 = int32(1<<31 - 1)

func (g *Graph) dfsPush(u, sink int32, available int32, level, iter []int32) int32 {
	if u == sink {
		return available
	}
	for e := iter[u]; e != -1; e = g.next[e] {
		iter[u] = e
		v := g.to[e]
		if g.cap_[e] <= 0 || level[v] != level[u]+1 {
			continue
		}
		send := available
		if g.cap_[e] < send {
			send = g.cap_[e]
		}
		if send == 0 {
			continue
		}
		pushed := g.dfsPush(v, sink, send, level, iter)
		if pushed > 0 {
			g.cap_[e] -= pushed
			g.cap_[e^1] += pushed
			return pushed
		}
	}
	iter[u] = -1
	return 0
}
