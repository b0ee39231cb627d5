package flow_test

import (
	"testing"

	"github.com/narrowstack/c4w/internal/flow"
	"github.com/stretchr/testify/require"
)

func TestMaxFlowSimpleDiamond(t *testing.T) {
	// source -> a -> sink, source -> b -> sink, capacities 1 each: maxflow 2.
	g := flow.NewGraph(4)
	const source, a, b, sink = int32(0), int32(1), int32(2), int32(3)
	g.AddEdge(source, a, 1)
	g.AddEdge(source, b, 1)
	g.AddEdge(a, sink, 1)
	g.AddEdge(b, sink, 1)

	require.Equal(t, int32(2), g.MaxFlow(source, sink))
}

func TestMaxFlowBipartitePerfectMatching(t *testing.T) {
	// Complete bipartite K(3,3) with unit capacities: perfect matching of size 3.
	const n = 8
	source, sink := int32(6), int32(7)
	g := flow.NewGraph(n)
	for l := int32(0); l < 3; l++ {
		g.AddEdge(source, l, 1)
	}
	for r := int32(3); r < 6; r++ {
		g.AddEdge(r, sink, 1)
	}
	for l := int32(0); l < 3; l++ {
		for r := int32(3); r < 6; r++ {
			g.AddEdge(l, r, 1)
		}
	}
	require.Equal(t, int32(3), g.MaxFlow(source, sink))
}

func TestMaxFlowBottleneckCapacity(t *testing.T) {
	g := flow.NewGraph(3)
	const source, mid, sink = int32(0), int32(1), int32(2)
	g.AddEdge(source, mid, 5)
	g.AddEdge(mid, sink, 2)
	require.Equal(t, int32(2), g.MaxFlow(source, sink))
}

func TestMaxFlowNoPath(t *testing.T) {
	g := flow.NewGraph(3)
	g.AddEdge(0, 1, 4)
	require.Equal(t, int32(0), g.MaxFlow(0, 2))
}
