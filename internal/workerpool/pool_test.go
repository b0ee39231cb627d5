package workerpool_test

import (
	"sync"
	"testing"

	"github.com/narrowstack/c4w/internal/workerpool"
	"github.com/stretchr/testify/require"
)

func TestForEachIndexVisitsEveryIndexExactlyOnce(t *testing.T) {
	const n = 10_000
	var mu sync.Mutex
	seen := make([]int, n)
	workerpool.ForEachIndex(n, func(i int) {
		mu.Lock()
		seen[i]++
		mu.Unlock()
	})
	for i, count := range seen {
		require.Equal(t, 1, count, "index %d", i)
	}
}

func TestForEachIndexZero(t *testing.T) {
	calls := 0
	workerpool.ForEachIndex(0, func(i int) { calls++ })
	require.Equal(t, 0, calls)
}

func TestAggregateIndexFilteredSkipsOptedOutIndices(t *testing.T) {
	const n = 2_000
	resolved := make([]bool, n)
	result := workerpool.AggregateIndexFiltered(n,
		func(i int) (int, int, bool) {
			if i%2 == 0 {
				resolved[i] = true
				return 0, 0, false
			}
			return i % 3, 1, true
		},
		func(a, b int) int { return a + b },
	)
	require.Len(t, result, 3)
	total := 0
	for _, v := range result {
		total += v
	}
	require.Equal(t, n/2, total)
	for i := 0; i < n; i += 2 {
		require.True(t, resolved[i])
	}
}

func TestAggregateIndexMergesAcrossWorkers(t *testing.T) {
	const n = 5_000
	result := workerpool.AggregateIndex(n,
		func(i int) (int, int) { return i % 7, 1 },
		func(a, b int) int { return a + b },
	)
	require.Len(t, result, 7)
	total := 0
	for _, v := range result {
		total += v
	}
	require.Equal(t, n, total)
}
