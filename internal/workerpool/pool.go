// Package workerpool provides the generic chunked-parallelism primitives
// shared by the minimizer's partition refinement, the pruner's per-state
// matching fan-out, and value iteration's per-class sweeps: goroutines,
// joined by a sync.WaitGroup, over runtime.NumCPU() chunks of the
// state-index range. Adapted from
// junjiewwang-perf-analysis/pkg/parallel's generic WorkerPool/chunk
// primitives, trimmed to the two shapes this pipeline actually needs:
// range-chunked for-each, and thread-local-map aggregation merged at the
// end of a round.
package workerpool

import (
	"runtime"
	"sync"
)

// Workers returns the default worker count for range-chunked passes: the
// number of logical CPUs, at least 1.
func Workers() int {
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	return n
}

// chunks splits [0, n) into at most workers contiguous, non-overlapping
// ranges.
func chunks(n, workers int) [][2]int {
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	size := (n + workers - 1) / workers
	var out [][2]int
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

// ForEachIndex calls fn(i) for every i in [0, n), fanning out across
// Workers() goroutines with contiguous index ranges per worker. It
// blocks until every call has returned.
func ForEachIndex(n int, fn func(i int)) {
	if n == 0 {
		return
	}
	var wg sync.WaitGroup
	for _, rng := range chunks(n, Workers()) {
		rng := rng
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := rng[0]; i < rng[1]; i++ {
				fn(i)
			}
		}()
	}
	wg.Wait()
}

// AggregateIndex runs extract(i) for every i in [0, n) across Workers()
// goroutines, each maintaining its own local map keyed by K to avoid lock
// contention (grounded on the teacher parallel package's ParallelAggregate),
// then merges every local map into one with merge. merge must be
// associative and commutative; ties are broken by calling it with the
// accumulated value first and the new value second.
func AggregateIndex[K comparable, V any](n int, extract func(i int) (K, V), merge func(existing, next V) V) map[K]V {
	if n == 0 {
		return make(map[K]V)
	}
	ranges := chunks(n, Workers())
	locals := make([]map[K]V, len(ranges))

	var wg sync.WaitGroup
	for w, rng := range ranges {
		w, rng := w, rng
		locals[w] = make(map[K]V)
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := locals[w]
			for i := rng[0]; i < rng[1]; i++ {
				k, v := extract(i)
				if existing, ok := local[k]; ok {
					local[k] = merge(existing, v)
				} else {
					local[k] = v
				}
			}
		}()
	}
	wg.Wait()

	result := make(map[K]V)
	for _, local := range locals {
		for k, v := range local {
			if existing, ok := result[k]; ok {
				result[k] = merge(existing, v)
			} else {
				result[k] = v
			}
		}
	}
	return result
}

// AggregateIndexFiltered is AggregateIndex with extract allowed to opt an
// index out of aggregation entirely (ok==false) — used when most indices
// resolve immediately via some side channel and only a minority need
// grouping, so they don't pollute the merged map under a throwaway key.
func AggregateIndexFiltered[K comparable, V any](n int, extract func(i int) (key K, value V, ok bool), merge func(existing, next V) V) map[K]V {
	if n == 0 {
		return make(map[K]V)
	}
	ranges := chunks(n, Workers())
	locals := make([]map[K]V, len(ranges))

	var wg sync.WaitGroup
	for w, rng := range ranges {
		w, rng := w, rng
		locals[w] = make(map[K]V)
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := locals[w]
			for i := rng[0]; i < rng[1]; i++ {
				k, v, ok := extract(i)
				if !ok {
					continue
				}
				if existing, ok := local[k]; ok {
					local[k] = merge(existing, v)
				} else {
					local[k] = v
				}
			}
		}()
	}
	wg.Wait()

	result := make(map[K]V)
	for _, local := range locals {
		for k, v := range local {
			if existing, ok := result[k]; ok {
				result[k] = merge(existing, v)
			} else {
				result[k] = v
			}
		}
	}
	return result
}
