package shard

import "sync"

// Counter names reported during resolution. They count predicate traffic
// and pipeline outcomes, for performance investigation and for tests that
// assert a fast path was taken.
const (
	CounterTriTriCalls    = "tri_tri_calls"
	CounterFilterDecided  = "tri_tri_decided_by_filter"
	CounterExactDecided   = "tri_tri_decided_by_exact_planes"
	CounterIntersectsKept = "tri_tri_non_trivial_intersects"
	CounterTrivialSkips   = "pairs_skipped_as_trivial"

	MaxInputFaces  = "max_input_faces"
	MaxClusters    = "max_clusters"
	MaxClusterSize = "max_cluster_size"
)

// Counters receives named event counts from a resolution run. Implementations
// must be safe for concurrent use; the resolver calls them from worker
// goroutines. A nil Counters disables all reporting.
type Counters interface {
	Incr(name string)
	Max(name string, v int)
}

func incr(c Counters, name string) {
	if c != nil {
		c.Incr(name)
	}
}

func maxCount(c Counters, name string, v int) {
	if c != nil {
		c.Max(name, v)
	}
}

// MapCounters is a mutex-guarded Counters backed by a map, suitable for
// tests and ad-hoc profiling.
type MapCounters struct {
	mu sync.Mutex
	m  map[string]int
}

func (c *MapCounters) Incr(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil {
		c.m = make(map[string]int)
	}
	c.m[name]++
}

func (c *MapCounters) Max(name string, v int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil {
		c.m = make(map[string]int)
	}
	if v > c.m[name] {
		c.m[name] = v
	}
}

// Get returns the current value of a counter.
func (c *MapCounters) Get(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m[name]
}
