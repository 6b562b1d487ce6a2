package shard

import (
	"sync"
	"testing"
)

func TestTask(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		n       int
	}{
		{"single_worker", 1, 10},
		{"several_workers", 4, 100},
		{"more_workers_than_items", 8, 3},
		{"empty_input", 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mu sync.Mutex
			seen := make([]int, tt.n)
			task(tt.workers, intRange(tt.n), func(i int) {
				mu.Lock()
				seen[i]++
				mu.Unlock()
			})
			for i, c := range seen {
				if c != 1 {
					t.Errorf("element %d processed %d times, want 1", i, c)
				}
			}
		})
	}
}
