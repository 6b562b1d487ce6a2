package shard

import "sync"

// task runs fn over every element of data on up to workersCount goroutines,
// splitting the slice into contiguous chunks. It returns once all elements
// have been processed. Callers index shared result slices by element, so fn
// needs no synchronization of its own for per-element state.
func task[T any](workersCount int, data []T, fn func(data T)) {
	if len(data) == 0 {
		return
	}
	if workersCount > len(data) {
		workersCount = len(data)
	}

	var wg sync.WaitGroup
	chunkSize := (len(data) + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(data[i])
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, len(data)))
	}
	wg.Wait()
}
