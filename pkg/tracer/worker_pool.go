package tracer

import (
	"runtime"
	"sync"
)

// rayChunkSize is the number of rays per task. Small chunks keep the
// load balanced when per-ray cost varies with the structures actually
// intersected.
const rayChunkSize = 64

// rayTask is one contiguous slice of the ray batch
type rayTask struct {
	start, end int
}

// WorkerPool runs per-ray work across a fixed set of goroutines fed
// from a shared task channel. Workers write only to the disjoint
// per-ray slots handed to them, so no locking is needed.
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// NumWorkers returns the pool size
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run partitions [0, n) into chunks and processes them on the pool,
// blocking until every ray is done. Each worker pulls chunks from the
// queue as it finishes, so slow chunks do not stall the rest.
func (wp *WorkerPool) Run(n int, process func(start, end int)) {
	if n <= 0 {
		return
	}
	numTasks := (n + rayChunkSize - 1) / rayChunkSize
	tasks := make(chan rayTask, numTasks)

	var wg sync.WaitGroup
	for w := 0; w < wp.numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range tasks {
				process(task.start, task.end)
			}
		}()
	}

	for start := 0; start < n; start += rayChunkSize {
		end := start + rayChunkSize
		if end > n {
			end = n
		}
		tasks <- rayTask{start: start, end: end}
	}
	close(tasks)
	wg.Wait()
}
