// ABOUTME: Bounded worker pool for parallelizing batch tasks
// ABOUTME: Provides a submit-and-wait ForEach used for genetic algorithm fitness evaluation

package pool

import (
	"github.com/alitto/pond"
)

// WorkerPool fans independent tasks out over a fixed number of goroutines.
// A pool with a single worker runs tasks inline on the caller's goroutine.
type WorkerPool struct {
	workers int
	pool    *pond.WorkerPool
}

// NewWorkerPool creates a worker pool with the given number of workers.
// The bufferSize determines the task queue capacity.
func NewWorkerPool(workers, bufferSize int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}

	p := &WorkerPool{workers: workers}
	if workers > 1 {
		p.pool = pond.New(workers, bufferSize)
	}

	return p
}

// Workers returns the number of workers
func (p *WorkerPool) Workers() int {
	return p.workers
}

// ForEach calls fn(i) for every i in [0, n) and blocks until all calls return.
// Each call must only write state owned by index i.
func (p *WorkerPool) ForEach(n int, fn func(i int)) {
	if p.pool == nil {
		for i := range n {
			fn(i)
		}

		return
	}

	group := p.pool.Group()
	for i := range n {
		group.Submit(func() {
			fn(i)
		})
	}

	group.Wait()
}

// Close shuts down the worker pool and waits for all workers to exit
func (p *WorkerPool) Close() {
	if p.pool != nil {
		p.pool.StopAndWait()
	}
}
