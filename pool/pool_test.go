// ABOUTME: Tests for the worker pool
// ABOUTME: Verifies every index runs exactly once for inline and parallel pools

package pool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForEachVisitsEveryIndex(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		p := NewWorkerPool(workers, 16)

		results := make([]int, 100)
		var calls atomic.Int64

		p.ForEach(len(results), func(i int) {
			results[i] = i * i
			calls.Add(1)
		})
		p.Close()

		assert.Equal(t, int64(100), calls.Load(), "workers=%d", workers)
		for i, r := range results {
			assert.Equal(t, i*i, r, "workers=%d index=%d", workers, i)
		}
	}
}

func TestWorkersFloor(t *testing.T) {
	p := NewWorkerPool(-2, 1)
	defer p.Close()

	assert.Equal(t, 1, p.Workers())
}
