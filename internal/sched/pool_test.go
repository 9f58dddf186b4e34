package sched

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pwsa/internal/resource"
)

// sum adds 1..n by recursive halving, the same shape the search driver uses.
func sum(p *Pool, w Worker, lo, hi int64, total *atomic.Int64) error {
	if hi-lo <= 8 {
		for i := lo; i < hi; i++ {
			total.Add(i)
		}
		return nil
	}
	mid := lo + (hi-lo)/2
	return p.Fork2(w,
		func(w Worker) error { return sum(p, w, lo, mid, total) },
		func(w Worker) error { return sum(p, w, mid, hi, total) },
	)
}

func TestPool_Fork2Joins(t *testing.T) {
	for _, workers := range []int{1, 2, 8} {
		p := NewPool(resource.NewController(resource.Config{MaxWorkers: workers}))
		var total atomic.Int64
		require.NoError(t, sum(p, 0, 0, 10000, &total))
		assert.Equal(t, int64(10000*9999/2), total.Load(), "workers=%d", workers)

		parallel, inline := p.ForkStats()
		assert.Positive(t, parallel+inline)
		if workers == 1 {
			assert.Zero(t, parallel)
		}
	}
}

func TestPool_NilControllerRunsInline(t *testing.T) {
	p := NewPool(nil)
	assert.Equal(t, 1, p.Workers())

	var order []string
	err := p.Fork2(0,
		func(w Worker) error { order = append(order, "a"); return nil },
		func(w Worker) error { order = append(order, "b"); return nil },
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestPool_WorkerIDsInRange(t *testing.T) {
	const workers = 4
	p := NewPool(resource.NewController(resource.Config{MaxWorkers: workers}))

	var (
		mu   sync.Mutex
		seen = map[Worker]bool{}
	)
	var run func(w Worker, depth int) error
	run = func(w Worker, depth int) error {
		mu.Lock()
		seen[w] = true
		mu.Unlock()
		if depth == 0 {
			return nil
		}
		return p.Fork2(w,
			func(w Worker) error { return run(w, depth-1) },
			func(w Worker) error { return run(w, depth-1) },
		)
	}
	require.NoError(t, run(0, 10))

	assert.True(t, seen[0])
	for w := range seen {
		assert.GreaterOrEqual(t, int(w), 0)
		assert.Less(t, int(w), workers)
	}
}

func TestPool_ErrorPropagation(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	for _, workers := range []int{1, 2} {
		p := NewPool(resource.NewController(resource.Config{MaxWorkers: workers}))

		err := p.Fork2(0,
			func(Worker) error { return nil },
			func(Worker) error { return errB },
		)
		assert.ErrorIs(t, err, errB)

		err = p.Fork2(0,
			func(Worker) error { return errA },
			func(Worker) error { return errB },
		)
		assert.ErrorIs(t, err, errA)
	}
}

func TestPerWorker(t *testing.T) {
	pw := NewPerWorker[int64](4, 7)
	assert.Equal(t, 4, pw.Len())
	*pw.Mine(2) += 3

	var got []int64
	pw.Each(func(_ Worker, v *int64) { got = append(got, *v) })
	assert.Equal(t, []int64{7, 7, 10, 7}, got)
}

func TestPerWorker_ConcurrentOwners(t *testing.T) {
	const workers = 8
	pw := NewPerWorker[int64](workers, 0)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w Worker) {
			defer wg.Done()
			for i := 0; i < 10000; i++ {
				*pw.Mine(w)++
			}
		}(Worker(w))
	}
	wg.Wait()

	pw.Each(func(w Worker, v *int64) {
		assert.Equal(t, int64(10000), *v, "worker %d", w)
	})
}
