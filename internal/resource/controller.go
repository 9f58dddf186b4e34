package resource

import (
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrMemoryLimitExceeded is returned when memory limit would be exceeded.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for managed memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxWorkers is the total number of workers, including the caller's own
	// goroutine (worker 0). If <= 0, defaults to 1 (no extra goroutines).
	MaxWorkers int
}

// Controller manages the memory budget and worker slots of one search.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64
	memPeak atomic.Int64

	// Workers
	workerSem *semaphore.Weighted
	mu        sync.Mutex
	freeIDs   []int
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}

	c := &Controller{
		cfg:       cfg,
		workerSem: semaphore.NewWeighted(int64(cfg.MaxWorkers - 1)),
		freeIDs:   make([]int, 0, cfg.MaxWorkers-1),
	}
	for id := cfg.MaxWorkers - 1; id >= 1; id-- {
		c.freeIDs = append(c.freeIDs, id)
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	return c
}

// AcquireMemory attempts to reserve memory.
// Returns ErrMemoryLimitExceeded if limit would be exceeded.
// Non-blocking - a search treats exhaustion as fatal.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return ErrMemoryLimitExceeded
		}
	}

	used := c.memUsed.Add(bytes)
	for {
		peak := c.memPeak.Load()
		if used <= peak || c.memPeak.CompareAndSwap(peak, used) {
			break
		}
	}
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// PeakMemory returns the highest memory usage observed.
func (c *Controller) PeakMemory() int64 {
	if c == nil {
		return 0
	}
	return c.memPeak.Load()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// MaxWorkers returns the configured worker count.
func (c *Controller) MaxWorkers() int {
	if c == nil {
		return 1
	}
	return c.cfg.MaxWorkers
}

// TryAcquireWorker reserves a worker slot without blocking and returns its
// id in 1..MaxWorkers-1. ok is false when every slot is busy.
func (c *Controller) TryAcquireWorker() (id int, ok bool) {
	if c == nil {
		return 0, false
	}
	if !c.workerSem.TryAcquire(1) {
		return 0, false
	}
	c.mu.Lock()
	id = c.freeIDs[len(c.freeIDs)-1]
	c.freeIDs = c.freeIDs[:len(c.freeIDs)-1]
	c.mu.Unlock()
	return id, true
}

// ReleaseWorker returns a slot obtained from TryAcquireWorker.
func (c *Controller) ReleaseWorker(id int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.freeIDs = append(c.freeIDs, id)
	c.mu.Unlock()
	c.workerSem.Release(1)
}
