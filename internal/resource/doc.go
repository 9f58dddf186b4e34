// Package resource implements the per-search resource controller.
//
// The controller governs two resources:
//
//   - Memory: track and limit the bytes held by the distance table and the
//     frontier nodes (non-blocking, fail-fast)
//   - Workers: hand out worker slots, each with a stable id, to forked branches
//
// # Architecture
//
//	┌───────────────────────────────────────────────┐
//	│                  Controller                   │
//	├──────────────────────┬────────────────────────┤
//	│  Memory Limit        │  Worker Slots (sem)    │
//	│  (fail-fast)         │  ids 1..MaxWorkers-1   │
//	├──────────────────────┼────────────────────────┤
//	│  AcquireMemory       │  TryAcquireWorker      │
//	│  ReleaseMemory       │  ReleaseWorker         │
//	│  MemoryUsage / Peak  │                        │
//	└──────────────────────┴────────────────────────┘
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic counters
// for usage tracking. AcquireMemory is non-blocking and returns immediately
// with ErrMemoryLimitExceeded if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB limit
//	})
//
//	if err := rc.AcquireMemory(n * 8); err != nil {
//	    // ErrMemoryLimitExceeded - the search aborts
//	}
//	defer rc.ReleaseMemory(n * 8)
//
// # Worker Slots
//
// Worker 0 is the goroutine that started the search. Forks try to take one of
// the remaining MaxWorkers-1 slots and run inline when none is free:
//
//	if id, ok := rc.TryAcquireWorker(); ok {
//	    go func() {
//	        defer rc.ReleaseWorker(id)
//	        // ...
//	    }()
//	}
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - memory is unlimited and no
// worker slot is ever granted.
package resource
