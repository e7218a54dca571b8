// Package taskset provides reusable families of cooperating tasks that run
// in parallel on a shared worker pool, plus a parallel memory copy built on
// top of them.
//
// Key Features:
//
// 1. Counting semaphore:
//   - Post/Wait(n) completion signaling between tasks and the orchestrator
//   - Bounded waits consume exactly their target, keeping sets reusable
//
// 2. Task set base:
//   - Tasks built once per pool slot by a TaskFactory, no per-call allocation
//   - Per-invocation used-task count with safe no-op behavior beyond it
//   - Execute dispatches, Wait blocks; the two can be split to overlap work
//
// 3. Parallel memory copy:
//   - One task per started megabyte of data, capped at the pool size
//   - Small buffers (under 1MB) copied serially without touching the pool
//   - Disjoint chunks, remainder handled by the last active task
//   - One reusable instance per pool for allocation-free steady state
//
// Basic usage example:
//
//	// Create and start a shared pool
//	pool, err := worker.NewPool(&worker.PoolConfig{PoolSize: 4, QueueSize: 16})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := pool.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	// Create one copier per pool and reuse it
//	copier := taskset.NewCopyMemory(pool)
//	if err := copier.MemCopy(dst, src); err != nil {
//		log.Fatal(err)
//	}
//
// Overlapping the copy with other work:
//
//	copier.SetUp(dst, src)
//	if err := copier.Execute(); err != nil {
//		log.Fatal(err)
//	}
//	prepareNextFrame() // runs while chunks are copied
//	copier.Wait()
//
// Custom task sets:
//
//	type sumTask struct {
//		taskset.BaseTask
//		in  []int
//		out []int
//	}
//
//	func (t *sumTask) Execute(ctx context.Context) error {
//		// operate on the slice stripe owned by t.Index()
//		return nil
//	}
//
//	set := taskset.NewTaskSet(pool, func(done *taskset.Semaphore, index, total int) taskset.Task {
//		return &sumTask{BaseTask: taskset.NewBaseTask(done, index, total)}
//	})
//
// Concurrency model:
//
// A pool is shared by arbitrarily many task sets, but a single set instance
// coordinates one invocation at a time and must be driven by one goroutine.
// Only Wait blocks, and only the orchestrating goroutine. Chunk ranges are
// disjoint, so parallel copies need no locking on the buffers themselves.
//
// Buffer contract:
//
// Callers keep dst and src valid until the invocation completes and must not
// pass overlapping regions. Violations of the buffer preconditions panic.
package taskset
