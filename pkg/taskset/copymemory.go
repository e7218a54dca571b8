package taskset

import (
	"context"
	"fmt"

	"github.com/jzx17/goparallel/pkg/types"
)

// copyBytesPerTask sizes parallel copies: buffers smaller than this are
// copied serially, and each further started megabyte engages one more task,
// capped at the pool size. The granule was found experimentally.
const copyBytesPerTask = 1000000

// copyTask copies one contiguous chunk of the source buffer into the same
// offsets of the destination.
type copyTask struct {
	BaseTask

	dst   []byte
	src   []byte
	bytes int
	used  int
}

func newCopyTask(done *Semaphore, index, totalTaskCount int) *copyTask {
	return &copyTask{
		BaseTask: NewBaseTask(done, index, totalTaskCount),
		used:     totalTaskCount,
	}
}

// setUp records the invocation's buffers and active task count.
func (t *copyTask) setUp(dst, src []byte, bytes, used int) {
	t.dst = dst
	t.src = src
	t.bytes = bytes
	t.used = used
}

// Execute copies this task's chunk. A task whose index is at or beyond the
// invocation's used count is a no-op, so invoking every owned task is safe.
func (t *copyTask) Execute(ctx context.Context) error {
	if t.Index() >= t.used {
		return nil
	}

	chunkBytes := t.bytes / t.used
	chunkOffset := t.Index() * chunkBytes
	if t.Index() == t.used-1 {
		// The last active task also takes the division remainder.
		chunkBytes += t.bytes % t.used
	}

	copy(t.dst[chunkOffset:chunkOffset+chunkBytes], t.src[chunkOffset:chunkOffset+chunkBytes])
	return nil
}

// CopyMemory is a reusable task set that copies byte buffers through a
// worker pool, splitting large buffers into disjoint chunks copied in
// parallel. Buffers smaller than one megabyte are copied serially during
// SetUp, without touching the pool.
//
// One instance is meant to be created per pool and reused for many copies;
// no allocation happens per call. An instance must not be used from more
// than one goroutine at a time.
type CopyMemory struct {
	*TaskSet

	copyTasks []*copyTask
}

// NewCopyMemory creates a parallel memory copier on the given pool.
func NewCopyMemory(pool types.WorkerPool) *CopyMemory {
	cm := &CopyMemory{}
	cm.TaskSet = NewTaskSet(pool, func(done *Semaphore, index, totalTaskCount int) Task {
		task := newCopyTask(done, index, totalTaskCount)
		cm.copyTasks = append(cm.copyTasks, task)
		return task
	})
	return cm
}

// SetUp prepares one copy invocation. It decides how many tasks the copy
// needs from the source length, copies serially right away when one task
// suffices, and otherwise distributes the buffers to the owned tasks.
//
// The copied length is len(src); dst must be at least that long. Violating
// the buffer contract is a programming error and panics. The caller must
// keep both slices valid until the copy completes and must not pass
// overlapping regions.
func (cm *CopyMemory) SetUp(dst, src []byte) {
	if dst == nil {
		panic("copy destination cannot be nil")
	}
	if len(src) == 0 {
		panic("copy source cannot be nil or empty")
	}
	if len(dst) < len(src) {
		panic(fmt.Sprintf("copy destination too small: %d bytes for a %d byte source", len(dst), len(src)))
	}

	bytes := len(src)

	used := 1 + bytes/copyBytesPerTask
	if used > cm.PoolSize() {
		used = cm.PoolSize()
	}
	cm.SetUsedTaskCount(used)

	if used == 1 {
		copy(dst, src)
		return
	}

	for _, task := range cm.copyTasks {
		task.setUp(dst, src, bytes, used)
	}
}

// Execute dispatches the copy prepared by the latest SetUp. When SetUp
// already copied serially there is nothing to dispatch.
func (cm *CopyMemory) Execute() error {
	if cm.UsedTaskCount() == 1 {
		return nil // already done in SetUp
	}
	return cm.TaskSet.Execute()
}

// Wait blocks until the dispatched chunk copies have finished. When SetUp
// already copied serially there is nothing to wait for.
func (cm *CopyMemory) Wait() {
	if cm.UsedTaskCount() == 1 {
		return // already done in SetUp
	}
	cm.TaskSet.Wait()
}

// MemCopy copies src into dst and returns once dst fully reflects src.
// The error is dispatch-layer only; with a healthy running pool it is nil.
func (cm *CopyMemory) MemCopy(dst, src []byte) error {
	cm.SetUp(dst, src)
	if err := cm.Execute(); err != nil {
		return err
	}
	cm.Wait()
	return nil
}
