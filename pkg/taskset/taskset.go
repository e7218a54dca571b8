package taskset

import (
	"context"
	"fmt"

	"github.com/jzx17/goparallel/pkg/types"
)

// signalingTask decorates a set-owned task so that every dispatched task
// posts exactly one completion, even when the wrapped Execute fails or
// panics. The wrappers are built once per set alongside the tasks, so
// dispatch allocates nothing.
type signalingTask struct {
	Task
}

// Execute runs the wrapped task and signals its completion.
func (st *signalingTask) Execute(ctx context.Context) error {
	defer st.SignalDone()
	return st.Task.Execute(ctx)
}

// TaskSet owns a family of tasks sized to a worker pool and coordinates one
// parallel invocation at a time over them. The tasks are built once by a
// factory when the set is created and reused for the set's entire life;
// per-invocation state lives on the tasks and is rewritten between runs.
//
// The intended cycle is: configure the invocation (typically via a
// specialization such as CopyMemory.SetUp), Execute to dispatch, then Wait
// to block until the dispatched tasks have finished. Configure, dispatch
// and await may be separated so the caller can overlap unrelated work, but
// a set must not be driven from more than one goroutine at a time.
type TaskSet struct {
	pool    types.WorkerPool
	done    *Semaphore
	tasks   []Task
	runners []*signalingTask
	used    int
}

// NewTaskSet creates a task set on the given pool. The factory is called
// once per pool slot to build the set's tasks, each wired with the set's
// semaphore, its index, and the pool size. The used-task count defaults to
// the pool size.
func NewTaskSet(pool types.WorkerPool, factory TaskFactory) *TaskSet {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if factory == nil {
		panic("task factory cannot be nil")
	}

	size := pool.Size()
	if size <= 0 {
		panic(fmt.Sprintf("pool size must be positive, got %d", size))
	}

	done := NewSemaphore()
	tasks := make([]Task, size)
	runners := make([]*signalingTask, size)

	for i := 0; i < size; i++ {
		task := factory(done, i, size)
		if task == nil {
			panic(fmt.Sprintf("task factory returned nil task at index %d", i))
		}
		tasks[i] = task
		runners[i] = &signalingTask{Task: task}
	}

	return &TaskSet{
		pool:    pool,
		done:    done,
		tasks:   tasks,
		runners: runners,
		used:    size,
	}
}

// Tasks returns the set's tasks in index order. Specializations use this to
// reach their concrete task type during per-invocation configuration.
func (ts *TaskSet) Tasks() []Task {
	return ts.tasks
}

// PoolSize returns the number of tasks owned by the set, which equals the
// size of the pool the set was created on.
func (ts *TaskSet) PoolSize() int {
	return len(ts.tasks)
}

// UsedTaskCount returns the number of tasks the next Execute dispatches.
func (ts *TaskSet) UsedTaskCount() int {
	return ts.used
}

// SetUsedTaskCount sets how many tasks the next Execute dispatches. The
// count must stay within [1, PoolSize]; anything else is a programming
// error and panics.
func (ts *TaskSet) SetUsedTaskCount(n int) {
	if n < 1 || n > len(ts.tasks) {
		panic(fmt.Sprintf("used task count %d out of range [1, %d]", n, len(ts.tasks)))
	}
	ts.used = n
}

// Execute dispatches the invocation's tasks to the pool and returns without
// waiting for them. Each dispatched task signals the set's semaphore exactly
// once, so posts always balance the count Wait consumes and the set stays
// reusable. An error is returned only when the pool rejects a submission;
// in that case the already-dispatched tasks are quiesced first so a later
// invocation starts from a clean semaphore.
func (ts *TaskSet) Execute() error {
	for i := 0; i < ts.used; i++ {
		if err := ts.pool.Submit(ts.runners[i]); err != nil {
			ts.done.Wait(i)
			return fmt.Errorf("dispatch task %d of %d: %w", i+1, ts.used, err)
		}
	}
	return nil
}

// Wait blocks until every task dispatched by the latest Execute has
// finished. There is no timeout.
func (ts *TaskSet) Wait() {
	ts.done.Wait(ts.used)
}
