package taskset

import (
	"fmt"

	"github.com/jzx17/goparallel/pkg/types"
)

// Task is the unit of work owned by a task set. It extends the pool-facing
// task contract with the set bookkeeping: a fixed position within the set,
// the set size, and a completion signal wired to the set's semaphore.
//
// Implementations embed BaseTask for the bookkeeping and add Execute. A
// task must tolerate being invoked when its index is at or beyond the
// invocation's used-task count and treat that call as a no-op.
type Task interface {
	types.Task

	// Index returns the task's fixed 0-based position within its set.
	Index() int

	// TotalTaskCount returns the number of tasks owned by the set.
	TotalTaskCount() int

	// SignalDone posts one completion to the set's semaphore.
	SignalDone()
}

// TaskFactory builds the task at the given index of a new set. The factory
// receives the set's semaphore so the task can signal completions, its
// 0-based index, and the total task count (the pool size).
type TaskFactory func(done *Semaphore, index, totalTaskCount int) Task

// BaseTask carries the bookkeeping shared by all set-owned tasks: identity,
// fixed index and set size, and the borrowed semaphore handle. Concrete
// tasks embed it and reuse the same instance across invocations, mutating
// only their own per-invocation fields.
type BaseTask struct {
	id    string
	index int
	total int
	done  *Semaphore
}

// NewBaseTask creates the embedded base for a set-owned task.
func NewBaseTask(done *Semaphore, index, totalTaskCount int) BaseTask {
	return BaseTask{
		id:    fmt.Sprintf("task-%d-of-%d", index, totalTaskCount),
		index: index,
		total: totalTaskCount,
		done:  done,
	}
}

// ID returns the task ID
func (t *BaseTask) ID() string {
	return t.id
}

// Index returns the task's fixed 0-based position within its set
func (t *BaseTask) Index() int {
	return t.index
}

// TotalTaskCount returns the number of tasks owned by the set
func (t *BaseTask) TotalTaskCount() int {
	return t.total
}

// SignalDone posts one completion to the owning set's semaphore
func (t *BaseTask) SignalDone() {
	t.done.Post()
}
