package worker

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jzx17/goparallel/pkg/types"
)

// PoolConfig defines configuration for a fixed-size worker pool
type PoolConfig struct {
	// PoolSize is the number of worker goroutines, fixed for the pool's lifetime
	PoolSize int

	// QueueSize is the task queue size
	QueueSize int

	// SubmitTimeout is the default task submission timeout
	SubmitTimeout time.Duration

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock

	// ErrorHandler is the error handler
	ErrorHandler types.ErrorHandler
}

// DefaultPoolConfig returns default configuration sized to hardware concurrency
func DefaultPoolConfig() *PoolConfig {
	return &PoolConfig{
		PoolSize:      runtime.NumCPU(),
		QueueSize:     100,
		SubmitTimeout: 5 * time.Second,
		Clock:         types.NewRealClock(),
	}
}

// Pool implements a fixed-size worker pool. The pool is created once, never
// resized, and shared by arbitrarily many task sets for the life of the
// process or session.
type Pool struct {
	config   *PoolConfig
	workers  []*Worker
	taskChan chan types.Task

	// state management
	state     int32 // 0: stopped, 1: running, 2: closed
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	// synchronization
	mu sync.RWMutex
}

// NewPool creates a new fixed-size worker pool
func NewPool(config *PoolConfig) (*Pool, error) {
	if config == nil {
		config = DefaultPoolConfig()
	}

	// parameter validation
	if config.PoolSize <= 0 {
		return nil, fmt.Errorf("pool size must be positive, got %d", config.PoolSize)
	}
	if config.QueueSize <= 0 {
		return nil, fmt.Errorf("queue size must be positive, got %d", config.QueueSize)
	}

	// Ensure clock is set
	if config.Clock == nil {
		config.Clock = types.NewRealClock()
	}

	taskChan := make(chan types.Task, config.QueueSize)
	workers := make([]*Worker, config.PoolSize)

	pool := &Pool{
		config:   config,
		workers:  workers,
		taskChan: taskChan,
	}

	// create workers
	for i := 0; i < config.PoolSize; i++ {
		worker := NewWorkerWithClock(i, taskChan, config.Clock)
		if config.ErrorHandler != nil {
			worker.SetErrorHandler(config.ErrorHandler)
		}
		workers[i] = worker
	}

	return pool, nil
}

// Start starts the worker pool
func (p *Pool) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&p.state, 0, 1) {
		state := atomic.LoadInt32(&p.state)
		if state == 1 {
			return types.ErrPoolRunning
		}
		return types.ErrPoolClosed
	}

	// create context
	p.ctx, p.cancel = context.WithCancel(ctx)

	// start all workers
	for _, worker := range p.workers {
		go worker.Start(p.ctx)
	}

	return nil
}

// Submit submits a task to the worker pool
func (p *Pool) Submit(task types.Task) error {
	return p.SubmitWithTimeout(task, p.config.SubmitTimeout)
}

// SubmitWithTimeout submits a task to the worker pool with timeout
func (p *Pool) SubmitWithTimeout(task types.Task, timeout time.Duration) error {
	// check pool state
	state := atomic.LoadInt32(&p.state)
	if state != 1 {
		if state == 0 {
			return types.ErrPoolNotStarted
		}
		return types.ErrPoolClosed
	}

	if task == nil {
		return types.ErrNilTask
	}

	// if no timeout, try to send directly
	if timeout <= 0 {
		select {
		case p.taskChan <- task:
			return nil
		default:
			return types.ErrPoolFull
		}
	}

	// task submission with timeout
	timer := p.config.Clock.NewTimer(timeout)
	defer timer.Stop()

	select {
	case p.taskChan <- task:
		return nil
	case <-timer.C():
		return types.ErrSubmitTimeout
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// Stop stops the worker pool
func (p *Pool) Stop() error {
	if !atomic.CompareAndSwapInt32(&p.state, 1, 0) {
		state := atomic.LoadInt32(&p.state)
		if state == 0 {
			return types.ErrPoolNotStarted
		}
		return types.ErrPoolClosed
	}

	// cancel context to notify all workers to stop
	if p.cancel != nil {
		p.cancel()
	}

	// wait for all workers to stop
	var wg sync.WaitGroup
	for _, worker := range p.workers {
		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			if err := w.Stop(); err != nil {
				// log but don't return error
			}
		}(worker)
	}

	// wait for all workers to stop with timeout
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		// all workers stopped normally
		return nil
	case <-p.config.Clock.After(10 * time.Second):
		return fmt.Errorf("timeout waiting for workers to stop")
	}
}

// Close closes the worker pool and releases resources
func (p *Pool) Close() error {
	var closeErr error

	p.closeOnce.Do(func() {
		// stop the pool first
		if err := p.Stop(); err != nil {
			closeErr = err
			return
		}

		// set to closed state
		atomic.StoreInt32(&p.state, 2)

		// close task channel
		close(p.taskChan)

		// clean up resources
		p.workers = nil
		p.taskChan = nil
	})

	return closeErr
}

// Size returns the worker pool size
func (p *Pool) Size() int {
	return p.config.PoolSize
}

// Stats gets basic worker pool statistics
func (p *Pool) Stats() types.WorkerPoolStats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	// count active workers
	var activeWorkers int
	for _, worker := range p.workers {
		if worker.State() == WorkerStateWorking {
			activeWorkers++
		}
	}

	return types.WorkerPoolStats{
		PoolSize:      p.config.PoolSize,
		ActiveWorkers: activeWorkers,
		QueueSize:     len(p.taskChan),
		QueueCapacity: p.config.QueueSize,
	}
}

// GetWorkerStats gets statistics of all Workers
func (p *Pool) GetWorkerStats() []WorkerStats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	stats := make([]WorkerStats, len(p.workers))
	for i, worker := range p.workers {
		stats[i] = worker.Stats()
	}
	return stats
}

// IsRunning checks if the worker pool is running
func (p *Pool) IsRunning() bool {
	return atomic.LoadInt32(&p.state) == 1
}

// IsClosed checks if the worker pool is closed
func (p *Pool) IsClosed() bool {
	return atomic.LoadInt32(&p.state) == 2
}

// QueueLength gets the current queue length
func (p *Pool) QueueLength() int {
	if p.taskChan == nil {
		return 0
	}
	return len(p.taskChan)
}

// QueueCapacity gets the queue capacity
func (p *Pool) QueueCapacity() int {
	return p.config.QueueSize
}
