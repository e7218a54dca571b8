/*
Package worker provides a production-grade fixed-size worker pool built to be
created once and shared across many concurrent consumers for the life of a
process or session.

# Overview

This package implements a high-performance worker pool supporting:
- A fixed number of long-lived worker goroutines
- Task queuing and distribution mechanisms
- Concurrency safety guarantees
- Complete statistical information
- Graceful resource management
- Error handling and panic recovery
- Context cancellation support

# Core Components

## Pool

Fixed-size worker pool implementation providing the following features:
- Fixed number of worker goroutines, sized to hardware concurrency by default
- Buffered task queue
- Task submission timeout control
- Real-time statistics
- Graceful shutdown mechanism

## Worker

Single worker goroutine implementation responsible for:
- Task execution and state management
- Error handling and panic recovery
- Statistics collection
- Lifecycle management

## Task

Task interface and implementations including:
- BasicTask: Basic function-backed task with generated IDs

Higher-level batch orchestration on top of this pool lives in the taskset
package, which dispatches fixed task batches and awaits their completion.

# Concurrency Safety

All components have undergone rigorous concurrency safety testing:
- Passes Go race detector
- Supports high-concurrency task submission
- Atomic operations ensure statistical accuracy
- Proper resource synchronization and cleanup

# Error Handling

Comprehensive error handling mechanisms:
- Panic recovery and error wrapping
- Configurable error handlers
- Detailed error context information
- Error statistics and monitoring

# Usage Examples

Basic usage:

	config := &worker.PoolConfig{
		PoolSize:  10,
		QueueSize: 100,
	}

	pool, err := worker.NewPool(config)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := pool.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// Submit task
	task := worker.NewBasicTask(func(ctx context.Context) error {
		// Execute work
		return nil
	})

	if err := pool.Submit(task); err != nil {
		log.Printf("Failed to submit task: %v", err)
	}

Task submission with timeout:

	err := pool.SubmitWithTimeout(task, 5*time.Second)
	if errors.Is(err, types.ErrSubmitTimeout) {
		log.Println("Task submission timed out")
	}

Retrieve statistics:

	stats := pool.Stats()
	fmt.Printf("Active Workers: %d/%d\n", stats.ActiveWorkers, stats.PoolSize)
	fmt.Printf("Queue: %d/%d\n", stats.QueueSize, stats.QueueCapacity)

# Configuration Options

PoolConfig supports the following configurations:
- PoolSize: Number of worker goroutines (defaults to runtime.NumCPU())
- QueueSize: Task queue buffer size
- SubmitTimeout: Default task submission timeout
- Clock: Injectable clock for deterministic timeout testing
- ErrorHandler: Custom error handler

# Production-Grade Features

This implementation provides production-ready characteristics:
- High memory efficiency, avoiding frequent allocations
- Workers spawned once and reused, no per-operation goroutine creation
- Graceful shutdown without losing executing tasks
- Complete observability support
- Detailed error diagnostic information
*/
package worker
