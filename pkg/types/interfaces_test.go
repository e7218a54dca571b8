package types

import (
	"context"
	"testing"
	"time"
)

// Mock implementations for testing
type mockTask struct {
	id       string
	executed bool
}

func (m *mockTask) Execute(ctx context.Context) error {
	m.executed = true
	return nil
}

func (m *mockTask) ID() string {
	return m.id
}

type mockWorkerPool struct {
	size      int
	submitted int
	started   bool
	closed    bool
}

func (m *mockWorkerPool) Submit(task Task) error {
	if task == nil {
		return ErrNilTask
	}
	m.submitted++
	return task.Execute(context.Background())
}

func (m *mockWorkerPool) SubmitWithTimeout(task Task, timeout time.Duration) error {
	return m.Submit(task)
}

func (m *mockWorkerPool) Start(ctx context.Context) error {
	m.started = true
	return nil
}

func (m *mockWorkerPool) Stop() error {
	m.started = false
	return nil
}

func (m *mockWorkerPool) Close() error {
	m.closed = true
	return nil
}

func (m *mockWorkerPool) Size() int {
	return m.size
}

func (m *mockWorkerPool) Stats() WorkerPoolStats {
	return WorkerPoolStats{PoolSize: m.size, QueueSize: m.submitted}
}

func TestTaskInterface(t *testing.T) {
	var task Task = &mockTask{id: "mock-1"}

	if task.ID() != "mock-1" {
		t.Errorf("expected task ID 'mock-1', got %q", task.ID())
	}

	if err := task.Execute(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if !task.(*mockTask).executed {
		t.Errorf("expected task to be executed")
	}
}

func TestWorkerPoolInterface(t *testing.T) {
	var pool WorkerPool = &mockWorkerPool{size: 4}

	t.Run("Size", func(t *testing.T) {
		if pool.Size() != 4 {
			t.Errorf("expected size 4, got %d", pool.Size())
		}
	})

	t.Run("Submit", func(t *testing.T) {
		task := &mockTask{id: "mock-2"}
		if err := pool.Submit(task); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if !task.executed {
			t.Errorf("expected submitted task to be executed")
		}
	})

	t.Run("Submit nil", func(t *testing.T) {
		if err := pool.Submit(nil); err != ErrNilTask {
			t.Errorf("expected ErrNilTask, got %v", err)
		}
	})

	t.Run("Lifecycle", func(t *testing.T) {
		if err := pool.Start(context.Background()); err != nil {
			t.Errorf("unexpected error starting: %v", err)
		}

		if err := pool.Stop(); err != nil {
			t.Errorf("unexpected error stopping: %v", err)
		}

		if err := pool.Close(); err != nil {
			t.Errorf("unexpected error closing: %v", err)
		}
	})

	t.Run("Stats", func(t *testing.T) {
		stats := pool.Stats()
		if stats.PoolSize != 4 {
			t.Errorf("expected pool size 4, got %d", stats.PoolSize)
		}
	})
}

func TestWorkerPoolStats(t *testing.T) {
	stats := WorkerPoolStats{
		PoolSize:      8,
		ActiveWorkers: 3,
		QueueSize:     12,
		QueueCapacity: 100,
	}

	if stats.PoolSize != 8 {
		t.Errorf("expected pool size 8, got %d", stats.PoolSize)
	}

	if stats.ActiveWorkers != 3 {
		t.Errorf("expected 3 active workers, got %d", stats.ActiveWorkers)
	}

	if stats.QueueSize != 12 {
		t.Errorf("expected queue size 12, got %d", stats.QueueSize)
	}

	if stats.QueueCapacity != 100 {
		t.Errorf("expected queue capacity 100, got %d", stats.QueueCapacity)
	}
}
