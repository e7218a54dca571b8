// Package types provides object pools for performance optimization
package types

import (
	"sync"
)

// BufferPool manages []byte buffer pooling to reduce GC pressure for callers
// that repeatedly need destination buffers of similar sizes, such as frame
// grabbing loops feeding a parallel copy.
type BufferPool struct {
	pool sync.Pool
}

// NewBufferPool creates a new buffer pool
func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buf := make([]byte, 0)
				return &buf
			},
		},
	}
}

// Get retrieves a buffer of length n from the pool or allocates a new one.
// The returned buffer has length exactly n and unspecified contents.
func (bp *BufferPool) Get(n int) []byte {
	buf := bp.pool.Get().(*[]byte)
	if cap(*buf) >= n {
		return (*buf)[:n]
	}
	return make([]byte, n)
}

// Put returns a buffer to the pool for reuse. The caller must not use the
// buffer after Put.
func (bp *BufferPool) Put(buf []byte) {
	if buf == nil {
		return
	}
	// Reset the length to prevent stale data from leaking out through Get
	buf = buf[:0]
	bp.pool.Put(&buf)
}
