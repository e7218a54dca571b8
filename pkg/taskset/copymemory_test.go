package taskset

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzx17/goparallel/pkg/types"
)

// fillPattern writes a position-dependent, never-zero byte pattern so that
// missed or misplaced chunks are visible.
func fillPattern(buf []byte, seed int) {
	for i := range buf {
		buf[i] = byte((i+seed)%251) + 1
	}
}

func allZero(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}

func TestNewCopyMemory(t *testing.T) {
	pool := newStubPool(4)
	cm := NewCopyMemory(pool)

	assert.Equal(t, 4, cm.PoolSize())
	assert.Equal(t, 4, cm.UsedTaskCount())
	assert.Len(t, cm.copyTasks, 4)

	for i, task := range cm.copyTasks {
		assert.Equal(t, i, task.Index())
		assert.Equal(t, 4, task.TotalTaskCount())
	}
}

func TestCopyMemory_SetUpValidation(t *testing.T) {
	cm := NewCopyMemory(newStubPool(4))
	src := make([]byte, 16)
	dst := make([]byte, 16)

	tests := []struct {
		name string
		dst  []byte
		src  []byte
	}{
		{name: "nil destination", dst: nil, src: src},
		{name: "nil source", dst: dst, src: nil},
		{name: "empty source", dst: dst, src: []byte{}},
		{name: "destination shorter than source", dst: make([]byte, 8), src: src},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() {
				cm.SetUp(tt.dst, tt.src)
			})
		})
	}
}

func TestCopyMemory_SerialSmallBuffer(t *testing.T) {
	pool := newStubPool(4)
	cm := NewCopyMemory(pool)

	size := 500000
	src := make([]byte, size)
	dst := make([]byte, size)
	fillPattern(src, 3)

	cm.SetUp(dst, src)

	// One task suffices, so the copy already happened inside SetUp and the
	// pool was never involved
	assert.Equal(t, 1, cm.UsedTaskCount())
	assert.True(t, bytes.Equal(dst, src))
	assert.Equal(t, 0, pool.submittedCount())

	// Execute and Wait are no-ops for this invocation
	require.NoError(t, cm.Execute())
	cm.Wait()
	assert.Equal(t, 0, pool.submittedCount())
	assert.Equal(t, 0, cm.done.Count())
}

func TestCopyMemory_UsedTaskCount(t *testing.T) {
	tests := []struct {
		name     string
		poolSize int
		bytes    int
		expected int
	}{
		{name: "tiny buffer", poolSize: 4, bytes: 100, expected: 1},
		{name: "just below one granule", poolSize: 4, bytes: 999999, expected: 1},
		{name: "exactly one granule", poolSize: 4, bytes: 1000000, expected: 2},
		{name: "just above one granule", poolSize: 4, bytes: 1000001, expected: 2},
		{name: "two and a half granules", poolSize: 4, bytes: 2500000, expected: 3},
		{name: "just below pool cap", poolSize: 4, bytes: 3999999, expected: 4},
		{name: "capped at pool size", poolSize: 4, bytes: 4000000, expected: 4},
		{name: "far beyond pool cap", poolSize: 4, bytes: 50000000, expected: 4},
		{name: "single worker pool stays serial", poolSize: 1, bytes: 50000000, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := NewCopyMemory(newStubPool(tt.poolSize))

			src := make([]byte, tt.bytes)
			dst := make([]byte, tt.bytes)

			cm.SetUp(dst, src)
			assert.Equal(t, tt.expected, cm.UsedTaskCount())
		})
	}
}

func TestCopyMemory_ParallelCopyCorrectness(t *testing.T) {
	pool := newStubPool(4)
	cm := NewCopyMemory(pool)

	size := 2500000
	src := make([]byte, size)
	dst := make([]byte, size)
	fillPattern(src, 7)

	err := cm.MemCopy(dst, src)
	require.NoError(t, err)

	assert.Equal(t, 3, cm.UsedTaskCount())
	assert.Equal(t, 3, pool.submittedCount())
	assert.True(t, bytes.Equal(dst, src))
	assert.Equal(t, 0, cm.done.Count())
}

func TestCopyMemory_ChunkPartition(t *testing.T) {
	cm := NewCopyMemory(newStubPool(4))

	// 2500000 bytes across 3 tasks: chunks of 833333, 833333 and 833334
	size := 2500000
	base := 833333
	src := make([]byte, size)
	dst := make([]byte, size)
	fillPattern(src, 11)

	cm.SetUp(dst, src)
	require.Equal(t, 3, cm.UsedTaskCount())

	ctx := context.Background()

	// Run the tasks one at a time to observe exactly which range each owns
	require.NoError(t, cm.copyTasks[0].Execute(ctx))
	assert.True(t, bytes.Equal(dst[:base], src[:base]))
	assert.True(t, allZero(dst[base:]), "first task wrote outside its chunk")

	require.NoError(t, cm.copyTasks[1].Execute(ctx))
	assert.True(t, bytes.Equal(dst[:2*base], src[:2*base]))
	assert.True(t, allZero(dst[2*base:]), "second task wrote outside its chunk")

	// The last active task also takes the remainder byte
	require.NoError(t, cm.copyTasks[2].Execute(ctx))
	assert.True(t, bytes.Equal(dst, src))
}

func TestCopyMemory_NoOpBeyondUsedCount(t *testing.T) {
	cm := NewCopyMemory(newStubPool(4))

	size := 2500000
	src := make([]byte, size)
	dst := make([]byte, size)
	fillPattern(src, 13)

	cm.SetUp(dst, src)
	require.Equal(t, 3, cm.UsedTaskCount())

	// The fourth task sits beyond the used count; invoking it must not touch
	// the destination
	require.NoError(t, cm.copyTasks[3].Execute(context.Background()))
	assert.True(t, allZero(dst))
}

func TestCopyMemory_CappedAtPoolSize(t *testing.T) {
	pool := newStubPool(4)
	cm := NewCopyMemory(pool)

	size := 50000000
	src := make([]byte, size)
	dst := make([]byte, size)
	fillPattern(src, 17)

	err := cm.MemCopy(dst, src)
	require.NoError(t, err)

	assert.Equal(t, 4, cm.UsedTaskCount())
	assert.Equal(t, 4, pool.submittedCount())
	assert.True(t, bytes.Equal(dst, src))
}

func TestCopyMemory_DstLongerThanSrc(t *testing.T) {
	pool := newStubPool(4)
	cm := NewCopyMemory(pool)

	tests := []struct {
		name string
		size int
	}{
		{name: "serial path", size: 400000},
		{name: "parallel path", size: 2500000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := make([]byte, tt.size)
			dst := make([]byte, tt.size+4096)
			fillPattern(src, 19)

			require.NoError(t, cm.MemCopy(dst, src))

			// Exactly len(src) bytes are copied; the tail stays untouched
			assert.True(t, bytes.Equal(dst[:tt.size], src))
			assert.True(t, allZero(dst[tt.size:]))
		})
	}
}

func TestCopyMemory_Reuse(t *testing.T) {
	pool := newStubPool(4)
	cm := NewCopyMemory(pool)

	sizes := []int{500000, 2500000, 100, 4000000, 1000000}

	for round, size := range sizes {
		src := make([]byte, size)
		dst := make([]byte, size)
		fillPattern(src, round)

		require.NoError(t, cm.MemCopy(dst, src))

		assert.True(t, bytes.Equal(dst, src), "round %d size %d", round, size)
		assert.Equal(t, 0, cm.done.Count(), "semaphore must drain between invocations")
	}
}

func TestCopyMemory_MemCopyDispatchError(t *testing.T) {
	pool := newStubPool(4)
	pool.failAfter = 1
	cm := NewCopyMemory(pool)

	size := 2500000
	src := make([]byte, size)
	dst := make([]byte, size)
	fillPattern(src, 23)

	err := cm.MemCopy(dst, src)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrPoolFull)
	assert.Equal(t, 0, cm.done.Count())

	// The same instance recovers once the pool accepts submissions again
	pool.failAfter = -1
	require.NoError(t, cm.MemCopy(dst, src))
	assert.True(t, bytes.Equal(dst, src))
	assert.Equal(t, 0, cm.done.Count())
}
