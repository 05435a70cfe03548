// Package loadcontrol implements the hls.LoadControl and hls.Allocator
// contracts: a byte-budget gate shared across every SampleSource
// registered against it, backed by a pooled byte allocator.
package loadcontrol

import (
	"sync"
	"sync/atomic"
)

// Allocator is a sync.Pool-backed source of sample backing storage,
// generalized from multiaccessbuffer's single shared-buffer pattern into
// a budget-tracked pool of independently-owned blocks: every Allocate
// call returns a block nobody else holds, and Release returns it to the
// pool for reuse by the next Allocate of a similar size.
type Allocator struct {
	pool        sync.Pool
	outstanding int64
}

// NewAllocator allocates an Allocator.
func NewAllocator() *Allocator {
	return &Allocator{
		pool: sync.Pool{
			New: func() interface{} {
				return make([]byte, 0, 64*1024)
			},
		},
	}
}

// Allocate reserves a block of at least size bytes.
func (a *Allocator) Allocate(size int) []byte {
	block := a.pool.Get().([]byte)
	if cap(block) < size {
		block = make([]byte, size)
	} else {
		block = block[:size]
	}
	atomic.AddInt64(&a.outstanding, int64(size))
	return block
}

// Release returns a block previously obtained from Allocate.
func (a *Allocator) Release(block []byte) {
	atomic.AddInt64(&a.outstanding, -int64(len(block)))
	a.pool.Put(block[:0]) //nolint:staticcheck // intentionally re-pooling a zero-length view of block's backing array.
}

// Trim drops every block currently sitting in the pool unused, so a
// burst of large allocations doesn't keep the backing memory pinned
// once every caller has released it.
func (a *Allocator) Trim() {
	a.pool = sync.Pool{New: a.pool.New}
}

// Outstanding reports the number of bytes currently lent out and not yet
// released, across every SampleSource sharing this Allocator.
func (a *Allocator) Outstanding() int64 {
	return atomic.LoadInt64(&a.outstanding)
}
