package loadcontrol

import (
	"sync"

	"github.com/bluenviron/hlssource/internal/hls"
)

// registration is the bookkeeping loadcontrol.Control keeps per
// registered source.
type registration struct {
	bufferSizeContribution int
}

// Control is a reference hls.LoadControl: it gates whether each
// registered SampleSource may start its next load purely on the shared
// Allocator's outstanding byte count against a fixed budget. Every
// registered source shares the same Allocator and the same budget; a
// source near its individual bufferSizeContribution is not granted any
// special treatment once the shared budget is exceeded, matching a
// memory-budget (not per-track time-budget) design.
type Control struct {
	allocator   *Allocator
	budgetBytes int64

	mu       sync.Mutex
	sources  map[interface{}]*registration
}

// New allocates a Control that denies the next load once the shared
// Allocator's outstanding bytes reach budgetBytes.
func New(budgetBytes int64) *Control {
	return &Control{
		allocator:   NewAllocator(),
		budgetBytes: budgetBytes,
		sources:     make(map[interface{}]*registration),
	}
}

// Register implements hls.LoadControl.
func (c *Control) Register(source interface{}, bufferSizeContribution int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[source] = &registration{bufferSizeContribution: bufferSizeContribution}
}

// Unregister implements hls.LoadControl.
func (c *Control) Unregister(source interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sources, source)
}

// Update implements hls.LoadControl. loadingOrBackedOff and
// nextLoadPositionUs are accepted for interface conformance and future
// time-based budgeting but the gate itself is byte-budget-only: it does
// not look at buffered duration.
func (c *Control) Update(source interface{}, downstreamPositionUs, nextLoadPositionUs int64, loadingOrBackedOff bool) bool {
	_ = source
	_ = downstreamPositionUs
	_ = nextLoadPositionUs
	_ = loadingOrBackedOff
	return c.allocator.Outstanding() < c.budgetBytes
}

// Allocator implements hls.LoadControl.
func (c *Control) Allocator() hls.Allocator {
	return c.allocator
}

// TrimAllocator implements hls.LoadControl.
func (c *Control) TrimAllocator() {
	c.allocator.Trim()
}
