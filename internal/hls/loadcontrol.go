package hls

// LoadControl budgets memory across multiple sample sources sharing one
// Allocator and gates whether each one's next load may begin. source is
// an opaque identity token (the calling *SampleSource) used as a map key;
// LoadControl never dereferences it.
type LoadControl interface {
	// Register adds source to the set of sources this control tracks,
	// contributing bufferSizeContribution to the shared budget
	// accounting.
	Register(source interface{}, bufferSizeContribution int)
	// Unregister removes source.
	Unregister(source interface{})
	// Update reports source's current state and returns whether it may
	// start its next load. nextLoadPositionUs may be Unset if unknown.
	Update(source interface{}, downstreamPositionUs, nextLoadPositionUs int64, loadingOrBackedOff bool) (mayStartNext bool)
	// Allocator returns the shared sample-backing-storage allocator.
	Allocator() Allocator
	// TrimAllocator asks the allocator to release spare capacity.
	TrimAllocator()
}
