package hls

// Allocator is the shared source of sample backing storage, owned by a
// LoadControl and lent by reference to every registered SampleSource.
// Extractors borrow from it via ExtractorWrapper.Init and return
// everything they borrowed via ExtractorWrapper.Clear.
type Allocator interface {
	// Allocate reserves a block of at least size bytes.
	Allocate(size int) []byte
	// Release returns a block previously obtained from Allocate.
	Release(block []byte)
	// Trim releases any spare capacity the allocator is holding onto
	// but that nothing has borrowed, so the pool can re-budget across
	// sample sources.
	Trim()
}

// ExtractorWrapper owns the sample queues for each in-segment elementary
// track of one segment. It exposes a "prepared" flag that becomes true
// once the first format per stream has been discovered.
//
// An ExtractorWrapper also carries the Format, Trigger and StartTimeUs of
// the chunk that produced it, so the sample source can raise
// downstream-format-changed notifications without holding onto the
// originating Chunk.
type ExtractorWrapper interface {
	// Init acquires backing storage from allocator. Called at most once,
	// when the wrapper is appended to the extractor queue.
	Init(allocator Allocator)
	// Clear releases any samples and backing storage held by the
	// wrapper. Idempotent.
	Clear()

	// IsPrepared reports whether the first format per in-segment track
	// has been discovered yet.
	IsPrepared() bool

	// TrackCount is the number of in-segment elementary tracks, valid
	// once IsPrepared returns true.
	TrackCount() int
	// MediaFormat is the per-track media format, valid once IsPrepared
	// returns true.
	MediaFormat(track int) Format

	// HasSamples reports whether a sample is ready for the given track.
	HasSamples(track int) bool
	// GetSample pops and returns the next ready sample for the given
	// track, or ok == false if none is ready.
	GetSample(track int) (sample Sample, ok bool)
	// DiscardUntil drops queued samples for track with a timestamp
	// strictly before timeUs, without affecting other tracks.
	DiscardUntil(track int, timeUs int64)

	// LargestParsedTimestampUs is the largest sample timestamp the
	// extractor has demuxed so far, across all tracks, or Unset if
	// nothing has been parsed yet.
	LargestParsedTimestampUs() int64

	// ConfigureSpliceTo lets this extractor align its sample timestamps
	// for a seamless hand-off into next, the adjacent, later extractor
	// in the queue.
	ConfigureSpliceTo(next ExtractorWrapper)

	// Format is the coarse, chunk-level (variant) format of the segment
	// that produced this wrapper.
	Format() Format
	// Trigger is why the owning chunk was selected.
	Trigger() Trigger
	// StartTimeUs is the owning chunk's media start time.
	StartTimeUs() int64
}
