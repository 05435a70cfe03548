package hls

// ChunkSource is the external collaborator that knows how to prepare
// itself from a playlist, expose the set of available variants, and
// produce the next Chunk to fetch given a target time and the previous
// segment. Adaptive-bitrate policy lives entirely behind this interface;
// SampleSource never second-guesses its choice of variant.
type ChunkSource interface {
	// Prepare readies the chunk source (e.g. downloads the master
	// playlist). Returns false if not ready yet; SampleSource.Prepare
	// polls until it returns true.
	Prepare() bool

	// TrackCount is the number of selectable variants.
	TrackCount() int
	// TrackFormat is the Format of variant i.
	TrackFormat(i int) Format
	// SelectTracks narrows the set of variants adaptive selection may
	// choose among to the given indices.
	SelectTracks(indices []int)

	// IsLive reports whether the source is an unbounded live stream.
	IsLive() bool
	// Seek notifies the chunk source that playback is about to jump.
	Seek()
	// Reset notifies the chunk source that every track has been
	// disabled and any seek position may be forgotten.
	Reset()

	// DurationUs is the stream duration, or Unset if unknown (e.g. live).
	DurationUs() int64

	// MaybeThrowError surfaces a source-level error (e.g. a playlist
	// fetch failure) when there's no in-flight chunk to blame it on.
	MaybeThrowError() error

	// GetChunkOperation returns the next chunk operation given the
	// previously loaded segment (nil if none) and the target time.
	GetChunkOperation(previousSegment SegmentChunk, targetTimeUs int64) ChunkOperation

	// OnChunkLoadCompleted is called once a chunk finishes loading
	// successfully.
	OnChunkLoadCompleted(chunk Chunk)
	// OnChunkLoadError offers a load failure to the chunk source (e.g.
	// so it can blacklist a variant). Returns true if it handled the
	// error, meaning SampleSource should not treat it as fatal/retryable
	// itself.
	OnChunkLoadError(chunk Chunk, err error) bool
}
