package hls

// ChunkType distinguishes what a Chunk carries.
type ChunkType int

// Chunk types.
const (
	ChunkTypeUnspecified ChunkType = iota
	// ChunkTypeMedia is a segment chunk: it carries media samples and is
	// bound to an Extractor.
	ChunkTypeMedia
	// ChunkTypeMediaInitialization is a non-segment chunk such as a key
	// or an initialization section: it has no media time range.
	ChunkTypeMediaInitialization
)

// Trigger records why a chunk was selected, for event-listener payloads.
type Trigger int

// Chunk selection triggers.
const (
	TriggerUnspecified Trigger = iota
	TriggerInitial
	TriggerManual
	TriggerAdaptive
	TriggerTrickPlay
)

// Chunk is the unit of fetched data: the thing a Loader downloads and a
// ChunkSource produces. Every chunk has a type, a trigger (why it was
// selected), the format of the stream it came from, and an accumulating
// byte count.
type Chunk interface {
	Type() ChunkType
	Trigger() Trigger
	Format() Format
	// Length is the expected byte length of the underlying data
	// descriptor, or -1 if unknown ahead of the fetch.
	Length() int64
	// BytesLoaded is updated by the Loader as data arrives.
	BytesLoaded() int64
}

// SegmentChunk is a Chunk that carries media samples, timestamped with
// [StartTimeUs, EndTimeUs), and is bound to an Extractor instance that
// demultiplexes it.
type SegmentChunk interface {
	Chunk
	StartTimeUs() int64
	EndTimeUs() int64
	Extractor() ExtractorWrapper
}

// ChunkOperation is what a ChunkSource hands back from GetChunkOperation:
// either end-of-stream, "no chunk yet" (Chunk == nil), or the next chunk
// to load.
type ChunkOperation struct {
	EndOfStream bool
	Chunk       Chunk
}
