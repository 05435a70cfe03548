package hls

// ReadResult is the outcome of TrackStream.ReadData.
type ReadResult int

// ReadData outcomes.
const (
	NothingRead ReadResult = iota
	FormatRead
	SampleRead
	EndOfStream
)

// Unset is the sentinel for "no value"/"unknown" time positions: an
// unset pendingResetPositionUs, an unknown nextLoadPositionUs, or an
// end-of-source buffered position. Reused across those cases the way the
// original implementation reuses a single MIN_VALUE sentinel, documented
// here rather than modeled as a tagged union.
const Unset int64 = -1 << 62

// NoReset is returned by TrackStream.ReadReset when no reset is pending.
const NoReset int64 = Unset

// TrackStream is the per-group pull handle returned by
// SampleSource.Enable.
type TrackStream interface {
	// IsReady reports whether a sample, format, or end-of-stream is
	// available to read right now.
	IsReady() bool
	// MaybeThrowError rethrows a fatal load error, if retries have been
	// exhausted.
	MaybeThrowError() error
	// ReadReset returns the new timeline origin exactly once after a
	// seek, or NoReset otherwise.
	ReadReset() int64
	// ReadData pulls the next format or sample, or reports
	// NothingRead/EndOfStream.
	ReadData(outFormat *Format, outSample *Sample) ReadResult
	// Disable releases the group.
	Disable()
}
