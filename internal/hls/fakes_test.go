package hls

// Hand-rolled fakes for the four external collaborators, in the style
// of the teacher's client_test.go fixtures rather than a mocking
// framework: each fake is a small struct whose fields a test sets up
// directly and whose call counts a test asserts on directly.

type fakeAllocator struct {
	allocated int
	released  int
	trimmed   int
}

func (a *fakeAllocator) Allocate(size int) []byte {
	a.allocated++
	return make([]byte, size)
}

func (a *fakeAllocator) Release(block []byte) {
	a.released++
}

func (a *fakeAllocator) Trim() {
	a.trimmed++
}

type fakeLoadControl struct {
	allocator   *fakeAllocator
	allowLoad   bool
	registered  map[interface{}]int
	trimCalls   int
	lastUpdate  struct {
		downstreamPositionUs int64
		nextLoadPositionUs   int64
		loadingOrBackedOff   bool
	}
}

func newFakeLoadControl() *fakeLoadControl {
	return &fakeLoadControl{
		allocator:  &fakeAllocator{},
		allowLoad:  true,
		registered: make(map[interface{}]int),
	}
}

func (c *fakeLoadControl) Register(source interface{}, bufferSizeContribution int) {
	c.registered[source] = bufferSizeContribution
}

func (c *fakeLoadControl) Unregister(source interface{}) {
	delete(c.registered, source)
}

func (c *fakeLoadControl) Update(source interface{}, downstreamPositionUs, nextLoadPositionUs int64, loadingOrBackedOff bool) bool {
	c.lastUpdate.downstreamPositionUs = downstreamPositionUs
	c.lastUpdate.nextLoadPositionUs = nextLoadPositionUs
	c.lastUpdate.loadingOrBackedOff = loadingOrBackedOff
	return c.allowLoad
}

func (c *fakeLoadControl) Allocator() Allocator {
	return c.allocator
}

func (c *fakeLoadControl) TrimAllocator() {
	c.trimCalls++
}

// fakeLoader gives tests manual control over when a load "completes":
// StartLoading just records the callback, and the test calls complete/
// fail to fire it (CancelLoading fires OnLoadCanceled itself), mirroring the way a real Loader's
// background goroutine would report back asynchronously.
type fakeLoader struct {
	loading     bool
	released    bool
	current     Chunk
	callback    LoaderCallback
	startCount  int
	cancelCount int
}

func (l *fakeLoader) StartLoading(loadable Chunk, callback LoaderCallback) {
	l.loading = true
	l.current = loadable
	l.callback = callback
	l.startCount++
}

func (l *fakeLoader) IsLoading() bool { return l.loading }

func (l *fakeLoader) CancelLoading() {
	if !l.loading {
		return
	}
	l.cancelCount++
	loadable, callback := l.current, l.callback
	l.loading = false
	l.current = nil
	l.callback = nil
	callback.OnLoadCanceled(loadable)
}

func (l *fakeLoader) Release() { l.released = true }

func (l *fakeLoader) complete() {
	loadable, callback := l.current, l.callback
	l.loading = false
	l.current = nil
	l.callback = nil
	callback.OnLoadCompleted(loadable)
}

func (l *fakeLoader) fail(err error) {
	loadable, callback := l.current, l.callback
	l.loading = false
	l.current = nil
	l.callback = nil
	callback.OnLoadError(loadable, err)
}

type fakeExtractor struct {
	format       Format
	trigger      Trigger
	startTimeUs  int64
	prepared     bool
	mediaFormats []Format
	samples      [][]Sample
	largest      int64
	cleared      bool
	splicedTo    ExtractorWrapper
}

func newFakeExtractor(format Format, trigger Trigger, startTimeUs int64, mediaFormats []Format) *fakeExtractor {
	return &fakeExtractor{
		format:       format,
		trigger:      trigger,
		startTimeUs:  startTimeUs,
		mediaFormats: mediaFormats,
		samples:      make([][]Sample, len(mediaFormats)),
		largest:      Unset,
	}
}

func (e *fakeExtractor) Init(allocator Allocator) {}

func (e *fakeExtractor) Clear() { e.cleared = true }

func (e *fakeExtractor) IsPrepared() bool { return e.prepared }

func (e *fakeExtractor) TrackCount() int { return len(e.mediaFormats) }

func (e *fakeExtractor) MediaFormat(track int) Format { return e.mediaFormats[track] }

func (e *fakeExtractor) HasSamples(track int) bool { return len(e.samples[track]) > 0 }

func (e *fakeExtractor) GetSample(track int) (Sample, bool) {
	if len(e.samples[track]) == 0 {
		return Sample{}, false
	}
	s := e.samples[track][0]
	e.samples[track] = e.samples[track][1:]
	return s, true
}

func (e *fakeExtractor) DiscardUntil(track int, timeUs int64) {
	kept := e.samples[track][:0]
	for _, s := range e.samples[track] {
		if s.TimeUs >= timeUs {
			kept = append(kept, s)
		}
	}
	e.samples[track] = kept
}

func (e *fakeExtractor) LargestParsedTimestampUs() int64 { return e.largest }

func (e *fakeExtractor) ConfigureSpliceTo(next ExtractorWrapper) { e.splicedTo = next }

func (e *fakeExtractor) Format() Format { return e.format }

func (e *fakeExtractor) Trigger() Trigger { return e.trigger }

func (e *fakeExtractor) StartTimeUs() int64 { return e.startTimeUs }

func (e *fakeExtractor) push(track int, sample Sample) {
	e.samples[track] = append(e.samples[track], sample)
	if sample.TimeUs > e.largest || e.largest == Unset {
		e.largest = sample.TimeUs
	}
}

type fakeSegmentChunk struct {
	trigger     Trigger
	format      Format
	length      int64
	bytesLoaded int64
	startTimeUs int64
	endTimeUs   int64
	extractor   ExtractorWrapper
}

func (c *fakeSegmentChunk) Type() ChunkType { return ChunkTypeMedia }

func (c *fakeSegmentChunk) Trigger() Trigger { return c.trigger }

func (c *fakeSegmentChunk) Format() Format { return c.format }

func (c *fakeSegmentChunk) Length() int64 { return c.length }

func (c *fakeSegmentChunk) BytesLoaded() int64 { return c.bytesLoaded }

func (c *fakeSegmentChunk) StartTimeUs() int64 { return c.startTimeUs }

func (c *fakeSegmentChunk) EndTimeUs() int64 { return c.endTimeUs }

func (c *fakeSegmentChunk) Extractor() ExtractorWrapper { return c.extractor }

// fakeChunkSource returns a scripted sequence of ChunkOperations, one per
// call to GetChunkOperation, and records every other call a test might
// want to assert on.
type fakeChunkSource struct {
	ready        bool
	trackFormats []Format
	selected     []int
	live         bool
	durationUs   int64
	pendingErr   error

	ops     []ChunkOperation
	opIndex int

	loadErrorHandled bool
	completed        []Chunk
	errored          []Chunk
	resetCalls       int
	seekCalls        int
}

func (s *fakeChunkSource) Prepare() bool { return s.ready }

func (s *fakeChunkSource) TrackCount() int { return len(s.trackFormats) }

func (s *fakeChunkSource) TrackFormat(i int) Format { return s.trackFormats[i] }

func (s *fakeChunkSource) SelectTracks(indices []int) { s.selected = indices }

func (s *fakeChunkSource) IsLive() bool { return s.live }

func (s *fakeChunkSource) Seek() { s.seekCalls++ }

func (s *fakeChunkSource) Reset() { s.resetCalls++ }

func (s *fakeChunkSource) DurationUs() int64 { return s.durationUs }

func (s *fakeChunkSource) MaybeThrowError() error { return s.pendingErr }

func (s *fakeChunkSource) GetChunkOperation(previousSegment SegmentChunk, targetTimeUs int64) ChunkOperation {
	if s.opIndex >= len(s.ops) {
		return ChunkOperation{}
	}
	op := s.ops[s.opIndex]
	s.opIndex++
	return op
}

func (s *fakeChunkSource) OnChunkLoadCompleted(chunk Chunk) {
	s.completed = append(s.completed, chunk)
}

func (s *fakeChunkSource) OnChunkLoadError(chunk Chunk, err error) bool {
	s.errored = append(s.errored, chunk)
	return s.loadErrorHandled
}

type fakeEventListener struct {
	loadStarted            int
	loadCompleted          int
	loadCanceled           int
	loadErrors             []error
	downstreamFormatChange int
}

func (l *fakeEventListener) OnLoadStarted(sourceID int, length int64, chunkType ChunkType, trigger Trigger,
	format Format, mediaStartTimeUs, mediaEndTimeUs int64,
) {
	l.loadStarted++
}

func (l *fakeEventListener) OnLoadCompleted(sourceID int, bytesLoaded int64, chunkType ChunkType, trigger Trigger,
	format Format, mediaStartTimeUs, mediaEndTimeUs int64, elapsedRealtimeMs, loadDurationMs int64,
) {
	l.loadCompleted++
}

func (l *fakeEventListener) OnLoadCanceled(sourceID int, bytesLoaded int64) {
	l.loadCanceled++
}

func (l *fakeEventListener) OnLoadError(sourceID int, err error) {
	l.loadErrors = append(l.loadErrors, err)
}

func (l *fakeEventListener) OnDownstreamFormatChanged(sourceID int, format Format, trigger Trigger, positionUs int64) {
	l.downstreamFormatChange++
}
