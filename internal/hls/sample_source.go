package hls

import (
	"time"

	"github.com/bluenviron/hlssource/internal/logger"
)

// Options configures a SampleSource. ChunkSource, LoadControl and Loader
// are required; everything else has a sane default.
type Options struct {
	ChunkSource ChunkSource
	LoadControl LoadControl
	Loader      Loader

	// BufferSizeContribution is reported to LoadControl.Register.
	BufferSizeContribution int
	// MinLoadableRetryCount defaults to DefaultMinLoadableRetryCount.
	MinLoadableRetryCount int

	// SourceID identifies this source in EventListener payloads.
	SourceID int
	// EventListener receives fire-and-forget progress notifications.
	// May be nil.
	EventListener EventListener
	// Post delivers EventListener calls; see Poster. If nil, listener
	// calls run inline on the driver goroutine.
	Post Poster

	// Logger receives debug/warning/error lines. May be nil.
	Logger logger.Writer
}

// SampleSource is a pull-oriented HLS sample source. It is not safe for
// concurrent use: every exported method (and every TrackStream method it
// hands out) must be called from a single driver goroutine. Loader
// callbacks may arrive from a different goroutine; they are queued and
// applied the next time a driver-goroutine method runs (drainLoaderEvents).
type SampleSource struct {
	chunkSource             ChunkSource
	loadControl             LoadControl
	loader                  Loader
	minLoadableRetryCount   int
	bufferSizeContribution  int
	sourceID                int
	listener                EventListener
	post                    Poster
	log                     logger.Writer
	loaderEvents            chan func()

	prepared               bool
	loadControlRegistered  bool
	released               bool
	enabledTrackCount      int

	downstreamFormat *Format

	trackGroups             []TrackGroup
	primaryTrackGroupIndex  int
	primarySelectedTracks   []int
	groupEnabled            []bool
	pendingResets           []bool
	downstreamMediaFormats  []*Format

	extractors extractorQueue

	downstreamPositionUs   int64
	lastSeekPositionUs     int64
	pendingResetPositionUs int64

	loadingFinished bool

	currentLoadable              Chunk
	currentSegmentLoadable       SegmentChunk
	previousSegmentLoadable      SegmentChunk
	currentLoadableErr           error
	currentLoadableErrCount      int
	currentLoadableErrTimestamp  time.Time
	currentLoadStartTime         time.Time
}

// NewSampleSource allocates a SampleSource. The source starts idle;
// nothing is loaded until Prepare is called.
func NewSampleSource(opts Options) *SampleSource {
	minRetry := opts.MinLoadableRetryCount
	if minRetry <= 0 {
		minRetry = DefaultMinLoadableRetryCount
	}

	post := opts.Post
	if post == nil {
		post = func(fn func()) { fn() }
	}

	return &SampleSource{
		chunkSource:            opts.ChunkSource,
		loadControl:            opts.LoadControl,
		loader:                 opts.Loader,
		minLoadableRetryCount:  minRetry,
		bufferSizeContribution: opts.BufferSizeContribution,
		sourceID:               opts.SourceID,
		listener:               opts.EventListener,
		post:                   post,
		log:                    opts.Logger,
		loaderEvents:           make(chan func(), 8),
		pendingResetPositionUs: Unset,
	}
}

// Prepare is an idempotent, repeated-polling operation: call it until it
// returns (true, nil). It asks the ChunkSource to prepare, and once an
// Extractor in the queue has become prepared, synthesizes track groups
// from it. Otherwise it makes sure a load targeting positionUs is
// in flight.
func (s *SampleSource) Prepare(positionUs int64) (bool, error) {
	s.drainLoaderEvents()

	if s.prepared {
		return true, nil
	}
	if !s.chunkSource.Prepare() {
		return false, nil
	}

	if !s.extractors.empty() {
		for {
			extractor := s.extractors.front()
			if extractor.IsPrepared() {
				s.buildTracks(extractor)
				s.prepared = true
				s.maybeStartLoading()
				return true, nil
			} else if s.extractors.len() > 1 {
				// Discarded: it held no useful samples for the new
				// playback start.
				s.extractors.popFront()
			} else {
				break
			}
		}
	}

	if !s.loadControlRegistered {
		s.loadControl.Register(s, s.bufferSizeContribution)
		s.loadControlRegistered = true
	}
	if !s.loader.IsLoading() {
		// We're going to have to load a chunk to get what we need for
		// preparation; target positionUs so the common case (renderer
		// enabled right after prepare, at the same position) doesn't
		// reload anything.
		s.pendingResetPositionUs = positionUs
		s.downstreamPositionUs = positionUs
	}
	s.maybeStartLoading()
	if err := s.maybeThrowError(); err != nil {
		return false, err
	}
	return false, nil
}

// IsPrepared reports whether Prepare has completed.
func (s *SampleSource) IsPrepared() bool {
	return s.prepared
}

// DurationUs delegates to the ChunkSource.
func (s *SampleSource) DurationUs() int64 {
	return s.chunkSource.DurationUs()
}

// TrackGroupCount returns the number of caller-visible track groups.
func (s *SampleSource) TrackGroupCount() int {
	assertState(s.prepared, "TrackGroupCount called before prepared")
	return len(s.trackGroups)
}

// TrackGroup returns the group at the given index.
func (s *SampleSource) TrackGroup(group int) TrackGroup {
	assertState(s.prepared, "TrackGroup called before prepared")
	return s.trackGroups[group]
}

// Enable marks a track group enabled, selecting tracks within it (only
// meaningful for the adaptive/primary group), and returns a TrackStream
// for pulling samples from it.
func (s *SampleSource) Enable(group int, tracks []int, positionUs int64) TrackStream {
	s.drainLoaderEvents()
	assertState(s.prepared, "Enable called before prepared")

	s.setGroupEnabled(group, true)
	s.downstreamMediaFormats[group] = nil
	s.pendingResets[group] = false
	s.downstreamFormat = nil

	wasLoadControlRegistered := s.loadControlRegistered
	if !s.loadControlRegistered {
		s.loadControl.Register(s, s.bufferSizeContribution)
		s.loadControlRegistered = true
	}

	// Treat enabling of a live stream as occurring at t=0.
	if s.chunkSource.IsLive() {
		positionUs = 0
	}

	switch {
	case group == s.primaryTrackGroupIndex && !intSliceEqual(tracks, s.primarySelectedTracks):
		// The primary variant selection changed. Other exposed groups
		// may be enabled too, so implement this as a seek: every
		// downstream consumer gets a discontinuity.
		s.chunkSource.SelectTracks(tracks)
		s.primarySelectedTracks = tracks
		s.seekToInternal(positionUs)

	case s.enabledTrackCount == 1:
		s.lastSeekPositionUs = positionUs
		if wasLoadControlRegistered && s.downstreamPositionUs == positionUs {
			// First group enabled after preparation, at the position
			// prepare() already targeted: avoid reloading the segment
			// preparation just fetched.
			s.maybeStartLoading()
		} else {
			s.downstreamPositionUs = positionUs
			s.restartFrom(positionUs)
		}
	}

	return &trackStream{source: s, group: group}
}

func (s *SampleSource) setGroupEnabled(group int, enabled bool) {
	assertState(s.groupEnabled[group] != enabled, "group enabled state already matches requested state")
	s.groupEnabled[group] = enabled
	if enabled {
		s.enabledTrackCount++
	} else {
		s.enabledTrackCount--
	}
}

func (s *SampleSource) disable(group int) {
	assertState(s.prepared, "disable called before prepared")
	s.setGroupEnabled(group, false)
	if s.enabledTrackCount == 0 {
		s.chunkSource.Reset()
		s.downstreamPositionUs = Unset
		if s.loadControlRegistered {
			s.loadControl.Unregister(s)
			s.loadControlRegistered = false
		}
		if s.loader.IsLoading() {
			s.loader.CancelLoading()
		} else {
			s.clearState()
			s.loadControl.TrimAllocator()
		}
	}
}

// ContinueBuffering lets samples that are no longer needed by any
// disabled track be discarded, and drives maybeStartLoading.
func (s *SampleSource) ContinueBuffering(playbackPositionUs int64) {
	s.drainLoaderEvents()
	assertState(s.prepared, "ContinueBuffering called before prepared")
	if s.enabledTrackCount == 0 {
		return
	}
	s.downstreamPositionUs = playbackPositionUs
	if !s.extractors.empty() {
		s.discardSamplesForDisabledTracks(s.getCurrentExtractor(), s.downstreamPositionUs)
	}
	s.maybeStartLoading()
}

// SeekToUs seeks every enabled group to positionUs, restarting loading.
// A no-op if no group is enabled.
func (s *SampleSource) SeekToUs(positionUs int64) {
	s.drainLoaderEvents()
	assertState(s.prepared, "SeekToUs called before prepared")
	if s.enabledTrackCount == 0 {
		return
	}
	if s.chunkSource.IsLive() {
		positionUs = 0
	}
	s.seekToInternal(positionUs)
}

func (s *SampleSource) seekToInternal(positionUs int64) {
	s.lastSeekPositionUs = positionUs
	s.downstreamPositionUs = positionUs
	for i := range s.pendingResets {
		s.pendingResets[i] = true
	}
	s.chunkSource.Seek()
	s.restartFrom(positionUs)
}

// BufferedPositionUs reports how far ahead samples have been parsed, or
// Unset (end-of-source) if nothing more will arrive.
func (s *SampleSource) BufferedPositionUs() int64 {
	s.drainLoaderEvents()
	assertState(s.prepared, "BufferedPositionUs called before prepared")

	if s.enabledTrackCount == 0 {
		return Unset
	}
	if s.isPendingReset() {
		return s.pendingResetPositionUs
	}
	if s.loadingFinished {
		return Unset
	}

	// The larger of the last and penultimate extractor's largest parsed
	// timestamp: guards against the newly appended extractor not having
	// parsed anything yet. Preserved verbatim; see DESIGN.md.
	largest := s.extractors.last().LargestParsedTimestampUs()
	if s.extractors.len() > 1 {
		if penultimate := s.extractors.at(s.extractors.len() - 2).LargestParsedTimestampUs(); penultimate > largest {
			largest = penultimate
		}
	}
	if largest == Unset {
		return s.downstreamPositionUs
	}
	return largest
}

// MaybeThrowError rethrows a fatal load error, once retries against the
// current loadable are exhausted, or forwards to the ChunkSource when
// there's no loadable to blame.
func (s *SampleSource) MaybeThrowError() error {
	s.drainLoaderEvents()
	return s.maybeThrowError()
}

func (s *SampleSource) maybeThrowError() error {
	if s.currentLoadableErr != nil && s.currentLoadableErrCount > s.minLoadableRetryCount {
		return &ErrLoadRetriesExhausted{Count: s.currentLoadableErrCount, Err: s.currentLoadableErr}
	} else if s.currentLoadable == nil {
		return s.chunkSource.MaybeThrowError()
	}
	return nil
}

// Release tears down the source. Idempotent.
func (s *SampleSource) Release() {
	s.drainLoaderEvents()
	if s.released {
		return
	}
	s.released = true
	if s.loadControlRegistered {
		s.loadControl.Unregister(s)
		s.loadControlRegistered = false
	}
	s.loader.Release()
	s.prepared = false
}

// buildTracks synthesizes s.trackGroups from extractor and chunkSource,
// records every variant as the primary group's initial selection, and
// resets the per-group bookkeeping that buildTracks's caller (Prepare)
// needs sized to match.
func (s *SampleSource) buildTracks(extractor ExtractorWrapper) {
	groups, primaryIndex := buildTracks(extractor, s.chunkSource)
	s.trackGroups = groups
	s.primaryTrackGroupIndex = primaryIndex
	s.primarySelectedTracks = nil
	if primaryIndex != -1 {
		s.primarySelectedTracks = make([]int, len(groups[primaryIndex].Formats))
		for i := range s.primarySelectedTracks {
			s.primarySelectedTracks[i] = i
		}
	}
	s.groupEnabled = make([]bool, len(groups))
	s.pendingResets = make([]bool, len(groups))
	s.downstreamMediaFormats = make([]*Format, len(groups))
}

// --- Loader.Callback ---

// OnLoadCompleted implements LoaderCallback. Called by the Loader,
// possibly from a different goroutine; queued for the driver goroutine.
func (s *SampleSource) OnLoadCompleted(loadable Chunk) {
	s.loaderEvents <- func() { s.onLoadCompleted(loadable) }
}

// OnLoadCanceled implements LoaderCallback.
func (s *SampleSource) OnLoadCanceled(loadable Chunk) {
	s.loaderEvents <- func() { s.onLoadCanceled(loadable) }
}

// OnLoadError implements LoaderCallback.
func (s *SampleSource) OnLoadError(loadable Chunk, err error) {
	s.loaderEvents <- func() { s.onLoadError(loadable, err) }
}

// drainLoaderEvents applies every Loader callback queued since the last
// driver-goroutine entry point ran. This is how "the Loader posts to the
// driver thread" is modeled without a host-framework Handler: callbacks
// land on a channel and are drained cooperatively.
func (s *SampleSource) drainLoaderEvents() {
	for {
		select {
		case fn := <-s.loaderEvents:
			fn()
		default:
			return
		}
	}
}

func (s *SampleSource) onLoadCompleted(loadable Chunk) {
	assertState(loadable == s.currentLoadable, "load completed for a loadable that isn't current")

	now := time.Now()
	loadDuration := now.Sub(s.currentLoadStartTime)
	s.chunkSource.OnChunkLoadCompleted(s.currentLoadable)

	if seg, ok := s.currentLoadable.(SegmentChunk); ok {
		assertState(s.currentSegmentLoadable != nil && Chunk(seg) == Chunk(s.currentSegmentLoadable),
			"segment loadable completed without matching currentSegmentLoadable")
		s.previousSegmentLoadable = seg
		s.notifyLoadCompleted(s.currentLoadable.BytesLoaded(), seg.Type(), seg.Trigger(), seg.Format(),
			seg.StartTimeUs(), seg.EndTimeUs(), now, loadDuration)
	} else {
		s.notifyLoadCompleted(s.currentLoadable.BytesLoaded(), s.currentLoadable.Type(), s.currentLoadable.Trigger(),
			s.currentLoadable.Format(), Unset, Unset, now, loadDuration)
	}

	s.clearCurrentLoadable()
	s.maybeStartLoading()
}

func (s *SampleSource) onLoadCanceled(loadable Chunk) {
	s.notifyLoadCanceled(s.currentLoadable.BytesLoaded())
	if s.enabledTrackCount > 0 {
		s.restartFrom(s.pendingResetPositionUs)
	} else {
		s.clearState()
		s.loadControl.TrimAllocator()
	}
}

func (s *SampleSource) onLoadError(loadable Chunk, err error) {
	if s.chunkSource.OnChunkLoadError(s.currentLoadable, err) {
		s.logf(logger.Debug, "load error handled by chunk source: %v", err)
		if s.previousSegmentLoadable == nil && !s.isPendingReset() {
			s.pendingResetPositionUs = s.lastSeekPositionUs
		}
		s.clearCurrentLoadable()
	} else {
		s.currentLoadableErr = err
		s.currentLoadableErrCount++
		s.currentLoadableErrTimestamp = time.Now()
		s.logf(logger.Warn, "load error (attempt %d): %v", s.currentLoadableErrCount, err)
	}
	s.notifyLoadError(err)
	s.maybeStartLoading()
}

// maybeStartLoading decides whether to issue the next load, reacting to
// backoff state, LoadControl's backpressure decision, and the
// ChunkSource's next operation.
func (s *SampleSource) maybeStartLoading() {
	now := time.Now()
	nextLoadPositionUs := s.nextLoadPositionUs()
	isBackedOff := s.currentLoadableErr != nil
	loadingOrBackedOff := s.loader.IsLoading() || isBackedOff

	nextLoader := s.loadControl.Update(s, s.downstreamPositionUs, nextLoadPositionUs, loadingOrBackedOff)

	if isBackedOff {
		if now.Sub(s.currentLoadableErrTimestamp) >= retryDelay(s.currentLoadableErrCount) {
			s.logf(logger.Debug, "retrying loadable after backoff")
			s.currentLoadableErr = nil
			s.loader.StartLoading(s.currentLoadable, s)
		}
		return
	}

	if s.loader.IsLoading() || !nextLoader || (s.prepared && s.enabledTrackCount == 0) {
		return
	}

	target := s.downstreamPositionUs
	if s.isPendingReset() {
		target = s.pendingResetPositionUs
	}

	op := s.chunkSource.GetChunkOperation(s.previousSegmentLoadable, target)
	if op.EndOfStream {
		s.loadingFinished = true
		s.loadControl.Update(s, s.downstreamPositionUs, Unset, false)
		return
	}
	if op.Chunk == nil {
		return
	}

	s.currentLoadStartTime = now
	s.currentLoadable = op.Chunk

	if seg, ok := op.Chunk.(SegmentChunk); ok {
		if s.isPendingReset() {
			s.pendingResetPositionUs = Unset
		}
		extractorWrapper := seg.Extractor()
		if s.extractors.empty() || !s.extractors.isLast(extractorWrapper) {
			extractorWrapper.Init(s.loadControl.Allocator())
			s.extractors.pushBack(extractorWrapper)
		}
		s.notifyLoadStarted(op.Chunk.Length(), seg.Type(), seg.Trigger(), seg.Format(), seg.StartTimeUs(), seg.EndTimeUs())
		s.currentSegmentLoadable = seg
	} else {
		s.notifyLoadStarted(op.Chunk.Length(), op.Chunk.Type(), op.Chunk.Trigger(), op.Chunk.Format(), Unset, Unset)
	}

	s.logf(logger.Debug, "starting load: type=%v trigger=%v", op.Chunk.Type(), op.Chunk.Trigger())
	s.loader.StartLoading(s.currentLoadable, s)
}

// nextLoadPositionUs assumes the next load starts where the previous
// chunk ended, or at the pending reset time if there is one.
func (s *SampleSource) nextLoadPositionUs() int64 {
	if s.isPendingReset() {
		return s.pendingResetPositionUs
	}
	if s.loadingFinished || (s.prepared && s.enabledTrackCount == 0) {
		return Unset
	}
	if s.currentSegmentLoadable != nil {
		return s.currentSegmentLoadable.EndTimeUs()
	}
	return s.previousSegmentLoadable.EndTimeUs()
}

func (s *SampleSource) isPendingReset() bool {
	return s.pendingResetPositionUs != Unset
}

// restartFrom requests a reload targeting positionUs. If a load is in
// flight, cancellation is requested cooperatively and the actual restart
// happens in onLoadCanceled; otherwise it happens immediately.
func (s *SampleSource) restartFrom(positionUs int64) {
	s.pendingResetPositionUs = positionUs
	s.loadingFinished = false
	if s.loader.IsLoading() {
		s.loader.CancelLoading()
	} else {
		s.clearState()
		s.maybeStartLoading()
	}
}

func (s *SampleSource) clearState() {
	s.extractors.clear()
	s.clearCurrentLoadable()
	s.previousSegmentLoadable = nil
}

func (s *SampleSource) clearCurrentLoadable() {
	s.currentSegmentLoadable = nil
	s.currentLoadable = nil
	s.currentLoadableErr = nil
	s.currentLoadableErrCount = 0
}

// getCurrentExtractor discards extractors without any samples for any
// enabled track from the front of the queue, retaining the last entry
// even if it has none. Must not be called on an empty queue.
func (s *SampleSource) getCurrentExtractor() ExtractorWrapper {
	assertState(!s.extractors.empty(), "getCurrentExtractor called on an empty queue")
	extractor := s.extractors.front()
	for s.extractors.len() > 1 && !s.haveSamplesForEnabledTracks(extractor) {
		s.extractors.popFront()
		extractor = s.extractors.front()
	}
	return extractor
}

func (s *SampleSource) discardSamplesForDisabledTracks(extractor ExtractorWrapper, timeUs int64) {
	if !extractor.IsPrepared() {
		return
	}
	for i, enabled := range s.groupEnabled {
		if !enabled {
			extractor.DiscardUntil(i, timeUs)
		}
	}
}

func (s *SampleSource) haveSamplesForEnabledTracks(extractor ExtractorWrapper) bool {
	if !extractor.IsPrepared() {
		return false
	}
	for i, enabled := range s.groupEnabled {
		if enabled && extractor.HasSamples(i) {
			return true
		}
	}
	return false
}

// --- per-group reads, wrapped by trackStream ---

func (s *SampleSource) isReady(group int) bool {
	assertState(s.groupEnabled[group], "isReady called on a disabled group")
	if s.loadingFinished {
		return true
	}
	if s.isPendingReset() || s.extractors.empty() {
		return false
	}
	for i := 0; i < s.extractors.len(); i++ {
		extractor := s.extractors.at(i)
		if !extractor.IsPrepared() {
			break
		}
		if extractor.HasSamples(group) {
			return true
		}
	}
	return false
}

func (s *SampleSource) readReset(group int) int64 {
	if s.pendingResets[group] {
		s.pendingResets[group] = false
		return s.lastSeekPositionUs
	}
	return NoReset
}

func (s *SampleSource) readData(group int, outFormat *Format, outSample *Sample) ReadResult {
	assertState(s.prepared, "readData called before prepared")

	if s.pendingResets[group] || s.isPendingReset() {
		return NothingRead
	}

	extractor := s.getCurrentExtractor()
	if !extractor.IsPrepared() {
		return NothingRead
	}

	if format := extractor.Format(); s.downstreamFormat == nil || !s.downstreamFormat.Equal(format) {
		s.notifyDownstreamFormatChanged(format, extractor.Trigger(), extractor.StartTimeUs())
		s.downstreamFormat = &format
	}

	if s.extractors.len() > 1 {
		// Attempt a seamless splice from the current extractor to the
		// next one.
		extractor.ConfigureSpliceTo(s.extractors.at(1))
	}

	extractorIndex := 0
	for s.extractors.len() > extractorIndex+1 && !extractor.HasSamples(group) {
		extractorIndex++
		extractor = s.extractors.at(extractorIndex)
		if !extractor.IsPrepared() {
			return NothingRead
		}
	}

	mediaFormat := extractor.MediaFormat(group)
	if s.downstreamMediaFormats[group] == nil || !s.downstreamMediaFormats[group].Equal(mediaFormat) {
		*outFormat = mediaFormat
		s.downstreamMediaFormats[group] = &mediaFormat
		return FormatRead
	}

	if sample, ok := extractor.GetSample(group); ok {
		if sample.TimeUs < s.lastSeekPositionUs {
			sample.Flags |= SampleFlagDecodeOnly
		}
		*outSample = sample
		return SampleRead
	}

	if s.loadingFinished {
		return EndOfStream
	}
	return NothingRead
}

// --- notifications ---

func (s *SampleSource) notifyLoadStarted(length int64, chunkType ChunkType, trigger Trigger, format Format,
	mediaStartTimeUs, mediaEndTimeUs int64,
) {
	if s.listener == nil {
		return
	}
	listener, sourceID := s.listener, s.sourceID
	s.post(func() {
		listener.OnLoadStarted(sourceID, length, chunkType, trigger, format, mediaStartTimeUs, mediaEndTimeUs)
	})
}

func (s *SampleSource) notifyLoadCompleted(bytesLoaded int64, chunkType ChunkType, trigger Trigger, format Format,
	mediaStartTimeUs, mediaEndTimeUs int64, now time.Time, loadDuration time.Duration,
) {
	if s.listener == nil {
		return
	}
	listener, sourceID := s.listener, s.sourceID
	elapsedMs := now.UnixMilli()
	loadDurationMs := loadDuration.Milliseconds()
	s.post(func() {
		listener.OnLoadCompleted(sourceID, bytesLoaded, chunkType, trigger, format, mediaStartTimeUs, mediaEndTimeUs,
			elapsedMs, loadDurationMs)
	})
}

func (s *SampleSource) notifyLoadCanceled(bytesLoaded int64) {
	if s.listener == nil {
		return
	}
	listener, sourceID := s.listener, s.sourceID
	s.post(func() { listener.OnLoadCanceled(sourceID, bytesLoaded) })
}

func (s *SampleSource) notifyLoadError(err error) {
	if s.listener == nil {
		return
	}
	listener, sourceID := s.listener, s.sourceID
	s.post(func() { listener.OnLoadError(sourceID, err) })
}

func (s *SampleSource) notifyDownstreamFormatChanged(format Format, trigger Trigger, positionUs int64) {
	if s.listener == nil {
		return
	}
	listener, sourceID := s.listener, s.sourceID
	s.post(func() { listener.OnDownstreamFormatChanged(sourceID, format, trigger, positionUs) })
}

func (s *SampleSource) logf(level logger.Level, format string, args ...interface{}) {
	if s.log == nil {
		return
	}
	s.log.Log(level, format, args...)
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// --- TrackStream ---

type trackStream struct {
	source *SampleSource
	group  int
}

func (t *trackStream) IsReady() bool {
	t.source.drainLoaderEvents()
	return t.source.isReady(t.group)
}

func (t *trackStream) MaybeThrowError() error {
	t.source.drainLoaderEvents()
	return t.source.maybeThrowError()
}

func (t *trackStream) ReadReset() int64 {
	t.source.drainLoaderEvents()
	return t.source.readReset(t.group)
}

func (t *trackStream) ReadData(outFormat *Format, outSample *Sample) ReadResult {
	t.source.drainLoaderEvents()
	return t.source.readData(t.group, outFormat, outSample)
}

func (t *trackStream) Disable() {
	t.source.drainLoaderEvents()
	t.source.disable(t.group)
}
