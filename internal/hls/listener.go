package hls

// EventListener receives fire-and-forget progress notifications. Every
// payload is a value type: implementations must not retain references
// into SampleSource's internal state, and the notification is posted
// through a Poster rather than called inline, so the listener can run on
// a caller-supplied handler/thread of its own.
type EventListener interface {
	OnLoadStarted(sourceID int, length int64, chunkType ChunkType, trigger Trigger,
		format Format, mediaStartTimeUs, mediaEndTimeUs int64)
	OnLoadCompleted(sourceID int, bytesLoaded int64, chunkType ChunkType, trigger Trigger,
		format Format, mediaStartTimeUs, mediaEndTimeUs int64, elapsedRealtimeMs, loadDurationMs int64)
	OnLoadCanceled(sourceID int, bytesLoaded int64)
	OnLoadError(sourceID int, err error)
	OnDownstreamFormatChanged(sourceID int, format Format, trigger Trigger, positionUs int64)
}

// Poster is an abstract "post to the consumer thread" capability, passed
// in at construction in place of a host-framework posting primitive
// (e.g. an Android Handler). A nil Poster means "deliver inline" and is
// only appropriate for tests; production callers should supply something
// that hands fn to a dedicated goroutine.
type Poster func(fn func())

// NewChanPoster returns a Poster that queues functions onto a buffered
// channel drained by a dedicated goroutine, and a stop function that
// drains in-flight work and returns once the goroutine has exited.
// Buffer sizing mirrors the teacher's per-event-type channel queues:
// enough to never block the driver goroutine under normal event rates.
func NewChanPoster(buffer int) (post Poster, stop func()) {
	events := make(chan func(), buffer)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for fn := range events {
			fn()
		}
	}()

	post = func(fn func()) {
		events <- fn
	}
	stop = func() {
		close(events)
		<-done
	}
	return post, stop
}
