package hls

// LoaderCallback is notified of the outcome of a single load. Exactly one
// of the three methods is called per StartLoading, and — per the
// concurrency model documented in the package — the Loader implementation
// is responsible for making that call land on the driver goroutine
// (SampleSource only processes it the next time one of its public
// methods runs; see Poster and SampleSource.drainLoaderEvents).
type LoaderCallback interface {
	OnLoadCompleted(loadable Chunk)
	OnLoadCanceled(loadable Chunk)
	OnLoadError(loadable Chunk, err error)
}

// Loader performs a single asynchronous download at a time and reports
// the outcome through a LoaderCallback. Implementations run the blocking
// I/O on their own background goroutine; every other SampleSource-facing
// method here is expected to return promptly.
type Loader interface {
	// StartLoading begins loading loadable. Must not be called while
	// IsLoading is true.
	StartLoading(loadable Chunk, callback LoaderCallback)
	// IsLoading reports whether a load is currently in flight.
	IsLoading() bool
	// CancelLoading requests cooperative cancellation of the in-flight
	// load. The actual teardown happens asynchronously, signaled by a
	// subsequent OnLoadCanceled.
	CancelLoading()
	// Release tears down the loader. Idempotent; swallows any
	// in-flight callback.
	Release()
}
