// Package httploader implements the hls.Loader contract over plain
// net/http, grounded on bluenviron-mediamtx's
// client_downloader_stream.go downloadSegment (range-request GET,
// status-code validation) but reshaped so the blocking fetch runs on its
// own goroutine and reports back through hls.LoaderCallback instead of
// returning synchronously to a processing loop.
package httploader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bluenviron/hlssource/internal/hls"
	"github.com/bluenviron/hlssource/internal/logger"
)

// Fetchable is implemented by the hls.Chunk values this Loader knows how
// to download: the chunk carries its own URL/byte-range and is
// responsible for feeding the downloaded bytes wherever they belong
// (typically straight into its bound Extractor), since the core package
// has no transport- or demux-level types of its own.
type Fetchable interface {
	hls.Chunk
	URL() string
	// RangeOffset/RangeLength describe an optional byte-range request;
	// RangeLength <= 0 means "no range, fetch the whole resource".
	RangeOffset() int64
	RangeLength() int64
	// AppendData is called once per successful fetch with the full
	// response body.
	AppendData(p []byte) error
}

// Loader is an hls.Loader backed by an *http.Client. At most one load
// runs at a time, matching the contract's "performs a single
// asynchronous download at a time" requirement.
type Loader struct {
	client *http.Client
	log    logger.Writer
	group  errgroup.Group

	mu       sync.Mutex
	cancel   context.CancelFunc
	loading  bool
	released bool
}

// New allocates a Loader. If client is nil, http.DefaultClient is used.
func New(client *http.Client, log logger.Writer) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{client: client, log: log}
}

// StartLoading implements hls.Loader.
func (l *Loader) StartLoading(loadable hls.Chunk, callback hls.LoaderCallback) {
	f, ok := loadable.(Fetchable)
	if !ok {
		callback.OnLoadError(loadable, fmt.Errorf("httploader: %T does not implement Fetchable", loadable))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	l.mu.Lock()
	l.cancel = cancel
	l.loading = true
	l.mu.Unlock()

	l.group.Go(func() error {
		l.run(ctx, loadable, f, callback)
		return nil
	})
}

func (l *Loader) run(ctx context.Context, loadable hls.Chunk, f Fetchable, callback hls.LoaderCallback) {
	err := l.fetch(ctx, f)

	l.mu.Lock()
	l.loading = false
	l.cancel = nil
	released := l.released
	l.mu.Unlock()

	if released {
		return
	}

	switch {
	case ctx.Err() != nil:
		callback.OnLoadCanceled(loadable)
	case err != nil:
		callback.OnLoadError(loadable, err)
	default:
		callback.OnLoadCompleted(loadable)
	}
}

func (l *Loader) fetch(ctx context.Context, f Fetchable) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(), nil)
	if err != nil {
		return err
	}

	if rangeLength := f.RangeLength(); rangeLength > 0 {
		offset := f.RangeOffset()
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", offset, offset+rangeLength-1))
	}

	l.logf(logger.Debug, "httploader: fetching %s", f.URL())

	res, err := l.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusPartialContent {
		return fmt.Errorf("httploader: bad status code: %d", res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	return f.AppendData(data)
}

func (l *Loader) logf(level logger.Level, format string, args ...interface{}) {
	if l.log == nil {
		return
	}
	l.log.Log(level, format, args...)
}

// IsLoading implements hls.Loader.
func (l *Loader) IsLoading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// CancelLoading implements hls.Loader.
func (l *Loader) CancelLoading() {
	l.mu.Lock()
	cancel := l.cancel
	l.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Release implements hls.Loader. Idempotent; waits for the in-flight
// fetch goroutine (if any) to exit and swallows its callback.
func (l *Loader) Release() {
	l.mu.Lock()
	l.released = true
	cancel := l.cancel
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	l.group.Wait() //nolint:errcheck // run() never returns a non-nil error.
}
