package httploader

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluenviron/hlssource/internal/hls"
)

type fakeChunk struct {
	url         string
	rangeOffset int64
	rangeLength int64

	mu          sync.Mutex
	bytesLoaded int64
	appended    []byte
	appendErr   error
}

func (c *fakeChunk) Type() hls.ChunkType  { return hls.ChunkTypeMedia }
func (c *fakeChunk) Trigger() hls.Trigger { return hls.TriggerInitial }
func (c *fakeChunk) Format() hls.Format   { return hls.Format{} }
func (c *fakeChunk) Length() int64        { return -1 }
func (c *fakeChunk) BytesLoaded() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bytesLoaded
}
func (c *fakeChunk) URL() string         { return c.url }
func (c *fakeChunk) RangeOffset() int64  { return c.rangeOffset }
func (c *fakeChunk) RangeLength() int64  { return c.rangeLength }
func (c *fakeChunk) AppendData(p []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bytesLoaded += int64(len(p))
	c.appended = append(c.appended, p...)
	return c.appendErr
}

type callbackRecorder struct {
	mu        sync.Mutex
	completed chan hls.Chunk
	canceled  chan hls.Chunk
	errored   chan error
}

func newCallbackRecorder() *callbackRecorder {
	return &callbackRecorder{
		completed: make(chan hls.Chunk, 1),
		canceled:  make(chan hls.Chunk, 1),
		errored:   make(chan error, 1),
	}
}

func (r *callbackRecorder) OnLoadCompleted(loadable hls.Chunk) { r.completed <- loadable }
func (r *callbackRecorder) OnLoadCanceled(loadable hls.Chunk)  { r.canceled <- loadable }
func (r *callbackRecorder) OnLoadError(loadable hls.Chunk, err error) { r.errored <- err }

func TestLoaderFetchesSuccessfully(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("segment-bytes"))
	}))
	defer srv.Close()

	l := New(nil, nil)
	chunk := &fakeChunk{url: srv.URL}
	cb := newCallbackRecorder()

	require.False(t, l.IsLoading())
	l.StartLoading(chunk, cb)
	require.True(t, l.IsLoading())

	select {
	case loadable := <-cb.completed:
		assert.Same(t, hls.Chunk(chunk), loadable)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for OnLoadCompleted")
	}

	assert.Equal(t, "segment-bytes", string(chunk.appended))
	assert.False(t, l.IsLoading())
}

func TestLoaderReportsBadStatusAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	l := New(nil, nil)
	chunk := &fakeChunk{url: srv.URL}
	cb := newCallbackRecorder()

	l.StartLoading(chunk, cb)

	select {
	case err := <-cb.errored:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for OnLoadError")
	}
}

func TestLoaderRejectsNonFetchableChunk(t *testing.T) {
	l := New(nil, nil)
	cb := newCallbackRecorder()

	l.StartLoading(notFetchableChunk{}, cb)

	select {
	case err := <-cb.errored:
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for OnLoadError")
	}
}

type notFetchableChunk struct{}

func (notFetchableChunk) Type() hls.ChunkType  { return hls.ChunkTypeMedia }
func (notFetchableChunk) Trigger() hls.Trigger { return hls.TriggerInitial }
func (notFetchableChunk) Format() hls.Format   { return hls.Format{} }
func (notFetchableChunk) Length() int64        { return -1 }
func (notFetchableChunk) BytesLoaded() int64   { return 0 }

func TestLoaderCancelLoadingReportsCanceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()

	l := New(nil, nil)
	chunk := &fakeChunk{url: srv.URL}
	cb := newCallbackRecorder()

	l.StartLoading(chunk, cb)
	l.CancelLoading()
	close(release)

	select {
	case loadable := <-cb.canceled:
		assert.Same(t, hls.Chunk(chunk), loadable)
	case err := <-cb.errored:
		t.Fatalf("expected cancellation, got error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for OnLoadCanceled")
	}
}

func TestLoaderReleaseSwallowsInFlightCallback(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte("late"))
	}))
	defer srv.Close()

	l := New(nil, nil)
	chunk := &fakeChunk{url: srv.URL}
	cb := newCallbackRecorder()

	l.StartLoading(chunk, cb)
	close(release)
	l.Release()
	l.Release() // idempotent

	select {
	case <-cb.completed:
		t.Fatal("callback should have been swallowed by Release")
	case <-cb.canceled:
		t.Fatal("callback should have been swallowed by Release")
	case <-cb.errored:
		t.Fatal("callback should have been swallowed by Release")
	case <-time.After(200 * time.Millisecond):
	}
}
