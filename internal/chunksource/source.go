// Package chunksource implements the hls.ChunkSource contract over HLS
// playlists, grounded on bluenviron-mediamtx's client_downloader_stream.go
// and client_downloader_primary.go (playlist download, variant/rendition
// selection, live-vs-VOD segment addressing) but reshaped from a
// self-driving download loop into a pull contract SampleSource calls
// GetChunkOperation against.
package chunksource

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mogiioin/hls-m3u8/m3u8"

	"github.com/bluenviron/hlssource/internal/hls"
	"github.com/bluenviron/hlssource/internal/logger"
)

// liveStartingInvPosition is how many segments from the live edge a
// fresh live playback anchors to, the same starting point as
// bluenviron-mediamtx's clientLiveStartingInvPosition.
const liveStartingInvPosition = 3

type variant struct {
	format      hls.Format
	playlistURL *url.URL
	playlist    *m3u8.MediaPlaylist
}

// Source is an hls.ChunkSource backed by an HLS master or media playlist.
type Source struct {
	client  *http.Client
	log     logger.Writer
	rootURL *url.URL

	variants []*variant
	selected []int

	prepared    bool
	live        bool
	durationUs  int64
	pendingErr  error
	seekPending bool
}

// New allocates a Source for the playlist at playlistURL. If client is
// nil, http.DefaultClient is used.
func New(client *http.Client, log logger.Writer, playlistURL string) (*Source, error) {
	u, err := url.Parse(playlistURL)
	if err != nil {
		return nil, fmt.Errorf("chunksource: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Source{
		client:     client,
		log:        log,
		rootURL:    u,
		durationUs: hls.Unset,
	}, nil
}

func (s *Source) logf(level logger.Level, format string, args ...interface{}) {
	if s.log == nil {
		return
	}
	s.log.Log(level, format, args...)
}

// Prepare implements hls.ChunkSource.
func (s *Source) Prepare() bool {
	if s.prepared {
		return true
	}

	s.logf(logger.Debug, "chunksource: downloading playlist %s", s.rootURL)

	pl, _, err := s.download(s.rootURL)
	if err != nil {
		s.pendingErr = err
		return false
	}

	switch plt := pl.(type) {
	case *m3u8.MasterPlaylist:
		if err := s.prepareFromMaster(plt); err != nil {
			s.pendingErr = err
			return false
		}

	case *m3u8.MediaPlaylist:
		s.variants = []*variant{{
			format:      hls.Format{ID: "0", MimeType: "video/mp2t", Width: hls.NoValue, Height: hls.NoValue},
			playlistURL: s.rootURL,
			playlist:    plt,
		}}
		s.finishPrepareFromVariant(0)

	default:
		s.pendingErr = fmt.Errorf("chunksource: unsupported playlist type")
		return false
	}

	s.prepared = true
	return true
}

func (s *Source) prepareFromMaster(master *m3u8.MasterPlaylist) error {
	if len(master.Variants) == 0 {
		return fmt.Errorf("chunksource: master playlist has no variants")
	}

	s.variants = make([]*variant, len(master.Variants))
	for i, v := range master.Variants {
		u, err := s.absoluteURL(s.rootURL, v.URI)
		if err != nil {
			return err
		}
		s.variants[i] = &variant{
			format:      variantFormat(i, v),
			playlistURL: u,
		}
	}

	if err := s.ensureVariantPlaylist(0); err != nil {
		return err
	}
	s.finishPrepareFromVariant(0)
	return nil
}

func variantFormat(index int, v *m3u8.Variant) hls.Format {
	width, height := hls.NoValue, hls.NoValue
	if w, h, ok := parseResolution(v.Resolution); ok {
		width, height = w, h
	}

	mimeType := "audio/mp2t"
	if v.Resolution != "" || strings.Contains(v.Codecs, "avc") || strings.Contains(v.Codecs, "hev") {
		mimeType = "video/mp2t"
	}

	return hls.Format{
		ID:       strconv.Itoa(index),
		MimeType: mimeType,
		Bitrate:  int(v.Bandwidth),
		Width:    width,
		Height:   height,
	}
}

func parseResolution(s string) (width, height int, ok bool) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return w, h, true
}

func (s *Source) finishPrepareFromVariant(vi int) {
	v := s.variants[vi]
	s.live = !v.playlist.Closed
	if v.playlist.Closed {
		var totalUs int64
		for _, seg := range v.playlist.GetAllSegments() {
			totalUs += int64(seg.Duration * 1_000_000)
		}
		s.durationUs = totalUs
	} else {
		s.durationUs = hls.Unset
	}
}

func (s *Source) ensureVariantPlaylist(vi int) error {
	v := s.variants[vi]

	if v.playlist != nil && v.playlist.Closed {
		return nil // VOD playlists don't change; no need to refetch.
	}

	pl, _, err := s.download(v.playlistURL)
	if err != nil {
		return err
	}

	mp, ok := pl.(*m3u8.MediaPlaylist)
	if !ok {
		return fmt.Errorf("chunksource: variant playlist is not a media playlist")
	}
	v.playlist = mp
	return nil
}

func (s *Source) download(u *url.URL) (m3u8.Playlist, m3u8.ListType, error) {
	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, 0, err
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("chunksource: bad status code: %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, 0, err
	}

	pl, kind, err := m3u8.Decode(*bytes.NewBuffer(body), false)
	if err != nil {
		return nil, 0, fmt.Errorf("chunksource: %w", err)
	}
	return pl, kind, nil
}

func (s *Source) absoluteURL(base *url.URL, relative string) (*url.URL, error) {
	u, err := url.Parse(relative)
	if err != nil {
		return nil, err
	}
	return base.ResolveReference(u), nil
}

// TrackCount implements hls.ChunkSource.
func (s *Source) TrackCount() int { return len(s.variants) }

// TrackFormat implements hls.ChunkSource.
func (s *Source) TrackFormat(i int) hls.Format { return s.variants[i].format }

// SelectTracks implements hls.ChunkSource.
func (s *Source) SelectTracks(indices []int) {
	s.selected = append([]int(nil), indices...)
}

func (s *Source) currentVariant() int {
	if len(s.selected) > 0 {
		return s.selected[0]
	}
	return 0
}

// IsLive implements hls.ChunkSource.
func (s *Source) IsLive() bool { return s.live }

// Seek implements hls.ChunkSource.
func (s *Source) Seek() { s.seekPending = true }

// Reset implements hls.ChunkSource.
func (s *Source) Reset() {
	s.seekPending = false
	s.pendingErr = nil
}

// DurationUs implements hls.ChunkSource.
func (s *Source) DurationUs() int64 { return s.durationUs }

// MaybeThrowError implements hls.ChunkSource.
func (s *Source) MaybeThrowError() error { return s.pendingErr }

// GetChunkOperation implements hls.ChunkSource.
func (s *Source) GetChunkOperation(previousSegment hls.SegmentChunk, targetTimeUs int64) hls.ChunkOperation {
	vi := s.currentVariant()

	if err := s.ensureVariantPlaylist(vi); err != nil {
		s.pendingErr = err
		return hls.ChunkOperation{}
	}

	v := s.variants[vi]
	segs := v.playlist.GetAllSegments()
	if len(segs) == 0 {
		return hls.ChunkOperation{}
	}

	prev, continuing := previousSegment.(*segmentChunk)
	continuing = continuing && !s.seekPending

	var (
		seg          *m3u8.MediaSegment
		startTimeUs  int64
		trigger      = hls.TriggerInitial
	)

	switch {
	case continuing:
		wantID := prev.seqID + 1
		idx := -1
		for i, sg := range segs {
			if sg.SeqId == wantID {
				idx = i
				break
			}
		}
		if idx == -1 {
			if v.playlist.Closed {
				return hls.ChunkOperation{EndOfStream: true}
			}
			return hls.ChunkOperation{}
		}
		seg = segs[idx]
		startTimeUs = prev.endTimeUs
		if prev.variant != vi {
			trigger = hls.TriggerAdaptive
		}

	case v.playlist.Closed:
		s.seekPending = false
		var acc int64
		idx := len(segs) - 1
		for i, sg := range segs {
			segDurUs := int64(sg.Duration * 1_000_000)
			if acc+segDurUs > targetTimeUs {
				idx = i
				break
			}
			acc += segDurUs
		}
		seg = segs[idx]
		startTimeUs = acc
		trigger = hls.TriggerManual

	default:
		s.seekPending = false
		idx := len(segs) - liveStartingInvPosition
		if idx < 0 {
			idx = 0
		}
		seg = segs[idx]
		startTimeUs = targetTimeUs
		trigger = hls.TriggerManual
	}

	durUs := int64(seg.Duration * 1_000_000)
	endTimeUs := startTimeUs + durUs

	segURL, err := s.absoluteURL(v.playlistURL, seg.URI)
	if err != nil {
		s.pendingErr = err
		return hls.ChunkOperation{}
	}

	chunk := newSegmentChunk(
		seg.SeqId, vi, segURL.String(), seg.Offset, seg.Limit,
		v.format, trigger, startTimeUs, endTimeUs,
	)

	return hls.ChunkOperation{Chunk: chunk}
}

// OnChunkLoadCompleted implements hls.ChunkSource.
func (s *Source) OnChunkLoadCompleted(chunk hls.Chunk) {
	s.pendingErr = nil
}

// OnChunkLoadError implements hls.ChunkSource.
func (s *Source) OnChunkLoadError(chunk hls.Chunk, err error) bool {
	return false
}
