// Package tsextractor demultiplexes MPEG-TS HLS segments into the
// hls.ExtractorWrapper contract, grounded on bluenviron-mediamtx's
// client_processor_mpegts.go (PES extraction, primary-track PID
// selection) and mpegts/tracks.go (stream-type-to-track mapping), but
// reshaped from a push-style processor goroutine into the pull-style
// Feed the core's Loader-driven pipeline calls into.
package tsextractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/asticode/go-astits"

	"github.com/bluenviron/hlssource/internal/hls"
)

const clockRate = 90000

// ptsDecoder unwraps the 33-bit MPEG-TS PTS/DTS clock into a
// monotonically increasing microsecond offset from the first timestamp
// it sees, the same wraparound-handling algorithm as
// bluenviron-mediamtx's mpegtstimedec.Decoder, adapted to int64
// microseconds instead of time.Duration.
type ptsDecoder struct {
	started bool
	prev    int64
	overall int64
}

func (d *ptsDecoder) decode(ts int64) int64 {
	const maximum = 0x1FFFFFFFF
	const negativeThreshold = maximum / 2

	if !d.started {
		d.started = true
		d.prev = ts
		return 0
	}

	diff := (ts - d.prev) & maximum
	if diff > negativeThreshold {
		diff = (d.prev - ts) & maximum
		d.prev = ts
		d.overall -= diff * 1_000_000 / clockRate
	} else {
		d.prev = ts
		d.overall += diff * 1_000_000 / clockRate
	}
	return d.overall
}

type trackQueue struct {
	pid     uint16
	format  hls.Format
	samples []hls.Sample
}

// Wrapper is an hls.ExtractorWrapper backed by a single MPEG-TS segment.
// Feed must be called (possibly more than once, as bytes arrive) with
// the segment's raw bytes; it demuxes whatever complete packets it can
// and queues decode-ready samples per elementary stream.
type Wrapper struct {
	format      hls.Format
	trigger     hls.Trigger
	startTimeUs int64

	allocator hls.Allocator
	dec       ptsDecoder

	pidIndex map[uint16]int
	tracks   []*trackQueue

	prepared                 bool
	largestParsedTimestampUs int64

	spliceLimitUs int64
}

// New allocates a Wrapper for a segment chunk with the given coarse
// (variant-level) format, selection trigger and media start time.
func New(format hls.Format, trigger hls.Trigger, startTimeUs int64) *Wrapper {
	return &Wrapper{
		format:                   format,
		trigger:                  trigger,
		startTimeUs:              startTimeUs,
		largestParsedTimestampUs: hls.Unset,
		spliceLimitUs:            hls.Unset,
	}
}

// Init implements hls.ExtractorWrapper.
func (w *Wrapper) Init(allocator hls.Allocator) {
	w.allocator = allocator
}

// Clear implements hls.ExtractorWrapper.
func (w *Wrapper) Clear() {
	for _, t := range w.tracks {
		for _, s := range t.samples {
			if w.allocator != nil {
				w.allocator.Release(s.Data)
			}
		}
		t.samples = nil
	}
}

// IsPrepared implements hls.ExtractorWrapper.
func (w *Wrapper) IsPrepared() bool {
	return w.prepared
}

// TrackCount implements hls.ExtractorWrapper.
func (w *Wrapper) TrackCount() int {
	return len(w.tracks)
}

// MediaFormat implements hls.ExtractorWrapper.
func (w *Wrapper) MediaFormat(track int) hls.Format {
	return w.tracks[track].format
}

// HasSamples implements hls.ExtractorWrapper.
func (w *Wrapper) HasSamples(track int) bool {
	return len(w.tracks[track].samples) > 0
}

// GetSample implements hls.ExtractorWrapper.
func (w *Wrapper) GetSample(track int) (hls.Sample, bool) {
	t := w.tracks[track]
	if len(t.samples) == 0 {
		return hls.Sample{}, false
	}
	s := t.samples[0]
	t.samples = t.samples[1:]
	return s, true
}

// DiscardUntil implements hls.ExtractorWrapper.
func (w *Wrapper) DiscardUntil(track int, timeUs int64) {
	t := w.tracks[track]
	n := 0
	for n < len(t.samples) && t.samples[n].TimeUs < timeUs {
		if w.allocator != nil {
			w.allocator.Release(t.samples[n].Data)
		}
		n++
	}
	t.samples = t.samples[n:]
}

// LargestParsedTimestampUs implements hls.ExtractorWrapper.
func (w *Wrapper) LargestParsedTimestampUs() int64 {
	return w.largestParsedTimestampUs
}

// ConfigureSpliceTo implements hls.ExtractorWrapper. Samples this
// wrapper hasn't demuxed yet that would land at or after next's start
// time are dropped by Feed, so the hand-off doesn't double-present
// overlapping time.
func (w *Wrapper) ConfigureSpliceTo(next hls.ExtractorWrapper) {
	if n, ok := next.(*Wrapper); ok {
		w.spliceLimitUs = n.startTimeUs
	}
}

// Format implements hls.ExtractorWrapper.
func (w *Wrapper) Format() hls.Format {
	return w.format
}

// Trigger implements hls.ExtractorWrapper.
func (w *Wrapper) Trigger() hls.Trigger {
	return w.trigger
}

// StartTimeUs implements hls.ExtractorWrapper.
func (w *Wrapper) StartTimeUs() int64 {
	return w.startTimeUs
}

// Feed demuxes as much of data as it can, discovering tracks from the
// first PMT it sees and queuing one hls.Sample per PES packet with a
// valid PTS. Safe to call more than once per segment.
func (w *Wrapper) Feed(data []byte) error {
	dem := astits.NewDemuxer(context.Background(), bytes.NewReader(data))

	for {
		d, err := dem.NextData()
		if err != nil {
			if err == astits.ErrNoMorePackets {
				return nil
			}
			if strings.HasPrefix(err.Error(), "astits: parsing PES data failed") {
				continue
			}
			return err
		}

		if d.PMT != nil && !w.prepared {
			if err := w.initTracks(d.PMT); err != nil {
				return err
			}
			continue
		}

		if d.PES == nil || !w.prepared {
			continue
		}

		idx, ok := w.pidIndex[d.PID]
		if !ok {
			continue
		}

		oh := d.PES.Header.OptionalHeader
		if oh == nil ||
			oh.PTSDTSIndicator == astits.PTSDTSIndicatorNoPTSOrDTS ||
			oh.PTSDTSIndicator == astits.PTSDTSIndicatorIsForbidden {
			continue
		}

		timeUs := w.startTimeUs + w.dec.decode(oh.PTS.Base)
		if w.spliceLimitUs != hls.Unset && timeUs >= w.spliceLimitUs {
			continue
		}

		block := w.allocator.Allocate(len(d.PES.Data))
		copy(block, d.PES.Data)
		w.tracks[idx].samples = append(w.tracks[idx].samples, hls.Sample{TimeUs: timeUs, Data: block})

		if timeUs > w.largestParsedTimestampUs {
			w.largestParsedTimestampUs = timeUs
		}
	}
}

func (w *Wrapper) initTracks(pmt *astits.PMTData) error {
	if len(pmt.ElementaryStreams) == 0 {
		return fmt.Errorf("tsextractor: PMT has no elementary streams")
	}

	w.pidIndex = make(map[uint16]int, len(pmt.ElementaryStreams))
	for _, es := range pmt.ElementaryStreams {
		idx := len(w.tracks)
		w.tracks = append(w.tracks, &trackQueue{
			pid:    es.ElementaryPID,
			format: hls.Format{MimeType: mimeForStreamType(es.StreamType)},
		})
		w.pidIndex[es.ElementaryPID] = idx
	}
	w.prepared = true
	return nil
}

func mimeForStreamType(t astits.StreamType) string {
	switch t {
	case astits.StreamTypeH264Video:
		return "video/avc"
	case astits.StreamTypeAACAudio:
		return "audio/mp4a-latm"
	default:
		return ""
	}
}
