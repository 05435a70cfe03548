package chunksource

import (
	"github.com/bluenviron/hlssource/internal/hls"
	"github.com/bluenviron/hlssource/internal/tsextractor"
)

// segmentChunk is an hls.SegmentChunk backed by one HLS media segment.
// It also implements httploader.Fetchable: the URL/byte-range describe
// the GET request, and AppendData feeds the response body straight into
// the bound tsextractor.Wrapper, since MPEG-TS demuxing needs no
// buffering beyond what the extractor itself queues.
type segmentChunk struct {
	seqID       uint64
	variant     int
	url         string
	rangeOffset int64
	rangeLength int64

	format      hls.Format
	trigger     hls.Trigger
	startTimeUs int64
	endTimeUs   int64

	extractor *tsextractor.Wrapper

	bytesLoaded int64
}

func newSegmentChunk(
	seqID uint64,
	variant int,
	url string,
	rangeOffset, rangeLength int64,
	format hls.Format,
	trigger hls.Trigger,
	startTimeUs, endTimeUs int64,
) *segmentChunk {
	return &segmentChunk{
		seqID:       seqID,
		variant:     variant,
		url:         url,
		rangeOffset: rangeOffset,
		rangeLength: rangeLength,
		format:      format,
		trigger:     trigger,
		startTimeUs: startTimeUs,
		endTimeUs:   endTimeUs,
		extractor:   tsextractor.New(format, trigger, startTimeUs),
	}
}

// Type implements hls.Chunk.
func (c *segmentChunk) Type() hls.ChunkType { return hls.ChunkTypeMedia }

// Trigger implements hls.Chunk.
func (c *segmentChunk) Trigger() hls.Trigger { return c.trigger }

// Format implements hls.Chunk.
func (c *segmentChunk) Format() hls.Format { return c.format }

// Length implements hls.Chunk.
func (c *segmentChunk) Length() int64 {
	if c.rangeLength > 0 {
		return c.rangeLength
	}
	return -1
}

// BytesLoaded implements hls.Chunk.
func (c *segmentChunk) BytesLoaded() int64 { return c.bytesLoaded }

// StartTimeUs implements hls.SegmentChunk.
func (c *segmentChunk) StartTimeUs() int64 { return c.startTimeUs }

// EndTimeUs implements hls.SegmentChunk.
func (c *segmentChunk) EndTimeUs() int64 { return c.endTimeUs }

// Extractor implements hls.SegmentChunk.
func (c *segmentChunk) Extractor() hls.ExtractorWrapper { return c.extractor }

// URL implements httploader.Fetchable.
func (c *segmentChunk) URL() string { return c.url }

// RangeOffset implements httploader.Fetchable.
func (c *segmentChunk) RangeOffset() int64 { return c.rangeOffset }

// RangeLength implements httploader.Fetchable.
func (c *segmentChunk) RangeLength() int64 { return c.rangeLength }

// AppendData implements httploader.Fetchable.
func (c *segmentChunk) AppendData(p []byte) error {
	c.bytesLoaded += int64(len(p))
	return c.extractor.Feed(p)
}
