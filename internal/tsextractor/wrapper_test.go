package tsextractor

import (
	"bytes"
	"context"
	"testing"

	"github.com/asticode/go-astits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluenviron/hlssource/internal/hls"
	"github.com/bluenviron/hlssource/internal/loadcontrol"
)

func muxSegment(t *testing.T, ptsBase1, ptsBase2 int64) []byte {
	t.Helper()

	var buf bytes.Buffer
	mux := astits.NewMuxer(context.Background(), &buf)

	mux.AddElementaryStream(astits.PMTElementaryStream{
		ElementaryPID: 256,
		StreamType:    astits.StreamTypeH264Video,
	})
	mux.SetPCRPID(256)
	mux.WriteTables()

	mux.WriteData(&astits.MuxerData{
		PID: 256,
		PES: &astits.PESData{
			Header: &astits.PESHeader{
				OptionalHeader: &astits.PESOptionalHeader{
					MarkerBits:      2,
					PTSDTSIndicator: astits.PTSDTSIndicatorOnlyPTS,
					PTS:             &astits.ClockReference{Base: ptsBase1},
				},
				StreamID: 224,
			},
			Data: []byte{7, 1, 2, 3},
		},
	})

	mux.WriteData(&astits.MuxerData{
		PID: 256,
		PES: &astits.PESData{
			Header: &astits.PESHeader{
				OptionalHeader: &astits.PESOptionalHeader{
					MarkerBits:      2,
					PTSDTSIndicator: astits.PTSDTSIndicatorOnlyPTS,
					PTS:             &astits.ClockReference{Base: ptsBase2},
				},
				StreamID: 224,
			},
			Data: []byte{5},
		},
	})

	return buf.Bytes()
}

func TestWrapperFeedQueuesSamples(t *testing.T) {
	alloc := loadcontrol.NewAllocator()
	w := New(hls.Format{ID: "0"}, hls.TriggerInitial, 0)
	w.Init(alloc)

	require.NoError(t, w.Feed(muxSegment(t, 1*90000, 2*90000)))

	require.True(t, w.IsPrepared())
	require.Equal(t, 1, w.TrackCount())
	assert.True(t, w.HasSamples(0))

	s1, ok := w.GetSample(0)
	require.True(t, ok)
	assert.Equal(t, int64(0), s1.TimeUs)

	s2, ok := w.GetSample(0)
	require.True(t, ok)
	assert.Equal(t, int64(1_000_000), s2.TimeUs)

	_, ok = w.GetSample(0)
	assert.False(t, ok)

	assert.Equal(t, int64(1_000_000), w.LargestParsedTimestampUs())
}

func TestWrapperStartTimeOffsetsSamples(t *testing.T) {
	alloc := loadcontrol.NewAllocator()
	w := New(hls.Format{}, hls.TriggerInitial, 10_000_000)
	w.Init(alloc)

	require.NoError(t, w.Feed(muxSegment(t, 1*90000, 1*90000)))

	s, ok := w.GetSample(0)
	require.True(t, ok)
	assert.Equal(t, int64(10_000_000), s.TimeUs)
}

func TestWrapperConfigureSpliceToDropsOverlap(t *testing.T) {
	alloc := loadcontrol.NewAllocator()
	first := New(hls.Format{}, hls.TriggerInitial, 0)
	first.Init(alloc)
	second := New(hls.Format{}, hls.TriggerInitial, 500_000)
	second.Init(alloc)

	first.ConfigureSpliceTo(second)
	require.NoError(t, first.Feed(muxSegment(t, 1*90000, 2*90000)))

	_, ok := first.GetSample(0)
	require.True(t, ok)

	_, ok = first.GetSample(0)
	assert.False(t, ok, "sample landing at/after the splice point should be dropped")
}

func TestWrapperClearReleasesAllocatedBlocks(t *testing.T) {
	alloc := loadcontrol.NewAllocator()
	w := New(hls.Format{}, hls.TriggerInitial, 0)
	w.Init(alloc)
	require.NoError(t, w.Feed(muxSegment(t, 1*90000, 2*90000)))
	require.Greater(t, alloc.Outstanding(), int64(0))

	w.Clear()
	assert.Equal(t, int64(0), alloc.Outstanding())
	assert.False(t, w.HasSamples(0))
}
