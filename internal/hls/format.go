package hls

import "strings"

// NoValue mirrors MediaFormat.NO_VALUE: the sentinel used for numeric
// Format fields that a given track doesn't specify.
const NoValue = -1

// Format describes a single media track, at either the chunk-source
// (variant) level or the in-segment (elementary stream) level. The two
// levels are overlaid by buildTracks: see TrackGroup.
type Format struct {
	ID       string
	MimeType string
	Bitrate  int
	Width    int
	Height   int
	Language string
}

// Equal reports whether two formats are interchangeable for the purposes
// of downstream-format-changed notifications.
func (f Format) Equal(other Format) bool {
	return f == other
}

// WithFixedTrackInfo overlays id/bitrate/width/height/language from a
// chunk-source (variant) format onto a receiver that is otherwise the
// in-segment primary track's format, the way buildTracks constructs the
// adaptive group's per-variant formats.
func (f Format) WithFixedTrackInfo(variant Format) Format {
	out := f
	out.ID = variant.ID
	out.Bitrate = variant.Bitrate
	if variant.Width == NoValue {
		out.Width = NoValue
	} else {
		out.Width = variant.Width
	}
	if variant.Height == NoValue {
		out.Height = NoValue
	} else {
		out.Height = variant.Height
	}
	out.Language = variant.Language
	return out
}

// TrackType ranks MIME families for primary-track selection: video beats
// audio beats everything else.
type TrackType int

// Track type ranking, highest first.
const (
	TrackTypeNone TrackType = iota
	TrackTypeOther
	TrackTypeAudio
	TrackTypeVideo
)

// ClassifyMimeType returns the TrackType family of a MIME string.
func ClassifyMimeType(mimeType string) TrackType {
	switch {
	case strings.HasPrefix(mimeType, "video/"):
		return TrackTypeVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return TrackTypeAudio
	case mimeType == "":
		return TrackTypeNone
	default:
		return TrackTypeOther
	}
}

// TrackGroup is a non-empty ordered list of interchangeable formats,
// exposed to callers by SampleSource.TrackGroup. If Adaptive is true,
// selecting a subset of Formats biases the variant chosen by the
// ChunkSource; otherwise the group carries exactly one format.
type TrackGroup struct {
	Adaptive bool
	Formats  []Format
}

// buildTracks combines the extractor's in-segment tracks with the chunk
// source's variant tracks into the track groups exposed by SampleSource.
//
// HLS mixes two orthogonal selection axes: variants (bitrate/quality
// encodings of the whole multiplex) and elementary streams inside a
// segment (video, audio, alternate audio, captions...). The "primary"
// elementary stream — video if present, else audio, else whatever's
// left — is the one bitrate adaptation applies to, so its track group is
// expanded into one adaptive entry per variant. Every other elementary
// stream is exposed as-is: selecting it picks that stream, leaving the
// chunk source's variant selection untouched.
func buildTracks(extractor ExtractorWrapper, chunkSource ChunkSource) (groups []TrackGroup, primaryGroupIndex int) {
	extractorTrackCount := extractor.TrackCount()

	primaryType := TrackTypeNone
	primaryIndex := -1
	for i := 0; i < extractorTrackCount; i++ {
		t := ClassifyMimeType(extractor.MediaFormat(i).MimeType)
		if t > primaryType {
			primaryType = t
			primaryIndex = i
		} else if t == primaryType && primaryIndex != -1 {
			// more than one track of the primary type: there's no single
			// primary index to expand.
			primaryIndex = -1
		}
	}

	chunkSourceTrackCount := chunkSource.TrackCount()

	groups = make([]TrackGroup, extractorTrackCount)
	primaryGroupIndex = -1

	for i := 0; i < extractorTrackCount; i++ {
		format := extractor.MediaFormat(i)
		if i == primaryIndex {
			formats := make([]Format, chunkSourceTrackCount)
			for j := 0; j < chunkSourceTrackCount; j++ {
				formats[j] = format.WithFixedTrackInfo(chunkSource.TrackFormat(j))
			}
			groups[i] = TrackGroup{Adaptive: true, Formats: formats}
			primaryGroupIndex = i
		} else {
			groups[i] = TrackGroup{Formats: []Format{format}}
		}
	}

	return groups, primaryGroupIndex
}
