// Package hls implements a pull-oriented HLS sample source: a media sample
// provider that feeds a multi-track playback pipeline with decoded-ready
// samples drawn from a time-ordered sequence of HLS segment downloads.
//
// The package coordinates an asynchronous chunk loader with a synchronous
// per-track sample-consumer API (SampleSource / TrackStream), presents a
// stable set of caller-visible track groups synthesized from variant and
// in-segment track spaces, maintains continuous timeline semantics across
// segment boundaries, format changes, seeks and live re-anchoring, and
// applies a retry/backoff and backpressure discipline.
//
// Playlist parsing, HTTP transport, cryptographic unwrapping and demuxing
// are deliberately out of scope here: ChunkSource, Extractor, Loader,
// LoadControl and the event listener are external collaborators, named
// by interface only. See internal/chunksource, internal/tsextractor,
// internal/httploader and internal/loadcontrol for reference adapters.
package hls
