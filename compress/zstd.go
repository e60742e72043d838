package compress

import "github.com/adrianbenavides/word-counter/format"

// ZstdCodec provides Zstandard stream compression.
//
// Zstd is the best ratio-for-speed trade among the supported formats and
// the recommended choice for archived scan inputs:
//   - Cold storage of large capture files
//   - Network transfer where bandwidth is limited
//   - Decompression fast enough to keep multi-worker scans fed
//
// Two implementations exist behind build tags: a pure Go one based on
// klauspost/compress (the !cgo build) and a libzstd-backed one based on
// valyala/gozstd (the cgo build). Both read and write standard zstd frames
// interchangeably.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new zstd codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

// Type returns format.CompressionZstd.
func (c ZstdCodec) Type() format.CompressionType {
	return format.CompressionZstd
}
