package compress

import (
	"io"

	"github.com/klauspost/compress/s2"

	"github.com/adrianbenavides/word-counter/format"
)

// S2Codec provides S2 stream compression, a Snappy-compatible format tuned
// for throughput over ratio. Its reader also accepts plain Snappy framed
// streams, so snappy-compressed inputs decode without a separate codec.
type S2Codec struct{}

var _ Codec = (*S2Codec)(nil)

// NewS2Codec creates a new S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Type returns format.CompressionS2.
func (c S2Codec) Type() format.CompressionType {
	return format.CompressionS2
}

// NewReader returns a reader decompressing the S2 or Snappy stream r.
func (c S2Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}

// NewWriter returns a writer compressing into w.
func (c S2Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return s2.NewWriter(w), nil
}
