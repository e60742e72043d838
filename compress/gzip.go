package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/adrianbenavides/word-counter/format"
)

// GzipCodec provides gzip stream compression.
//
// Gzip is the most widely deployed format for rotated and shipped log
// files, so it is the default expectation for compressed scan inputs:
//   - Output of logrotate and most shippers
//   - Readable by every standard tool chain
//   - Moderate ratio and speed, fully streamable
type GzipCodec struct{}

var _ Codec = (*GzipCodec)(nil)

// NewGzipCodec creates a new gzip codec.
func NewGzipCodec() GzipCodec {
	return GzipCodec{}
}

// Type returns format.CompressionGzip.
func (c GzipCodec) Type() format.CompressionType {
	return format.CompressionGzip
}

// NewReader returns a reader decompressing the gzip stream r.
func (c GzipCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}

	return zr, nil
}

// NewWriter returns a writer compressing into w at the default level.
func (c GzipCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriter(w), nil
}
