package compress

import (
	"io"

	"github.com/adrianbenavides/word-counter/format"
)

// NoOpCodec passes the byte stream through untouched.
//
// This codec is useful for:
//   - Plain uncompressed inputs, which are the common case
//   - Measuring scan overhead without compression in benchmarks
//   - Writing reports and exports that should stay directly readable
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a new pass-through codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Type returns format.CompressionNone.
func (c NoOpCodec) Type() format.CompressionType {
	return format.CompressionNone
}

// NewReader returns r unchanged behind a no-op Close.
func (c NoOpCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

// NewWriter returns w unchanged behind a no-op Close.
func (c NoOpCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{Writer: w}, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
