//go:build !cgo

package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// NewReader returns a reader decompressing the zstd stream r.
//
// The decoder runs single-threaded; parallelism in the scan comes from the
// workers consuming the stream, not from the codec.
func (c ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := zstd.NewReader(r,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(false),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}

	return zr.IOReadCloser(), nil
}

// NewWriter returns a writer compressing into w.
func (c ZstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	zw, err := zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderCRC(false),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}

	return zw, nil
}
