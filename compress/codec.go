package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/adrianbenavides/word-counter/format"
)

// Codec provides streaming compression and decompression for scan inputs.
//
// The interface is stream-oriented because scan inputs can be far larger
// than memory: a codec wraps the underlying reader or writer and the scan
// consumes decompressed bytes block by block, never materializing the whole
// payload.
type Codec interface {
	// Type identifies the compression format this codec implements.
	Type() format.CompressionType

	// NewReader returns a reader that yields the decompressed byte stream
	// of r. The caller must Close it to release codec resources; closing
	// the returned reader does not close r.
	NewReader(r io.Reader) (io.ReadCloser, error)

	// NewWriter returns a writer that compresses everything written to it
	// into w. The caller must Close it to flush the final frame; closing
	// the returned writer does not close w.
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionGzip: NewGzipCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// Magic prefixes of the supported stream formats. S2 streams carry either
// their own identifier or the Snappy one, depending on the writer's
// compatibility mode; both decode through the S2 codec.
var (
	magicGzip   = []byte{0x1f, 0x8b}
	magicZstd   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4    = []byte{0x04, 0x22, 0x4d, 0x18}
	magicS2     = []byte{0xff, 0x06, 0x00, 0x00, 'S', '2', 's', 'T', 'w', 'O'}
	magicSnappy = []byte{0xff, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
)

// SniffLen is the number of leading bytes Sniff needs to classify a stream.
const SniffLen = 10

// Sniff classifies a stream by its leading magic bytes.
//
// head should hold at least SniffLen bytes when available; shorter inputs
// match fewer formats. Data that starts with no known magic is reported as
// CompressionNone.
func Sniff(head []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(head, magicGzip):
		return format.CompressionGzip
	case bytes.HasPrefix(head, magicZstd):
		return format.CompressionZstd
	case bytes.HasPrefix(head, magicLZ4):
		return format.CompressionLZ4
	case bytes.HasPrefix(head, magicS2), bytes.HasPrefix(head, magicSnappy):
		return format.CompressionS2
	default:
		return format.CompressionNone
	}
}
