package format

import (
	"fmt"
	"strings"

	"github.com/adrianbenavides/word-counter/errs"
)

type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionGzip CompressionType = 0x2 // CompressionGzip represents gzip compression.
	CompressionZstd CompressionType = 0x3 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x4 // CompressionS2 represents S2/Snappy framed compression.
	CompressionLZ4  CompressionType = 0x5 // CompressionLZ4 represents LZ4 frame compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression converts a user-supplied name into a CompressionType.
// Matching is case-insensitive; "none" and the empty string map to
// CompressionNone. Unrecognized names return errs.ErrUnknownCompression.
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "s2", "snappy":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return CompressionNone, fmt.Errorf("%w: %q", errs.ErrUnknownCompression, name)
	}
}
