// Package compress provides streaming compression codecs for scan inputs
// and report exports.
//
// Scan inputs frequently arrive compressed: rotated logs come gzipped,
// archived captures come as zstd or lz4 frames, and high-volume shippers
// favor snappy-family framing. This package lets the scan read any of them
// through one interface, and lets exports write them back.
//
// # Overview
//
// A Codec wraps an io.Reader or io.Writer with a compression transform:
//
//	type Codec interface {
//	    Type() format.CompressionType
//	    NewReader(r io.Reader) (io.ReadCloser, error)
//	    NewWriter(w io.Writer) (io.WriteCloser, error)
//	}
//
// Everything is stream-oriented. A compressed input is never inflated into
// memory as a whole; the scan pulls decompressed bytes block by block
// through the codec's reader, so memory use stays bounded by the block
// size and worker count regardless of input size.
//
// # Supported Formats
//
// **Gzip** (format.CompressionGzip)
//   - The log rotation and shipping default, supported everywhere
//   - Moderate ratio and speed
//   - Magic: 1f 8b
//
// **Zstd** (format.CompressionZstd)
//   - Best ratio-for-speed trade, recommended for archives
//   - Pure Go (klauspost/compress) on !cgo builds, libzstd (gozstd) on cgo builds
//   - Magic: 28 b5 2f fd
//
// **S2** (format.CompressionS2)
//   - Snappy-compatible, throughput-first
//   - The reader also decodes plain Snappy framed streams
//   - Magic: ff 06 00 00 followed by "S2sTwO", or "sNaPpY" for
//     Snappy-compatible streams
//
// **LZ4** (format.CompressionLZ4)
//   - Fastest decompression, moderate ratio
//   - Magic: 04 22 4d 18
//
// **NoOp** (format.CompressionNone)
//   - Pass-through for plain inputs, zero overhead
//
// # Format Detection
//
// Sniff classifies a stream by its leading magic bytes, so callers do not
// need file extensions or configuration to open compressed inputs:
//
//	head := make([]byte, compress.SniffLen)
//	n, _ := io.ReadFull(r, head)
//	codec, err := compress.GetCodec(compress.Sniff(head[:n]))
//
// # Usage
//
// Reading a compressed input:
//
//	codec, err := compress.GetCodec(format.CompressionGzip)
//	if err != nil {
//	    return err
//	}
//	zr, err := codec.NewReader(file)
//	if err != nil {
//	    return err
//	}
//	defer zr.Close()
//	// consume decompressed bytes from zr
//
// Writing a compressed export:
//
//	zw, err := codec.NewWriter(file)
//	if err != nil {
//	    return err
//	}
//	if _, err := zw.Write(report); err != nil {
//	    return err
//	}
//	if err := zw.Close(); err != nil { // flushes the final frame
//	    return err
//	}
//
// Closing a codec reader or writer never closes the underlying file; the
// caller owns both lifetimes.
package compress
