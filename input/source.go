// Package input opens scan inputs: plain files, compressed files, stdin,
// and arbitrary readers.
//
// A Source hides where the bytes come from and whether they were
// compressed. Plain files expose random access so the scan can partition
// them across workers; compressed files and streams expose a sequential
// decompressed stream. Compression is detected from magic bytes, never
// from file extensions.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/adrianbenavides/word-counter/compress"
	"github.com/adrianbenavides/word-counter/errs"
	"github.com/adrianbenavides/word-counter/format"
)

// StdinPath is the conventional path argument selecting standard input.
const StdinPath = "-"

// Source is one opened scan input.
type Source struct {
	path        string
	file        *os.File
	stream      io.Reader
	closers     []io.Closer
	size        int64
	compression format.CompressionType
}

// Open opens the input at path. The path StdinPath selects standard input.
//
// Plain files keep random access; compressed files are recognized by their
// leading magic bytes and wrapped in the matching codec. The caller owns
// the returned source and must Close it.
func Open(path string) (*Source, error) {
	if path == StdinPath {
		src, err := OpenReader(os.Stdin)
		if err != nil {
			return nil, err
		}
		src.path = StdinPath

		return src, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()

		return nil, fmt.Errorf("stat input: %w", err)
	}
	size := st.Size()

	head := make([]byte, compress.SniffLen)
	n, err := f.ReadAt(head, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		f.Close()

		return nil, fmt.Errorf("sniff input: %w", err)
	}

	src := &Source{
		path:        path,
		file:        f,
		size:        size,
		compression: compress.Sniff(head[:n]),
		closers:     []io.Closer{f},
	}

	if src.compression == format.CompressionNone {
		src.stream = io.NewSectionReader(f, 0, size)

		return src, nil
	}

	codec, err := compress.GetCodec(src.compression)
	if err != nil {
		f.Close()

		return nil, err
	}

	zr, err := codec.NewReader(io.NewSectionReader(f, 0, size))
	if err != nil {
		f.Close()

		return nil, err
	}
	src.stream = zr
	src.closers = []io.Closer{zr, f}

	return src, nil
}

// OpenReader wraps an arbitrary reader as a source. Compressed streams are
// recognized by their leading magic bytes, exactly as Open does for files.
//
// Closing the source releases any codec but never closes r itself.
func OpenReader(r io.Reader) (*Source, error) {
	if r == nil {
		return nil, errs.ErrNilReader
	}

	br := bufio.NewReader(r)
	head, err := br.Peek(compress.SniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("sniff input: %w", err)
	}

	src := &Source{
		stream:      br,
		compression: compress.Sniff(head),
	}

	if src.compression == format.CompressionNone {
		return src, nil
	}

	codec, err := compress.GetCodec(src.compression)
	if err != nil {
		return nil, err
	}

	zr, err := codec.NewReader(br)
	if err != nil {
		return nil, err
	}
	src.stream = zr
	src.closers = []io.Closer{zr}

	return src, nil
}

// RandomAccess returns the input as an io.ReaderAt with its exact byte
// size. ok is false for compressed inputs and plain streams, which only
// support sequential reading.
func (s *Source) RandomAccess() (io.ReaderAt, int64, bool) {
	if s.file == nil || s.compression != format.CompressionNone {
		return nil, 0, false
	}

	return s.file, s.size, true
}

// Stream returns the decompressed sequential byte stream of the input.
func (s *Source) Stream() io.Reader {
	return s.stream
}

// Size returns the on-disk size in bytes, or 0 when the input is not a
// file. For compressed files this is the compressed size.
func (s *Source) Size() int64 {
	return s.size
}

// Compression returns the detected compression format.
func (s *Source) Compression() format.CompressionType {
	return s.compression
}

// Path returns the path the source was opened from, StdinPath for standard
// input, and the empty string for raw readers.
func (s *Source) Path() string {
	return s.path
}

// Close releases the codec and the underlying file. Sources opened from a
// raw reader or stdin never close the reader they wrap.
func (s *Source) Close() error {
	var errList []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errList = append(errList, err)
		}
	}
	s.closers = nil

	return errors.Join(errList...)
}
