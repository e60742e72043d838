package scan

import (
	"bytes"
	"errors"
	"io"

	"github.com/adrianbenavides/word-counter/internal/pool"
)

// Range is one line-aligned byte range of the input: Start inclusive, End
// exclusive. Every Range produced by Partition ends either one past a
// newline or at end of input, so no line ever crosses ranges.
type Range struct {
	Start int64
	End   int64
}

// Len returns the number of bytes in the range.
func (r Range) Len() int64 {
	return r.End - r.Start
}

// Partition splits size bytes of r into at most n line-aligned ranges.
//
// Candidate split points sit at size*i/n and are advanced to one past the
// next newline. Candidates that land inside the same line collapse together
// and candidates past the last newline collapse into the final boundary, so
// fewer than n ranges can come back; on inputs with very long lines even a
// single range. The ranges are disjoint and cover [0, size) exactly.
//
// Partition never returns an empty range. A size of zero yields zero ranges
// and n below 1 is treated as 1.
func Partition(r io.ReaderAt, size int64, n int) ([]Range, error) {
	if size == 0 {
		return nil, nil
	}
	if n < 1 {
		n = 1
	}
	if int64(n) > size {
		n = int(size)
	}

	bounds := make([]int64, 0, n+1)
	bounds = append(bounds, 0)

	stride := size / int64(n)
	for i := 1; i < n; i++ {
		b, err := alignForward(r, size, stride*int64(i))
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, b)
	}
	bounds = append(bounds, size)

	ranges := make([]Range, 0, n)
	prev := bounds[0]
	for _, b := range bounds[1:] {
		if b > prev {
			ranges = append(ranges, Range{Start: prev, End: b})
			prev = b
		}
	}

	return ranges, nil
}

// alignForward returns one past the next newline at or after off, or size
// when no newline follows.
func alignForward(r io.ReaderAt, size, off int64) (int64, error) {
	buf := pool.GetProbeBuffer()
	defer pool.PutProbeBuffer(buf)

	buf.SetLength(buf.Cap())
	probe := buf.Bytes()

	for off < size {
		want := int64(len(probe))
		if rem := size - off; want > rem {
			want = rem
		}

		n, err := r.ReadAt(probe[:want], off)
		if idx := bytes.IndexByte(probe[:n], '\n'); idx >= 0 {
			return off + int64(idx) + 1, nil
		}
		off += int64(n)

		if err != nil {
			if errors.Is(err, io.EOF) {
				if off >= size {
					break
				}
				// The input is shorter than the stated size
				err = io.ErrUnexpectedEOF
			}

			return 0, &ReadError{Offset: off, Err: err}
		}
	}

	return size, nil
}
