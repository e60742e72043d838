package scan

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/adrianbenavides/word-counter/errs"
	"github.com/adrianbenavides/word-counter/internal/pool"
	"github.com/adrianbenavides/word-counter/stats"
)

// blockItem carries one line-aligned block from the reader to the workers.
// final marks the one block that may end without a terminator.
type blockItem struct {
	buf   *pool.ByteBuffer
	final bool
}

// ScanStream scans sequential input that offers no random access, such as a
// decompressing reader or stdin.
//
// One reader goroutine slices the stream into line-aligned pooled blocks and
// the configured number of workers consume them from a bounded channel, so
// memory stays capped at roughly (workers*2+1) blocks regardless of input
// size. Aggregation semantics are identical to ScanReaderAt: same tallies,
// same skip accounting, order-independent merge.
//
// The reader goroutine is the only producer of I/O errors; the first one
// aborts the scan after the workers drain. Cancelling ctx stops the scan
// between blocks.
func (s *Scanner) ScanStream(ctx context.Context, r io.Reader) (*Summary, error) {
	if r == nil {
		return nil, errs.ErrNilReader
	}

	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	blocks := make(chan blockItem, s.workers*2)
	partials := make([]*stats.Partial, s.workers)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		par := stats.NewPartial()
		partials[i] = par

		wg.Add(1)
		go func() {
			defer wg.Done()

			ex := NewExtractor(s.field)
			for item := range blocks {
				ls := LineScanner{data: item.buf.Bytes(), final: item.final}
				consumeLines(&ls, ex, par)
				pool.PutBlockBuffer(item.buf)
			}
		}()
	}

	bytesRead, err := s.feedBlocks(ctx, r, blocks)
	close(blocks)
	wg.Wait()

	if err != nil {
		return nil, err
	}

	return &Summary{
		Result:    stats.Merge(partials...),
		BytesRead: bytesRead,
		Workers:   s.workers,
		Elapsed:   time.Since(start),
	}, nil
}

// feedBlocks reads the stream block by block, cuts each block at its last
// newline, and carries the unterminated tail into the next block. It returns
// the total number of bytes consumed from the stream.
func (s *Scanner) feedBlocks(ctx context.Context, r io.Reader, blocks chan<- blockItem) (int64, error) {
	var (
		total int64
		carry []byte
	)

	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		buf := pool.GetBlockBuffer()
		need := len(carry) + s.blockSize
		buf.Grow(need)
		buf.SetLength(need)
		block := buf.Bytes()
		copy(block, carry)

		n, err := io.ReadFull(r, block[len(carry):])
		total += int64(n)
		view := block[:len(carry)+n]

		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				pool.PutBlockBuffer(buf)
				return total, &ReadError{Offset: total, Err: err}
			}

			// Stream exhausted: whatever is left, terminated or not, is the
			// final block.
			if len(view) == 0 {
				pool.PutBlockBuffer(buf)
				return total, nil
			}
			buf.SetLength(len(view))

			return total, s.sendBlock(ctx, blocks, blockItem{buf: buf, final: true})
		}

		cut := bytes.LastIndexByte(view, '\n')
		if cut < 0 {
			// No newline in the whole block: a line longer than the block.
			// Move everything into the carry and keep reading.
			carry = append(carry[:0], view...)
			pool.PutBlockBuffer(buf)

			continue
		}

		carry = append(carry[:0], view[cut+1:]...)
		buf.SetLength(cut + 1)

		if err := s.sendBlock(ctx, blocks, blockItem{buf: buf, final: false}); err != nil {
			return total, err
		}
	}
}

func (s *Scanner) sendBlock(ctx context.Context, blocks chan<- blockItem, item blockItem) error {
	select {
	case blocks <- item:
		return nil
	case <-ctx.Done():
		pool.PutBlockBuffer(item.buf)
		return ctx.Err()
	}
}
