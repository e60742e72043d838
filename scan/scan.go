package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/adrianbenavides/word-counter/errs"
	"github.com/adrianbenavides/word-counter/internal/options"
	"github.com/adrianbenavides/word-counter/internal/pool"
	"github.com/adrianbenavides/word-counter/stats"
)

// DefaultBlockSize is the read granularity of the scan loops. A block is
// also the unit handed to workers on the streaming path.
const DefaultBlockSize = pool.BlockBufferDefaultSize

// ReadError reports an input read failure at a byte offset.
//
// Read failures are fatal: the scan aborts without partial results. The
// error wraps the underlying cause for errors.Is and errors.As.
type ReadError struct {
	Offset int64
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read input at offset %d: %v", e.Offset, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Scanner classifies newline-delimited JSON records by the value of one
// top-level string field and aggregates per-value tallies.
//
// A Scanner is stateless between runs and safe for concurrent use; all
// per-run state lives on the stack of each call.
type Scanner struct {
	workers   int
	field     string
	blockSize int
}

// Option represents a functional option for configuring a Scanner.
type Option = options.Option[*Scanner]

// New creates a Scanner.
//
// Defaults: one worker per available CPU (runtime.GOMAXPROCS), the "type"
// field, and DefaultBlockSize blocks.
func New(opts ...Option) (*Scanner, error) {
	s := &Scanner{
		workers:   runtime.GOMAXPROCS(0),
		field:     DefaultField,
		blockSize: DefaultBlockSize,
	}

	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// WithWorkers sets the number of parallel workers. The effective parallelism
// can be lower when the input splits into fewer line-aligned ranges.
func WithWorkers(n int) Option {
	return options.New(func(s *Scanner) error {
		return s.setWorkers(n)
	})
}

// WithField sets the name of the top-level field to classify by.
func WithField(name string) Option {
	return options.New(func(s *Scanner) error {
		return s.setField(name)
	})
}

// WithBlockSize sets the read block size in bytes. Smaller blocks increase
// read overhead; the default suits files from megabytes to tens of
// gigabytes.
func WithBlockSize(n int) Option {
	return options.New(func(s *Scanner) error {
		return s.setBlockSize(n)
	})
}

func (s *Scanner) setWorkers(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", errs.ErrInvalidWorkerCount, n)
	}
	s.workers = n

	return nil
}

func (s *Scanner) setField(name string) error {
	if name == "" {
		return errs.ErrEmptyField
	}
	s.field = name

	return nil
}

func (s *Scanner) setBlockSize(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", errs.ErrInvalidBlockSize, n)
	}
	s.blockSize = n

	return nil
}

// Workers returns the configured worker count.
func (s *Scanner) Workers() int {
	return s.workers
}

// Field returns the configured field name.
func (s *Scanner) Field() string {
	return s.field
}

// BlockSize returns the configured block size in bytes.
func (s *Scanner) BlockSize() int {
	return s.blockSize
}

// Summary is the outcome of one scan run: the merged result plus run
// telemetry.
type Summary struct {
	// Result holds the merged per-type tallies and skip counts.
	Result *stats.Result
	// FileSize is the on-disk input size in bytes when known, 0 otherwise.
	// For compressed inputs this is the compressed size.
	FileSize int64
	// BytesRead is the number of uncompressed bytes scanned.
	BytesRead int64
	// Workers is the number of parallel workers that ran.
	Workers int
	// Elapsed is the wall-clock scan duration.
	Elapsed time.Duration
}

// Throughput returns the scan rate in MiB/s over the uncompressed bytes.
func (s *Summary) Throughput() float64 {
	secs := s.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}

	return float64(s.BytesRead) / (1024 * 1024) / secs
}

// ScanReaderAt scans size bytes of random-access input in parallel.
//
// The input is partitioned into line-aligned byte ranges, one goroutine per
// range. Workers share nothing: each owns its extractor, block buffer, and
// partial aggregate, and the partials merge only after every worker has
// joined. The result is byte-identical for any worker count.
//
// The first read failure cancels the remaining workers and is returned after
// they drain; no partial results survive an error. Per-line problems never
// fail the scan, they are tallied in the result instead. Cancelling ctx
// stops the scan between blocks.
func (s *Scanner) ScanReaderAt(ctx context.Context, r io.ReaderAt, size int64) (*Summary, error) {
	if r == nil {
		return nil, errs.ErrNilReader
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: got %d", errs.ErrInvalidSize, size)
	}

	start := time.Now()

	ranges, err := Partition(r, size, s.workers)
	if err != nil {
		return nil, err
	}

	partials := make([]*stats.Partial, len(ranges))
	for i := range partials {
		partials[i] = stats.NewPartial()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for i, rng := range ranges {
		wg.Add(1)
		go func(rng Range, par *stats.Partial) {
			defer wg.Done()

			if err := s.scanRange(ctx, r, rng, par); err != nil {
				errOnce.Do(func() {
					firstErr = err
					cancel()
				})
			}
		}(rng, partials[i])
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return &Summary{
		Result:    stats.Merge(partials...),
		BytesRead: size,
		Workers:   len(ranges),
		Elapsed:   time.Since(start),
	}, nil
}

// scanRange reads one line-aligned range block by block and feeds every line
// through the extractor into the worker's partial.
func (s *Scanner) scanRange(ctx context.Context, r io.ReaderAt, rng Range, par *stats.Partial) error {
	ex := NewExtractor(s.field)

	buf := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(buf)

	off := rng.Start
	carry := 0

	for off < rng.End {
		if err := ctx.Err(); err != nil {
			return err
		}

		want := int64(s.blockSize)
		if rem := rng.End - off; want > rem {
			want = rem
		}
		need := carry + int(want)

		// Keep the carried tail at the front, extend to the block size. When
		// a line is longer than a block the carry keeps growing and so does
		// the buffer, until the line's newline finally shows up.
		buf.SetLength(carry)
		buf.Grow(need - carry)
		buf.SetLength(need)
		block := buf.Bytes()

		n, err := r.ReadAt(block[carry:need], off)
		off += int64(n)
		view := block[:carry+n]

		if err != nil && !(errors.Is(err, io.EOF) && off >= rng.End) {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}

			return &ReadError{Offset: off, Err: err}
		}

		ls := LineScanner{data: view, final: off >= rng.End}
		consumeLines(&ls, ex, par)

		carry = len(view) - ls.Consumed()
		copy(block, view[ls.Consumed():])
	}

	return nil
}

// consumeLines drains one block's lines into the partial.
func consumeLines(ls *LineScanner, ex *Extractor, par *stats.Partial) {
	for {
		line, size, ok := ls.Next()
		if !ok {
			return
		}

		key, status := ex.Extract(line)
		switch status {
		case StatusFound:
			par.Record(key.Bytes(), size)
		case StatusMissing:
			par.SkipMissing()
		default:
			par.SkipMalformed()
		}
	}
}
