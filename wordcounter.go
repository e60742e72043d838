// Package wordcounter counts and sizes NDJSON records by the value of one
// JSON field, at hundreds of megabytes per second.
//
// The input is newline-delimited JSON: one object per line. For every
// distinct value of the classification field (the "type" field by default)
// the scan produces the number of records carrying that value and the total
// raw byte size of their lines, terminators included. Lines that are not
// JSON objects and lines without the field are skipped and tallied
// separately; a read failure aborts the whole scan.
//
// # Core Features
//
//   - Zero-copy field extraction without parsing full JSON documents
//   - Parallel scanning of files over line-aligned byte ranges
//   - Single-pass streaming for stdin, pipes and compressed input
//   - Transparent decompression (Gzip, Zstd, S2, LZ4) via magic bytes
//   - Bounded memory regardless of input size, via pooled block buffers
//   - Exact byte accounting: every input byte lands in a tally
//
// # Basic Usage
//
// Scanning a file with default settings:
//
//	import "github.com/adrianbenavides/word-counter"
//
//	summary, err := wordcounter.ProcessFile(context.Background(), "events.ndjson")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, row := range summary.Result.Sorted() {
//	    fmt.Printf("%s: %d records, %d bytes\n", row.Name, row.Count, row.Bytes)
//	}
//
// Scanning an arbitrary reader, classifying by a custom field:
//
//	summary, err := wordcounter.Process(ctx, os.Stdin, scan.WithField("kind"))
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the scan and
// input packages, simplifying the most common use cases. For fine-grained
// control over partitioning, block sizes and worker counts, use the scan
// package directly.
package wordcounter

import (
	"bytes"
	"context"
	"io"

	"github.com/adrianbenavides/word-counter/input"
	"github.com/adrianbenavides/word-counter/scan"
)

// DefaultField is the JSON field records are classified by unless
// scan.WithField overrides it.
const DefaultField = scan.DefaultField

// ProcessFile scans the NDJSON file at path and returns the merged summary.
//
// The path "-" selects standard input. Plain files are partitioned into
// line-aligned ranges and scanned in parallel; compressed files and stdin
// are decompressed and scanned as a stream. Compression is detected from
// the file's leading magic bytes, never from its name.
//
// Parameters:
//   - ctx: Cancels the scan early; the first read error also aborts it.
//   - path: Input file path, or "-" for standard input.
//   - opts: Optional configuration (see scan.WithWorkers, scan.WithField,
//     scan.WithBlockSize).
//
// Returns:
//   - *scan.Summary: The merged tallies plus scan metadata.
//   - error: An error if the input cannot be opened or a read fails.
//
// Example:
//
//	summary, err := wordcounter.ProcessFile(ctx, "events.ndjson.gz",
//	    scan.WithWorkers(8),
//	)
func ProcessFile(ctx context.Context, path string, opts ...scan.Option) (*scan.Summary, error) {
	src, err := input.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	s, err := scan.New(opts...)
	if err != nil {
		return nil, err
	}

	var sum *scan.Summary
	if ra, size, ok := src.RandomAccess(); ok {
		sum, err = s.ScanReaderAt(ctx, ra, size)
	} else {
		sum, err = s.ScanStream(ctx, src.Stream())
	}
	if err != nil {
		return nil, err
	}
	sum.FileSize = src.Size()

	return sum, nil
}

// Process scans NDJSON from an arbitrary reader and returns the merged
// summary. Compressed streams are recognized by their leading magic bytes
// and decompressed on the fly; the reader is never closed.
//
// Parameters:
//   - ctx: Cancels the scan early; the first read error also aborts it.
//   - r: The input stream.
//   - opts: Optional configuration (see scan.WithWorkers, scan.WithField,
//     scan.WithBlockSize).
//
// Returns:
//   - *scan.Summary: The merged tallies plus scan metadata.
//   - error: An error if reading fails.
func Process(ctx context.Context, r io.Reader, opts ...scan.Option) (*scan.Summary, error) {
	src, err := input.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	s, err := scan.New(opts...)
	if err != nil {
		return nil, err
	}

	return s.ScanStream(ctx, src.Stream())
}

// ProcessBytes scans NDJSON held in memory and returns the merged summary.
//
// The data is scanned in parallel exactly like a plain file.
func ProcessBytes(ctx context.Context, data []byte, opts ...scan.Option) (*scan.Summary, error) {
	s, err := scan.New(opts...)
	if err != nil {
		return nil, err
	}

	sum, err := s.ScanReaderAt(ctx, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	sum.FileSize = int64(len(data))

	return sum, nil
}
