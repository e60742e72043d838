// Package scan implements parallel classification of newline-delimited JSON
// records by the value of one top-level string field.
//
// # Overview
//
// The input is a stream of lines, each expected to hold a JSON object with a
// string field (by default "type"). For every distinct field value the scan
// produces two tallies: the number of records that carried it and the total
// raw byte size of those lines, terminators included. Lines that cannot be
// classified never fail a run; they are skipped and counted.
//
// The package is built for multi-GB inputs at hundreds of MB/s: the hot path
// performs no JSON tree construction, no allocation per line, and no
// synchronization between workers.
//
// # Architecture
//
// Four small components compose the scan:
//
//   - Partition: splits random-access input into line-aligned byte ranges,
//     one per worker.
//   - LineScanner: iterates line spans over an in-memory block without
//     copying.
//   - Extractor: pulls the field value out of a line with a single
//     left-to-right pass, borrowing the bytes when no JSON escapes are
//     present and decoding into a reused scratch buffer when they are.
//   - stats.Partial: each worker's private aggregate, merged after the join.
//
// Two drivers wire them together. ScanReaderAt partitions seekable input
// and scans ranges concurrently. ScanStream serves sequential sources such
// as decompressing readers and stdin: a reader goroutine slices the stream
// into line-aligned blocks that a pool of workers consumes.
//
// # Concurrency Model
//
// Workers share no mutable state. Each owns its extractor, block buffer,
// and partial aggregate; merging happens strictly after every worker has
// joined. Because per-type addition is commutative and associative, a scan
// with one worker and a scan with N workers produce byte-identical results.
//
// The first I/O error cancels the remaining workers and aborts the run with
// no partial results. Context cancellation is honored between blocks.
//
// # Memory
//
// Memory use is bounded by the block window, not the input: one block buffer
// per worker on the random-access path, about workers*2+1 in flight on the
// streaming path, plus the aggregate maps (proportional to distinct field
// values, not to input size). A single line longer than a block grows its
// buffer until the line completes; the pool discards oversized buffers on
// return.
//
// # Example
//
//	scanner, err := scan.New(scan.WithWorkers(8))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	f, err := os.Open("events.ndjson")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer f.Close()
//
//	info, _ := f.Stat()
//	summary, err := scanner.ScanReaderAt(context.Background(), f, info.Size())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, ns := range summary.Result.Sorted() {
//		fmt.Printf("%s\t%d\t%d\n", ns.Name, ns.Count, ns.Bytes)
//	}
package scan
