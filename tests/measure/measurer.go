package main

import (
	"context"
	"time"

	wordcounter "github.com/adrianbenavides/word-counter"
	"github.com/adrianbenavides/word-counter/scan"
	"github.com/adrianbenavides/word-counter/stats"
)

// MeasurementResult holds one throughput measurement.
type MeasurementResult struct {
	Workers     int           // Worker count actually used
	Lines       uint64        // Well-formed lines counted
	Skipped     uint64        // Malformed plus missing-field lines
	Bytes       int64         // Uncompressed bytes scanned
	Elapsed     time.Duration // Wall clock scan time
	Throughput  float64       // MiB/s over the scanned bytes
	LinesPerSec float64       // Lines per second, skipped lines included
	Result      *stats.Result // Full tallies, for verification and reporting
}

// MeasureFile scans path once with the given worker count.
//
// The file is scanned through the same entry point the CLI uses, so the
// numbers include partitioning, extraction and merging.
//
// Example:
//
//	result, err := MeasureFile("corpus.ndjson", 8)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%.2f MiB/s\n", result.Throughput)
func MeasureFile(path string, workers int) (MeasurementResult, error) {
	sum, err := wordcounter.ProcessFile(context.Background(), path, scan.WithWorkers(workers))
	if err != nil {
		return MeasurementResult{}, err
	}

	res := sum.Result
	mr := MeasurementResult{
		Workers:    sum.Workers,
		Lines:      res.Lines(),
		Skipped:    res.Skipped(),
		Bytes:      sum.BytesRead,
		Elapsed:    sum.Elapsed,
		Throughput: sum.Throughput(),
		Result:     res,
	}
	if secs := sum.Elapsed.Seconds(); secs > 0 {
		mr.LinesPerSec = float64(res.Lines()+res.Skipped()) / secs
	}

	return mr, nil
}

// MeasureSweep scans path once per worker count, in the given order.
func MeasureSweep(path string, workerCounts []int) ([]MeasurementResult, error) {
	results := make([]MeasurementResult, 0, len(workerCounts))
	for _, workers := range workerCounts {
		r, err := MeasureFile(path, workers)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, nil
}
