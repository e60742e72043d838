// Command measure benchmarks the scanner against a synthetic NDJSON corpus.
//
// It generates a reproducible corpus (or takes an existing file), scans it
// with increasing worker counts, and prints throughput per configuration
// along with a verification against the generator's ground truth.
//
// Usage:
//
//	go run . [-lines N] [-compress gzip] [-file corpus.ndjson] [-keep] [-top N]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/adrianbenavides/word-counter/compress"
	"github.com/adrianbenavides/word-counter/format"
	"github.com/adrianbenavides/word-counter/report"
)

func main() {
	log.SetFlags(0)

	var (
		flagLines    = flag.Int("lines", 1_000_000, "corpus size in lines when generating")
		flagCompress = flag.String("compress", "", "compress the generated corpus (gzip, zstd, s2, lz4)")
		flagFile     = flag.String("file", "", "measure an existing file instead of generating")
		flagKeep     = flag.Bool("keep", false, "keep the generated corpus file")
		flagTop      = flag.Int("top", 10, "tally rows to print after measuring")
	)
	flag.Parse()

	compression, err := format.ParseCompression(*flagCompress)
	if err != nil {
		log.Fatal(err)
	}

	path := *flagFile
	var truth *CorpusStats
	if path == "" {
		cfg := DefaultCorpusConfig()
		cfg.Lines = *flagLines

		generated, cs := generate(cfg, compression)
		if !*flagKeep {
			defer os.Remove(generated)
		}
		path, truth = generated, &cs
	}

	results, err := MeasureSweep(path, workerCounts())
	if err != nil {
		log.Fatal(err)
	}

	printResults(results)
	printScaling(results)
	if truth != nil {
		verify(results, *truth)
	}
	printTallies(results[len(results)-1], *flagTop)
}

// generate writes the corpus to a temp file, optionally through a
// compression codec, and prints its shape.
func generate(cfg CorpusConfig, compression format.CompressionType) (string, CorpusStats) {
	f, err := os.CreateTemp("", "measure-*.ndjson")
	if err != nil {
		log.Fatal(err)
	}

	var w io.Writer = f
	var zw io.WriteCloser
	if compression != format.CompressionNone {
		codec, err := compress.GetCodec(compression)
		if err != nil {
			log.Fatal(err)
		}
		if zw, err = codec.NewWriter(f); err != nil {
			log.Fatal(err)
		}
		w = zw
	}

	cs, err := GenerateCorpus(w, cfg)
	if err != nil {
		log.Fatal(err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			log.Fatal(err)
		}
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Corpus:")
	fmt.Printf("  File:       %s\n", f.Name())
	fmt.Printf("  Lines:      %s (%s valid, %s malformed, %s missing field)\n",
		formatNumber(cs.Lines), formatNumber(cs.Valid),
		formatNumber(cs.Malformed), formatNumber(cs.Missing))
	fmt.Printf("  Size:       %.1f MiB\n", float64(cs.Bytes)/(1<<20))
	if compression != format.CompressionNone {
		if fi, err := os.Stat(f.Name()); err == nil {
			fmt.Printf("  On disk:    %.1f MiB (%s)\n", float64(fi.Size())/(1<<20), compression)
		}
	}
	fmt.Printf("  Type names: %d\n", len(cfg.Types))
	fmt.Println()

	return f.Name(), cs
}

// workerCounts doubles from 1 up to the machine's CPU count.
func workerCounts() []int {
	maxWorkers := runtime.GOMAXPROCS(0)
	counts := []int{}
	for n := 1; n < maxWorkers; n *= 2 {
		counts = append(counts, n)
	}

	return append(counts, maxWorkers)
}

func printResults(results []MeasurementResult) {
	fmt.Println("=== Measurement Results ===")
	fmt.Println()

	fmt.Printf("%-8s | %-11s | %-12s | %-14s | %-10s\n",
		"Workers", "Elapsed", "Throughput", "Lines/s", "Speedup")
	fmt.Println(strings.Repeat("-", 68))

	base := results[0].Elapsed.Seconds()
	for _, r := range results {
		speedup := 1.0
		if secs := r.Elapsed.Seconds(); secs > 0 {
			speedup = base / secs
		}
		fmt.Printf("%-8d | %-11s | %-12s | %-14s | %-10s\n",
			r.Workers,
			r.Elapsed.Round(time.Millisecond),
			fmt.Sprintf("%.1f MiB/s", r.Throughput),
			formatNumber(int(r.LinesPerSec)),
			fmt.Sprintf("%.2fx", speedup))
	}
	fmt.Println()
}

// verify compares every measurement against the generator's ground truth.
func verify(results []MeasurementResult, truth CorpusStats) {
	fmt.Println("=== Verification ===")
	fmt.Println()

	ok := true
	for _, r := range results {
		if r.Lines != uint64(truth.Valid) || r.Skipped != uint64(truth.Malformed+truth.Missing) ||
			r.Bytes != truth.Bytes {
			fmt.Printf("  ✗ workers=%d: got %d lines / %d skipped / %d bytes, want %d / %d / %d\n",
				r.Workers, r.Lines, r.Skipped, r.Bytes,
				truth.Valid, truth.Malformed+truth.Missing, truth.Bytes)
			ok = false
		}
	}
	if ok {
		fmt.Printf("  ✓ all %d runs match the generated corpus exactly\n", len(results))
	}
	fmt.Println()
}

func printTallies(r MeasurementResult, top int) {
	fmt.Printf("=== Top %d Types (workers=%d) ===\n", top, r.Workers)
	fmt.Println()

	formatter := report.Formatter{Top: top}
	if err := formatter.WriteTable(os.Stdout, r.Result); err != nil {
		log.Fatal(err)
	}
}

func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}

	return s + "," + strings.Join(parts, ",")
}
