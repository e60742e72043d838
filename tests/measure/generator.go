package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
)

// CorpusConfig controls the synthetic NDJSON corpus.
type CorpusConfig struct {
	Lines        int      // Total lines to generate
	Types        []string // Type values, weighted towards the front of the list
	PadMin       int      // Minimum payload padding in bytes
	PadMax       int      // Maximum payload padding in bytes
	MalformedPct int      // Percentage of lines that are not JSON
	MissingPct   int      // Percentage of object lines without the type field
	Seed         int64    // Generator seed, fixed for reproducible corpora
}

// DefaultCorpusConfig returns the corpus shape used by the throughput
// measurements: a million event-log-like lines, eight type values with the
// first few dominating, and a small share of broken lines.
func DefaultCorpusConfig() CorpusConfig {
	return CorpusConfig{
		Lines:        1_000_000,
		Types:        []string{"click", "view", "scroll", "purchase", "error", "login", "logout", "search"},
		PadMin:       20,
		PadMax:       180,
		MalformedPct: 2,
		MissingPct:   3,
		Seed:         42,
	}
}

// CorpusStats describes what GenerateCorpus actually wrote.
type CorpusStats struct {
	Lines     int   // Lines written
	Bytes     int64 // Bytes written, newlines included
	Valid     int   // Lines carrying the type field
	Malformed int   // Lines that are not JSON objects
	Missing   int   // Object lines without the type field
}

// GenerateCorpus writes cfg.Lines newline-delimited JSON lines to w and
// returns the exact per-category counts, so measurements can verify the
// scan against ground truth.
func GenerateCorpus(w io.Writer, cfg CorpusConfig) (CorpusStats, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	bw := bufio.NewWriterSize(w, 1<<20)

	pad := make([]byte, cfg.PadMax)
	for i := range pad {
		pad[i] = byte('a' + rng.Intn(26))
	}

	var cs CorpusStats
	for i := 0; i < cfg.Lines; i++ {
		n := cfg.PadMin
		if cfg.PadMax > cfg.PadMin {
			n += rng.Intn(cfg.PadMax - cfg.PadMin)
		}

		var (
			written int
			err     error
		)
		switch roll := rng.Intn(100); {
		case roll < cfg.MalformedPct:
			written, err = fmt.Fprintf(bw, "!! corrupt line %d %s\n", i, pad[:n])
			cs.Malformed++
		case roll < cfg.MalformedPct+cfg.MissingPct:
			written, err = fmt.Fprintf(bw, `{"id":%d,"payload":"%s"}`+"\n", i, pad[:n])
			cs.Missing++
		default:
			name := cfg.Types[pickWeighted(rng, len(cfg.Types))]
			written, err = fmt.Fprintf(bw, `{"type":"%s","id":%d,"payload":"%s"}`+"\n", name, i, pad[:n])
			cs.Valid++
		}
		if err != nil {
			return cs, err
		}
		cs.Lines++
		cs.Bytes += int64(written)
	}

	return cs, bw.Flush()
}

// pickWeighted favors low indexes: index 0 wins about half the time, index
// 1 a quarter, and so on, approximating the skew of real event streams.
func pickWeighted(rng *rand.Rand, n int) int {
	for i := 0; i < n-1; i++ {
		if rng.Intn(2) == 0 {
			return i
		}
	}

	return n - 1
}
