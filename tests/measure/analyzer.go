package main

import (
	"fmt"
	"math"

	"github.com/adrianbenavides/word-counter/internal/fit"
)

// printScaling fits the worker sweep to Amdahl's law and prints what the
// numbers say about parallel efficiency. It needs the sweep to start at
// one worker, which anchors the speedup baseline.
func printScaling(results []MeasurementResult) {
	if len(results) < 2 || results[0].Workers != 1 {
		return
	}

	workers := make([]int, len(results))
	speedups := make([]float64, len(results))
	base := results[0].Elapsed.Seconds()
	for i, r := range results {
		workers[i] = r.Workers
		speedups[i] = 1
		if secs := r.Elapsed.Seconds(); secs > 0 {
			speedups[i] = base / secs
		}
	}

	model, ok := fit.Amdahl(workers, speedups)
	if !ok {
		return
	}

	fmt.Println("=== Scaling Analysis ===")
	fmt.Println()
	fmt.Printf("  Parallel fraction: %.1f%% (R²=%.4f, %s)\n",
		model.Parallel*100, model.RSquared, model.Classify())
	if limit := model.Limit(); math.IsInf(limit, 1) {
		fmt.Println("  Speedup ceiling:   unbounded (fully parallel)")
	} else {
		fmt.Printf("  Speedup ceiling:   %.1fx\n", limit)
	}

	last := results[len(results)-1]
	fmt.Printf("  At %d workers:      predicted %.2fx, measured %.2fx\n",
		last.Workers, model.Speedup(last.Workers), speedups[len(speedups)-1])
	fmt.Println()
}
