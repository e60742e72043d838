// Package fit estimates how well the scan scales with worker count.
//
// Throughput measurements across worker counts are fitted to Amdahl's law:
//
//	speedup(n) = 1 / ((1-p) + p/n)
//
// where p is the parallel fraction of the work. The reciprocal of the
// speedup is linear in 1/n, so the fit is closed-form least squares on the
// transformed points, with the constraint speedup(1) = 1 built in.
package fit

import "math"

// ScalingModel is a fitted Amdahl's law curve.
type ScalingModel struct {
	// Parallel is the estimated parallel fraction p, clamped to [0, 1].
	Parallel float64

	// RSquared is the goodness of fit over the transformed points (0-1,
	// higher is better).
	RSquared float64

	// RMSE is the root mean square error of the predicted speedups.
	RMSE float64
}

// Amdahl fits speedup measurements to Amdahl's law.
//
// workers[i] is the worker count of the i-th measurement and speedups[i]
// the measured speedup relative to one worker. Both slices must have the
// same length and hold at least two points with distinct worker counts.
func Amdahl(workers []int, speedups []float64) (ScalingModel, bool) {
	if len(workers) != len(speedups) || len(workers) < 2 {
		return ScalingModel{}, false
	}

	// Transform to y = 1/speedup, x = 1/n and fit y = (1-p) + p*x, which
	// pins the curve to speedup(1) = 1 and leaves p as the only parameter:
	// y - 1 = p * (x - 1).
	var num, den float64
	for i, n := range workers {
		if n < 1 || speedups[i] <= 0 {
			return ScalingModel{}, false
		}
		x := 1.0/float64(n) - 1.0
		y := 1.0/speedups[i] - 1.0
		num += x * y
		den += x * x
	}
	if den == 0 {
		return ScalingModel{}, false
	}

	p := num / den
	p = math.Max(0, math.Min(1, p))
	m := ScalingModel{Parallel: p}

	// Goodness of fit in the transformed space, error in speedup space.
	var sumY, ssRes, ssTot, sqErr float64
	ys := make([]float64, len(workers))
	for i := range workers {
		ys[i] = 1.0 / speedups[i]
		sumY += ys[i]
	}
	meanY := sumY / float64(len(ys))
	for i, n := range workers {
		pred := (1 - p) + p/float64(n)
		ssRes += (ys[i] - pred) * (ys[i] - pred)
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)

		d := speedups[i] - m.Speedup(n)
		sqErr += d * d
	}
	switch {
	case ssTot > 0:
		m.RSquared = 1 - ssRes/ssTot
	case ssRes == 0:
		m.RSquared = 1
	}
	m.RMSE = math.Sqrt(sqErr / float64(len(workers)))

	return m, true
}

// Speedup predicts the speedup at n workers.
func (m ScalingModel) Speedup(n int) float64 {
	den := (1 - m.Parallel) + m.Parallel/float64(n)
	if den <= 0 {
		return float64(n)
	}

	return 1 / den
}

// Limit is the speedup ceiling as workers go to infinity.
func (m ScalingModel) Limit() float64 {
	if m.Parallel >= 1 {
		return math.Inf(1)
	}

	return 1 / (1 - m.Parallel)
}

// Classify describes the fit quality in words.
func (m ScalingModel) Classify() string {
	switch {
	case m.RSquared >= 0.98:
		return "excellent fit"
	case m.RSquared >= 0.95:
		return "very good fit"
	case m.RSquared >= 0.90:
		return "good fit"
	case m.RSquared >= 0.80:
		return "moderate fit"
	default:
		return "poor fit"
	}
}
