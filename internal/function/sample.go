package function

import (
	"math"

	"geoboard/internal/geometry"
)

// ============================================================
// Sampling
// ============================================================

const (
	// RenderSamples is the number of x positions evaluated per frame.
	RenderSamples = 2000
	// RenderMargin widens the sampled range past both viewport edges,
	// as a fraction of the visible width.
	RenderMargin = 0.05
	// ProbeSamples is the resolution of the narrow windows used by snapping.
	ProbeSamples = 100
)

// Linspace returns n evenly spaced values from a to b inclusive.
func Linspace(a, b float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{a}
	}
	xs := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range xs {
		xs[i] = a + float64(i)*step
	}
	xs[n-1] = b
	return xs
}

// Segments splits sampled points into polylines. A non-finite y ends the
// current polyline; runs shorter than two points are dropped.
func Segments(xs, ys []float64) [][]geometry.Vec {
	var out [][]geometry.Vec
	var cur []geometry.Vec

	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}

	for i := range xs {
		if i >= len(ys) {
			break
		}
		y := ys[i]
		if math.IsNaN(y) || math.IsInf(y, 0) {
			flush()
			continue
		}
		cur = append(cur, geometry.Vec{X: xs[i], Y: y})
	}
	flush()

	return out
}

// Trace samples fn over [left, right] widened by RenderMargin and returns
// the drawable polylines.
func Trace(fn Callable, left, right float64, samples int) [][]geometry.Vec {
	margin := (right - left) * RenderMargin
	xs := Linspace(left-margin, right+margin, samples)
	return Segments(xs, fn.Sample(xs))
}
