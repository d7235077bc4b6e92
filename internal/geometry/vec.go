package geometry

import "math"

// ============================================================
// Geometry primitives
// ============================================================

// Vec is a point or vector in world space.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between two points.
func (v Vec) Dist(o Vec) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Midpoint returns the point halfway between v and o.
func (v Vec) Midpoint(o Vec) Vec {
	return Vec{X: (v.X + o.X) / 2, Y: (v.Y + o.Y) / 2}
}

// IsFinite reports whether both coordinates are finite numbers.
func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// ============================================================
// Segment helpers
// ============================================================

// ClosestOnSegment projects p onto the segment a-b with the segment
// parameter clamped to [0,1]. A zero-length segment degrades to the
// distance to a.
func ClosestOnSegment(p, a, b Vec) (Vec, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy

	if lenSq == 0 {
		return a, p.Dist(a)
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = clamp(t, 0, 1)

	proj := Vec{X: a.X + t*dx, Y: a.Y + t*dy}
	return proj, p.Dist(proj)
}

// SegmentDistance returns the distance from p to the segment a-b.
func SegmentDistance(p, a, b Vec) float64 {
	_, d := ClosestOnSegment(p, a, b)
	return d
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
