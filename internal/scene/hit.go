package scene

import (
	"math"

	"geoboard/internal/geometry"
)

// ============================================================
// Hit testing
// ============================================================

// Hit identifies a committed item. Standalone hits index Points, the
// rest index Objects.
type Hit struct {
	Standalone bool
	Index      int
	Kind       geometry.Kind
}

// FindObjectAt returns the first item under q. Standalone points are
// tested first with tol, then objects in insertion order with 2*tol.
func (s *Scene) FindObjectAt(q geometry.Vec, tol float64) (Hit, bool) {
	for i, p := range s.Points {
		if q.Dist(p) < tol {
			return Hit{Standalone: true, Index: i, Kind: geometry.KindPoint}, true
		}
	}

	wide := 2 * tol
	for i, o := range s.Objects {
		if objectDistance(q, o) < wide {
			return Hit{Index: i, Kind: o.Kind()}, true
		}
	}
	return Hit{}, false
}

// Remove deletes the item named by h. It reports false for a stale hit.
func (s *Scene) Remove(h Hit) bool {
	if h.Standalone {
		if h.Index < 0 || h.Index >= len(s.Points) {
			return false
		}
		s.Points = append(s.Points[:h.Index], s.Points[h.Index+1:]...)
		return true
	}
	if h.Index < 0 || h.Index >= len(s.Objects) {
		return false
	}
	s.Objects = append(s.Objects[:h.Index], s.Objects[h.Index+1:]...)
	return true
}

func objectDistance(q geometry.Vec, o geometry.Object) float64 {
	switch v := o.(type) {
	case geometry.Point:
		return q.Dist(v.Pos)
	case geometry.Line:
		return geometry.SegmentDistance(q, v.A, v.B)
	case geometry.Circle:
		return math.Abs(q.Dist(v.Center) - v.Radius)
	case geometry.Polygon:
		best := math.Inf(1)
		for _, e := range v.Edges() {
			best = math.Min(best, geometry.SegmentDistance(q, e[0], e[1]))
		}
		return best
	case geometry.Angle:
		return math.Min(
			geometry.SegmentDistance(q, v.Vertex, v.Point1),
			geometry.SegmentDistance(q, v.Vertex, v.Point2),
		)
	case geometry.Text:
		return q.Dist(v.Pos)
	}
	return math.Inf(1)
}
