package scene

import (
	"geoboard/internal/function"
	"geoboard/internal/geometry"
)

// ============================================================
// Scene graph
// ============================================================

// Scene owns every committed construction. Points holds the standalone
// points that later constructions can snap to; Objects keeps insertion
// order, which is also hit-test order.
type Scene struct {
	Points    []geometry.Vec
	Objects   []geometry.Object
	Functions *function.Registry
}

func New() *Scene {
	return &Scene{Functions: function.NewRegistry()}
}

func (s *Scene) AddPoint(p geometry.Vec) {
	s.Points = append(s.Points, p)
}

func (s *Scene) AddObject(o geometry.Object) {
	s.Objects = append(s.Objects, o)
}

// Clear drops all points, objects and functions.
func (s *Scene) Clear() {
	s.Points = nil
	s.Objects = nil
	s.Functions.Clear()
}

// Circles returns the committed circles in insertion order.
func (s *Scene) Circles() []geometry.Circle {
	var out []geometry.Circle
	for _, o := range s.Objects {
		if c, ok := o.(geometry.Circle); ok {
			out = append(out, c)
		}
	}
	return out
}

// IsAnchored reports whether p lies within tol of a standalone point or
// a circle centre.
func (s *Scene) IsAnchored(p geometry.Vec, tol float64) bool {
	for _, q := range s.Points {
		if p.Dist(q) < tol {
			return true
		}
	}
	for _, o := range s.Objects {
		if c, ok := o.(geometry.Circle); ok && p.Dist(c.Center) < tol {
			return true
		}
	}
	return false
}

// NewLine builds a line between a and b. The line is a plain segment when
// either endpoint is anchored, otherwise it is drawn extended.
func (s *Scene) NewLine(a, b geometry.Vec, tol float64) geometry.Line {
	connected := s.IsAnchored(a, tol) || s.IsAnchored(b, tol)
	return geometry.Line{A: a, B: b, Infinite: !connected}
}
