package scene

import (
	"testing"

	"geoboard/internal/geometry"
)

const tol = 0.3

func TestFindObjectAt(t *testing.T) {
	s := New()
	s.AddObject(geometry.Line{A: geometry.V(0, 0), B: geometry.V(4, 0)})
	s.AddObject(geometry.Circle{Center: geometry.V(10, 10), Radius: 2})
	s.AddObject(geometry.Polygon{Vertices: []geometry.Vec{{X: 20, Y: 0}, {X: 24, Y: 0}, {X: 24, Y: 4}}})
	s.AddObject(geometry.Angle{Vertex: geometry.V(-10, 0), Point1: geometry.V(-6, 0), Point2: geometry.V(-10, 4), Degrees: 90})
	s.AddObject(geometry.Text{Pos: geometry.V(0, 20), Content: "A", Size: 12})
	s.AddPoint(geometry.V(2, 0))

	tests := []struct {
		name       string
		q          geometry.Vec
		wantKind   geometry.Kind
		standalone bool
		index      int
	}{
		{"standalone point wins over line", geometry.V(2.1, 0), geometry.KindPoint, true, 0},
		{"line body", geometry.V(3.5, 0.4), geometry.KindLine, false, 0},
		{"circle boundary", geometry.V(12.2, 10), geometry.KindCircle, false, 1},
		{"polygon closing edge", geometry.V(22, 2.1), geometry.KindPolygon, false, 2},
		{"angle second ray", geometry.V(-9.8, 3), geometry.KindAngle, false, 3},
		{"text anchor", geometry.V(0.2, 20.2), geometry.KindText, false, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := s.FindObjectAt(tt.q, tol)
			if !ok {
				t.Fatal("no hit")
			}
			if h.Kind != tt.wantKind || h.Standalone != tt.standalone || h.Index != tt.index {
				t.Errorf("hit = %+v, want kind=%s standalone=%v index=%d", h, tt.wantKind, tt.standalone, tt.index)
			}
		})
	}
}

func TestFindObjectAt_CircleCentreMisses(t *testing.T) {
	s := New()
	s.AddObject(geometry.Circle{Center: geometry.V(0, 0), Radius: 5})
	if _, ok := s.FindObjectAt(geometry.V(0, 0), tol); ok {
		t.Error("circle centre should not hit the circle")
	}
}

func TestRemove(t *testing.T) {
	s := New()
	s.AddPoint(geometry.V(0, 0))
	s.AddPoint(geometry.V(5, 5))
	s.AddObject(geometry.Circle{Center: geometry.V(0, 0), Radius: 1})

	h, ok := s.FindObjectAt(geometry.V(5, 5), tol)
	if !ok || !s.Remove(h) {
		t.Fatal("remove point failed")
	}
	if len(s.Points) != 1 || s.Points[0] != geometry.V(0, 0) {
		t.Errorf("points = %v", s.Points)
	}

	h, ok = s.FindObjectAt(geometry.V(1, 0), tol)
	if !ok || h.Kind != geometry.KindCircle || !s.Remove(h) {
		t.Fatal("remove circle failed")
	}
	if len(s.Objects) != 0 {
		t.Errorf("objects = %v", s.Objects)
	}
	if s.Remove(Hit{Index: 3}) {
		t.Error("stale hit removed something")
	}
}

func TestNewLine_Connectivity(t *testing.T) {
	s := New()
	s.AddPoint(geometry.V(0, 0))
	s.AddObject(geometry.Circle{Center: geometry.V(10, 0), Radius: 2})

	tests := []struct {
		name     string
		a, b     geometry.Vec
		infinite bool
	}{
		{"start on point", geometry.V(0.1, 0), geometry.V(3, 3), false},
		{"end on circle centre", geometry.V(-5, 5), geometry.V(10, 0.1), false},
		{"isolated", geometry.V(-5, 5), geometry.V(5, 5), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := s.NewLine(tt.a, tt.b, tol)
			if l.Infinite != tt.infinite {
				t.Errorf("infinite = %v, want %v", l.Infinite, tt.infinite)
			}
		})
	}
}
