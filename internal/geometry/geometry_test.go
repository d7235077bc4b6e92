package geometry

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCamera_RoundTrip(t *testing.T) {
	cameras := []struct {
		name string
		cam  Camera
	}{
		{"default", *NewCamera(800, 600)},
		{"zoomed", Camera{Zoom: 3.7, OffsetX: 120, OffsetY: -45, Width: 1024, Height: 768, BaseGridSize: 50}},
		{"tiny zoom", Camera{Zoom: 0.013, OffsetX: -900, OffsetY: 300, Width: 640, Height: 480, BaseGridSize: 50}},
	}
	points := []Vec{{0, 0}, {1, 1}, {-3.25, 7.5}, {1e4, -1e4}, {0.001, -0.002}}

	for _, tc := range cameras {
		t.Run(tc.name, func(t *testing.T) {
			cam := tc.cam
			for _, p := range points {
				got := cam.ScreenToWorld(cam.WorldToScreen(p))
				if !approx(got.X, p.X, 1e-7) || !approx(got.Y, p.Y, 1e-7) {
					t.Errorf("round trip of %v = %v", p, got)
				}
			}
		})
	}
}

func TestCamera_WorldToScreen(t *testing.T) {
	cam := NewCamera(800, 600)
	got := cam.WorldToScreen(V(1, 1))
	if got.X != 450 || got.Y != 250 {
		t.Errorf("WorldToScreen(1,1) = %v, want (450,250)", got)
	}
}

func TestCamera_ZoomAnchored(t *testing.T) {
	cursors := []Vec{{400, 300}, {10, 20}, {790, 590}, {613.5, 77.25}}
	steps := []float64{1, -1, 1, 1, -1}

	for _, cursor := range cursors {
		cam := NewCamera(800, 600)
		cam.OffsetX, cam.OffsetY = 37, -12
		for _, s := range steps {
			before := cam.ScreenToWorld(cursor)
			cam.ZoomAt(s, cursor)
			after := cam.ScreenToWorld(cursor)
			if !approx(before.X, after.X, 1e-9) || !approx(before.Y, after.Y, 1e-9) {
				t.Fatalf("cursor %v step %v: world moved from %v to %v", cursor, s, before, after)
			}
		}
	}
}

func TestCamera_ZoomClamped(t *testing.T) {
	cam := NewCamera(800, 600)
	for i := 0; i < 100; i++ {
		cam.ZoomAt(1, V(400, 300))
	}
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %v, want clamp at %v", cam.Zoom, cam.MaxZoom)
	}
	if cam.ZoomAt(1, V(400, 300)) {
		t.Error("ZoomAt reported a change at the clamp")
	}
	for i := 0; i < 100; i++ {
		cam.ZoomAt(-1, V(400, 300))
	}
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom = %v, want clamp at %v", cam.Zoom, cam.MinZoom)
	}
}

func TestClosestOnSegment(t *testing.T) {
	tests := []struct {
		name     string
		p, a, b  Vec
		wantPt   Vec
		wantDist float64
	}{
		{"interior", V(1, 1), V(0, 0), V(2, 0), V(1, 0), 1},
		{"before start", V(-1, 0), V(0, 0), V(2, 0), V(0, 0), 1},
		{"past end", V(5, 4), V(0, 0), V(2, 0), V(2, 0), 5},
		{"degenerate", V(3, 4), V(0, 0), V(0, 0), V(0, 0), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt, d := ClosestOnSegment(tt.p, tt.a, tt.b)
			if !approx(pt.X, tt.wantPt.X, eps) || !approx(pt.Y, tt.wantPt.Y, eps) || !approx(d, tt.wantDist, eps) {
				t.Errorf("ClosestOnSegment = %v, %v; want %v, %v", pt, d, tt.wantPt, tt.wantDist)
			}
		})
	}
}

func TestFinalizeAngle(t *testing.T) {
	tests := []struct {
		name               string
		point1, vertex, p3 Vec
		degrees            float64
		want               Vec
	}{
		{"ccw 45", V(1, 0), V(0, 0), V(0, 1), 45, V(math.Sqrt2/2, math.Sqrt2/2)},
		{"cw 45", V(1, 0), V(0, 0), V(0, -1), 45, V(math.Sqrt2/2, -math.Sqrt2/2)},
		{"length from reference ray", V(2, 0), V(0, 0), V(0, 10), 90, V(0, 2)},
		{"offset vertex", V(3, 1), V(1, 1), V(1, 5), 90, V(1, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := FinalizeAngle(tt.point1, tt.vertex, tt.p3, tt.degrees)
			if !ok {
				t.Fatal("FinalizeAngle rejected a valid angle")
			}
			if !approx(a.Point2.X, tt.want.X, 1e-9) || !approx(a.Point2.Y, tt.want.Y, 1e-9) {
				t.Errorf("point2 = %v, want %v", a.Point2, tt.want)
			}
			if !approx(a.Point2.Dist(tt.vertex), tt.point1.Dist(tt.vertex), 1e-9) {
				t.Errorf("ray lengths differ: %v vs %v", a.Point2.Dist(tt.vertex), tt.point1.Dist(tt.vertex))
			}
			if a.Degrees != tt.degrees || a.Point1 != tt.point1 || a.Vertex != tt.vertex {
				t.Errorf("angle fields not preserved: %+v", a)
			}
		})
	}
}

func TestFinalizeAngle_Degenerate(t *testing.T) {
	if _, ok := FinalizeAngle(V(0.0005, 0), V(0, 0), V(0, 1), 30); ok {
		t.Error("expected degenerate reference ray to be rejected")
	}
}

func TestPolygon_Edges(t *testing.T) {
	p := Polygon{Vertices: []Vec{{0, 0}, {1, 0}, {1, 1}}}
	edges := p.Edges()
	if len(edges) != 3 {
		t.Fatalf("edges = %d, want 3", len(edges))
	}
	if edges[2][0] != V(1, 1) || edges[2][1] != V(0, 0) {
		t.Errorf("closing edge = %v", edges[2])
	}
}
