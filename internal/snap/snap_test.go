package snap

import (
	"math"
	"testing"

	"geoboard/internal/geometry"
	"geoboard/internal/scene"
)

func addFunctions(t *testing.T, sc *scene.Scene, texts ...string) {
	t.Helper()
	for _, text := range texts {
		if _, err := sc.Functions.Add(text); err != nil {
			t.Fatalf("Add(%q): %v", text, err)
		}
	}
}

func TestResolve_ExistingPoint(t *testing.T) {
	sc := scene.New()
	sc.AddPoint(geometry.V(1, 1))

	c, ok := NewResolver().Resolve(sc, Query{Pos: geometry.V(1.001, 1.001), Radius: 0.3})
	if !ok {
		t.Fatal("no candidate")
	}
	if c.Kind != KindPoint || c.Pos != geometry.V(1, 1) {
		t.Errorf("candidate = %+v, want exact point (1,1)", c)
	}
}

func TestResolve_FunctionIntersection(t *testing.T) {
	sc := scene.New()
	addFunctions(t, sc, "x", "-x")

	c, ok := NewResolver().Resolve(sc, Query{Pos: geometry.V(0.05, 0), Radius: 0.3})
	if !ok {
		t.Fatal("no candidate")
	}
	if c.Kind != KindIntersection {
		t.Fatalf("kind = %s, want intersection", c.Kind)
	}
	if c.Pos.Dist(geometry.V(0, 0)) > 0.1 {
		t.Errorf("candidate %+v not near the origin", c)
	}
}

func TestResolve_IntersectionOffAxis(t *testing.T) {
	sc := scene.New()
	addFunctions(t, sc, "x+2", "4-x")

	c, ok := NewResolver().Resolve(sc, Query{Pos: geometry.V(1.05, 2.95), Radius: 0.3})
	if !ok {
		t.Fatal("no candidate")
	}
	if c.Kind != KindIntersection {
		t.Fatalf("kind = %s, want intersection", c.Kind)
	}
	if c.Pos.Dist(geometry.V(1, 3)) > 0.1 {
		t.Errorf("candidate %v not near (1,3)", c.Pos)
	}
}

func TestResolve_AxisCrossing(t *testing.T) {
	sc := scene.New()
	addFunctions(t, sc, "x-2")

	c, ok := NewResolver().Resolve(sc, Query{Pos: geometry.V(2.05, 0.05), Radius: 0.2})
	if !ok {
		t.Fatal("no candidate")
	}
	if c.Kind != KindAxisIntersection || math.Abs(c.Pos.Y) >= 0.2 {
		t.Errorf("candidate = %+v", c)
	}
}

func TestResolve_YAxisCrossing(t *testing.T) {
	sc := scene.New()
	addFunctions(t, sc, "x^2+3")

	c, ok := NewResolver().Resolve(sc, Query{Pos: geometry.V(0.02, 3.01), Radius: 0.3})
	if !ok {
		t.Fatal("no candidate")
	}
	if c.Kind != KindAxisIntersection || c.Pos != geometry.V(0, 3) {
		t.Errorf("candidate = %+v, want (0,3)", c)
	}
}

func TestResolve_HiddenFunctionsIgnored(t *testing.T) {
	sc := scene.New()
	addFunctions(t, sc, "x", "-x")
	sc.Functions.SetVisible(0, false)
	sc.Functions.SetVisible(1, false)

	if c, ok := NewResolver().Resolve(sc, Query{Pos: geometry.V(0.01, 0.01), Radius: 0.3}); ok {
		t.Errorf("unexpected candidate %+v", c)
	}
}

func TestResolve_Edges(t *testing.T) {
	sc := scene.New()
	sc.AddObject(geometry.Line{A: geometry.V(0, 0), B: geometry.V(10, 0)})
	sc.AddObject(geometry.Polygon{Vertices: []geometry.Vec{{X: 20, Y: 0}, {X: 24, Y: 0}, {X: 24, Y: 4}}})

	r := NewResolver()
	q := Query{Pos: geometry.V(5, 0.1), Radius: 0.3}
	if _, ok := r.Resolve(sc, q); ok {
		t.Error("edges snapped with edge projection disabled")
	}

	q.Edges = true
	c, ok := r.Resolve(sc, q)
	if !ok || c.Kind != KindLinePoint || c.Pos.Dist(geometry.V(5, 0)) > 1e-9 {
		t.Errorf("line candidate = %+v, %v", c, ok)
	}

	c, ok = r.Resolve(sc, Query{Pos: geometry.V(24.1, 2), Radius: 0.3, Edges: true})
	if !ok || c.Kind != KindPolygonPoint || c.Pos.Dist(geometry.V(24, 2)) > 1e-9 {
		t.Errorf("polygon candidate = %+v, %v", c, ok)
	}
}

func TestResolve_NearestWins(t *testing.T) {
	sc := scene.New()
	sc.AddPoint(geometry.V(0.2, 0))
	sc.AddObject(geometry.Circle{Center: geometry.V(0.05, 0), Radius: 1})

	c, ok := NewResolver().Resolve(sc, Query{Pos: geometry.V(0, 0), Radius: 0.3})
	if !ok || c.Kind != KindCircleCenter {
		t.Errorf("candidate = %+v, want circle centre", c)
	}
}

func TestResolve_TieKeepsGeneratorOrder(t *testing.T) {
	sc := scene.New()
	sc.AddPoint(geometry.V(1, 0))
	sc.AddObject(geometry.Circle{Center: geometry.V(1, 0), Radius: 2})

	c, ok := NewResolver().Resolve(sc, Query{Pos: geometry.V(1, 0.1), Radius: 0.3})
	if !ok || c.Kind != KindPoint {
		t.Errorf("candidate = %+v, want point on tie", c)
	}
}

func TestResolve_NothingInRange(t *testing.T) {
	sc := scene.New()
	sc.AddPoint(geometry.V(5, 5))
	if _, ok := NewResolver().Resolve(sc, Query{Pos: geometry.V(0, 0), Radius: 0.3}); ok {
		t.Error("unexpected candidate")
	}
}
