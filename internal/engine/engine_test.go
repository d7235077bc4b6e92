package engine

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"geoboard/internal/construct"
	"geoboard/internal/function"
	"geoboard/internal/geometry"
	"geoboard/internal/project"
	"geoboard/internal/snap"
)

// The default config maps world (x, y) to screen (600+50x, 400-50y) and
// snaps within 0.3 world units.
func screen(x, y float64) geometry.Vec {
	return geometry.V(600+50*x, 400-50*y)
}

func newEngine(p construct.Prompter) *Engine {
	return New(DefaultConfig(), Options{Prompter: p})
}

func TestSelectTool(t *testing.T) {
	e := newEngine(nil)
	if err := e.SelectTool("circle"); err != nil {
		t.Fatal(err)
	}
	if e.Tool() != construct.ToolCircle {
		t.Errorf("tool = %q", e.Tool())
	}
	err := e.SelectTool("lasso")
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("err = %v, want ErrUnknownTool", err)
	}
	if e.Tool() != construct.ToolCircle {
		t.Error("failed selection changed the tool")
	}
}

func TestPolygonThroughEvents(t *testing.T) {
	e := newEngine(nil)
	if err := e.SelectTool("polygon"); err != nil {
		t.Fatal(err)
	}
	for _, p := range []geometry.Vec{screen(0, 0), screen(1, 0), screen(1, 1)} {
		e.OnClick(ButtonLeft, p)
		e.OnRelease(ButtonLeft, p)
	}

	closeAt := screen(0.04, 0.02)
	e.OnClick(ButtonRight, closeAt)
	if len(e.Scene().Objects) != 0 {
		t.Fatal("right press committed or deleted something")
	}
	e.OnRelease(ButtonRight, closeAt)

	sc := e.Scene()
	if len(sc.Objects) != 1 || sc.Objects[0].Kind() != geometry.KindPolygon {
		t.Fatalf("objects = %v", sc.Objects)
	}
	if len(sc.Points) != 3 {
		t.Errorf("points = %d, want 3", len(sc.Points))
	}
}

func TestEscapeDiscardsShortPolygon(t *testing.T) {
	e := newEngine(nil)
	_ = e.SelectTool("polygon")
	e.OnClick(ButtonLeft, screen(0, 0))
	e.OnClick(ButtonLeft, screen(1, 0))
	e.OnKey(KeyEscape)

	if len(e.Scene().Objects) != 0 || len(e.Pending().Vertices) != 0 {
		t.Error("short polygon survived escape")
	}
}

func TestLineSnapsToPoint(t *testing.T) {
	e := newEngine(nil)
	_ = e.SelectTool("point")
	e.OnClick(ButtonLeft, screen(2, 2))

	_ = e.SelectTool("line")
	e.OnClick(ButtonLeft, screen(2.1, 2.1))
	e.OnClick(ButtonLeft, screen(5, -1))

	sc := e.Scene()
	if len(sc.Objects) != 1 {
		t.Fatalf("objects = %d", len(sc.Objects))
	}
	line := sc.Objects[0].(geometry.Line)
	if line.A != geometry.V(2, 2) {
		t.Errorf("start = %v, want snapped (2,2)", line.A)
	}
	if line.Infinite {
		t.Error("line attached to a point should not be infinite")
	}
}

func TestSnapPreview(t *testing.T) {
	e := newEngine(nil)
	_ = e.SelectTool("point")
	e.OnClick(ButtonLeft, screen(1, 1))

	e.OnMove(screen(1.05, 0.98))
	c, ok := e.SnapPreview()
	if !ok || c.Kind != snap.KindPoint || c.Pos != geometry.V(1, 1) {
		t.Errorf("preview = %+v, %v", c, ok)
	}

	e.OnMove(screen(4, 4))
	if _, ok := e.SnapPreview(); ok {
		t.Error("preview persisted away from anchors")
	}
	w := e.CursorWorld()
	if math.Abs(w.X-4) > 1e-9 || math.Abs(w.Y-4) > 1e-9 {
		t.Errorf("cursor world = %v", w)
	}
}

func TestRightClickDeletes(t *testing.T) {
	e := newEngine(nil)
	_ = e.SelectTool("circle")
	e.OnClick(ButtonLeft, screen(0, 0))
	e.OnClick(ButtonLeft, screen(2, 0))

	_ = e.SelectTool("select")
	e.OnClick(ButtonRight, screen(0, 2))
	if len(e.Scene().Objects) != 0 {
		t.Error("circle not deleted")
	}
}

func TestWheelZoomKeepsCursorAnchor(t *testing.T) {
	e := newEngine(nil)
	cursor := geometry.V(913, 127)
	before := e.Camera()
	worldBefore := before.ScreenToWorld(cursor)

	e.OnWheel(120, cursor)
	e.OnWheel(120, cursor)
	e.OnWheel(-120, cursor)

	cam := e.Camera()
	if math.Abs(cam.Zoom-1.2) > 1e-12 {
		t.Errorf("zoom = %v, want 1.2", cam.Zoom)
	}
	after := cam.ScreenToWorld(cursor)
	if math.Abs(after.X-worldBefore.X) > 1e-9 || math.Abs(after.Y-worldBefore.Y) > 1e-9 {
		t.Errorf("world under cursor moved from %v to %v", worldBefore, after)
	}
}

func TestMiddlePan(t *testing.T) {
	e := newEngine(nil)
	e.OnClick(ButtonMiddle, geometry.V(100, 100))
	e.OnMove(geometry.V(130, 90))
	e.OnMove(geometry.V(150, 80))
	e.OnRelease(ButtonMiddle, geometry.V(150, 80))
	e.OnMove(geometry.V(500, 500))

	cam := e.Camera()
	if cam.OffsetX != 50 || cam.OffsetY != -20 {
		t.Errorf("offset = (%v, %v), want (50, -20)", cam.OffsetX, cam.OffsetY)
	}
}

func TestFunctions(t *testing.T) {
	e := newEngine(nil)
	if _, err := e.AddFunction("x^2"); err != nil {
		t.Fatal(err)
	}
	_, err := e.AddFunction("sin(")
	var exprErr *function.ExpressionError
	if !errors.As(err, &exprErr) {
		t.Fatalf("err = %v, want ExpressionError", err)
	}
	if len(e.Functions()) != 1 {
		t.Errorf("functions = %d", len(e.Functions()))
	}
	if !e.SetFunctionVisible(0, false) || e.Functions()[0].Visible {
		t.Error("visibility not applied")
	}
	if e.DeleteFunction(7) {
		t.Error("deleted a missing function")
	}
}

func TestAngleThroughEvents(t *testing.T) {
	v := 45.0
	e := newEngine(construct.Scripted{Number: &v})
	_ = e.SelectTool("angle")
	for _, p := range []geometry.Vec{screen(4, 0), screen(0, 0), screen(0, 4)} {
		e.OnClick(ButtonLeft, p)
	}
	sc := e.Scene()
	if len(sc.Objects) != 1 {
		t.Fatalf("objects = %d", len(sc.Objects))
	}
	a := sc.Objects[0].(geometry.Angle)
	want := 4 * math.Sqrt2 / 2
	if math.Abs(a.Point2.X-want) > 1e-9 || math.Abs(a.Point2.Y-want) > 1e-9 {
		t.Errorf("point2 = %v", a.Point2)
	}
}

func TestSaveLoad(t *testing.T) {
	store := project.NewFileStore(filepath.Join(t.TempDir(), "projects"))

	e := newEngine(nil)
	for _, text := range []string{"x", "-x", "x^2"} {
		if _, err := e.AddFunction(text); err != nil {
			t.Fatal(err)
		}
	}
	e.DeleteFunction(1)
	_ = e.SelectTool("point")
	e.OnClick(ButtonLeft, screen(3, 3))
	e.OnWheel(1, screen(3, 3))

	if _, err := e.Save(store, "scene"); err != nil {
		t.Fatal(err)
	}

	other := newEngine(nil)
	report, _, err := other.Load(store, "scene")
	if err != nil {
		t.Fatal(err)
	}
	if !report.Empty() {
		t.Errorf("report = %+v", report)
	}
	if len(other.Scene().Points) != 1 || other.Camera().Zoom != e.Camera().Zoom {
		t.Errorf("points=%v zoom=%v", other.Scene().Points, other.Camera().Zoom)
	}
	fns := other.Functions()
	if len(fns) != 2 || fns[0].Index != 0 || fns[1].Index != 2 {
		t.Errorf("functions = %+v", fns)
	}

	if _, _, err := other.Load(store, "absent"); !errors.Is(err, project.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if len(other.Scene().Points) != 1 {
		t.Error("failed load changed the scene")
	}
}
