package render

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"geoboard/internal/construct"
	"geoboard/internal/geometry"
	"geoboard/internal/scene"
	"geoboard/internal/snap"
)

func TestGridStep(t *testing.T) {
	tests := []struct {
		zoom float64
		want float64
	}{
		{0.05, 10},
		{0.1, 5},
		{0.3, 5},
		{0.5, 1},
		{1, 0.5},
		{1.9, 0.5},
		{2, 0.2},
		{10, 0.2},
	}
	for _, tt := range tests {
		if got := GridStep(tt.zoom); got != tt.want {
			t.Errorf("GridStep(%v) = %v, want %v", tt.zoom, got, tt.want)
		}
	}
}

func TestFormatTick(t *testing.T) {
	tests := map[float64]string{
		1:                  "1",
		-2:                 "-2",
		0.2:                "0.2",
		0.6000000000000001: "0.6",
		1.23456:            "1.235",
		-0.5:               "-0.5",
	}
	for in, want := range tests {
		if got := FormatTick(in); got != want {
			t.Errorf("FormatTick(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestReadoutBox(t *testing.T) {
	tests := []struct {
		name   string
		cursor geometry.Vec
		want   geometry.Vec
	}{
		{"offset", geometry.V(100, 100), geometry.V(120, 80)},
		{"top edge", geometry.V(10, 10), geometry.V(30, 40)},
		{"bottom right", geometry.V(390, 295), geometry.V(275, 265)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReadoutBox(tt.cursor, 100, 20, 400, 300)
			if got != tt.want {
				t.Errorf("ReadoutBox = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDashSegments(t *testing.T) {
	segs := DashSegments(geometry.V(0, 0), geometry.V(22, 0), []float64{5, 5})
	if len(segs) != 3 {
		t.Fatalf("segments = %v", segs)
	}
	last := segs[2]
	if last[0].X != 20 || last[1].X != 22 {
		t.Errorf("last segment = %v", last)
	}

	solid := DashSegments(geometry.V(0, 0), geometry.V(3, 4), nil)
	if len(solid) != 1 || solid[0][1] != geometry.V(3, 4) {
		t.Errorf("solid = %v", solid)
	}
}

func TestFunctionColorWraps(t *testing.T) {
	if FunctionColor(8) != Palette[0] || FunctionColor(9) != Palette[1] {
		t.Error("palette does not wrap at 8")
	}
}

// ============================================================
// Painting
// ============================================================

type op struct {
	kind  string
	color color.RGBA
	dash  bool
}

type recorder struct {
	w, h float64
	ops  []op
}

func (r *recorder) Size() (float64, float64) { return r.w, r.h }
func (r *recorder) Clear(c color.RGBA)        { r.ops = append(r.ops, op{kind: "clear", color: c}) }
func (r *recorder) Line(a, b geometry.Vec, pen Pen) {
	r.ops = append(r.ops, op{kind: "line", color: pen.Color, dash: len(pen.Dash) > 0})
}
func (r *recorder) Polyline(points []geometry.Vec, closed bool, pen Pen) {
	r.ops = append(r.ops, op{kind: "polyline", color: pen.Color})
}
func (r *recorder) FillCircle(center geometry.Vec, radius float64, c color.RGBA) {
	r.ops = append(r.ops, op{kind: "fill_circle", color: c})
}
func (r *recorder) StrokeCircle(center geometry.Vec, radius float64, pen Pen) {
	r.ops = append(r.ops, op{kind: "stroke_circle", color: pen.Color})
}
func (r *recorder) FillRect(min geometry.Vec, w, h float64, c color.RGBA) {
	r.ops = append(r.ops, op{kind: "fill_rect", color: c})
}
func (r *recorder) StrokeRect(min geometry.Vec, w, h float64, pen Pen) {
	r.ops = append(r.ops, op{kind: "stroke_rect", color: pen.Color})
}
func (r *recorder) Text(s string, pos geometry.Vec, f Font, c color.RGBA) {
	r.ops = append(r.ops, op{kind: "text:" + s, color: c})
}
func (r *recorder) MeasureText(s string, f Font) (float64, float64) {
	return float64(len(s)) * f.Size / 2, f.Size
}

func (r *recorder) count(kind string, c color.RGBA) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind && o.color == c {
			n++
		}
	}
	return n
}

func testFrame(t *testing.T) Frame {
	t.Helper()
	sc := scene.New()
	sc.AddPoint(geometry.V(1, 1))
	sc.AddObject(geometry.Line{A: geometry.V(-1, 0), B: geometry.V(1, 1), Infinite: true})
	sc.AddObject(geometry.Circle{Center: geometry.V(2, 2), Radius: 1})
	sc.AddObject(geometry.Text{Pos: geometry.V(0, 3), Content: "a<b", Size: 12})
	if _, err := sc.Functions.Add("x"); err != nil {
		t.Fatal(err)
	}
	return Frame{Camera: *geometry.NewCamera(400, 300), Scene: sc, GridVisible: true}
}

func TestPaintOrder(t *testing.T) {
	f := testFrame(t)
	f.Pending = construct.Pending{
		Tool:     construct.ToolPolygon,
		Vertices: []geometry.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}},
	}
	f.Snap = &snap.Candidate{Pos: geometry.V(1, 1), Kind: snap.KindPoint}
	cursor := geometry.V(250, 100)
	f.Cursor = &cursor

	r := &recorder{w: 400, h: 300}
	NewPainter().Paint(r, f)

	if r.ops[0].kind != "clear" {
		t.Errorf("first op = %q, want clear", r.ops[0].kind)
	}
	last := r.ops[len(r.ops)-1]
	if last.kind != "text:x: 1.00, y: 1.00" {
		t.Errorf("last op = %q, want the cursor readout", last.kind)
	}

	if r.count("polyline", FunctionColor(0)) == 0 {
		t.Error("function curve not drawn")
	}
	if r.count("fill_circle", Red) != 1 {
		t.Error("circle centre not drawn")
	}
	if r.count("fill_circle", PendingFill) != 2 {
		t.Error("pending vertices not drawn")
	}
	if r.count("stroke_circle", SnapRing) != 1 {
		t.Error("snap ring not drawn")
	}

	dashed := 0
	for _, o := range r.ops {
		if o.dash {
			dashed++
		}
	}
	if dashed != 1 {
		t.Errorf("dashed lines = %d, want 1", dashed)
	}
}

func TestPaintWithoutGrid(t *testing.T) {
	f := testFrame(t)
	f.GridVisible = false

	r := &recorder{w: 400, h: 300}
	NewPainter().Paint(r, f)

	if n := r.count("line", GridGrey); n != 0 {
		t.Errorf("grid lines = %d with grid hidden", n)
	}
}

func TestSVG(t *testing.T) {
	out := NewPainter().SVGString(testFrame(t), 400, 300)

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`viewBox="0 0 400 300"`,
		`stroke-dasharray="5,5"`,
		`fill="rgb(255,0,0)"`,
		`stroke="rgb(40,200,40)"`,
		`stroke="rgb(200,200,200)"`,
		`>a&lt;b</text>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("svg lacks %s", want)
		}
	}
	if !strings.HasSuffix(out, "</svg>") {
		t.Error("svg not closed")
	}
}

func TestSVGPointPosition(t *testing.T) {
	sc := scene.New()
	sc.AddPoint(geometry.V(1, 1))
	f := Frame{Camera: *geometry.NewCamera(400, 300), Scene: sc}

	out := NewPainter().SVGString(f, 400, 300)
	if !strings.Contains(out, `<circle cx="250" cy="100" r="4" fill="rgb(0,0,0)" />`) {
		t.Errorf("point not at (250,100):\n%s", out)
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPainter().WritePNG(&buf, testFrame(t), 160, 120); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dx() != 160 || b.Dy() != 120 {
		t.Errorf("size = %dx%d", b.Dx(), b.Dy())
	}

	if _, err := NewRaster(0, 10); err == nil {
		t.Error("zero-width raster accepted")
	}
}

func TestPaintResizesCamera(t *testing.T) {
	sc := scene.New()
	sc.AddPoint(geometry.V(0, 0))
	cam := geometry.NewCamera(1200, 800)
	cam.Zoom = math.Pow(1.2, 2)

	out := NewPainter().SVGString(Frame{Camera: *cam, Scene: sc}, 200, 100)
	if !strings.Contains(out, `cx="100" cy="50"`) {
		t.Error("origin not centred on the export size")
	}
}
