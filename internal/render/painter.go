package render

import (
	"fmt"
	"math"
	"strconv"

	"geoboard/internal/construct"
	"geoboard/internal/engine"
	"geoboard/internal/function"
	"geoboard/internal/geometry"
	"geoboard/internal/scene"
	"geoboard/internal/snap"
)

// ============================================================
// Frame
// ============================================================

// Frame is everything one drawing pass reads. Cursor is in screen pixels.
type Frame struct {
	Camera      geometry.Camera
	Scene       *scene.Scene
	Pending     construct.Pending
	Snap        *snap.Candidate
	Cursor      *geometry.Vec
	GridVisible bool
}

// FromEngine снимает кадр с движка. Сцена передаётся по указателю и
// только читается.
func FromEngine(e *engine.Engine) Frame {
	f := Frame{
		Camera:      e.Camera(),
		Scene:       e.Scene(),
		Pending:     e.Pending(),
		GridVisible: e.GridVisible(),
	}
	if c, ok := e.SnapPreview(); ok {
		f.Snap = &c
	}
	if cur, ok := e.Cursor(); ok {
		f.Cursor = &cur
	}
	return f
}

// ============================================================
// Painter
// ============================================================

const (
	pointRadius        = 4
	centerRadius       = 3
	pendingRadius      = 6
	snapRadius         = 10
	labelFontSize      = 8
	readoutFontSize    = 14
	infiniteExtension  = 3
	minExtensionLength = 0.1
	maxGridLines       = 10000
)

type Painter struct {
	// Samples is the number of x positions evaluated per function.
	Samples int
	// Readout formats the cursor coordinates, e.g. through a Localizer.
	Readout func(x, y float64) string
}

func NewPainter() *Painter {
	return &Painter{
		Samples: function.RenderSamples,
		Readout: func(x, y float64) string {
			return fmt.Sprintf("x: %.2f, y: %.2f", x, y)
		},
	}
}

// Paint рисует кадр целиком. Камера подгоняется под размер surface, смещение
// и масштаб сохраняются.
func (p *Painter) Paint(s Surface, f Frame) {
	cam := f.Camera
	w, h := s.Size()
	cam.Resize(w, h)

	s.Clear(White)

	if f.GridVisible {
		p.drawGrid(s, &cam)
	}

	if f.Scene != nil {
		p.drawFunctions(s, &cam, f.Scene.Functions)
		for _, o := range f.Scene.Objects {
			p.drawObject(s, &cam, o)
		}
	}

	if f.Pending.Preview != nil {
		p.drawObject(s, &cam, f.Pending.Preview)
	}

	if f.Scene != nil {
		for _, pt := range f.Scene.Points {
			s.FillCircle(cam.WorldToScreen(pt), pointRadius, Black)
		}
	}

	p.drawPending(s, &cam, f.Pending)

	if f.Snap != nil {
		c := cam.WorldToScreen(f.Snap.Pos)
		s.FillCircle(c, snapRadius, SnapFill)
		s.StrokeCircle(c, snapRadius, Pen{Color: SnapRing, Width: 2})
		s.FillCircle(c, 1.5, SnapDot)
	}

	if f.Cursor != nil {
		p.drawReadout(s, &cam, *f.Cursor)
	}
}

// ============================================================
// Grid
// ============================================================

// GridStep returns the world distance between grid lines at a zoom level.
func GridStep(zoom float64) float64 {
	switch {
	case zoom < 0.1:
		return 10
	case zoom < 0.5:
		return 5
	case zoom < 1:
		return 1
	case zoom < 2:
		return 0.5
	default:
		return 0.2
	}
}

// FormatTick renders a grid label: integers without decimals, anything
// else rounded to three places.
func FormatTick(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == math.Trunc(r) {
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func (p *Painter) drawGrid(s Surface, cam *geometry.Camera) {
	left, right, bottom, top := cam.VisibleRange()
	step := GridStep(cam.Zoom)
	origin := cam.WorldToScreen(geometry.Vec{})
	font := Font{Size: labelFontSize}
	grid := Pen{Color: GridGrey, Width: 1}

	startX := math.Floor(left/step) * step
	endX := math.Ceil(right/step) * step
	for i := 0; i < maxGridLines; i++ {
		x := startX + float64(i)*step
		if x > endX+step/2 {
			break
		}
		sx := cam.WorldToScreen(geometry.Vec{X: x}).X
		s.Line(geometry.V(sx, 0), geometry.V(sx, cam.Height), grid)
		if math.Abs(x) > step/2 {
			p.drawLabel(s, FormatTick(x), sx+5, origin.Y+5, font)
		}
	}

	startY := math.Floor(bottom/step) * step
	endY := math.Ceil(top/step) * step
	for i := 0; i < maxGridLines; i++ {
		y := startY + float64(i)*step
		if y > endY+step/2 {
			break
		}
		sy := cam.WorldToScreen(geometry.Vec{Y: y}).Y
		s.Line(geometry.V(0, sy), geometry.V(cam.Width, sy), grid)
		if math.Abs(y) > step/2 {
			p.drawLabel(s, FormatTick(y), origin.X+5, sy-10, font)
		}
	}

	axis := Pen{Color: Black, Width: 2}
	s.Line(geometry.V(0, origin.Y), geometry.V(cam.Width, origin.Y), axis)
	s.Line(geometry.V(origin.X, 0), geometry.V(origin.X, cam.Height), axis)

	s.Text("X", geometry.V(cam.Width-20, origin.Y-5), font, Black)
	s.Text("Y", geometry.V(origin.X+5, 15), font, Black)
}

// drawLabel places text left-aligned and vertically centred in a 20px
// box whose top-left corner is (x, top).
func (p *Painter) drawLabel(s Surface, text string, x, top float64, f Font) {
	_, h := s.MeasureText(text, f)
	s.Text(text, geometry.V(x, top+10+0.3*h), f, Black)
}

// ============================================================
// Functions and objects
// ============================================================

func (p *Painter) drawFunctions(s Surface, cam *geometry.Camera, reg *function.Registry) {
	if reg == nil {
		return
	}
	left, right, _, _ := cam.VisibleRange()
	for _, fn := range reg.Visible() {
		pen := Pen{Color: FunctionColor(fn.Index), Width: 2}
		for _, seg := range function.Trace(fn.Fn, left, right, p.Samples) {
			pts := make([]geometry.Vec, len(seg))
			for i, w := range seg {
				pts[i] = cam.WorldToScreen(w)
			}
			s.Polyline(pts, false, pen)
		}
	}
}

func (p *Painter) drawObject(s Surface, cam *geometry.Camera, o geometry.Object) {
	solid := Pen{Color: Black, Width: 2}

	switch obj := o.(type) {
	case geometry.Point:
		s.FillCircle(cam.WorldToScreen(obj.Pos), pointRadius, Black)

	case geometry.Line:
		a, b := cam.WorldToScreen(obj.A), cam.WorldToScreen(obj.B)
		s.Line(a, b, solid)
		if obj.Infinite {
			p.drawExtension(s, cam, a, b)
		}

	case geometry.Circle:
		c := cam.WorldToScreen(obj.Center)
		s.StrokeCircle(c, obj.Radius*cam.GridSize(), solid)
		s.FillCircle(c, centerRadius, Red)

	case geometry.Polygon:
		pts := make([]geometry.Vec, len(obj.Vertices))
		for i, v := range obj.Vertices {
			pts[i] = cam.WorldToScreen(v)
		}
		s.Polyline(pts, true, solid)

	case geometry.Angle:
		v := cam.WorldToScreen(obj.Vertex)
		s.Line(v, cam.WorldToScreen(obj.Point1), solid)
		s.Line(v, cam.WorldToScreen(obj.Point2), solid)

	case geometry.Text:
		size := obj.Size
		if size <= 0 {
			size = geometry.DefaultTextSize
		}
		s.Text(obj.Content, cam.WorldToScreen(obj.Pos), Font{Size: float64(size)}, Black)
	}
}

// drawExtension рисует пунктирное продолжение бесконечной линии далеко за
// пределы экрана в обе стороны.
func (p *Painter) drawExtension(s Surface, cam *geometry.Camera, a, b geometry.Vec) {
	d := b.Sub(a)
	if math.Abs(d.X) <= minExtensionLength && math.Abs(d.Y) <= minExtensionLength {
		return
	}
	dir := d.Scale(1 / d.Len())
	ext := math.Max(cam.Width, cam.Height) * infiniteExtension
	s.Line(a.Sub(dir.Scale(ext)), b.Add(dir.Scale(ext)), Pen{Color: Black, Width: 1, Dash: []float64{5, 5}})
}

func (p *Painter) drawPending(s Surface, cam *geometry.Camera, pend construct.Pending) {
	var marks []geometry.Vec
	switch pend.Tool {
	case construct.ToolAngle:
		marks = pend.AnglePoints
	case construct.ToolPolygon:
		marks = pend.Vertices
	default:
		return
	}

	pts := make([]geometry.Vec, len(marks))
	for i, m := range marks {
		pts[i] = cam.WorldToScreen(m)
		s.FillCircle(pts[i], pendingRadius, PendingFill)
		s.StrokeCircle(pts[i], pendingRadius, Pen{Color: PendingPen, Width: 3})
	}

	if pend.Tool == construct.ToolPolygon && len(pts) > 1 {
		s.Polyline(pts, true, Pen{Color: Black, Width: 1})
	}
}

// ============================================================
// Cursor readout
// ============================================================

// ReadoutBox returns the top-left corner of the readout label for a text
// of the given size, kept inside the viewport.
func ReadoutBox(cursor geometry.Vec, textW, textH, width, height float64) geometry.Vec {
	x := cursor.X + 20
	y := cursor.Y - 20
	if x+textW+20 > width {
		x = width - textW - 25
	}
	if y < 0 {
		y = cursor.Y + 30
	}
	if y+textH+10 > height {
		y = height - textH - 15
	}
	return geometry.V(x, y)
}

func (p *Painter) drawReadout(s Surface, cam *geometry.Camera, cursor geometry.Vec) {
	world := cam.ScreenToWorld(cursor)
	text := p.Readout(world.X, world.Y)
	font := Font{Size: readoutFontSize, Bold: true}

	tw, th := s.MeasureText(text, font)
	box := ReadoutBox(cursor, tw, th, cam.Width, cam.Height)
	bw, bh := tw+16, th+8

	s.FillRect(box, bw, bh, White)
	s.StrokeRect(box, bw, bh, Pen{Color: Black, Width: 3})
	s.Text(text, geometry.V(box.X+8, box.Y+bh/2+0.3*th), font, Black)
}
