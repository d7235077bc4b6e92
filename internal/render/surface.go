package render

import (
	"image/color"

	"geoboard/internal/geometry"
)

// ============================================================
// Drawing surface
// ============================================================

// Pen describes a stroke. A nil Dash draws a solid line.
type Pen struct {
	Color color.RGBA
	Width float64
	Dash  []float64
}

type Font struct {
	Size float64
	Bold bool
}

// Surface описывает абстрактный холст в пиксельных координатах. Painter рисует
// только через него, поэтому один и тот же кадр уходит в PNG, SVG или
// окно ebiten.
type Surface interface {
	Size() (width, height float64)
	Clear(c color.RGBA)
	Line(a, b geometry.Vec, pen Pen)
	// Polyline соединяет точки по порядку; closed добавляет замыкающий отрезок.
	Polyline(points []geometry.Vec, closed bool, pen Pen)
	FillCircle(center geometry.Vec, r float64, c color.RGBA)
	StrokeCircle(center geometry.Vec, r float64, pen Pen)
	FillRect(min geometry.Vec, w, h float64, c color.RGBA)
	StrokeRect(min geometry.Vec, w, h float64, pen Pen)
	// Text рисует строку; pos задаёт левую точку базовой линии.
	Text(s string, pos geometry.Vec, f Font, c color.RGBA)
	MeasureText(s string, f Font) (width, height float64)
}

// ============================================================
// Colors
// ============================================================

var (
	White       = color.RGBA{255, 255, 255, 255}
	Black       = color.RGBA{0, 0, 0, 255}
	Red         = color.RGBA{255, 0, 0, 255}
	GridGrey    = color.RGBA{200, 200, 200, 255}
	PendingPen  = color.RGBA{0, 150, 255, 255}
	PendingFill = color.RGBA{0, 150, 255, 100}
	SnapRing    = color.RGBA{255, 255, 0, 255}
	SnapFill    = color.RGBA{255, 255, 0, 50}
	SnapDot     = color.RGBA{255, 200, 0, 255}
)

// Palette colors functions by index mod len(Palette).
var Palette = []color.RGBA{
	{40, 200, 40, 255},  // green
	{255, 0, 0, 255},    // red
	{0, 100, 255, 255},  // blue
	{255, 165, 0, 255},  // orange
	{160, 32, 240, 255}, // purple
	{220, 20, 60, 255},  // crimson
	{0, 206, 209, 255},  // turquoise
	{184, 134, 11, 255}, // dark goldenrod
}

// FunctionColor returns the palette entry for a function index.
func FunctionColor(index int) color.RGBA {
	n := len(Palette)
	return Palette[((index%n)+n)%n]
}

// DashSegments splits a-b into the "on" pieces of a dash pattern. Surfaces
// without native dashing use it.
func DashSegments(a, b geometry.Vec, dash []float64) [][2]geometry.Vec {
	total := a.Dist(b)
	if len(dash) == 0 || total == 0 {
		return [][2]geometry.Vec{{a, b}}
	}
	var period float64
	for _, d := range dash {
		period += d
	}
	if period <= 0 {
		return [][2]geometry.Vec{{a, b}}
	}

	dir := b.Sub(a).Scale(1 / total)
	var out [][2]geometry.Vec
	pos, i := 0.0, 0
	for pos < total {
		l := dash[i%len(dash)]
		end := pos + l
		if end > total {
			end = total
		}
		if i%2 == 0 && end > pos {
			out = append(out, [2]geometry.Vec{a.Add(dir.Scale(pos)), a.Add(dir.Scale(end))})
		}
		pos = end
		i++
	}
	return out
}
