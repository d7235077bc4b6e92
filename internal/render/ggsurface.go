package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"geoboard/internal/geometry"
)

// ============================================================
// Raster surface (gogpu/gg)
// ============================================================

// Raster рисует кадр в растровый буфер gg. Ошибки отрисовки не прерывают
// кадр: запоминается первая, EncodePNG её возвращает.
type Raster struct {
	dc      *gg.Context
	regular *text.FontSource
	bold    *text.FontSource
	faces   map[Font]text.Face
	err     error
}

func NewRaster(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}

	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}

	return &Raster{
		dc:      gg.NewContext(width, height),
		regular: regular,
		bold:    bold,
		faces:   make(map[Font]text.Face),
	}, nil
}

func (r *Raster) Size() (float64, float64) {
	return float64(r.dc.Width()), float64(r.dc.Height())
}

func (r *Raster) Clear(c color.RGBA) {
	r.dc.ClearWithColor(toGG(c))
}

func (r *Raster) Line(a, b geometry.Vec, pen Pen) {
	r.setPen(pen)
	r.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	r.check(r.dc.Stroke())
}

func (r *Raster) Polyline(points []geometry.Vec, closed bool, pen Pen) {
	if len(points) < 2 {
		return
	}
	r.setPen(pen)
	r.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	if closed {
		r.dc.ClosePath()
	}
	r.check(r.dc.Stroke())
}

func (r *Raster) FillCircle(center geometry.Vec, radius float64, c color.RGBA) {
	r.setColor(c)
	r.dc.DrawCircle(center.X, center.Y, radius)
	r.check(r.dc.Fill())
}

func (r *Raster) StrokeCircle(center geometry.Vec, radius float64, pen Pen) {
	r.setPen(pen)
	r.dc.DrawCircle(center.X, center.Y, radius)
	r.check(r.dc.Stroke())
}

func (r *Raster) FillRect(min geometry.Vec, w, h float64, c color.RGBA) {
	r.setColor(c)
	r.dc.DrawRectangle(min.X, min.Y, w, h)
	r.check(r.dc.Fill())
}

func (r *Raster) StrokeRect(min geometry.Vec, w, h float64, pen Pen) {
	r.setPen(pen)
	r.dc.DrawRectangle(min.X, min.Y, w, h)
	r.check(r.dc.Stroke())
}

func (r *Raster) Text(s string, pos geometry.Vec, f Font, c color.RGBA) {
	r.dc.SetFont(r.face(f))
	r.setColor(c)
	r.dc.DrawString(s, pos.X, pos.Y)
}

func (r *Raster) MeasureText(s string, f Font) (float64, float64) {
	r.dc.SetFont(r.face(f))
	return r.dc.MeasureString(s)
}

// EncodePNG пишет буфер в w в формате PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if r.err != nil {
		return fmt.Errorf("draw: %w", r.err)
	}
	return r.dc.EncodePNG(w)
}

func (r *Raster) Close() error {
	return r.dc.Close()
}

// ============================================================
// Helpers
// ============================================================

func (r *Raster) face(f Font) text.Face {
	if face, ok := r.faces[f]; ok {
		return face
	}
	src := r.regular
	if f.Bold {
		src = r.bold
	}
	face := src.Face(f.Size)
	r.faces[f] = face
	return face
}

func (r *Raster) setColor(c color.RGBA) {
	r.dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

func (r *Raster) setPen(pen Pen) {
	r.setColor(pen.Color)
	r.dc.SetLineWidth(pen.Width)
	if len(pen.Dash) > 0 {
		r.dc.SetDash(pen.Dash...)
	} else {
		r.dc.ClearDash()
	}
}

func (r *Raster) check(err error) {
	if err != nil && r.err == nil {
		r.err = err
	}
}

// Colors in this package carry straight alpha.
func toGG(c color.RGBA) gg.RGBA {
	return gg.RGBA2(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}
