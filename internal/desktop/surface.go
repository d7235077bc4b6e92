package desktop

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"geoboard/internal/geometry"
	"geoboard/internal/render"
)

// ============================================================
// Fonts
// ============================================================

type fontBank struct {
	regular *opentype.Font
	bold    *opentype.Font
	cache   map[render.Font]font.Face
}

func newFontBank() (*fontBank, error) {
	reg, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &fontBank{regular: reg, bold: bold, cache: make(map[render.Font]font.Face)}, nil
}

// face returns a cached face. basicfont stands in if a face cannot be built.
func (b *fontBank) face(f render.Font) font.Face {
	if face, ok := b.cache[f]; ok {
		return face
	}
	base := b.regular
	if f.Bold {
		base = b.bold
	}
	face, err := opentype.NewFace(base, &opentype.FaceOptions{Size: f.Size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	b.cache[f] = face
	return face
}

func (b *fontBank) measure(s string, f render.Font) (float64, float64) {
	face := b.face(f)
	m := face.Metrics()
	return float64(font.MeasureString(face, s).Ceil()), float64((m.Ascent + m.Descent).Ceil())
}

// ============================================================
// Screen surface
// ============================================================

// Screen draws a render frame onto an ebiten image.
type Screen struct {
	img   *ebiten.Image
	fonts *fontBank
}

var _ render.Surface = (*Screen)(nil)

func (s *Screen) Size() (float64, float64) {
	size := s.img.Bounds().Size()
	return float64(size.X), float64(size.Y)
}

func (s *Screen) Clear(c color.RGBA) {
	s.img.Fill(straight(c))
}

func (s *Screen) Line(a, b geometry.Vec, pen render.Pen) {
	clr := straight(pen.Color)
	for _, seg := range render.DashSegments(a, b, pen.Dash) {
		vector.StrokeLine(s.img, f32(seg[0].X), f32(seg[0].Y), f32(seg[1].X), f32(seg[1].Y), f32(pen.Width), clr, true)
	}
}

func (s *Screen) Polyline(points []geometry.Vec, closed bool, pen render.Pen) {
	if len(points) < 2 {
		return
	}
	for i := 1; i < len(points); i++ {
		s.Line(points[i-1], points[i], pen)
	}
	if closed {
		s.Line(points[len(points)-1], points[0], pen)
	}
}

func (s *Screen) FillCircle(center geometry.Vec, r float64, c color.RGBA) {
	vector.DrawFilledCircle(s.img, f32(center.X), f32(center.Y), f32(r), straight(c), true)
}

// StrokeCircle falls back to a polygon when the pen is dashed.
func (s *Screen) StrokeCircle(center geometry.Vec, r float64, pen render.Pen) {
	if len(pen.Dash) == 0 {
		vector.StrokeCircle(s.img, f32(center.X), f32(center.Y), f32(r), f32(pen.Width), straight(pen.Color), true)
		return
	}
	n := max(int(2*math.Pi*r/4), 16)
	pts := make([]geometry.Vec, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geometry.V(center.X+r*math.Cos(a), center.Y+r*math.Sin(a))
	}
	s.Polyline(pts, true, pen)
}

func (s *Screen) FillRect(min geometry.Vec, w, h float64, c color.RGBA) {
	vector.DrawFilledRect(s.img, f32(min.X), f32(min.Y), f32(w), f32(h), straight(c), false)
}

func (s *Screen) StrokeRect(min geometry.Vec, w, h float64, pen render.Pen) {
	vector.StrokeRect(s.img, f32(min.X), f32(min.Y), f32(w), f32(h), f32(pen.Width), straight(pen.Color), false)
}

func (s *Screen) Text(str string, pos geometry.Vec, f render.Font, c color.RGBA) {
	text.Draw(s.img, str, s.fonts.face(f), int(math.Round(pos.X)), int(math.Round(pos.Y)), straight(c))
}

func (s *Screen) MeasureText(str string, f render.Font) (float64, float64) {
	return s.fonts.measure(str, f)
}

// render colors carry straight alpha; ebiten reads color.RGBA as
// premultiplied.
func straight(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func f32(v float64) float32 {
	return float32(v)
}
