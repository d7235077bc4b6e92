package render

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"unicode/utf8"

	"geoboard/internal/geometry"
)

// ============================================================
// SVG surface
// ============================================================

// SVG накапливает элементы и собирает из них документ в Render.
type SVG struct {
	width    float64
	height   float64
	elements []string
}

func NewSVG(width, height float64) *SVG {
	return &SVG{width: width, height: height}
}

func (s *SVG) Size() (float64, float64) {
	return s.width, s.height
}

// Render собирает SVG из накопленных элементов.
func (s *SVG) Render() string {
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(s.width), formatFloat(s.height), formatFloat(s.width), formatFloat(s.height)))
	builder.WriteString("\n")

	for _, elem := range s.elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String()
}

func (s *SVG) Clear(c color.RGBA) {
	s.elements = s.elements[:0]
	s.elements = append(s.elements, fmt.Sprintf(`<rect x="0" y="0" width="%s" height="%s" %s />`,
		formatFloat(s.width), formatFloat(s.height), fillAttr(c)))
}

func (s *SVG) Line(a, b geometry.Vec, pen Pen) {
	s.elements = append(s.elements, fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" %s />`,
		formatFloat(a.X), formatFloat(a.Y), formatFloat(b.X), formatFloat(b.Y), strokeAttr(pen)))
}

func (s *SVG) Polyline(points []geometry.Vec, closed bool, pen Pen) {
	if len(points) < 2 {
		return
	}

	var path strings.Builder
	path.WriteString(`<path d="M `)
	path.WriteString(formatPoint(points[0]))
	for _, p := range points[1:] {
		path.WriteString(" L ")
		path.WriteString(formatPoint(p))
	}
	if closed {
		path.WriteString(" Z")
	}
	path.WriteString(`" fill="none" `)
	path.WriteString(strokeAttr(pen))
	path.WriteString(` />`)

	s.elements = append(s.elements, path.String())
}

func (s *SVG) FillCircle(center geometry.Vec, r float64, c color.RGBA) {
	s.elements = append(s.elements, fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" %s />`,
		formatFloat(center.X), formatFloat(center.Y), formatFloat(r), fillAttr(c)))
}

func (s *SVG) StrokeCircle(center geometry.Vec, r float64, pen Pen) {
	s.elements = append(s.elements, fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="none" %s />`,
		formatFloat(center.X), formatFloat(center.Y), formatFloat(r), strokeAttr(pen)))
}

func (s *SVG) FillRect(min geometry.Vec, w, h float64, c color.RGBA) {
	s.elements = append(s.elements, fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" %s />`,
		formatFloat(min.X), formatFloat(min.Y), formatFloat(w), formatFloat(h), fillAttr(c)))
}

func (s *SVG) StrokeRect(min geometry.Vec, w, h float64, pen Pen) {
	s.elements = append(s.elements, fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="none" %s />`,
		formatFloat(min.X), formatFloat(min.Y), formatFloat(w), formatFloat(h), strokeAttr(pen)))
}

func (s *SVG) Text(text string, pos geometry.Vec, f Font, c color.RGBA) {
	weight := ""
	if f.Bold {
		weight = ` font-weight="bold"`
	}

	var escaped strings.Builder
	_ = xml.EscapeText(&escaped, []byte(text))

	s.elements = append(s.elements, fmt.Sprintf(`<text x="%s" y="%s" font-family="sans-serif" font-size="%s"%s %s>%s</text>`,
		formatFloat(pos.X), formatFloat(pos.Y), formatFloat(f.Size), weight, fillAttr(c), escaped.String()))
}

// MeasureText оценивает размер по средней ширине глифа: SVG не знает, каким
// шрифтом его отрисует просмотрщик.
func (s *SVG) MeasureText(text string, f Font) (float64, float64) {
	advance := 0.55
	if f.Bold {
		advance = 0.6
	}
	return float64(utf8.RuneCountInString(text)) * f.Size * advance, f.Size * 1.2
}

// ============================================================
// Formatting helpers
// ============================================================

func colorValue(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func fillAttr(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf(`fill="%s"`, colorValue(c))
	}
	return fmt.Sprintf(`fill="%s" fill-opacity="%s"`, colorValue(c), formatAlpha(c.A))
}

func strokeAttr(pen Pen) string {
	attr := fmt.Sprintf(`stroke="%s" stroke-width="%s"`, colorValue(pen.Color), formatFloat(pen.Width))
	if pen.Color.A != 255 {
		attr += ` stroke-opacity="` + formatAlpha(pen.Color.A) + `"`
	}
	if len(pen.Dash) > 0 {
		parts := make([]string, len(pen.Dash))
		for i, d := range pen.Dash {
			parts[i] = formatFloat(d)
		}
		attr += ` stroke-dasharray="` + strings.Join(parts, ",") + `"`
	}
	return attr
}

func formatAlpha(a uint8) string {
	return strconv.FormatFloat(float64(a)/255, 'f', 3, 64)
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func formatPoint(p geometry.Vec) string {
	return formatFloat(p.X) + " " + formatFloat(p.Y)
}
