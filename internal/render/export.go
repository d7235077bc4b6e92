package render

import (
	"fmt"
	"io"

	"geoboard/internal/engine"
	"geoboard/internal/project"
)

// ============================================================
// One-shot export
// ============================================================

// SVGString paints f onto a fresh SVG surface of the given size.
func (p *Painter) SVGString(f Frame, width, height float64) string {
	svg := NewSVG(width, height)
	p.Paint(svg, f)
	return svg.Render()
}

// WritePNG paints f onto a fresh raster and encodes it to w.
func (p *Painter) WritePNG(w io.Writer, f Frame, width, height int) error {
	raster, err := NewRaster(width, height)
	if err != nil {
		return err
	}
	defer raster.Close()

	p.Paint(raster, f)
	if err := raster.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// DocumentFrame строит кадр из сохранённого документа без живой сессии.
// Масштаб ограничивается так же, как при загрузке в движок.
func DocumentFrame(doc project.Document, cfg engine.Config, grid bool) (Frame, project.LoadReport) {
	e := engine.New(cfg, engine.Options{})
	report := e.Restore(doc)
	e.SetGridVisible(grid)
	return FromEngine(e), report
}
