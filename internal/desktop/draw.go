package desktop

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"geoboard/internal/desktop/widget"
	"geoboard/internal/geometry"
	"geoboard/internal/render"
)

// ============================================================
// Draw
// ============================================================

var (
	uiFont    = render.Font{Size: 14}
	titleFont = render.Font{Size: 15, Bold: true}

	barColor      = color.RGBA{235, 235, 238, 255}
	buttonColor   = color.RGBA{250, 250, 250, 255}
	activeColor   = color.RGBA{200, 225, 255, 255}
	borderColor   = color.RGBA{160, 160, 170, 255}
	focusColor    = color.RGBA{0, 120, 215, 255}
	textColor     = color.RGBA{30, 30, 30, 255}
	mutedColor    = color.RGBA{140, 140, 140, 255}
	errorColor    = color.RGBA{200, 30, 30, 255}
	overlayColor  = color.RGBA{0, 0, 0, 90}
	promptBgColor = color.RGBA{245, 245, 245, 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	ui := &Screen{img: screen, fonts: g.fonts}
	ui.Clear(barColor)

	area := widget.Canvas(g.width, g.height)
	if g.canvas != nil {
		g.painter.Paint(&Screen{img: g.canvas, fonts: g.fonts}, render.FromEngine(g.engine))
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(area.X), float64(area.Y))
		screen.DrawImage(g.canvas, op)
	}

	g.drawToolbar(ui)
	g.drawPanel(ui)

	if g.prompt.Visible() {
		g.drawPrompt(ui, area)
	}
}

func (g *Game) drawToolbar(ui *Screen) {
	for _, b := range g.toolbar.Buttons {
		if b.Rect.Empty() {
			continue
		}
		active := false
		switch b.Action {
		case widget.ActionTool:
			active = g.engine.Tool() == b.Tool
		case widget.ActionGrid:
			active = g.engine.GridVisible()
		}
		drawButton(ui, b.Rect, b.Label, active)
	}
	ui.Line(geometry.V(0, widget.ToolbarHeight-0.5), geometry.V(float64(g.width), widget.ToolbarHeight-0.5),
		render.Pen{Color: borderColor, Width: 1})
}

func (g *Game) drawPanel(ui *Screen) {
	p := &g.panel
	ui.Line(geometry.V(float64(p.Bounds.X)+0.5, float64(p.Bounds.Y)), geometry.V(float64(p.Bounds.X)+0.5, float64(p.Bounds.Y+p.Bounds.H)),
		render.Pen{Color: borderColor, Width: 1})

	drawField(ui, p.Input, g.loc.Get("function_input")+p.Field.Text(), p.Field.Focused, p.Invalid())
	drawButton(ui, p.Add, g.loc.Get("function_add"), false)
	drawLabel(ui, p.Title, g.loc.Get("function_functions"), titleFont, textColor)

	for _, row := range p.Rows {
		if row.Visible {
			ui.FillRect(rectMin(row.Toggle), float64(row.Toggle.W), float64(row.Toggle.H), row.Color)
		}
		ui.StrokeRect(rectMin(row.Toggle), float64(row.Toggle.W), float64(row.Toggle.H), render.Pen{Color: row.Color, Width: 2})

		label := row.Label
		clr := textColor
		if !row.Visible {
			label += " (" + g.loc.Get("function_hidden") + ")"
			clr = mutedColor
		}
		labelRect := widget.Rect{X: row.Toggle.X + row.Toggle.W + 6, Y: row.Row.Y, W: row.Delete.X - row.Toggle.X - row.Toggle.W - 12, H: row.Row.H}
		drawLabel(ui, labelRect, label, uiFont, clr)

		d := row.Delete
		pen := render.Pen{Color: errorColor, Width: 2}
		ui.Line(geometry.V(float64(d.X+4), float64(d.Y+4)), geometry.V(float64(d.X+d.W-4), float64(d.Y+d.H-4)), pen)
		ui.Line(geometry.V(float64(d.X+d.W-4), float64(d.Y+4)), geometry.V(float64(d.X+4), float64(d.Y+d.H-4)), pen)
	}

	if g.status != "" && time.Now().Before(g.statusUntil) {
		status := widget.Rect{X: p.Bounds.X + 6, Y: p.Bounds.Y + p.Bounds.H - 28, W: p.Bounds.W - 12, H: 24}
		drawLabel(ui, status, g.status, uiFont, textColor)
	}
}

func (g *Game) drawPrompt(ui *Screen, area widget.Rect) {
	ui.FillRect(rectMin(area), float64(area.W), float64(area.H), overlayColor)

	l := g.prompt.Layout(area)
	ui.FillRect(rectMin(l.Box), float64(l.Box.W), float64(l.Box.H), promptBgColor)
	ui.StrokeRect(rectMin(l.Box), float64(l.Box.W), float64(l.Box.H), render.Pen{Color: borderColor, Width: 1})

	title := widget.Rect{X: l.Box.X + 12, Y: l.Box.Y + 8, W: l.Box.W - 24, H: 22}
	drawLabel(ui, title, g.loc.Get(g.prompt.Title), titleFont, textColor)
	prompt := widget.Rect{X: l.Box.X + 12, Y: l.Box.Y + 30, W: l.Box.W - 24, H: 22}
	drawLabel(ui, prompt, g.loc.Get(g.prompt.Prompt), uiFont, textColor)

	drawField(ui, l.Input, g.prompt.Field.Text(), true, g.prompt.Invalid)
	drawButton(ui, l.OK, g.loc.Get("dialog_ok"), true)
	drawButton(ui, l.Cancel, g.loc.Get("dialog_cancel"), false)
}

// ============================================================
// Widgets
// ============================================================

func drawButton(ui *Screen, r widget.Rect, label string, active bool) {
	bg := buttonColor
	if active {
		bg = activeColor
	}
	ui.FillRect(rectMin(r), float64(r.W), float64(r.H), bg)
	ui.StrokeRect(rectMin(r), float64(r.W), float64(r.H), render.Pen{Color: borderColor, Width: 1})

	w, h := ui.MeasureText(label, uiFont)
	x := float64(r.X) + (float64(r.W)-w)/2
	y := float64(r.Y) + (float64(r.H)+h)/2 - 3
	ui.Text(label, geometry.V(x, y), uiFont, textColor)
}

func drawField(ui *Screen, r widget.Rect, text string, focused, invalid bool) {
	ui.FillRect(rectMin(r), float64(r.W), float64(r.H), color.RGBA{255, 255, 255, 255})
	border := borderColor
	switch {
	case invalid:
		border = errorColor
	case focused:
		border = focusColor
	}
	ui.StrokeRect(rectMin(r), float64(r.W), float64(r.H), render.Pen{Color: border, Width: 1})

	if focused && time.Now().UnixMilli()/500%2 == 0 {
		text += "|"
	}
	drawLabel(ui, widget.Rect{X: r.X + 6, Y: r.Y, W: r.W - 12, H: r.H}, text, uiFont, textColor)
}

// drawLabel draws s vertically centered in r, cut from the left when it
// does not fit.
func drawLabel(ui *Screen, r widget.Rect, s string, f render.Font, c color.RGBA) {
	runes := []rune(s)
	w, h := ui.MeasureText(s, f)
	for len(runes) > 1 && w > float64(r.W) {
		runes = runes[1:]
		w, h = ui.MeasureText(string(runes), f)
	}
	ui.Text(string(runes), geometry.V(float64(r.X), float64(r.Y)+(float64(r.H)+h)/2-3), f, c)
}

func rectMin(r widget.Rect) geometry.Vec {
	return geometry.V(float64(r.X), float64(r.Y))
}
