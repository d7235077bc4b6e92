package widget

import (
	"image/color"

	"geoboard/internal/function"
	"geoboard/internal/render"
)

// ============================================================
// Function panel
// ============================================================

type Hit int

const (
	HitNone Hit = iota
	HitInput
	HitAdd
	HitToggle
	HitDelete
)

// FunctionRow is one plotted function in the list.
type FunctionRow struct {
	Index   int
	Label   string
	Color   color.RGBA
	Visible bool

	Row    Rect
	Toggle Rect
	Delete Rect
}

// FunctionPanel holds the entry line, the Add button and the function
// list. Rows beyond the panel height are not laid out.
type FunctionPanel struct {
	Field  Field
	Bounds Rect
	Input  Rect
	Add    Rect
	Title  Rect
	Rows   []FunctionRow
}

// Layout places the panel inside bounds. addWidth is the measured width of
// the Add button label.
func (p *FunctionPanel) Layout(bounds Rect, fns []*function.Function, addWidth int) {
	p.Bounds = bounds
	inner := bounds.W - 2*padding

	addW := addWidth + 2*padding
	p.Input = Rect{X: bounds.X + padding, Y: bounds.Y + padding, W: max(inner-addW-padding, 0), H: buttonHeight}
	p.Add = Rect{X: p.Input.X + p.Input.W + padding, Y: p.Input.Y, W: addW, H: buttonHeight}
	p.Title = Rect{X: bounds.X + padding, Y: p.Input.Y + buttonHeight + padding, W: inner, H: rowHeight}

	p.Rows = p.Rows[:0]
	y := p.Title.Y + rowHeight
	for _, fn := range fns {
		if y+rowHeight > bounds.Y+bounds.H {
			break
		}
		row := Rect{X: bounds.X + padding, Y: y, W: inner, H: rowHeight}
		iconY := y + (rowHeight-iconSize)/2
		p.Rows = append(p.Rows, FunctionRow{
			Index:   fn.Index,
			Label:   "y = " + fn.Source,
			Color:   render.FunctionColor(fn.Index),
			Visible: fn.Visible,
			Row:     row,
			Toggle:  Rect{X: row.X, Y: iconY, W: iconSize, H: iconSize},
			Delete:  Rect{X: row.X + row.W - iconSize, Y: iconY, W: iconSize, H: iconSize},
		})
		y += rowHeight
	}
}

// HitTest reports which control is under (x, y). index is the function
// index for row controls.
func (p *FunctionPanel) HitTest(x, y int) (hit Hit, index int) {
	switch {
	case p.Input.Contains(x, y):
		return HitInput, 0
	case p.Add.Contains(x, y):
		return HitAdd, 0
	}
	for _, row := range p.Rows {
		if row.Toggle.Contains(x, y) {
			return HitToggle, row.Index
		}
		if row.Delete.Contains(x, y) {
			return HitDelete, row.Index
		}
	}
	return HitNone, 0
}

// Invalid reports whether the entry line fails the pre-compile check.
// An empty line is not invalid.
func (p *FunctionPanel) Invalid() bool {
	text := p.Field.Text()
	return text != "" && !function.ValidateInput(text)
}

// Row returns the row of function index.
func (p *FunctionPanel) Row(index int) (FunctionRow, bool) {
	for _, row := range p.Rows {
		if row.Index == index {
			return row, true
		}
	}
	return FunctionRow{}, false
}
