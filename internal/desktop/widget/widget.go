package widget

import "unicode"

// ============================================================
// Layout
// ============================================================

const (
	ToolbarHeight = 40
	PanelWidth    = 280

	padding      = 6
	buttonHeight = 28
	rowHeight    = 26
	iconSize     = 18
)

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Canvas is the drawing area of a window: everything below the toolbar
// and left of the function panel.
func Canvas(width, height int) Rect {
	return Rect{X: 0, Y: ToolbarHeight, W: max(width-PanelWidth, 0), H: max(height-ToolbarHeight, 0)}
}

// Panel is the function panel on the right edge of the window.
func Panel(width, height int) Rect {
	x := max(width-PanelWidth, 0)
	return Rect{X: x, Y: ToolbarHeight, W: width - x, H: max(height-ToolbarHeight, 0)}
}

// Measure returns the pixel width of a label.
type Measure func(s string) int

// ============================================================
// Text field
// ============================================================

const maxFieldLen = 256

// Field is a single-line text input. The caret is always at the end.
type Field struct {
	runes   []rune
	Focused bool
}

func (f *Field) Text() string {
	return string(f.runes)
}

func (f *Field) Set(s string) {
	f.runes = []rune(s)
	if len(f.runes) > maxFieldLen {
		f.runes = f.runes[:maxFieldLen]
	}
}

func (f *Field) Clear() {
	f.runes = f.runes[:0]
}

// Insert appends printable runes and drops control characters.
func (f *Field) Insert(rs []rune) {
	for _, r := range rs {
		if len(f.runes) >= maxFieldLen {
			return
		}
		if unicode.IsControl(r) {
			continue
		}
		f.runes = append(f.runes, r)
	}
}

func (f *Field) Backspace() {
	if n := len(f.runes); n > 0 {
		f.runes = f.runes[:n-1]
	}
}
