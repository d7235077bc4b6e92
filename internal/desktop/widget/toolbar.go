package widget

import "geoboard/internal/construct"

// ============================================================
// Toolbar
// ============================================================

type Action int

const (
	ActionNone Action = iota
	ActionTool
	ActionGrid
	ActionSave
	ActionLoad
	ActionLanguage
)

// Button is one toolbar entry. Key is the message key of its label.
type Button struct {
	Rect   Rect
	Key    string
	Label  string
	Action Action
	Tool   construct.Tool
}

type Toolbar struct {
	Buttons []Button
}

// NewToolbar creates the buttons in display order: every tool, then the
// grid switch, save, load and language.
func NewToolbar() *Toolbar {
	tb := &Toolbar{}
	for _, t := range construct.Tools {
		tb.Buttons = append(tb.Buttons, Button{Key: "tool_" + string(t), Action: ActionTool, Tool: t})
	}
	tb.Buttons = append(tb.Buttons,
		Button{Key: "toolbar_grid", Action: ActionGrid},
		Button{Key: "toolbar_save", Action: ActionSave},
		Button{Key: "toolbar_load", Action: ActionLoad},
		Button{Key: "toolbar_language", Action: ActionLanguage},
	)
	return tb
}

// Layout localizes labels and places buttons left to right. Buttons that
// do not fit into width get an empty rect.
func (tb *Toolbar) Layout(width int, label func(key string) string, measure Measure) {
	x := padding
	y := (ToolbarHeight - buttonHeight) / 2
	for i := range tb.Buttons {
		b := &tb.Buttons[i]
		b.Label = label(b.Key)
		w := measure(b.Label) + 2*padding + 4
		if x+w > width {
			b.Rect = Rect{}
			continue
		}
		b.Rect = Rect{X: x, Y: y, W: w, H: buttonHeight}
		x += w + padding
	}
}

// HitTest returns the button under (x, y).
func (tb *Toolbar) HitTest(x, y int) (Button, bool) {
	for _, b := range tb.Buttons {
		if !b.Rect.Empty() && b.Rect.Contains(x, y) {
			return b, true
		}
	}
	return Button{}, false
}
