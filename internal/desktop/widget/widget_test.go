package widget

import (
	"testing"

	"geoboard/internal/construct"
	"geoboard/internal/function"
	"geoboard/internal/geometry"
	"geoboard/internal/scene"
)

func fixedWidth(s string) int { return 8 * len([]rune(s)) }

func identity(key string) string { return key }

func TestCanvasAndPanel(t *testing.T) {
	c := Canvas(1200, 800)
	if c != (Rect{X: 0, Y: ToolbarHeight, W: 1200 - PanelWidth, H: 800 - ToolbarHeight}) {
		t.Errorf("canvas = %+v", c)
	}
	p := Panel(1200, 800)
	if p.X != c.W || p.W != PanelWidth {
		t.Errorf("panel = %+v", p)
	}
	if small := Canvas(100, 20); small.W != 0 || small.H != 0 {
		t.Errorf("canvas of tiny window = %+v", small)
	}
}

func TestField(t *testing.T) {
	var f Field
	f.Insert([]rune("sin(x)\n"))
	if f.Text() != "sin(x)" {
		t.Errorf("text = %q", f.Text())
	}
	f.Backspace()
	f.Backspace()
	if f.Text() != "sin(" {
		t.Errorf("after backspace = %q", f.Text())
	}
	f.Clear()
	f.Backspace()
	if f.Text() != "" {
		t.Errorf("after clear = %q", f.Text())
	}

	long := make([]rune, maxFieldLen+10)
	for i := range long {
		long[i] = 'x'
	}
	f.Insert(long)
	if len([]rune(f.Text())) != maxFieldLen {
		t.Errorf("field length = %d", len([]rune(f.Text())))
	}
}

func TestToolbar_LayoutAndHit(t *testing.T) {
	tb := NewToolbar()
	if len(tb.Buttons) != len(construct.Tools)+4 {
		t.Fatalf("buttons = %d", len(tb.Buttons))
	}
	tb.Layout(2000, identity, fixedWidth)

	prev := 0
	for _, b := range tb.Buttons {
		if b.Rect.Empty() {
			t.Fatalf("button %s not placed", b.Key)
		}
		if b.Rect.X < prev {
			t.Errorf("button %s overlaps previous", b.Key)
		}
		prev = b.Rect.X + b.Rect.W
	}

	line := tb.Buttons[2]
	got, ok := tb.HitTest(line.Rect.X+1, line.Rect.Y+1)
	if !ok || got.Action != ActionTool || got.Tool != construct.ToolLine {
		t.Errorf("hit = %+v, %v", got, ok)
	}
	if _, ok := tb.HitTest(1, ToolbarHeight+5); ok {
		t.Error("hit below the toolbar")
	}

	last := tb.Buttons[len(tb.Buttons)-1]
	if last.Action != ActionLanguage {
		t.Errorf("last action = %v", last.Action)
	}
}

func TestToolbar_NarrowWindow(t *testing.T) {
	tb := NewToolbar()
	tb.Layout(200, identity, fixedWidth)

	placed := 0
	for _, b := range tb.Buttons {
		if !b.Rect.Empty() {
			placed++
			if b.Rect.X+b.Rect.W > 200 {
				t.Errorf("button %s overflows", b.Key)
			}
		}
	}
	if placed == 0 || placed == len(tb.Buttons) {
		t.Errorf("placed = %d", placed)
	}
}

func TestFunctionPanel(t *testing.T) {
	reg := function.NewRegistry()
	if _, err := reg.Add("x^2"); err != nil {
		t.Fatal(err)
	}
	second, err := reg.Add("sin(x)")
	if err != nil {
		t.Fatal(err)
	}
	reg.SetVisible(second.Index, false)

	var p FunctionPanel
	p.Layout(Panel(1200, 800), reg.All(), 40)

	if len(p.Rows) != 2 {
		t.Fatalf("rows = %d", len(p.Rows))
	}
	row, ok := p.Row(second.Index)
	if !ok || row.Visible || row.Label != "y = sin(x)" {
		t.Errorf("row = %+v", row)
	}

	tests := []struct {
		name  string
		x, y  int
		hit   Hit
		index int
	}{
		{"input", p.Input.X + 2, p.Input.Y + 2, HitInput, 0},
		{"add", p.Add.X + 2, p.Add.Y + 2, HitAdd, 0},
		{"toggle", row.Toggle.X + 1, row.Toggle.Y + 1, HitToggle, second.Index},
		{"delete", row.Delete.X + 1, row.Delete.Y + 1, HitDelete, second.Index},
		{"title", p.Title.X + 40, p.Title.Y + 2, HitNone, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, index := p.HitTest(tt.x, tt.y)
			if hit != tt.hit || index != tt.index {
				t.Errorf("HitTest = %v, %d; want %v, %d", hit, index, tt.hit, tt.index)
			}
		})
	}
}

func TestFunctionPanel_ClipsRows(t *testing.T) {
	reg := function.NewRegistry()
	for i := 0; i < 50; i++ {
		if _, err := reg.Add("x"); err != nil {
			t.Fatal(err)
		}
	}
	var p FunctionPanel
	bounds := Panel(1200, 400)
	p.Layout(bounds, reg.All(), 40)

	if len(p.Rows) == 0 || len(p.Rows) == 50 {
		t.Fatalf("rows = %d", len(p.Rows))
	}
	last := p.Rows[len(p.Rows)-1].Row
	if last.Y+last.H > bounds.Y+bounds.H {
		t.Errorf("last row %+v outside %+v", last, bounds)
	}
}

func TestPromptBox_Number(t *testing.T) {
	var box PromptBox
	var got float64
	var answered, ok bool

	box.AskNumber(construct.AnglePrompt, func(v float64, good bool) {
		got, ok, answered = v, good, true
	})
	if !box.Visible() || box.Field.Text() != "90" || box.Title != construct.MsgAngleTitle {
		t.Fatalf("box = %+v", box)
	}

	box.Field.Set("abc")
	if box.Submit() || !box.Invalid || answered {
		t.Error("garbage accepted")
	}
	box.Field.Set("720")
	if box.Submit() || answered {
		t.Error("out-of-range value accepted")
	}

	box.Field.Set("45,5")
	if !box.Submit() {
		t.Fatal("valid value rejected")
	}
	if !answered || !ok || got != 45.5 {
		t.Errorf("reply = %v, %v, %v", got, ok, answered)
	}
	if box.Visible() || box.Invalid {
		t.Error("box still open")
	}
}

func TestPromptBox_CancelAndReplace(t *testing.T) {
	var box PromptBox
	var first, second []bool

	box.AskText(construct.TextLabelPrompt, func(_ string, ok bool) { first = append(first, ok) })
	box.AskText(construct.TextLabelPrompt, func(_ string, ok bool) { second = append(second, ok) })
	if len(first) != 1 || first[0] {
		t.Errorf("replaced prompt replies = %v", first)
	}

	box.Cancel()
	if len(second) != 1 || second[0] {
		t.Errorf("cancel replies = %v", second)
	}
	box.Cancel()
	if len(second) != 1 {
		t.Error("cancel of a closed box replied again")
	}
	if box.Submit() {
		t.Error("submit of a closed box")
	}
}

func TestPromptBox_DrivesMachine(t *testing.T) {
	sc := scene.New()
	var box PromptBox
	m := construct.NewMachine(sc, &box)
	m.SetTool(construct.ToolAngle)

	for _, p := range []geometry.Vec{geometry.V(1, 0), geometry.V(0, 0), geometry.V(0, 1)} {
		m.Click(construct.Pointer{Raw: p, Pos: p, Tolerance: 0.3})
	}
	if !box.Visible() || !m.Awaiting() {
		t.Fatal("angle prompt not open")
	}

	box.Field.Set("60")
	box.Submit()
	if m.Awaiting() || len(sc.Objects) != 1 {
		t.Fatalf("awaiting = %v, objects = %d", m.Awaiting(), len(sc.Objects))
	}
	if _, ok := sc.Objects[0].(geometry.Angle); !ok {
		t.Errorf("object = %T", sc.Objects[0])
	}
}

func TestPromptLayout(t *testing.T) {
	var box PromptBox
	area := Canvas(1200, 800)
	l := box.Layout(area)
	if l.Box.X < area.X || l.Box.X+l.Box.W > area.X+area.W {
		t.Errorf("box %+v outside %+v", l.Box, area)
	}
	if l.OK.X+l.OK.W > l.Cancel.X {
		t.Errorf("ok %+v overlaps cancel %+v", l.OK, l.Cancel)
	}
}

func TestFunctionPanel_Invalid(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", false},
		{"sin(x)", false},
		{"sin(x", true},
		{"abc", true},
		{"2", false},
	}
	for _, tt := range tests {
		var p FunctionPanel
		p.Field.Set(tt.text)
		if got := p.Invalid(); got != tt.want {
			t.Errorf("Invalid(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
