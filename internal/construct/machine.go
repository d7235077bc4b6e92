package construct

import (
	"math"

	"geoboard/internal/geometry"
	"geoboard/internal/scene"
)

// ============================================================
// Tools
// ============================================================

type Tool string

const (
	ToolNone    Tool = ""
	ToolSelect  Tool = "select"
	ToolPoint   Tool = "point"
	ToolLine    Tool = "line"
	ToolCircle  Tool = "circle"
	ToolPolygon Tool = "polygon"
	ToolAngle   Tool = "angle"
	ToolText    Tool = "text"
)

// Tools lists the selectable tools in toolbar order.
var Tools = []Tool{ToolSelect, ToolPoint, ToolLine, ToolCircle, ToolPolygon, ToolAngle, ToolText}

// ParseTool maps a tool name to a Tool. The empty name selects no tool.
func ParseTool(name string) (Tool, bool) {
	if name == "" {
		return ToolNone, true
	}
	for _, t := range Tools {
		if string(t) == name {
			return t, true
		}
	}
	return ToolNone, false
}

// SnapsToEdges reports whether the tool may snap onto line and polygon
// edges.
func (t Tool) SnapsToEdges() bool {
	return t == ToolPoint
}

// ============================================================
// Machine
// ============================================================

// Pointer is one pointer position handed to the machine. Pos is the
// snapped position, or Raw when nothing was in range.
type Pointer struct {
	Raw       geometry.Vec
	Pos       geometry.Vec
	Tolerance float64
}

// Pending is a read-only view of the construction in progress.
type Pending struct {
	Tool        Tool
	Start       *geometry.Vec
	Vertices    []geometry.Vec
	AnglePoints []geometry.Vec
	// Preview is the line or circle that the next click would commit.
	Preview  geometry.Object
	Awaiting bool
}

// Machine turns clicks, releases and keys into committed objects on a
// scene. One tool is active at a time and pending state never outlives
// a tool change.
type Machine struct {
	scene    *scene.Scene
	prompter Prompter

	tool        Tool
	start       *geometry.Vec
	vertices    []geometry.Vec
	anglePoints []geometry.Vec
	cursor      geometry.Vec
	hasCursor   bool

	awaiting bool
	epoch    uint64

	// OnCommit, when set, observes every committed object.
	OnCommit func(o geometry.Object)
	// OnDelete, when set, observes every right-click deletion.
	OnDelete func(h scene.Hit)
}

func NewMachine(sc *scene.Scene, prompter Prompter) *Machine {
	if prompter == nil {
		prompter = Scripted{}
	}
	return &Machine{scene: sc, prompter: prompter}
}

func (m *Machine) Tool() Tool {
	return m.tool
}

// SetTool activates t and abandons any pending construction.
func (m *Machine) SetTool(t Tool) {
	m.Reset()
	m.tool = t
}

// SetPrompter replaces the prompt collaborator.
func (m *Machine) SetPrompter(p Prompter) {
	if p == nil {
		p = Scripted{}
	}
	m.prompter = p
}

// Reset discards pending state. Replies to outstanding prompts are
// dropped when they arrive.
func (m *Machine) Reset() {
	m.start = nil
	m.vertices = nil
	m.anglePoints = nil
	m.awaiting = false
	m.epoch++
}

// Awaiting reports whether a prompt is outstanding.
func (m *Machine) Awaiting() bool {
	return m.awaiting
}

// Move records the pointer for previews.
func (m *Machine) Move(p Pointer) {
	m.cursor = p.Pos
	m.hasCursor = true
}

// Click handles a primary button press.
func (m *Machine) Click(p Pointer) {
	if m.awaiting {
		return
	}
	m.cursor, m.hasCursor = p.Pos, true

	switch m.tool {
	case ToolPoint:
		m.scene.AddPoint(p.Pos)
		m.committed(geometry.Point{Pos: p.Pos})

	case ToolLine:
		if m.start == nil {
			start := p.Pos
			m.start = &start
			return
		}
		line := m.scene.NewLine(*m.start, p.Pos, p.Tolerance)
		m.start = nil
		m.commit(line)

	case ToolCircle:
		if m.start == nil {
			center := p.Pos
			m.start = &center
			return
		}
		circle := geometry.Circle{Center: *m.start, Radius: m.start.Dist(p.Pos)}
		m.start = nil
		m.commit(circle)

	case ToolPolygon:
		m.vertices = append(m.vertices, p.Pos)

	case ToolAngle:
		if len(m.anglePoints) < 3 {
			m.anglePoints = append(m.anglePoints, p.Pos)
		}
		if len(m.anglePoints) == 3 {
			m.askAngle()
		}

	case ToolText:
		m.askText(p.Raw)
	}
}

// Delete handles a secondary button press: the item under the pointer is
// removed. While a polygon is pending the press is reserved for closing
// it and nothing is deleted.
func (m *Machine) Delete(p Pointer) bool {
	if m.awaiting || (m.tool == ToolPolygon && len(m.vertices) > 0) {
		return false
	}
	h, ok := m.scene.FindObjectAt(p.Raw, p.Tolerance)
	if !ok || !m.scene.Remove(h) {
		return false
	}
	if m.OnDelete != nil {
		m.OnDelete(h)
	}
	return true
}

// Release handles a secondary button release. It closes a pending
// polygon of at least three vertices when the pointer is back on the
// first vertex.
func (m *Machine) Release(p Pointer) bool {
	if m.awaiting || m.tool != ToolPolygon || len(m.vertices) < 3 {
		return false
	}
	if p.Pos.Dist(m.vertices[0]) >= p.Tolerance {
		return false
	}
	m.commitPolygon()
	return true
}

// Cancel handles the cancel key. A polygon with at least three vertices
// is committed as is; anything shorter and a partial angle are dropped.
func (m *Machine) Cancel() {
	if m.awaiting {
		return
	}
	switch m.tool {
	case ToolPolygon:
		if len(m.vertices) >= 3 {
			m.commitPolygon()
			return
		}
		m.vertices = nil
	case ToolAngle:
		m.anglePoints = nil
	}
}

// Pending returns a snapshot of the construction in progress.
func (m *Machine) Pending() Pending {
	out := Pending{Tool: m.tool, Awaiting: m.awaiting}
	if m.start != nil {
		start := *m.start
		out.Start = &start
		if m.hasCursor {
			switch m.tool {
			case ToolLine:
				out.Preview = geometry.Line{A: start, B: m.cursor}
			case ToolCircle:
				out.Preview = geometry.Circle{Center: start, Radius: start.Dist(m.cursor)}
			}
		}
	}
	out.Vertices = append([]geometry.Vec(nil), m.vertices...)
	out.AnglePoints = append([]geometry.Vec(nil), m.anglePoints...)
	return out
}

func (m *Machine) commitPolygon() {
	poly := geometry.Polygon{Vertices: m.vertices}
	m.vertices = nil
	for _, v := range poly.Vertices {
		m.scene.AddPoint(v)
	}
	m.commit(poly)
}

func (m *Machine) askAngle() {
	m.awaiting = true
	m.epoch++
	epoch := m.epoch
	pts := append([]geometry.Vec(nil), m.anglePoints...)

	m.prompter.AskNumber(AnglePrompt, func(value float64, ok bool) {
		if epoch != m.epoch {
			return
		}
		m.awaiting = false
		m.anglePoints = nil

		if !ok || math.IsNaN(value) || value < AnglePrompt.Min || value > AnglePrompt.Max {
			return
		}
		angle, good := geometry.FinalizeAngle(pts[0], pts[1], pts[2], value)
		if !good {
			return
		}
		for _, v := range []geometry.Vec{angle.Point1, angle.Vertex, angle.Point2} {
			m.scene.AddPoint(v)
		}
		m.commit(angle)
	})
}

func (m *Machine) askText(at geometry.Vec) {
	m.awaiting = true
	m.epoch++
	epoch := m.epoch

	m.prompter.AskText(TextLabelPrompt, func(value string, ok bool) {
		if epoch != m.epoch {
			return
		}
		m.awaiting = false
		if !ok || value == "" {
			return
		}
		m.commit(geometry.Text{Pos: at, Content: value, Size: geometry.DefaultTextSize})
	})
}

func (m *Machine) commit(o geometry.Object) {
	m.scene.AddObject(o)
	m.committed(o)
}

func (m *Machine) committed(o geometry.Object) {
	if m.OnCommit != nil {
		m.OnCommit(o)
	}
}
