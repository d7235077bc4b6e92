package geometry

// ============================================================
// Scene objects
// ============================================================

// Kind names an object variant. The values double as persisted type tags.
type Kind string

const (
	KindPoint   Kind = "point"
	KindLine    Kind = "line"
	KindCircle  Kind = "circle"
	KindPolygon Kind = "polygon"
	KindAngle   Kind = "angle"
	KindText    Kind = "text"
)

// DefaultTextSize is the point size given to text placed by the text tool.
const DefaultTextSize = 12

// Object is the closed set of committed constructions. Only the types in
// this file implement it.
type Object interface {
	Kind() Kind
	isObject()
}

type Point struct {
	Pos Vec
}

// Line is a segment between A and B. Infinite lines are rendered extended
// past both endpoints.
type Line struct {
	A, B     Vec
	Infinite bool
}

type Circle struct {
	Center Vec
	Radius float64
}

// Polygon has at least three vertices once committed. Edges are the
// consecutive vertex pairs plus the closing edge.
type Polygon struct {
	Vertices []Vec
}

// Angle is two rays from Vertex through Point1 and Point2.
type Angle struct {
	Vertex  Vec
	Point1  Vec
	Point2  Vec
	Degrees float64
}

type Text struct {
	Pos     Vec
	Content string
	Size    int
}

func (Point) Kind() Kind   { return KindPoint }
func (Line) Kind() Kind    { return KindLine }
func (Circle) Kind() Kind  { return KindCircle }
func (Polygon) Kind() Kind { return KindPolygon }
func (Angle) Kind() Kind   { return KindAngle }
func (Text) Kind() Kind    { return KindText }

func (Point) isObject()   {}
func (Line) isObject()    {}
func (Circle) isObject()  {}
func (Polygon) isObject() {}
func (Angle) isObject()   {}
func (Text) isObject()    {}

// Edges returns the polygon edges including the wraparound edge.
func (p Polygon) Edges() [][2]Vec {
	n := len(p.Vertices)
	if n < 2 {
		return nil
	}
	edges := make([][2]Vec, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, [2]Vec{p.Vertices[i], p.Vertices[(i+1)%n]})
	}
	return edges
}

// Clone returns a polygon that does not share the vertex slice.
func (p Polygon) Clone() Polygon {
	return Polygon{Vertices: append([]Vec(nil), p.Vertices...)}
}
