package snap

import (
	"math"

	"geoboard/internal/function"
	"geoboard/internal/geometry"
	"geoboard/internal/scene"
)

// ============================================================
// Snap resolver
// ============================================================

// Kind names the source of a snap candidate.
type Kind string

const (
	KindIntersection     Kind = "intersection"
	KindAxisIntersection Kind = "axis_intersection"
	KindPoint            Kind = "point"
	KindCircleCenter     Kind = "circle_center"
	KindLinePoint        Kind = "line_point"
	KindPolygonPoint     Kind = "polygon_point"
)

// Candidate is an anchor found near a query point.
type Candidate struct {
	Pos      geometry.Vec `json:"pos"`
	Kind     Kind         `json:"kind"`
	Distance float64      `json:"distance"`
}

// Query describes one snap lookup. Radius is in world units.
type Query struct {
	Pos    geometry.Vec
	Radius float64
	// Edges enables projection onto line and polygon edges.
	Edges bool
}

// Resolver pools candidates from every generator and keeps the nearest.
type Resolver struct {
	// Samples is the number of x positions probed in the window
	// around the query when looking for curve crossings.
	Samples int
}

func NewResolver() *Resolver {
	return &Resolver{Samples: function.ProbeSamples}
}

// Resolve returns the candidate closest to q.Pos within q.Radius. On
// equal distances the earlier generator wins: intersections, axis
// crossings, points, circle centres, then edges.
func (r *Resolver) Resolve(sc *scene.Scene, q Query) (Candidate, bool) {
	if q.Radius <= 0 || !q.Pos.IsFinite() {
		return Candidate{}, false
	}

	var pool []Candidate
	visible := sc.Functions.Visible()

	pool = r.intersections(pool, visible, q)
	pool = r.axisCrossings(pool, visible, q)
	pool = points(pool, sc, q)
	pool = circleCenters(pool, sc, q)
	if q.Edges {
		pool = edges(pool, sc, q)
	}

	best, found := Candidate{}, false
	for _, c := range pool {
		if !found || c.Distance < best.Distance {
			best, found = c, true
		}
	}
	return best, found
}

func (r *Resolver) window(q Query) []float64 {
	n := r.Samples
	if n <= 0 {
		n = function.ProbeSamples
	}
	return function.Linspace(q.Pos.X-q.Radius, q.Pos.X+q.Radius, n)
}

// intersections approximates crossings of every visible function pair by
// sampling both over the query window.
func (r *Resolver) intersections(pool []Candidate, fns []*function.Function, q Query) []Candidate {
	if len(fns) < 2 {
		return pool
	}
	xs := r.window(q)
	ys := make([][]float64, len(fns))
	for i, f := range fns {
		ys[i] = f.Fn.Sample(xs)
	}

	for i := 0; i < len(fns); i++ {
		for j := i + 1; j < len(fns); j++ {
			y1, y2 := ys[i], ys[j]
			for k, x := range xs {
				if !finite(y1[k]) || !finite(y2[k]) {
					continue
				}
				if math.Abs(y1[k]-y2[k]) >= q.Radius {
					continue
				}
				p := geometry.Vec{X: x, Y: (y1[k] + y2[k]) / 2}
				if d := p.Dist(q.Pos); d < q.Radius {
					pool = append(pool, Candidate{Pos: p, Kind: KindIntersection, Distance: d})
				}
			}
		}
	}
	return pool
}

// axisCrossings emits samples near the x axis and the y-axis crossing
// f(0) of every visible function.
func (r *Resolver) axisCrossings(pool []Candidate, fns []*function.Function, q Query) []Candidate {
	if len(fns) == 0 {
		return pool
	}
	xs := r.window(q)

	for _, f := range fns {
		ys := f.Fn.Sample(xs)
		for k, y := range ys {
			if !finite(y) || math.Abs(y) >= q.Radius {
				continue
			}
			p := geometry.Vec{X: xs[k], Y: y}
			if d := p.Dist(q.Pos); d < q.Radius {
				pool = append(pool, Candidate{Pos: p, Kind: KindAxisIntersection, Distance: d})
			}
		}

		y0 := f.Fn.At(0)
		if !finite(y0) {
			continue
		}
		p := geometry.Vec{X: 0, Y: y0}
		if d := p.Dist(q.Pos); d < q.Radius {
			pool = append(pool, Candidate{Pos: p, Kind: KindAxisIntersection, Distance: d})
		}
	}
	return pool
}

func points(pool []Candidate, sc *scene.Scene, q Query) []Candidate {
	for _, p := range sc.Points {
		if d := p.Dist(q.Pos); d < q.Radius {
			pool = append(pool, Candidate{Pos: p, Kind: KindPoint, Distance: d})
		}
	}
	return pool
}

func circleCenters(pool []Candidate, sc *scene.Scene, q Query) []Candidate {
	for _, o := range sc.Objects {
		c, ok := o.(geometry.Circle)
		if !ok {
			continue
		}
		if d := c.Center.Dist(q.Pos); d < q.Radius {
			pool = append(pool, Candidate{Pos: c.Center, Kind: KindCircleCenter, Distance: d})
		}
	}
	return pool
}

func edges(pool []Candidate, sc *scene.Scene, q Query) []Candidate {
	for _, o := range sc.Objects {
		switch v := o.(type) {
		case geometry.Line:
			if p, d := geometry.ClosestOnSegment(q.Pos, v.A, v.B); d < q.Radius {
				pool = append(pool, Candidate{Pos: p, Kind: KindLinePoint, Distance: d})
			}
		case geometry.Polygon:
			for _, e := range v.Edges() {
				if p, d := geometry.ClosestOnSegment(q.Pos, e[0], e[1]); d < q.Radius {
					pool = append(pool, Candidate{Pos: p, Kind: KindPolygonPoint, Distance: d})
				}
			}
		}
	}
	return pool
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
