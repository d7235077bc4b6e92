package geometry

import "math"

// degenerateRay is the shortest vertex→point1 ray an angle can be built on.
const degenerateRay = 1e-3

// FinalizeAngle builds an angle of the given magnitude at vertex. The ray
// vertex→point1 is the reference; point3 only chooses the rotation
// direction. The second ray gets the reference ray's length. ok is false
// when the reference ray is degenerate.
func FinalizeAngle(point1, vertex, point3 Vec, degrees float64) (Angle, bool) {
	ref := point1.Sub(vertex)
	length := ref.Len()
	if length <= degenerateRay {
		return Angle{}, false
	}

	dir := point3.Sub(vertex)
	base := math.Atan2(ref.Y, ref.X)
	diff := normalizeAngle(math.Atan2(dir.Y, dir.X) - base)

	theta := degrees * math.Pi / 180
	final := base + theta
	if diff < 0 {
		final = base - theta
	}

	point2 := Vec{
		X: vertex.X + length*math.Cos(final),
		Y: vertex.Y + length*math.Sin(final),
	}

	return Angle{
		Vertex:  vertex,
		Point1:  point1,
		Point2:  point2,
		Degrees: degrees,
	}, true
}

// normalizeAngle maps a radian difference into (-π, π].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
