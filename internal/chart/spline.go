package chart

// Subdivisions is the number of interpolated segments produced between each
// pair of control points.
const Subdivisions = 16

// Smooth interpolates a Catmull-Rom spline through the control points,
// returning a polyline that passes through every control point. Neighbours
// are clamped at the sequence boundaries, so the curve starts and ends
// exactly on the first and last point. Fewer than three points are returned
// unchanged.
func Smooth(points []Point) []Point {
	n := len(points)
	if n < 3 {
		return points
	}

	out := make([]Point, 0, (n-1)*Subdivisions+1)
	out = append(out, points[0])

	for i := 0; i < n-1; i++ {
		p0 := points[clampIndex(i-1, n)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[clampIndex(i+2, n)]

		for step := 1; step <= Subdivisions; step++ {
			t := float64(step) / float64(Subdivisions)
			out = append(out, catmullRom(p0, p1, p2, p3, t))
		}
	}
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// catmullRom evaluates the uniform Catmull-Rom basis at t in [0, 1] over the
// segment p1..p2 with p0 and p3 as outer tangent controls.
func catmullRom(p0, p1, p2, p3 Point, t float64) Point {
	t2 := t * t
	t3 := t2 * t
	return Point{
		X: 0.5 * ((2 * p1.X) +
			(-p0.X+p2.X)*t +
			(2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 +
			(-p0.X+3*p1.X-3*p2.X+p3.X)*t3),
		Y: 0.5 * ((2 * p1.Y) +
			(-p0.Y+p2.Y)*t +
			(2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 +
			(-p0.Y+3*p1.Y-3*p2.Y+p3.Y)*t3),
	}
}
