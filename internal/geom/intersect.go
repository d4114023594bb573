package geom

import "math"

// RaySegment casts a ray from origin at angle and returns the distance along
// the ray to the segment p1-p2, or NoHit.
//
// The ray is origin + t1*(cos, sin) and the segment is p1 + t2*(p2-p1). We
// solve the 2x2 system by projecting onto the ray's normal. Parallel rays
// (including zero length segments, whose determinant is zero) never hit.
func RaySegment(origin Point, angle float64, p1, p2 Point) float64 {
	t1, t2, ok := solveRay(origin, angle, p1, p2)
	if !ok {
		return NoHit
	}
	if t2 < -Epsilon || t2 > 1+Epsilon || t1 < -Epsilon {
		return NoHit
	}
	return t1
}

// RayLine is RaySegment against the infinite line through p1 and p2. The
// sweep uses it for segments it already knows to be active at the angle, where
// the segment range check would only reject float jitter at interval ends.
func RayLine(origin Point, angle float64, p1, p2 Point) float64 {
	t1, _, ok := solveRay(origin, angle, p1, p2)
	if !ok || t1 < -Epsilon {
		return NoHit
	}
	return t1
}

func solveRay(origin Point, angle float64, p1, p2 Point) (t1, t2 float64, ok bool) {
	dx := math.Cos(angle)
	dy := math.Sin(angle)

	segX := p2.X - p1.X
	segY := p2.Y - p1.Y

	// Origin relative to the segment start
	relX := origin.X - p1.X
	relY := origin.Y - p1.Y

	// Normal of the ray direction
	nx := -dy
	ny := dx

	det := segX*nx + segY*ny
	if math.Abs(det) < Epsilon {
		return 0, 0, false
	}

	t1 = (segX*relY - segY*relX) / det
	t2 = (relX*nx + relY*ny) / det
	return t1, t2, true
}

// SegmentCrossing finds where the segments a1-a2 and b1-b2 meet. ta and tb
// are the positions of the meeting point along each segment, 0 at the first
// endpoint and 1 at the second. Parallel segments, collinear ones included,
// never cross.
func SegmentCrossing(a1, a2, b1, b2 Point) (ta, tb float64, ok bool) {
	ax, ay := a2.X-a1.X, a2.Y-a1.Y
	bx, by := b2.X-b1.X, b2.Y-b1.Y
	det := ax*by - ay*bx
	if math.Abs(det) < Epsilon {
		return 0, 0, false
	}

	rx, ry := b1.X-a1.X, b1.Y-a1.Y
	ta = (rx*by - ry*bx) / det
	tb = (rx*ay - ry*ax) / det
	if ta < -Epsilon || ta > 1+Epsilon || tb < -Epsilon || tb > 1+Epsilon {
		return 0, 0, false
	}
	return ta, tb, true
}
