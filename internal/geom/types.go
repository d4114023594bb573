package geom

// Points are plain values. Unlike polygon vertices in a triangulation, nothing
// in the sweep needs pointer identity for a point, so we copy them freely.
type Point struct {
	X float64
	Y float64
}

// Edge is a bare pair of endpoints, before the sweep has tagged it with an
// obstacle and an angular interval.
type Edge struct {
	P1, P2 Point
}
