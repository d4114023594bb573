package geom

import "math"

const (
	// Epsilon is the slack used by the intersection solver, so that a ray
	// passing exactly through a segment endpoint, or starting exactly on a
	// segment, still counts as a hit.
	Epsilon = 1e-9

	// NoHit is the distance reported when a ray misses. It is deliberately a
	// large finite number rather than +Inf, so it can take part in ordinary
	// arithmetic and comparisons.
	NoHit = 1e15

	TwoPi = 2 * math.Pi
)

// NormalizeAngle maps an angle onto [0, 2π). Non-finite angles have no
// normalized form and come back as NaN, which callers must reject.
func NormalizeAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return math.NaN()
	}
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// Mod of a tiny negative number can round up to exactly 2π
	if a >= TwoPi {
		a = 0
	}
	return a
}

// Angle of p as seen from observer, in [0, 2π).
func Angle(observer, p Point) float64 {
	return NormalizeAngle(math.Atan2(p.Y-observer.Y, p.X-observer.X))
}

func DistSq(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

func Dist(a, b Point) float64 {
	return math.Sqrt(DistSq(a, b))
}

// Cross gives twice the signed area of the triangle abc. Positive means c is
// left of the directed segment a→b, negative means right, zero is collinear.
func Cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// IsFinite reports whether both coordinates are ordinary numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Along returns the point at distance d from p in the direction of angle.
func (p Point) Along(angle, d float64) Point {
	return Point{X: p.X + math.Cos(angle)*d, Y: p.Y + math.Sin(angle)*d}
}

// Translate returns p shifted by (dx, dy).
func (p Point) Translate(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}
