package internal

import (
	"math"
	"strconv"
	"strings"

	"github.com/osuushi/visibility/internal/geom"
)

// Polygon is the region seen from Observer.
type Polygon struct {
	Observer geom.Point
	// Boundary ring in angular order, without repeated or redundant vertices.
	Vertices []geom.Point
	// The vertex stream exactly as the sweep emitted it, two samples per event
	// batch at most. It starts and ends on the ray at angle 0.
	Raw []geom.Point
}

// Path renders the region in SVG path syntax. It starts at the observer, runs
// out along the ray at angle 0, follows the raw boundary all the way round
// and closes back to the observer: "M ox oy L x y ... Z". A polygon without
// raw samples has an empty path.
func (p *Polygon) Path() string {
	if len(p.Raw) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, p.Observer)
	for _, v := range p.Raw {
		b.WriteString(" L ")
		writePoint(&b, v)
	}
	b.WriteString(" Z")
	return b.String()
}

func writePoint(b *strings.Builder, v geom.Point) {
	b.WriteString(formatCoord(v.X))
	b.WriteByte(' ')
	b.WriteString(formatCoord(v.Y))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Even-odd point in polygon. Points exactly on the boundary can go either way.
func (p *Polygon) Contains(point geom.Point) bool {
	return CrossingCount(p.Vertices, point)%2 == 1
}

// CrossingCount counts how many ring edges a horizontal ray going right from
// point crosses.
func CrossingCount(ring []geom.Point, point geom.Point) int {
	crossingCount := 0
	for i, vertex := range ring {
		next := ring[CircularIndex(i+1, len(ring))]
		if (vertex.Y > point.Y) == (next.Y > point.Y) {
			continue
		}
		x := vertex.X + (point.Y-vertex.Y)*(next.X-vertex.X)/(next.Y-vertex.Y)
		if point.X < x {
			crossingCount++
		}
	}
	return crossingCount
}

// Area is the absolute area of the ring, by the shoelace formula.
func (p *Polygon) Area() float64 {
	var sum float64
	for i, v := range p.Vertices {
		next := p.Vertices[CircularIndex(i+1, len(p.Vertices))]
		sum += v.X*next.Y - next.X*v.Y
	}
	return math.Abs(sum) / 2
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives
// positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

// SimplifyRing treats the points as a closed ring and drops vertices that
// repeat their predecessor, or that lie on the straight edge between their
// neighbours, both within PixelTolerance. The sweep produces such vertices at
// the branch cut, and wherever two consecutive event batches hit the same
// edge.
func SimplifyRing(points []geom.Point) []geom.Point {
	ring := make([]geom.Point, 0, len(points))
	for _, p := range points {
		if len(ring) > 0 && samePoint(ring[len(ring)-1], p) {
			continue
		}
		ring = append(ring, p)
	}
	for len(ring) > 1 && samePoint(ring[0], ring[len(ring)-1]) {
		ring = ring[:len(ring)-1]
	}

	for changed := true; changed && len(ring) > 3; {
		changed = false
		for i := 0; i < len(ring) && len(ring) > 3; i++ {
			prev := ring[CircularIndex(i-1, len(ring))]
			next := ring[CircularIndex(i+1, len(ring))]
			if between(prev, ring[i], next) {
				ring = append(ring[:i], ring[i+1:]...)
				changed = true
				i--
			}
		}
	}
	return ring
}

func samePoint(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) <= PixelTolerance && math.Abs(a.Y-b.Y) <= PixelTolerance
}

// Is b on the segment a-c, strictly between the two?
func between(a, b, c geom.Point) bool {
	length := geom.Dist(a, c)
	if length < PixelTolerance {
		return false
	}
	if math.Abs(geom.Cross(a, c, b))/length > PixelTolerance {
		return false
	}
	dotA := (b.X-a.X)*(c.X-a.X) + (b.Y-a.Y)*(c.Y-a.Y)
	dotC := (b.X-c.X)*(a.X-c.X) + (b.Y-c.Y)*(a.Y-c.Y)
	return dotA > 0 && dotC > 0
}
