package internal

import (
	"math"
	"slices"

	"github.com/osuushi/visibility/internal/geom"
	"github.com/osuushi/visibility/shape"
)

// SceneBox is the bounding box of the observer, any extra points (such as a
// line of sight target) and every obstacle outline, expanded by margin. Texts
// and destroyed circles have no outline and do not contribute.
func SceneBox(obstacles []shape.Shape, observer geom.Point, extra []geom.Point, margin float64) Box {
	box := EmptyBox(observer)
	for _, p := range extra {
		box.Extend(p)
	}
	for _, obstacle := range obstacles {
		for _, edge := range Outline(obstacle) {
			box.Extend(edge.P1)
			box.Extend(edge.P2)
		}
	}
	return box.Expand(margin)
}

// Outline returns the edges of an obstacle. Circles are approximated by their
// axis aligned bounding square. Shapes that do not block have no outline.
func Outline(obstacle shape.Shape) []geom.Edge {
	if !shape.Blocks(obstacle) {
		return nil
	}
	switch o := obstacle.(type) {
	case *shape.Rect:
		return squareEdges(o.Corners())
	case *shape.Circle:
		square := &shape.Rect{X: o.C.X - o.R, Y: o.C.Y - o.R, W: 2 * o.R, H: 2 * o.R}
		return squareEdges(square.Corners())
	case *shape.Line:
		return []geom.Edge{{P1: o.P1, P2: o.P2}}
	}
	return nil
}

func squareEdges(c [4]geom.Point) []geom.Edge {
	return []geom.Edge{
		{P1: c[0], P2: c[1]},
		{P1: c[1], P2: c[2]},
		{P1: c[2], P2: c[3]},
		{P1: c[3], P2: c[0]},
	}
}

// Builds the segment list for one invocation. The builder owns the segments it
// creates; nothing it produces outlives the call that made it.
type segmentBuilder struct {
	observer geom.Point
	budget   int
	segments []*Segment
}

func newSegmentBuilder(observer geom.Point, budget int) *segmentBuilder {
	if budget <= 0 {
		budget = DefaultMaxSegments
	}
	return &segmentBuilder{observer: observer, budget: budget}
}

// BuildSegments extracts every obstacle edge plus the four edges of the scene
// box, computing angular intervals as seen from observer. Obstacle edges are
// cut wherever they cross each other, so the nearness order of two segments
// can only change at an event.
func BuildSegments(obstacles []shape.Shape, observer geom.Point, box Box, budget int) []*Segment {
	b := newSegmentBuilder(observer, budget)

	// Count first, so an oversized scene fails before anything is allocated.
	var edges []obstacleEdge
	for _, obstacle := range obstacles {
		for _, edge := range Outline(obstacle) {
			if !edge.P1.IsFinite() || !edge.P2.IsFinite() {
				throwf(ErrNonFinite, "%s %d", obstacle.Kind(), obstacle.ID())
			}
			edges = append(edges, obstacleEdge{Edge: edge, id: obstacle.ID()})
		}
	}
	if len(edges)+4 > b.budget {
		throwf(ErrAllocation, "scene has %d edges, budget is %d", len(edges)+4, b.budget)
	}
	pieces := splitCrossings(edges)
	// Each piece can become two segments at the branch cut
	capacity := len(pieces) + 4
	b.segments = make([]*Segment, 0, min(capacity+capacity/4, b.budget))

	b.add(geom.Point{X: box.Max.X, Y: box.Min.Y}, box.Max, BoundaryRight)
	b.add(box.Max, geom.Point{X: box.Min.X, Y: box.Max.Y}, BoundaryBottom)
	b.add(geom.Point{X: box.Min.X, Y: box.Max.Y}, box.Min, BoundaryLeft)
	b.add(box.Min, geom.Point{X: box.Max.X, Y: box.Min.Y}, BoundaryTop)

	for _, piece := range pieces {
		b.add(piece.P1, piece.P2, piece.id)
	}
	return b.segments
}

type obstacleEdge struct {
	geom.Edge
	id int
}

func (e obstacleEdge) at(t float64) geom.Point {
	return geom.Point{X: e.P1.X + t*(e.P2.X-e.P1.X), Y: e.P1.Y + t*(e.P2.Y-e.P1.Y)}
}

// Cuts closer than this to an end of an edge (as a fraction of its length)
// would leave a sliver, and are dropped.
const cutTolerance = 1e-9

// splitCrossings cuts every edge at the points where other edges cross or
// touch its interior. Edges that share only endpoints come back whole.
func splitCrossings(edges []obstacleEdge) []obstacleEdge {
	cuts := make([][]float64, len(edges))
	for i := range edges {
		a := edges[i]
		for j := i + 1; j < len(edges); j++ {
			b := edges[j]
			if !boxesOverlap(a.Edge, b.Edge) {
				continue
			}
			ta, tb, ok := geom.SegmentCrossing(a.P1, a.P2, b.P1, b.P2)
			if !ok {
				continue
			}
			if ta > cutTolerance && ta < 1-cutTolerance {
				cuts[i] = append(cuts[i], ta)
			}
			if tb > cutTolerance && tb < 1-cutTolerance {
				cuts[j] = append(cuts[j], tb)
			}
		}
	}

	pieces := make([]obstacleEdge, 0, len(edges))
	for i, edge := range edges {
		if len(cuts[i]) == 0 {
			pieces = append(pieces, edge)
			continue
		}
		slices.Sort(cuts[i])
		from, fromT := edge.P1, 0.0
		for _, t := range cuts[i] {
			if t-fromT < cutTolerance {
				continue
			}
			to := edge.at(t)
			pieces = append(pieces, obstacleEdge{Edge: geom.Edge{P1: from, P2: to}, id: edge.id})
			from, fromT = to, t
		}
		pieces = append(pieces, obstacleEdge{Edge: geom.Edge{P1: from, P2: edge.P2}, id: edge.id})
	}
	return pieces
}

func boxesOverlap(a, b geom.Edge) bool {
	const slack = geom.Epsilon
	return math.Max(a.P1.X, a.P2.X)+slack >= math.Min(b.P1.X, b.P2.X) &&
		math.Max(b.P1.X, b.P2.X)+slack >= math.Min(a.P1.X, a.P2.X) &&
		math.Max(a.P1.Y, a.P2.Y)+slack >= math.Min(b.P1.Y, b.P2.Y) &&
		math.Max(b.P1.Y, b.P2.Y)+slack >= math.Min(a.P1.Y, a.P2.Y)
}

// Add an edge, splitting it in two if its angular span crosses the branch cut
// at angle 0.
func (b *segmentBuilder) add(p1, p2 geom.Point, id int) {
	o := b.observer
	a1 := geom.Angle(o, p1)
	a2 := geom.Angle(o, p2)

	// Seen from the observer, no edge that avoids the observer spans more
	// than π. If the raw angles are further apart than that, the edge
	// actually wraps through 0.
	if math.Abs(a1-a2) > math.Pi {
		if geom.TwoPi-math.Abs(a1-a2) < AngleTolerance {
			// Lies along the ray at angle 0, so it covers no angle at all
			return
		}
		if p1.Y == p2.Y {
			return
		}
		t := (o.Y - p1.Y) / (p2.Y - p1.Y)
		cutX := p1.X + t*(p2.X-p1.X)
		if cutX < o.X {
			// Runs through the observer, which sees it edge on
			return
		}
		cut := geom.Point{X: cutX, Y: o.Y}
		// The endpoint with the larger angle sits just below the cut, and
		// its half of the edge ends at 2π. The other half starts at 0.
		high, low := p1, p2
		highAngle, lowAngle := a1, a2
		if a2 > a1 {
			high, low = p2, p1
			highAngle, lowAngle = a2, a1
		}
		b.push(high, cut, id, highAngle, geom.TwoPi)
		b.push(cut, low, id, 0, lowAngle)
		return
	}

	if a1 > a2 {
		a1, a2 = a2, a1
	}
	b.push(p1, p2, id, a1, a2)
}

func (b *segmentBuilder) push(p1, p2 geom.Point, id int, start, end float64) {
	if len(b.segments) >= b.budget {
		throwf(ErrAllocation, "more than %d segments", b.budget)
	}
	b.segments = append(b.segments, &Segment{
		P1:         p1,
		P2:         p2,
		ObstacleID: id,
		AngleStart: start,
		AngleEnd:   end,
		Seq:        len(b.segments),
	})
}
