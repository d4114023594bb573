package internal

import (
	"math"

	"github.com/osuushi/visibility/internal/geom"
)

// Angular nudge used to break distance ties. It must stay well below
// AngleTolerance, so the nudged ray never crosses into the next event.
const biasStep = 1e-7

// Context is the state shared by every distance computation during one sweep:
// where the observer stands and which way the ray currently points. The tree
// comparator reads it, the driver moves it between events. Each invocation
// owns its own Context, so independent sweeps can run side by side.
type Context struct {
	Observer geom.Point
	Angle    float64
	// Bias is the side of Angle on which ties are decided. The driver sets it
	// ahead of the angle while inserting and behind it while removing, since
	// those are the intervals in which the tree order has to hold.
	Bias float64
}

func NewContext(observer geom.Point) *Context {
	return &Context{Observer: observer}
}

// Distance from the observer to the segment's line along the current ray.
// Only meaningful for segments active at the current angle.
func (ctx *Context) Distance(s *Segment) float64 {
	return ctx.distanceAt(s, ctx.Angle)
}

func (ctx *Context) distanceAt(s *Segment, angle float64) float64 {
	return geom.RayLine(ctx.Observer, angle, s.P1, s.P2)
}

// Hit is the point where the current ray meets the segment, if it does.
func (ctx *Context) Hit(s *Segment) (geom.Point, bool) {
	d := ctx.Distance(s)
	if d >= geom.NoHit {
		return geom.Point{}, false
	}
	return ctx.Observer.Along(ctx.Angle, d), true
}

// Compare orders active segments by distance along the current ray. Near
// ties are settled by distance along the biased ray, then by obstacle id,
// then by creation order, so two distinct segments never compare equal.
func (ctx *Context) Compare(a, b *Segment) int {
	if a == b {
		return 0
	}

	d1 := ctx.Distance(a)
	d2 := ctx.Distance(b)
	if math.Abs(d1-d2) >= DistanceTolerance {
		return compareFloat(d1, d2)
	}

	if ctx.Bias != 0 {
		angle := ctx.Angle + ctx.Bias
		b1 := ctx.distanceAt(a, angle)
		b2 := ctx.distanceAt(b, angle)
		// Segments sharing a vertex separate linearly with the nudge, so this
		// only needs to reject rounding noise.
		if math.Abs(b1-b2) > 1e-9*(1+math.Abs(b1)) {
			return compareFloat(b1, b2)
		}
	}

	if a.ObstacleID != b.ObstacleID {
		return compareInt(a.ObstacleID, b.ObstacleID)
	}
	return compareInt(a.Seq, b.Seq)
}

func compareFloat(a, b float64) int {
	if a < b {
		return -1
	}
	return 1
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
