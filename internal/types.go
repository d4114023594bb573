package internal

import (
	"fmt"

	"github.com/osuushi/visibility/internal/geom"
)

const (
	// Events whose angles are closer than this are treated as simultaneous.
	AngleTolerance = 1e-6

	// Distances closer than this are a tie in the active segment order.
	DistanceTolerance = 1e-3

	// Emitted vertices closer than this (on both axes) are merged.
	PixelTolerance = 0.01

	// A blocker must be at least this much closer than the target to hide it.
	SightTolerance = 0.1

	// Default margin around the scene bounds.
	DefaultMargin = 20.0

	DefaultMaxSegments = 1000000
)

// Reserved obstacle ids for the edges of the scene box.
const (
	BoundaryRight  = -1
	BoundaryBottom = -2
	BoundaryLeft   = -3
	BoundaryTop    = -4
)

// A Segment is one edge of an obstacle (or of the scene box), tagged with the
// angular interval over which the observer sees it. AngleStart <= AngleEnd
// always holds, because edges crossing the branch cut are split in two.
type Segment struct {
	P1, P2     geom.Point
	ObstacleID int
	AngleStart float64
	AngleEnd   float64
	// Creation order within one invocation. It is the last resort tie-break
	// when two segments are equally near and belong to the same obstacle.
	Seq int
}

func (s *Segment) IsBoundary() bool {
	return s.ObstacleID < 0
}

// Width of the angular interval.
func (s *Segment) Span() float64 {
	return s.AngleEnd - s.AngleStart
}

func (s *Segment) String() string {
	return fmt.Sprintf("Segment#%d(obstacle %d) [%.6f, %.6f] (%g,%g)-(%g,%g)",
		s.Seq, s.ObstacleID, s.AngleStart, s.AngleEnd, s.P1.X, s.P1.Y, s.P2.X, s.P2.Y)
}

// End sorts before Start, so that at a shared angle the outgoing segment
// leaves before the incoming one arrives.
type EventKind int

const (
	End EventKind = iota
	Start
)

func (k EventKind) String() string {
	if k == End {
		return "END"
	}
	return "START"
}

type Event struct {
	Angle   float64
	Kind    EventKind
	Segment *Segment
}

func (e Event) String() string {
	return fmt.Sprintf("%s@%.6f #%d", e.Kind, e.Angle, e.Segment.Seq)
}

type SortStrategy int

const (
	// Plain comparison sort
	SortQuick SortStrategy = iota
	// Merge sort that hands small runs to insertion sort
	SortMerge
)

func (s SortStrategy) String() string {
	switch s {
	case SortQuick:
		return "quick"
	case SortMerge:
		return "merge"
	}
	return fmt.Sprintf("SortStrategy(%d)", int(s))
}

// Box is an axis aligned rectangle.
type Box struct {
	Min, Max geom.Point
}

func EmptyBox(p geom.Point) Box {
	return Box{Min: p, Max: p}
}

func (b *Box) Extend(p geom.Point) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
}

func (b Box) Expand(margin float64) Box {
	return Box{
		Min: geom.Point{X: b.Min.X - margin, Y: b.Min.Y - margin},
		Max: geom.Point{X: b.Max.X + margin, Y: b.Max.Y + margin},
	}
}
