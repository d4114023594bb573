package internal

import (
	"io"
	"log"
	"math"

	"github.com/osuushi/visibility/dbg"
	"github.com/osuushi/visibility/internal/avl"
	"github.com/osuushi/visibility/internal/geom"
	"github.com/osuushi/visibility/shape"
)

type Options struct {
	Strategy  SortStrategy
	Threshold int
	// Margin added around the scene bounds. Zero means DefaultMargin; use a
	// tiny positive value for a tight box.
	Margin float64
	// Largest number of segments one invocation may build. Zero means
	// DefaultMaxSegments.
	MaxSegments int
	Logger      *log.Logger
	// Trace logs every event batch with the active segments
	Trace bool

	// Called after each event batch with the active segment tree. Tests use
	// it to watch the tree shape.
	afterBatch func(tree *avl.Tree[*Segment])
}

func (o Options) margin() float64 {
	if o.Margin == 0 {
		return DefaultMargin
	}
	return o.Margin
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return o.Logger
}

// ComputePolygon runs the radial sweep from observer and returns the
// visibility polygon. Every obstacle outline, and the box around the scene,
// is opaque.
func ComputePolygon(obstacles []shape.Shape, observer geom.Point, opts Options) (polygon *Polygon, err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			polygon = nil
			err = recoveredErr
		}
	}()

	if !observer.IsFinite() {
		throwf(ErrNonFinite, "observer %v", observer)
	}

	box := SceneBox(obstacles, observer, nil, opts.margin())
	segments := BuildSegments(obstacles, observer, box, opts.MaxSegments)
	events := BuildEvents(segments)
	SortEvents(events, opts.Strategy, opts.Threshold)

	s := &sweep{
		ctx:    NewContext(observer),
		opts:   opts,
		logger: opts.logger(),
	}
	raw := s.run(events)

	return &Polygon{
		Observer: observer,
		Raw:      raw,
		Vertices: SimplifyRing(raw),
	}, nil
}

type sweep struct {
	ctx      *Context
	opts     Options
	logger   *log.Logger
	tree     *avl.Tree[*Segment]
	vertices []geom.Point
}

func (s *sweep) run(events []Event) []geom.Point {
	s.tree = avl.New(s.ctx.Compare)

	for i := 0; i < len(events); {
		angle := events[i].Angle
		s.ctx.Angle = angle
		s.ctx.Bias = 0

		// Where the ray leaves the segment that was nearest until now
		s.sample()

		for i < len(events) && math.Abs(events[i].Angle-angle) < AngleTolerance {
			event := events[i]
			switch event.Kind {
			case End:
				s.ctx.Bias = -biasStep
				if !s.tree.Remove(event.Segment) {
					s.recoverRemove(event.Segment)
				}
			case Start:
				s.ctx.Bias = biasStep
				if !s.tree.Insert(event.Segment) {
					fatalf("segment inserted twice: %s", event.Segment)
				}
			}
			i++
		}
		s.ctx.Bias = 0

		// Where the ray meets the segment that is nearest from now on
		s.sample()

		if s.opts.Trace {
			s.trace()
		}
		if s.opts.afterBatch != nil {
			s.opts.afterBatch(s.tree)
		}
	}

	if !s.tree.IsEmpty() {
		// Every segment ends at or before 2π, so the tree must drain
		fatalf("%d segments still active after the sweep", s.tree.Len())
	}
	return s.vertices
}

// Emit the hit point of the nearest active segment on the current ray, unless
// it repeats the last vertex.
func (s *sweep) sample() {
	nearest, ok := s.tree.Min()
	if !ok {
		return
	}
	p, ok := s.ctx.Hit(nearest)
	if !ok {
		return
	}
	if n := len(s.vertices); n > 0 {
		last := s.vertices[n-1]
		if math.Abs(p.X-last.X) <= PixelTolerance && math.Abs(p.Y-last.Y) <= PixelTolerance {
			return
		}
	}
	s.vertices = append(s.vertices, p)
}

// The comparator could not find a segment that is leaving. Crossing edges are
// cut apart before the sweep, so this takes float trouble at a nearly
// degenerate vertex. Rebuild the tree from the survivors under the current
// ray so the sweep can carry on.
func (s *sweep) recoverRemove(leaving *Segment) {
	survivors := make([]*Segment, 0, s.tree.Len())
	found := false
	s.tree.Walk(func(segment *Segment) bool {
		if segment == leaving {
			found = true
		} else {
			survivors = append(survivors, segment)
		}
		return true
	})
	if !found {
		// The segment was never active. Nothing to do.
		return
	}
	s.logger.Printf("active order broken at angle %.6f removing %s (%s); rebuilding %d segments",
		s.ctx.Angle, dbg.Name(leaving), leaving, len(survivors))
	s.tree.Clear()
	for _, segment := range survivors {
		s.tree.Insert(segment)
	}
}

func (s *sweep) trace() {
	active := s.tree.Values()
	names := make([]string, len(active))
	for i, segment := range active {
		// The nearest segment is the one the ray hits
		names[i] = dbg.ColorName(segment, i == 0)
	}
	s.logger.Printf("angle %.6f active %v", s.ctx.Angle, names)
	if len(active) > 0 {
		s.logger.Printf("nearest %s", dbg.Dump(active[0]))
	}
}
