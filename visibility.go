// Visibility polygons and line of sight for 2D scenes.
//
// Given a scene of circles, rectangles, lines and texts, this package computes
// the region of the plane an observer can see, treating the outline of every
// figure as an opaque wall. Circles are approximated by their bounding square,
// and texts never block. The region is cut off by a box around the scene, so
// it is always bounded.
//
// The polygon comes from a radial sweep around the observer that keeps the
// edges crossing the current ray in a balanced tree, ordered by distance.
// Each call works on its own state, so calls may run concurrently as long as
// nobody modifies the obstacles in the meantime.
package visibility

import (
	"log"
	"strings"

	"github.com/osuushi/visibility/internal"
	"github.com/osuushi/visibility/shape"
	"github.com/pkg/errors"
)

type Point = shape.Point
type Polygon = internal.Polygon
type SortStrategy = internal.SortStrategy

const (
	// Comparison sort of the sweep events
	SortQuick = internal.SortQuick
	// Merge sort handing short runs to insertion sort
	SortMerge = internal.SortMerge
)

// Default number of events below which SortMerge switches to insertion sort
const DefaultThreshold = 10

var (
	ErrAllocation          = internal.ErrAllocation
	ErrNonFinite           = internal.ErrNonFinite
	ErrUnknownSortStrategy = internal.ErrUnknownSortStrategy
)

type Option func(*internal.Options)

// Space left around the scene bounds before the region is cut off. The default
// is 20.
func WithMargin(margin float64) Option {
	return func(o *internal.Options) {
		o.Margin = margin
	}
}

// Largest number of edges one computation may allocate. Bigger scenes fail
// with ErrAllocation.
func WithMaxSegments(n int) Option {
	return func(o *internal.Options) {
		o.MaxSegments = n
	}
}

// Where to report anomalies the sweep recovers from. Nothing is logged by
// default.
func WithLogger(logger *log.Logger) Option {
	return func(o *internal.Options) {
		o.Logger = logger
	}
}

// Log every step of the sweep. Requires WithLogger.
func WithTrace() Option {
	return func(o *internal.Options) {
		o.Trace = true
	}
}

func buildOptions(opts []Option) internal.Options {
	var o internal.Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ParseSortStrategy accepts "q" or "quick", and "m" or "merge".
func ParseSortStrategy(s string) (SortStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "q", "quick":
		return SortQuick, nil
	case "m", "merge":
		return SortMerge, nil
	}
	return 0, errors.Wrapf(ErrUnknownSortStrategy, "%q", s)
}

// Compute the region seen from observer.
//
// The strategy picks how the sweep events are sorted, and threshold tunes
// SortMerge. Both strategies give the same polygon.
func ComputePolygon(obstacles []shape.Shape, observer Point, strategy SortStrategy, threshold int, opts ...Option) (*Polygon, error) {
	o := buildOptions(opts)
	o.Strategy = strategy
	o.Threshold = threshold
	return internal.ComputePolygon(obstacles, observer, o)
}

// IsVisible reports whether target can be seen from observer. Invalid input is
// never visible; use Check to find out why.
func IsVisible(obstacles []shape.Shape, observer, target Point, opts ...Option) bool {
	return IsVisibleExcept(obstacles, observer, target, internal.NoIgnore, opts...)
}

// IsVisibleExcept is IsVisible with the outline of the obstacle with id
// ignoreID taken out of the scene. Use it to ask whether a figure's own
// centre can be seen.
func IsVisibleExcept(obstacles []shape.Shape, observer, target Point, ignoreID int, opts ...Option) bool {
	visible, err := Check(obstacles, observer, target, ignoreID, opts...)
	if err != nil {
		o := buildOptions(opts)
		if o.Logger != nil {
			o.Logger.Printf("line of sight %v -> %v: %v", observer, target, err)
		}
		return false
	}
	return visible
}

// Check is IsVisibleExcept that reports invalid input as an error. Pass a
// negative ignoreID to ignore nothing.
func Check(obstacles []shape.Shape, observer, target Point, ignoreID int, opts ...Option) (bool, error) {
	return internal.IsVisible(obstacles, observer, target, ignoreID, buildOptions(opts))
}
