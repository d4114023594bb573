package internal

import (
	"math"
	"testing"

	"github.com/osuushi/visibility/internal/geom"
	"github.com/osuushi/visibility/shape"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run fn and turn a thrown sweepError back into an error
func catch(fn func()) (err error) {
	defer func() {
		err = HandlePanicRecover(recover())
	}()
	fn()
	return nil
}

func TestSceneBox(t *testing.T) {
	obstacles := []shape.Shape{
		&shape.Rect{Id: 1, X: 10, Y: 10, W: 5, H: 30},
		&shape.Circle{Id: 2, C: geom.Point{X: -10, Y: 0}, R: 4},
		&shape.Line{Id: 3, P1: geom.Point{X: 0, Y: -7}, P2: geom.Point{X: 3, Y: 0}},
		// Texts never count
		&shape.Text{Id: 4, Pos: geom.Point{X: 1000, Y: 1000}},
	}

	box := SceneBox(obstacles, geom.Point{}, nil, 0)
	assert.Equal(t, geom.Point{X: -14, Y: -7}, box.Min)
	assert.Equal(t, geom.Point{X: 15, Y: 40}, box.Max)

	box = SceneBox(obstacles, geom.Point{}, []geom.Point{{X: 0, Y: 100}}, DefaultMargin)
	assert.Equal(t, geom.Point{X: -34, Y: -27}, box.Min)
	assert.Equal(t, geom.Point{X: 35, Y: 120}, box.Max)
}

func TestOutline(t *testing.T) {
	t.Run("rectangle", func(t *testing.T) {
		edges := Outline(&shape.Rect{X: 0, Y: 0, W: 2, H: 1})
		require.Len(t, edges, 4)
		// Closed loop
		for i, edge := range edges {
			assert.Equal(t, edge.P2, edges[CircularIndex(i+1, len(edges))].P1)
		}
	})

	t.Run("circle is its bounding square", func(t *testing.T) {
		edges := Outline(&shape.Circle{C: geom.Point{X: 5, Y: 5}, R: 2})
		require.Len(t, edges, 4)
		for _, edge := range edges {
			for _, p := range []geom.Point{edge.P1, edge.P2} {
				assert.Equal(t, 2.0, math.Abs(p.X-5))
				assert.Equal(t, 2.0, math.Abs(p.Y-5))
			}
		}
	})

	t.Run("destroyed circle", func(t *testing.T) {
		assert.Empty(t, Outline(&shape.Circle{C: geom.Point{X: 5, Y: 5}, R: 0}))
	})

	t.Run("line", func(t *testing.T) {
		edges := Outline(&shape.Line{P1: geom.Point{X: 1, Y: 2}, P2: geom.Point{X: 3, Y: 4}})
		assert.Equal(t, []geom.Edge{{P1: geom.Point{X: 1, Y: 2}, P2: geom.Point{X: 3, Y: 4}}}, edges)
	})

	t.Run("text", func(t *testing.T) {
		assert.Empty(t, Outline(&shape.Text{Body: "hello"}))
	})
}

func TestBuildSegmentsEmptyScene(t *testing.T) {
	box := Box{Min: geom.Point{X: -20, Y: -20}, Max: geom.Point{X: 20, Y: 20}}
	segments := BuildSegments(nil, geom.Point{}, box, 0)

	// The right edge crosses the branch cut and is split
	require.Len(t, segments, 5)
	ids := make([]int, len(segments))
	for i, segment := range segments {
		ids[i] = segment.ObstacleID
		assert.Equal(t, i, segment.Seq)
		assert.True(t, segment.IsBoundary())
		assert.LessOrEqual(t, segment.AngleStart, segment.AngleEnd)
	}
	assert.Equal(t, []int{BoundaryRight, BoundaryRight, BoundaryBottom, BoundaryLeft, BoundaryTop}, ids)

	var total float64
	for _, segment := range segments {
		total += segment.Span()
	}
	assert.InDelta(t, geom.TwoPi, total, 1e-9)
}

func TestBranchCutSplit(t *testing.T) {
	observer := geom.Point{}
	p1 := geom.Point{X: 10, Y: -2}
	p2 := geom.Point{X: 10, Y: 2}
	a1 := geom.Angle(observer, p1)
	a2 := geom.Angle(observer, p2)
	// Roughly 349° and 11°
	require.Greater(t, a1, 3*math.Pi/2)
	require.Less(t, a2, math.Pi/2)

	for _, edge := range [][2]geom.Point{{p1, p2}, {p2, p1}} {
		b := newSegmentBuilder(observer, 0)
		b.add(edge[0], edge[1], 7)
		require.Len(t, b.segments, 2)

		high, low := b.segments[0], b.segments[1]
		assert.InDelta(t, a1, high.AngleStart, 1e-12)
		assert.Equal(t, geom.TwoPi, high.AngleEnd)
		assert.Equal(t, 0.0, low.AngleStart)
		assert.InDelta(t, a2, low.AngleEnd, 1e-12)

		// Union is the original span, and each half is under π
		assert.InDelta(t, (geom.TwoPi-a1)+a2, high.Span()+low.Span(), 1e-12)
		assert.LessOrEqual(t, high.Span(), math.Pi)
		assert.LessOrEqual(t, low.Span(), math.Pi)

		// Each half keeps the geometry on its own side of the cut
		cut := geom.Point{X: 10, Y: 0}
		assert.Equal(t, []geom.Point{p1, cut}, []geom.Point{high.P1, high.P2})
		assert.Equal(t, []geom.Point{cut, p2}, []geom.Point{low.P1, low.P2})

		for _, segment := range b.segments {
			assert.Equal(t, 7, segment.ObstacleID)
		}
	}
}

func TestNoSplitBehindObserver(t *testing.T) {
	// Crosses the horizontal through the observer at angle π, not 0
	b := newSegmentBuilder(geom.Point{}, 0)
	b.add(geom.Point{X: -10, Y: -2}, geom.Point{X: -10, Y: 2}, 1)
	require.Len(t, b.segments, 1)
	assert.Less(t, b.segments[0].Span(), math.Pi)
}

func TestBuildSegmentsBudget(t *testing.T) {
	box := Box{Min: geom.Point{X: -20, Y: -20}, Max: geom.Point{X: 20, Y: 20}}
	obstacles := []shape.Shape{&shape.Rect{Id: 0, X: 1, Y: 1, W: 1, H: 1}}

	err := catch(func() { BuildSegments(obstacles, geom.Point{}, box, 5) })
	assert.Equal(t, ErrAllocation, errors.Cause(err))

	// Four boundary edges fit, but the split of the right edge does not
	err = catch(func() { BuildSegments(nil, geom.Point{}, box, 4) })
	assert.Equal(t, ErrAllocation, errors.Cause(err))

	err = catch(func() { BuildSegments(obstacles, geom.Point{}, box, 100) })
	assert.NoError(t, err)
}

func TestBuildSegmentsNonFinite(t *testing.T) {
	box := Box{Min: geom.Point{X: -20, Y: -20}, Max: geom.Point{X: 20, Y: 20}}
	obstacles := []shape.Shape{&shape.Line{Id: 3, P1: geom.Point{X: math.NaN(), Y: 1}, P2: geom.Point{X: 2, Y: 2}}}
	err := catch(func() { BuildSegments(obstacles, geom.Point{}, box, 0) })
	assert.Equal(t, ErrNonFinite, errors.Cause(err))
	assert.Contains(t, err.Error(), "line 3")
}
