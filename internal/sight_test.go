package internal

import (
	"math"
	"math/rand"
	"testing"

	"github.com/osuushi/visibility/internal/geom"
	"github.com/osuushi/visibility/shape"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSee(t *testing.T, obstacles []shape.Shape, observer, target geom.Point, ignoreID int) bool {
	t.Helper()
	visible, err := IsVisible(obstacles, observer, target, ignoreID, Options{})
	require.NoError(t, err)
	return visible
}

func TestIsVisible_SamePoint(t *testing.T) {
	obstacles := LoadFixture("pillars")
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		p := geom.Point{X: r.Float64() * 400, Y: r.Float64() * 400}
		assert.True(t, mustSee(t, obstacles, p, p, NoIgnore), "point %v", p)
	}
	// Even on an edge
	assert.True(t, mustSee(t, obstacles, geom.Point{X: 60, Y: 70}, geom.Point{X: 60, Y: 70}, NoIgnore))
}

func TestIsVisible_Rectangle(t *testing.T) {
	obstacles := []shape.Shape{&shape.Rect{Id: 1, X: 10, Y: -2, W: 2, H: 4}}
	observer := geom.Point{}

	assert.False(t, mustSee(t, obstacles, observer, geom.Point{X: 20, Y: 0}, NoIgnore))
	assert.False(t, mustSee(t, obstacles, geom.Point{X: 20, Y: 0}, observer, NoIgnore))
	// Around the rectangle
	assert.True(t, mustSee(t, obstacles, observer, geom.Point{X: 20, Y: 10}, NoIgnore))
	assert.True(t, mustSee(t, obstacles, observer, geom.Point{X: -20, Y: 0}, NoIgnore))

	// Its own centre is hidden by its near face, unless the rectangle is
	// ignored
	center := obstacles[0].Center()
	assert.False(t, mustSee(t, obstacles, observer, center, NoIgnore))
	assert.True(t, mustSee(t, obstacles, observer, center, 1))
	assert.False(t, mustSee(t, obstacles, observer, center, 2))
}

func TestIsVisible_Tolerance(t *testing.T) {
	obstacles := []shape.Shape{&shape.Line{Id: 4, P1: geom.Point{X: 10, Y: -5}, P2: geom.Point{X: 10, Y: 5}}}
	observer := geom.Point{}

	assert.False(t, mustSee(t, obstacles, observer, geom.Point{X: 10.5, Y: 0}, NoIgnore))
	// A target on the far side of the wall but within the tolerance
	assert.True(t, mustSee(t, obstacles, observer, geom.Point{X: 10.05, Y: 0}, NoIgnore))
	// Past the end of the wall
	assert.True(t, mustSee(t, obstacles, observer, geom.Point{X: 20, Y: 12}, NoIgnore))
}

func TestIsVisible_IgnoresTextAndDestroyedCircles(t *testing.T) {
	obstacles := []shape.Shape{
		&shape.Text{Id: 1, Pos: geom.Point{X: 5, Y: 0}, Body: "x"},
		&shape.Circle{Id: 2, C: geom.Point{X: 10, Y: 0}, R: 0},
	}
	assert.True(t, mustSee(t, obstacles, geom.Point{}, geom.Point{X: 20, Y: 0}, NoIgnore))
}

// Property: when nothing stands between two points, each sees the other
func TestIsVisible_Symmetry(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	obstacles := randomScene(r, 40)
	var edges []geom.Edge
	for _, obstacle := range obstacles {
		edges = append(edges, Outline(obstacle)...)
	}

	checked, seen := 0, 0
	for checked < 300 {
		a := geom.Point{X: r.Float64() * 200, Y: r.Float64() * 200}
		b := geom.Point{X: r.Float64() * 200, Y: r.Float64() * 200}
		if nearAny(edges, a, 2*SightTolerance) || nearAny(edges, b, 2*SightTolerance) {
			continue
		}
		checked++
		ab := mustSee(t, obstacles, a, b, NoIgnore)
		assert.Equal(t, ab, mustSee(t, obstacles, b, a, NoIgnore), "%v <-> %v", a, b)
		if ab {
			seen++
		}
	}
	// Make sure the test covers both outcomes
	assert.NotZero(t, seen)
	assert.NotEqual(t, checked, seen)
}

func TestIsVisible_Errors(t *testing.T) {
	visible, err := IsVisible(nil, geom.Point{X: math.NaN()}, geom.Point{}, NoIgnore, Options{})
	assert.False(t, visible)
	assert.Equal(t, ErrNonFinite, errors.Cause(err))

	_, err = IsVisible(nil, geom.Point{}, geom.Point{Y: math.Inf(-1)}, NoIgnore, Options{})
	assert.Equal(t, ErrNonFinite, errors.Cause(err))

	_, err = IsVisible(LoadFixture("pillars"), geom.Point{}, geom.Point{X: 1}, NoIgnore, Options{MaxSegments: 8})
	assert.Equal(t, ErrAllocation, errors.Cause(err))
}
