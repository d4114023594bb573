package internal

import (
	"testing"

	"github.com/osuushi/visibility/internal/geom"
	"github.com/stretchr/testify/assert"
)

func TestCircularIndex(t *testing.T) {
	assert.Equal(t, 0, CircularIndex(0, 5))
	assert.Equal(t, 4, CircularIndex(-1, 5))
	assert.Equal(t, 1, CircularIndex(6, 5))
	assert.Equal(t, 3, CircularIndex(-7, 5))
}

func TestSimplifyRing(t *testing.T) {
	t.Run("duplicates and collinear vertices", func(t *testing.T) {
		raw := []geom.Point{
			{X: 10, Y: 0},
			{X: 10, Y: 10},
			{X: 10.001, Y: 10.004},
			{X: 5, Y: 10},
			{X: 0, Y: 10},
			{X: 0, Y: 0},
			{X: 10, Y: 0.001},
		}
		assert.Equal(t, []geom.Point{
			{X: 10, Y: 0},
			{X: 10, Y: 10},
			{X: 0, Y: 10},
			{X: 0, Y: 0},
		}, SimplifyRing(raw))
	})

	t.Run("keeps a triangle", func(t *testing.T) {
		triangle := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
		assert.Equal(t, triangle, SimplifyRing(triangle))
	})

	t.Run("spikes are not collinear vertices", func(t *testing.T) {
		// The tip of a spike lies on the line through its neighbours, but not
		// between them.
		ring := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}}
		assert.Contains(t, SimplifyRing(ring), geom.Point{X: 10, Y: 0})
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, SimplifyRing(nil))
	})
}

func TestPolygonPath(t *testing.T) {
	p := &Polygon{
		Observer: geom.Point{X: 0, Y: 0.5},
		Raw:      []geom.Point{{X: 1, Y: 0.5}, {X: 3.5, Y: 2}, {X: -1, Y: 0.25}, {X: 1, Y: 0.5}},
		Vertices: []geom.Point{{X: 3.5, Y: 2}, {X: -1, Y: 0.25}, {X: 1, Y: 0.5}},
	}
	assert.Equal(t, "M 0 0.5 L 1 0.5 L 3.5 2 L -1 0.25 L 1 0.5 Z", p.Path())
	assert.Equal(t, "", (&Polygon{}).Path())
}

func TestPolygonContainsAndArea(t *testing.T) {
	// An L shape
	p := &Polygon{Vertices: []geom.Point{
		{X: 0, Y: 0},
		{X: 4, Y: 0},
		{X: 4, Y: 1},
		{X: 1, Y: 1},
		{X: 1, Y: 4},
		{X: 0, Y: 4},
	}}
	assert.True(t, p.Contains(geom.Point{X: 0.5, Y: 3}))
	assert.True(t, p.Contains(geom.Point{X: 3, Y: 0.5}))
	assert.False(t, p.Contains(geom.Point{X: 3, Y: 3}))
	assert.False(t, p.Contains(geom.Point{X: -1, Y: 0.5}))
	assert.InDelta(t, 7, p.Area(), 1e-12)
}
