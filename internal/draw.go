package internal

import (
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/visibility/internal/geom"
	"github.com/osuushi/visibility/shape"
)

// Padding around the scene so the box edges are visible
const dbgDrawPadding = 20

// Helper to draw a visibility polygon over its obstacles and print it in the
// terminal (iTerm only) for debugging.
func (p *Polygon) dbgDraw(obstacles []shape.Shape, scale float64) {
	box := SceneBox(obstacles, p.Observer, p.Vertices, 1)

	width := int(scale*(box.Max.X-box.Min.X)) + dbgDrawPadding*2
	height := int(scale*(box.Max.Y-box.Min.Y)) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Scene coordinates have y growing downwards, like the image
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	c.Scale(scale, scale)
	c.Translate(-box.Min.X, -box.Min.Y)

	// Region first, so the obstacles stay visible on top of it
	if len(p.Vertices) > 0 {
		c.MoveTo(p.Vertices[0].X, p.Vertices[0].Y)
		for _, v := range p.Vertices[1:] {
			c.LineTo(v.X, v.Y)
		}
		c.ClosePath()
		c.SetRGBA(1, 1, 0, 0.5)
		c.Fill()
	}

	c.SetLineWidth(2 / scale)
	c.SetRGB(0, 1, 1)
	for _, obstacle := range obstacles {
		for _, edge := range Outline(obstacle) {
			c.DrawLine(edge.P1.X, edge.P1.Y, edge.P2.X, edge.P2.Y)
			c.Stroke()
		}
	}

	// Raw samples, to spot where the sweep went wrong
	c.SetRGB(1, 0, 0)
	for _, v := range p.Raw {
		c.DrawCircle(v.X, v.Y, 3/scale)
		c.Fill()
	}

	c.SetRGB(1, 1, 1)
	c.DrawCircle(p.Observer.X, p.Observer.Y, 4/scale)
	c.Fill()

	path := filepath.Join(os.TempDir(), "visibility.png")
	c.SavePNG(path)
	imgcat.CatFile(path, os.Stdout)
}

// A sensible scale for dbgDraw so that the image is a few hundred pixels wide
func dbgScale(points ...geom.Point) float64 {
	if len(points) == 0 {
		return 1
	}
	box := EmptyBox(points[0])
	for _, p := range points[1:] {
		box.Extend(p)
	}
	extent := math.Max(box.Max.X-box.Min.X, box.Max.Y-box.Min.Y)
	if extent <= 0 {
		return 1
	}
	return 600 / extent
}
