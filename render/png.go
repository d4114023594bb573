package render

import (
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/osuushi/visibility/shape"
	"golang.org/x/image/colornames"
)

// PNG rasterizes the document at the given scale, in pixels per scene unit.
func PNG(w io.Writer, d *Document, scale float64) error {
	return newRaster(d, scale).EncodePNG(w)
}

// Image rasterizes the document like PNG does.
func Image(d *Document, scale float64) image.Image {
	return newRaster(d, scale).Image()
}

func newRaster(d *Document, scale float64) *gg.Context {
	if scale <= 0 {
		scale = 1
	}
	min, max := d.Bounds()
	width := int(math.Ceil((max.X - min.X) * scale))
	height := int(math.Ceil((max.Y - min.Y) * scale))
	c := gg.NewContext(width, height)
	c.SetRGB(1, 1, 1)
	c.Clear()

	c.Scale(scale, scale)
	c.Translate(-min.X, -min.Y)
	c.SetLineWidth(1)

	for _, s := range d.Shapes {
		drawShapePNG(c, s)
	}
	for _, overlay := range d.Overlays {
		switch o := overlay.(type) {
		case Marker:
			drawMarkerPNG(c, o)
		case Region:
			drawRegionPNG(c, o, d.Style)
		}
	}
	return c
}

func drawShapePNG(c *gg.Context, s shape.Shape) {
	switch s := s.(type) {
	case *shape.Circle:
		c.DrawCircle(s.C.X, s.C.Y, s.R)
		fillAndStroke(c, s.Fill, s.Stroke)
	case *shape.Rect:
		c.DrawRectangle(s.X, s.Y, s.W, s.H)
		fillAndStroke(c, s.Fill, s.Stroke)
	case *shape.Line:
		c.DrawLine(s.P1.X, s.P1.Y, s.P2.X, s.P2.Y)
		fillAndStroke(c, shape.None, s.Stroke)
	case *shape.Text:
		fill, ok := ParseColor(s.Fill)
		if !ok {
			return
		}
		c.SetColor(fill)
		var ax float64
		switch s.AnchorName() {
		case "middle":
			ax = 0.5
		case "end":
			ax = 1
		}
		c.DrawStringAnchored(s.Body, s.Pos.X, s.Pos.Y, ax, 0)
	}
}

func drawMarkerPNG(c *gg.Context, m Marker) {
	switch m.Kind {
	case DestroyMarker:
		c.DrawCircle(m.At.X, m.At.Y, 5)
		c.SetLineWidth(2)
		fillAndStroke(c, "red", "black")
		c.SetLineWidth(1)
	case PaintMarker:
		c.DrawCircle(m.At.X, m.At.Y, 5)
		fillAndStroke(c, m.Color, "black")
	case CloneMarker:
		c.SetColor(colornames.Blue)
		c.DrawString("CLN", m.At.X, m.At.Y)
	}
}

func drawRegionPNG(c *gg.Context, r Region, style Style) {
	fill, ok := ParseColor(style.RegionFill)
	if !ok || len(r.Polygon.Vertices) == 0 {
		return
	}
	for _, v := range r.Polygon.Vertices {
		c.LineTo(v.X, v.Y)
	}
	c.ClosePath()
	red, green, blue, _ := fill.RGBA()
	c.SetColor(color.NRGBA{
		R: uint8(red >> 8),
		G: uint8(green >> 8),
		B: uint8(blue >> 8),
		A: uint8(math.Round(style.RegionOpacity * 255)),
	})
	c.Fill()
}

// Fill then stroke the current path, skipping colours that are "none" or
// unknown.
func fillAndStroke(c *gg.Context, fillName, strokeName string) {
	if fill, ok := ParseColor(fillName); ok {
		c.SetColor(fill)
		c.FillPreserve()
	}
	if stroke, ok := ParseColor(strokeName); ok {
		c.SetColor(stroke)
		c.StrokePreserve()
	}
	c.ClearPath()
}

// ParseColor understands SVG colour keywords and #rgb or #rrggbb hex colours.
func ParseColor(name string) (color.Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == shape.None {
		return nil, false
	}
	if c, ok := colornames.Map[name]; ok {
		return c, true
	}
	if !strings.HasPrefix(name, "#") {
		return nil, false
	}
	hex := name[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}
