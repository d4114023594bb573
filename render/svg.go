package render

import (
	"fmt"
	"html"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo/float"
	"github.com/osuushi/visibility/scene"
	"github.com/osuushi/visibility/shape"
)

// Digits after the decimal point of every coordinate
const svgDecimals = 6

// SVG writes the document. Overlays are grouped under the overlay class, so
// scene.LoadSVG reads the output back as the bare scene.
func SVG(w io.Writer, d *Document) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Decimals = svgDecimals

	min, max := d.Bounds()
	width, height := max.X-min.X, max.Y-min.Y
	canvas.Startview(width, height, min.X, min.Y, width, height)

	for _, s := range d.Shapes {
		drawShapeSVG(canvas, s)
	}

	if len(d.Overlays) > 0 {
		canvas.Group(attr("class", scene.OverlayClass))
		for _, overlay := range d.Overlays {
			switch o := overlay.(type) {
			case Marker:
				drawMarkerSVG(canvas, o)
			case Region:
				canvas.Path(o.Polygon.Path(),
					attr("fill", d.Style.RegionFill),
					attr("opacity", strconv.FormatFloat(d.Style.RegionOpacity, 'f', -1, 64)),
					attr("stroke", shape.None),
				)
			}
		}
		canvas.Gend()
	}

	canvas.End()
	return ew.err
}

func drawShapeSVG(canvas *svg.SVG, s shape.Shape) {
	id := attr("id", fmt.Sprintf("fig-%d", s.ID()))
	switch s := s.(type) {
	case *shape.Circle:
		canvas.Circle(s.C.X, s.C.Y, s.R, id, attr("stroke", s.Stroke), attr("fill", s.Fill))
	case *shape.Rect:
		canvas.Rect(s.X, s.Y, s.W, s.H, id, attr("stroke", s.Stroke), attr("fill", s.Fill))
	case *shape.Line:
		canvas.Line(s.P1.X, s.P1.Y, s.P2.X, s.P2.Y, id, attr("stroke", s.Stroke))
	case *shape.Text:
		canvas.Text(s.Pos.X, s.Pos.Y, s.Body,
			id,
			attr("fill", s.Fill),
			attr("stroke", s.Stroke),
			attr("text-anchor", s.AnchorName()),
			attr("font-family", s.Style.Family),
			attr("font-size", strconv.Itoa(s.Style.Size)),
			attr("font-weight", s.Style.WeightName()),
		)
	}
}

func drawMarkerSVG(canvas *svg.SVG, m Marker) {
	x, y := m.At.X, m.At.Y
	switch m.Kind {
	case DestroyMarker:
		canvas.Circle(x, y, 5, attr("fill", "red"), attr("stroke", "black"), attr("stroke-width", "2"))
	case PaintMarker:
		canvas.Circle(x, y, 5, attr("fill", m.Color), attr("stroke", "black"), attr("opacity", "1"))
	case CloneMarker:
		canvas.Text(x, y, "CLN", attr("fill", "blue"), attr("font-weight", "bold"))
	}
}

// svgo takes raw attributes when they contain an equals sign
func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

// svgo does not report write errors, so remember the first one
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
