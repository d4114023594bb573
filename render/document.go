// Package render draws scenes, together with the markers and visibility
// regions of query commands, as SVG or PNG.
package render

import (
	"math"

	"github.com/osuushi/visibility"
	"github.com/osuushi/visibility/shape"
)

// Space around the drawing
const padding = 10

// An Overlay is drawn on top of the scene. It is a Marker or a Region.
type Overlay interface {
	isOverlay()
}

type MarkerKind int

const (
	// Red dot where a destroy command stood
	DestroyMarker MarkerKind = iota
	// Dot in the paint colour
	PaintMarker
	// "CLN" label
	CloneMarker
)

// A Marker shows where a query command looked from.
type Marker struct {
	Kind  MarkerKind
	At    shape.Point
	Color string
}

// A Region is the visibility polygon of a query command.
type Region struct {
	Polygon *visibility.Polygon
}

func (Marker) isOverlay() {}
func (Region) isOverlay() {}

type Style struct {
	RegionFill    string
	RegionOpacity float64
}

func DefaultStyle() Style {
	return Style{RegionFill: "yellow", RegionOpacity: 0.5}
}

// A Document is a drawing: the shapes of a scene at some point in time, plus
// overlays in the order they were added.
type Document struct {
	Shapes   []shape.Shape
	Overlays []Overlay
	Style    Style
}

// NewDocument copies the shapes, so later changes to the scene do not show
// up in the drawing.
func NewDocument(shapes []shape.Shape, style Style) *Document {
	snapshot := make([]shape.Shape, len(shapes))
	for i, s := range shapes {
		snapshot[i] = s.Clone(s.ID(), 0, 0)
	}
	return &Document{Shapes: snapshot, Style: style}
}

func (d *Document) Add(overlays ...Overlay) {
	d.Overlays = append(d.Overlays, overlays...)
}

// Bounds of everything in the document, padded. Texts count by their anchor
// only.
func (d *Document) Bounds() (min, max shape.Point) {
	min = shape.Point{X: math.Inf(1), Y: math.Inf(1)}
	max = shape.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	extend := func(p shape.Point) {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}

	for _, s := range d.Shapes {
		switch s := s.(type) {
		case *shape.Circle:
			extend(s.C.Translate(-s.R, -s.R))
			extend(s.C.Translate(s.R, s.R))
		case *shape.Rect:
			for _, corner := range s.Corners() {
				extend(corner)
			}
		case *shape.Line:
			extend(s.P1)
			extend(s.P2)
		case *shape.Text:
			extend(s.Pos)
		}
	}
	for _, overlay := range d.Overlays {
		switch o := overlay.(type) {
		case Marker:
			extend(o.At)
		case Region:
			for _, v := range o.Polygon.Vertices {
				extend(v)
			}
		}
	}

	if min.X > max.X {
		// Nothing to draw
		return shape.Point{}, shape.Point{X: 2 * padding, Y: 2 * padding}
	}
	return min.Translate(-padding, -padding), max.Translate(padding, padding)
}
