// Package shape holds the scene primitives that visibility queries treat as
// obstacles.
//
// Shapes are a closed set of variants behind the Shape interface. Code that
// needs to treat them differently does a type switch on the concrete
// pointer types, so adding a variant means revisiting those switches.
package shape

import (
	"fmt"

	"github.com/osuushi/visibility/internal/geom"
)

type Point = geom.Point

type Kind int

const (
	KindCircle Kind = iota + 1
	KindRectangle
	KindLine
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindRectangle:
		return "rectangle"
	case KindLine:
		return "line"
	case KindText:
		return "text"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A circle with a radius below this has been destroyed. It stays in the scene
// so that ids remain stable, but it no longer blocks anything.
const DestroyedRadius = 0.001

// None is the colour of a figure that has been wiped out by a query.
const None = "none"

type Shape interface {
	ID() int
	Kind() Kind
	// Ref is the point the shape was placed by: centre of a circle, top left
	// corner of a rectangle, first endpoint of a line, anchor of a text.
	Ref() Point
	// Center is where line of sight queries aim when asking whether the shape
	// can be seen. It is the middle of a rectangle and Ref for everything else.
	Center() Point
	// Clone returns a copy with a new id, shifted by (dx, dy).
	Clone(id int, dx, dy float64) Shape
	SetColors(stroke, fill string)

	// Unexported marker that seals the set of variants.
	isShape()
}

type Circle struct {
	Id           int
	C            Point
	R            float64
	Stroke, Fill string
}

type Rect struct {
	Id           int
	X, Y, W, H   float64
	Stroke, Fill string
}

type Line struct {
	Id     int
	P1, P2 Point
	Stroke string
}

type TextStyle struct {
	Family string
	// n (normal), b (bold), b+ (bolder) or l (lighter)
	Weight string
	Size   int
}

var DefaultTextStyle = TextStyle{Family: "Arial", Weight: "n", Size: 12}

type Text struct {
	Id           int
	Pos          Point
	Stroke, Fill string
	// i (start), m (middle) or f (end)
	Anchor byte
	Body   string
	Style  TextStyle
}

func (*Circle) isShape() {}
func (*Rect) isShape()   {}
func (*Line) isShape()   {}
func (*Text) isShape()   {}

func (c *Circle) ID() int       { return c.Id }
func (c *Circle) Kind() Kind    { return KindCircle }
func (c *Circle) Ref() Point    { return c.C }
func (c *Circle) Center() Point { return c.C }

func (c *Circle) Destroyed() bool {
	return c.R < DestroyedRadius
}

// Destroy collapses the circle to a point and hides it.
func (c *Circle) Destroy() {
	c.R = 0
	c.Stroke = None
	c.Fill = None
}

func (c *Circle) Clone(id int, dx, dy float64) Shape {
	clone := *c
	clone.Id = id
	clone.C = c.C.Translate(dx, dy)
	return &clone
}

func (c *Circle) SetColors(stroke, fill string) {
	c.Stroke, c.Fill = stroke, fill
}

func (r *Rect) ID() int    { return r.Id }
func (r *Rect) Kind() Kind { return KindRectangle }
func (r *Rect) Ref() Point { return Point{X: r.X, Y: r.Y} }

func (r *Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Corners in drawing order, starting from Ref.
func (r *Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
}

func (r *Rect) Clone(id int, dx, dy float64) Shape {
	clone := *r
	clone.Id = id
	clone.X += dx
	clone.Y += dy
	return &clone
}

func (r *Rect) SetColors(stroke, fill string) {
	r.Stroke, r.Fill = stroke, fill
}

func (l *Line) ID() int       { return l.Id }
func (l *Line) Kind() Kind    { return KindLine }
func (l *Line) Ref() Point    { return l.P1 }
func (l *Line) Center() Point { return l.P1 }

func (l *Line) Clone(id int, dx, dy float64) Shape {
	clone := *l
	clone.Id = id
	clone.P1 = l.P1.Translate(dx, dy)
	clone.P2 = l.P2.Translate(dx, dy)
	return &clone
}

// Lines only have a stroke. The fill argument is ignored.
func (l *Line) SetColors(stroke, _ string) {
	l.Stroke = stroke
}

func (t *Text) ID() int       { return t.Id }
func (t *Text) Kind() Kind    { return KindText }
func (t *Text) Ref() Point    { return t.Pos }
func (t *Text) Center() Point { return t.Pos }

func (t *Text) Clone(id int, dx, dy float64) Shape {
	clone := *t
	clone.Id = id
	clone.Pos = t.Pos.Translate(dx, dy)
	return &clone
}

func (t *Text) SetColors(stroke, fill string) {
	t.Stroke, t.Fill = stroke, fill
}

// Blocks reports whether the shape takes part in line of sight at all.
func Blocks(s Shape) bool {
	switch s := s.(type) {
	case *Circle:
		return !s.Destroyed()
	case *Rect, *Line:
		return true
	}
	return false
}
