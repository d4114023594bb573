package scene

import (
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/osuushi/visibility/shape"
	"github.com/pkg/errors"
)

// Elements with this class are drawn on top of a scene (observer markers,
// visibility regions) and are not part of it.
const OverlayClass = "overlay"

// LoadSVG reads the circles, rectangles, lines and texts of an SVG document
// as a scene, in document order. This is not a full SVG reader: transforms,
// units and styles given through CSS are ignored.
//
// Ids come from the id attribute, either "fig-<n>" or a bare number. Shapes
// without a usable id are numbered after the highest id in the document.
func LoadSVG(r io.Reader) (*shape.Scene, error) {
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return nil, errors.Wrap(err, "parsing svg")
	}

	l := svgLoader{scene: &shape.Scene{}}
	if err := l.walk(root); err != nil {
		return nil, err
	}

	nextID := l.scene.MaxID() + 1
	for _, s := range l.unnumbered {
		setID(s, nextID)
		nextID++
	}
	return l.scene, nil
}

type svgLoader struct {
	scene      *shape.Scene
	unnumbered []shape.Shape
}

func (l *svgLoader) walk(el *svgparser.Element) error {
	if hasClass(el, OverlayClass) {
		return nil
	}

	s, err := l.element(el)
	if err != nil {
		if id := el.Attributes["id"]; id != "" {
			return errors.Wrapf(err, "<%s id=%q>", el.Name, id)
		}
		return errors.Wrapf(err, "<%s>", el.Name)
	}
	if s != nil {
		if id, ok := parseID(el.Attributes["id"]); ok {
			setID(s, id)
		} else {
			l.unnumbered = append(l.unnumbered, s)
		}
		l.scene.Add(s)
	}

	for _, child := range el.Children {
		if err := l.walk(child); err != nil {
			return err
		}
	}
	return nil
}

func (l *svgLoader) element(el *svgparser.Element) (shape.Shape, error) {
	a := attrReader{attrs: el.Attributes}
	switch el.Name {
	case "circle":
		c := &shape.Circle{
			C:      shape.Point{X: a.number("cx"), Y: a.number("cy")},
			R:      a.number("r"),
			Stroke: a.color("stroke", shape.None),
			Fill:   a.color("fill", "black"),
		}
		return c, a.err
	case "rect":
		r := &shape.Rect{
			X:      a.number("x"),
			Y:      a.number("y"),
			W:      a.number("width"),
			H:      a.number("height"),
			Stroke: a.color("stroke", shape.None),
			Fill:   a.color("fill", "black"),
		}
		return r, a.err
	case "line":
		line := &shape.Line{
			P1:     shape.Point{X: a.number("x1"), Y: a.number("y1")},
			P2:     shape.Point{X: a.number("x2"), Y: a.number("y2")},
			Stroke: a.color("stroke", "black"),
		}
		return line, a.err
	case "text":
		style := shape.DefaultTextStyle
		if family := el.Attributes["font-family"]; family != "" {
			style.Family = family
		}
		if weight := el.Attributes["font-weight"]; weight != "" {
			style.Weight = shape.WeightFromName(weight)
		}
		if _, ok := el.Attributes["font-size"]; ok {
			style.Size = int(a.number("font-size"))
		}
		t := &shape.Text{
			Pos:    shape.Point{X: a.number("x"), Y: a.number("y")},
			Stroke: a.color("stroke", shape.None),
			Fill:   a.color("fill", "black"),
			Anchor: shape.AnchorFromName(el.Attributes["text-anchor"]),
			Body:   strings.TrimSpace(el.Content),
			Style:  style,
		}
		return t, a.err
	}
	return nil, nil
}

// Reads numeric attributes, remembering the first failure. Missing
// attributes are zero, as in SVG.
type attrReader struct {
	attrs map[string]string
	err   error
}

func (a *attrReader) number(name string) float64 {
	raw, ok := a.attrs[name]
	if !ok || a.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(raw), "px"), 64)
	if err != nil {
		a.err = errors.Errorf("attribute %s: %q is not a number", name, raw)
	}
	return v
}

func (a *attrReader) color(name, fallback string) string {
	if v := strings.TrimSpace(a.attrs[name]); v != "" {
		return v
	}
	return fallback
}

func hasClass(el *svgparser.Element, class string) bool {
	for _, c := range strings.Fields(el.Attributes["class"]) {
		if c == class {
			return true
		}
	}
	return false
}

func parseID(raw string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimPrefix(raw, "fig-"))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

func setID(s shape.Shape, id int) {
	switch s := s.(type) {
	case *shape.Circle:
		s.Id = id
	case *shape.Rect:
		s.Id = id
	case *shape.Line:
		s.Id = id
	case *shape.Text:
		s.Id = id
	}
}
