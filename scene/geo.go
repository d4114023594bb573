// Package scene reads scenes from disk: the line oriented .geo description
// format, and SVG documents such as the ones written by the render package.
package scene

import (
	"bufio"
	"io"

	"github.com/osuushi/visibility/internal/args"
	"github.com/osuushi/visibility/shape"
	"github.com/pkg/errors"
)

// ParseGeo reads a scene description, one figure per line:
//
//	c id x y r stroke fill
//	r id x y w h stroke fill
//	l id x1 y1 x2 y2 stroke
//	t id x y stroke fill anchor text...
//	ts family weight size
//
// "ts" sets the style of the texts that follow it. Blank lines and unknown
// commands are skipped. A known command with missing or malformed arguments
// fails with the line number.
func ParseGeo(r io.Reader) (*shape.Scene, error) {
	p := geoParser{scene: &shape.Scene{}, style: shape.DefaultTextStyle}

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading scene")
	}
	return p.scene, nil
}

type geoParser struct {
	scene *shape.Scene
	style shape.TextStyle
}

func (p *geoParser) parseLine(line string) error {
	command, a := args.Split(line)
	switch command {
	case "c":
		c := &shape.Circle{}
		c.Id = a.Int()
		c.C = a.Point()
		c.R = a.Float()
		c.Stroke = a.Word()
		c.Fill = a.Word()
		if a.Err() == nil {
			p.scene.Add(c)
		}
	case "r":
		r := &shape.Rect{}
		r.Id = a.Int()
		r.X = a.Float()
		r.Y = a.Float()
		r.W = a.Float()
		r.H = a.Float()
		r.Stroke = a.Word()
		r.Fill = a.Word()
		if a.Err() == nil {
			p.scene.Add(r)
		}
	case "l":
		l := &shape.Line{}
		l.Id = a.Int()
		l.P1 = a.Point()
		l.P2 = a.Point()
		l.Stroke = a.Word()
		if a.Err() == nil {
			p.scene.Add(l)
		}
	case "t":
		t := &shape.Text{Style: p.style}
		t.Id = a.Int()
		t.Pos = a.Point()
		t.Stroke = a.Word()
		t.Fill = a.Word()
		t.Anchor = a.Char("anchor")
		t.Body = a.Rest()
		if a.Err() == nil {
			p.scene.Add(t)
		}
	case "ts":
		style := shape.TextStyle{}
		style.Family = a.Word()
		style.Weight = a.Word()
		style.Size = a.Int()
		if a.Err() == nil {
			p.style = style
		}
	}
	return a.Err()
}
