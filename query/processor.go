// Package query runs query scripts against a scene. Each command looks at the
// scene from a point and changes the figures it can see:
//
//	a i j h|v            circles with ids in [i, j] become their horizontal
//	                     or vertical diameter
//	d x y sfx            destroy every visible figure
//	p x y color [sfx]    paint every visible figure
//	cln x y dx dy [sfx]  clone every visible figure, shifted by (dx, dy)
//
// Commands that look from a point draw a marker and the visibility region.
// They draw into the main drawing when sfx is "-" or missing, and otherwise
// into a drawing of their own, named by sfx, that starts from the scene as it
// was before the command.
package query

import (
	"bufio"
	"fmt"
	"io"
	"log"

	"github.com/osuushi/visibility"
	"github.com/osuushi/visibility/internal/args"
	"github.com/osuushi/visibility/render"
	"github.com/osuushi/visibility/shape"
	"github.com/pkg/errors"
)

const (
	// First id of the lines made by "a"
	FirstLineID = 50000
	// First id of the clones made by "cln"
	FirstCloneID = 90000

	// Suffix that means "draw into the main drawing"
	MainSuffix = "-"
)

type Settings struct {
	Strategy  visibility.SortStrategy
	Threshold int
	Options   []visibility.Option
	Style     render.Style
	Logger    *log.Logger
}

// A Drawing is a separate output of one command.
type Drawing struct {
	Suffix   string
	Document *render.Document
}

// A Processor applies commands to one scene. The ids it hands out are its
// own; two processors never share counters.
type Processor struct {
	scene    *shape.Scene
	settings Settings
	report   io.Writer

	main     *render.Document
	drawings []Drawing

	nextLineID  int
	nextCloneID int
}

// NewProcessor starts the main drawing from the scene as it is now. Every
// change to a figure is reported as one line on report.
func NewProcessor(s *shape.Scene, settings Settings, report io.Writer) *Processor {
	if report == nil {
		report = io.Discard
	}
	if settings.Logger == nil {
		settings.Logger = log.New(io.Discard, "", 0)
	}
	return &Processor{
		scene:       s,
		settings:    settings,
		report:      report,
		main:        render.NewDocument(s.Shapes, settings.Style),
		nextLineID:  FirstLineID,
		nextCloneID: FirstCloneID,
	}
}

// Main is the drawing of the scene before the first command, with the
// overlays of every command that drew into it.
func (p *Processor) Main() *render.Document {
	return p.main
}

// Drawings made by commands with a suffix, in command order. Later drawings
// with the same suffix replace earlier ones when written to disk.
func (p *Processor) Drawings() []Drawing {
	return p.drawings
}

// Run executes a whole script. It stops at the first malformed command.
func (p *Processor) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		if err := p.Exec(scanner.Text()); err != nil {
			return errors.Wrapf(err, "line %d", lineNumber)
		}
	}
	return errors.Wrap(scanner.Err(), "reading queries")
}

// Exec executes one command line. Blank lines and unknown commands do
// nothing.
func (p *Processor) Exec(line string) error {
	command, a := args.Split(line)
	switch command {
	case "a":
		return p.toLines(a)
	case "d":
		return p.destroy(a)
	case "p":
		return p.paint(a)
	case "cln":
		return p.clone(a)
	case "":
	default:
		p.settings.Logger.Printf("skipping unknown query command %q", command)
	}
	return nil
}

func (p *Processor) reportf(format string, v ...interface{}) {
	fmt.Fprintf(p.report, format+"\n", v...)
}

func (p *Processor) toLines(a *args.Reader) error {
	first := a.Int()
	last := a.Int()
	orientation := a.Char("orientation")
	if orientation != 'h' && orientation != 'v' {
		a.Fail("orientation %q is not h or v", string(orientation))
	}
	if a.Err() != nil {
		return a.Err()
	}

	var lines []shape.Shape
	for _, s := range p.scene.Shapes {
		c, ok := s.(*shape.Circle)
		if !ok || c.Id < first || c.Id > last || c.Destroyed() {
			continue
		}
		line := &shape.Line{Id: p.nextLineID, Stroke: c.Stroke}
		p.nextLineID++
		if orientation == 'h' {
			line.P1 = c.C.Translate(-c.R, 0)
			line.P2 = c.C.Translate(c.R, 0)
		} else {
			line.P1 = c.C.Translate(0, -c.R)
			line.P2 = c.C.Translate(0, c.R)
		}
		lines = append(lines, line)
		p.reportf("a: circle %d -> line %d, stroke %s", c.Id, line.Id, line.Stroke)
		c.Destroy()
	}
	p.scene.Add(lines...)
	return nil
}

func (p *Processor) destroy(a *args.Reader) error {
	observer := a.Point()
	suffix := a.Word()
	if a.Err() != nil {
		return a.Err()
	}

	visible, err := p.look(observer, suffix, render.Marker{Kind: render.DestroyMarker, At: observer})
	if err != nil {
		return err
	}
	for _, s := range visible {
		p.reportf("d: destroyed %s %d", s.Kind(), s.ID())
		if c, ok := s.(*shape.Circle); ok {
			c.Destroy()
		} else {
			s.SetColors(shape.None, shape.None)
		}
	}
	return nil
}

func (p *Processor) paint(a *args.Reader) error {
	observer := a.Point()
	color := a.Word()
	suffix := a.WordOr(MainSuffix)
	if a.Err() != nil {
		return a.Err()
	}

	visible, err := p.look(observer, suffix, render.Marker{Kind: render.PaintMarker, At: observer, Color: color})
	if err != nil {
		return err
	}
	for _, s := range visible {
		s.SetColors(color, color)
		p.reportf("p: painted %s %d %s", s.Kind(), s.ID(), color)
	}
	return nil
}

func (p *Processor) clone(a *args.Reader) error {
	observer := a.Point()
	dx := a.Float()
	dy := a.Float()
	suffix := a.WordOr(MainSuffix)
	if a.Err() != nil {
		return a.Err()
	}

	visible, err := p.look(observer, suffix, render.Marker{Kind: render.CloneMarker, At: observer})
	if err != nil {
		return err
	}
	var clones []shape.Shape
	for _, s := range visible {
		if s.Kind() == shape.KindText {
			continue
		}
		clone := s.Clone(p.nextCloneID, dx, dy)
		p.nextCloneID++
		clones = append(clones, clone)
		p.reportf("cln: cloned %s %d -> %d, offset (%.1f, %.1f)", s.Kind(), s.ID(), clone.ID(), dx, dy)
	}
	p.scene.Add(clones...)
	return nil
}

// Draw the marker and visibility region of a command, and find the figures
// seen from observer. Visibility is decided for every figure before the
// command changes any of them. Destroyed circles are never seen, and a
// figure's own outline does not hide its centre.
func (p *Processor) look(observer shape.Point, suffix string, marker render.Marker) ([]shape.Shape, error) {
	s := p.settings
	polygon, err := visibility.ComputePolygon(p.scene.Shapes, observer, s.Strategy, s.Threshold, s.Options...)
	if err != nil {
		return nil, errors.Wrapf(err, "visibility from %v", observer)
	}

	doc := p.main
	if suffix != MainSuffix {
		doc = render.NewDocument(p.scene.Shapes, s.Style)
		p.drawings = append(p.drawings, Drawing{Suffix: suffix, Document: doc})
	}
	doc.Add(marker, render.Region{Polygon: polygon})

	var visible []shape.Shape
	for _, figure := range p.scene.Shapes {
		if c, ok := figure.(*shape.Circle); ok && c.Destroyed() {
			continue
		}
		seen, err := visibility.Check(p.scene.Shapes, observer, figure.Center(), figure.ID(), s.Options...)
		if err != nil {
			return nil, errors.Wrapf(err, "line of sight from %v to %s %d", observer, figure.Kind(), figure.ID())
		}
		if seen {
			visible = append(visible, figure)
		}
	}
	return visible, nil
}
