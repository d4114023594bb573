package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/visibility"
	"github.com/osuushi/visibility/config"
	"github.com/osuushi/visibility/query"
	"github.com/osuushi/visibility/render"
	"github.com/osuushi/visibility/scene"
	"github.com/osuushi/visibility/shape"
	"github.com/pkg/errors"
)

// Long flags that older scripts spell with a single dash. Kingpin would read
// "-to" as the short flags -t and -o.
var singleDashFlags = []string{"to", "in"}

// legacyArgs rewrites "-to m" and "-to=m" style arguments to their double
// dash form. Everything after "--" is left alone.
func legacyArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i, arg := range out {
		if arg == "--" {
			break
		}
		for _, name := range singleDashFlags {
			if arg == "-"+name || strings.HasPrefix(arg, "-"+name+"=") {
				out[i] = "-" + arg
			}
		}
	}
	return out
}

// loadSettings reads the config file, if any, and applies the flags that
// were given on top of it.
func loadSettings(path, sort, threshold string) (config.Config, error) {
	c := config.Default()
	if path != "" {
		var err error
		if c, err = config.Load(path); err != nil {
			return c, err
		}
	}
	if sort != "" {
		c.Sort = sort
	}
	if threshold != "" {
		n, err := strconv.Atoi(threshold)
		if err != nil {
			return c, errors.Errorf("--in: %q is not an integer", threshold)
		}
		c.Threshold = n
	}
	return c, c.Validate()
}

func inputPath(base, name string) string {
	if base == "" || name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(base, name)
}

func queryPath(base, name string) string {
	if name == "" {
		return ""
	}
	return inputPath(base, name)
}

// Name of an input file without its directory and extension
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Output names: <geo>.svg for the scene, <geo>-<qry>.svg and .txt for the
// query, <geo>-<qry>-<sfx>.svg for the drawings of single commands.
func outputName(geo, qry, suffix, ext string) string {
	parts := []string{stem(geo)}
	if qry != "" {
		parts = append(parts, stem(qry))
	}
	if suffix != "" {
		parts = append(parts, suffix)
	}
	return strings.Join(parts, "-") + ext
}

// readScene loads a .svg scene with the SVG loader and anything else as a
// geo description.
func readScene(path string) (*shape.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading scene")
	}
	defer f.Close()

	var s *shape.Scene
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		s, err = scene.LoadSVG(f)
	} else {
		s, err = scene.ParseGeo(f)
	}
	return s, errors.Wrapf(err, "scene %s", path)
}

func settingsOf(c config.Config) (query.Settings, error) {
	strategy, err := c.SortStrategy()
	if err != nil {
		return query.Settings{}, err
	}
	return query.Settings{
		Strategy:  strategy,
		Threshold: c.Threshold,
		Options:   c.Options(),
		Style:     render.Style{RegionFill: c.Region.Fill, RegionOpacity: c.Region.Opacity},
	}, nil
}

type renderer struct {
	settings config.Config
	logger   *log.Logger
	outDir   string
	png      bool
	imgcat   bool
}

func (r *renderer) run(geoPath, qryPath string) error {
	s, err := readScene(geoPath)
	if err != nil {
		return err
	}
	settings, err := settingsOf(r.settings)
	if err != nil {
		return err
	}
	settings.Logger = r.logger
	settings.Options = append(settings.Options, visibility.WithLogger(r.logger))

	if err := os.MkdirAll(r.outDir, 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	if err := r.write(outputName(geoPath, "", "", ".svg"), render.NewDocument(s.Shapes, settings.Style)); err != nil {
		return err
	}
	if qryPath == "" {
		return nil
	}

	f, err := os.Open(qryPath)
	if err != nil {
		return errors.Wrap(err, "reading queries")
	}
	defer f.Close()

	report := &bytes.Buffer{}
	processor := query.NewProcessor(s, settings, report)
	if err := processor.Run(f); err != nil {
		return errors.Wrapf(err, "queries %s", qryPath)
	}

	if err := r.write(outputName(geoPath, qryPath, "", ".svg"), processor.Main()); err != nil {
		return err
	}
	for _, d := range processor.Drawings() {
		if err := r.write(outputName(geoPath, qryPath, d.Suffix, ".svg"), d.Document); err != nil {
			return err
		}
	}
	reportPath := filepath.Join(r.outDir, outputName(geoPath, qryPath, "", ".txt"))
	if err := os.WriteFile(reportPath, report.Bytes(), 0644); err != nil {
		return errors.Wrap(err, "writing report")
	}
	r.logger.Printf("%s %s", aurora.Green("wrote"), reportPath)
	return nil
}

// write a document as SVG, plus PNG when asked to.
func (r *renderer) write(name string, d *render.Document) error {
	path := filepath.Join(r.outDir, name)
	if err := writeFile(path, func(w io.Writer) error { return render.SVG(w, d) }); err != nil {
		return err
	}
	r.logger.Printf("%s %s", aurora.Green("wrote"), path)
	if !r.png {
		return nil
	}

	pngPath := strings.TrimSuffix(path, ".svg") + ".png"
	scale := r.settings.PNG.Scale
	if err := writeFile(pngPath, func(w io.Writer) error { return render.PNG(w, d, scale) }); err != nil {
		return err
	}
	r.logger.Printf("%s %s", aurora.Green("wrote"), pngPath)
	if r.imgcat {
		if err := imgcat.CatFile(pngPath, os.Stdout); err != nil {
			r.logger.Printf("%s imgcat %s: %v", aurora.Yellow("warning:"), pngPath, err)
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return errors.Wrapf(f.Close(), "writing %s", path)
}

func printPolygon(w io.Writer, c config.Config, geoPath string, x, y float64) error {
	s, err := readScene(geoPath)
	if err != nil {
		return err
	}
	settings, err := settingsOf(c)
	if err != nil {
		return err
	}
	polygon, err := visibility.ComputePolygon(s.Shapes, visibility.Point{X: x, Y: y}, settings.Strategy, settings.Threshold, settings.Options...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, polygon.Path())
	return err
}
