// Command visibility draws a scene and runs query scripts against it. Every
// query that looks from a point paints the region visible from there.
//
//	visibility -e in -f scene.geo -o out -q moves.qry
//	visibility polygon -f scene.geo --x 10 --y 20
package main

import (
	"log"
	"os"

	"github.com/logrusorgru/aurora"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("visibility", "Visibility regions and line of sight in 2-D scenes.")

	baseIn     = app.Flag("base-in", "Directory the scene and query paths are relative to.").Short('e').Envar("VISIBILITY_BASE_IN").String()
	configPath = app.Flag("config", "YAML settings file.").Envar("VISIBILITY_CONFIG").ExistingFile()
	sortFlag   = app.Flag("to", "Sort strategy of the sweep events: q (quick) or m (merge). Also accepted as -to.").Envar("VISIBILITY_SORT").String()
	threshold  = app.Flag("in", "Run length below which merge sort switches to insertion sort. Also accepted as -in.").Envar("VISIBILITY_THRESHOLD").String()

	renderCmd  = app.Command("render", "Draw a scene and run a query script against it.").Default()
	renderGeo  = renderCmd.Flag("geo", "Scene file (.geo or .svg).").Short('f').Required().String()
	renderOut  = renderCmd.Flag("out", "Output directory.").Short('o').Required().String()
	renderQry  = renderCmd.Flag("qry", "Query script.").Short('q').String()
	renderPNG  = renderCmd.Flag("png", "Also write a PNG next to every SVG.").Envar("VISIBILITY_PNG").Bool()
	renderICat = renderCmd.Flag("imgcat", "Print the drawings in the terminal (iTerm only). Implies --png.").Bool()

	polygonCmd = app.Command("polygon", "Print the visibility region of one point as an SVG path.")
	polygonGeo = polygonCmd.Flag("geo", "Scene file (.geo or .svg).").Short('f').Required().String()
	polygonX   = polygonCmd.Flag("x", "Observer x.").Required().Float64()
	polygonY   = polygonCmd.Flag("y", "Observer y.").Required().Float64()
)

func main() {
	logger := log.New(os.Stderr, "visibility: ", 0)
	command := kingpin.MustParse(app.Parse(legacyArgs(os.Args[1:])))

	settings, err := loadSettings(*configPath, *sortFlag, *threshold)
	if err != nil {
		logger.Fatalf("%s %v", aurora.Red("error:"), err)
	}

	switch command {
	case renderCmd.FullCommand():
		r := &renderer{
			settings: settings,
			logger:   logger,
			outDir:   *renderOut,
			png:      settings.PNG.Enabled || *renderPNG || *renderICat,
			imgcat:   *renderICat,
		}
		err = r.run(inputPath(*baseIn, *renderGeo), queryPath(*baseIn, *renderQry))
	case polygonCmd.FullCommand():
		err = printPolygon(os.Stdout, settings, inputPath(*baseIn, *polygonGeo), *polygonX, *polygonY)
	}
	if err != nil {
		logger.Fatalf("%s %v", aurora.Red("error:"), err)
	}
}
