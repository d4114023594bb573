package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/osuushi/visibility/config"
	"github.com/osuushi/visibility/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGeo = `c 1 50 100 5 black blue
r 2 100 40 20 20 black green
r 3 200 40 20 20 black green
`

const testQry = `p 0 50 red
d 0 50 boom
`

func writeInputs(t *testing.T) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scene.geo"), []byte(testGeo), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "moves.qry"), []byte(testQry), 0644))
	return dir
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "scene.svg", outputName("in/scene.geo", "", "", ".svg"))
	assert.Equal(t, "scene-moves.txt", outputName("in/scene.geo", "q/moves.qry", "", ".txt"))
	assert.Equal(t, "scene-moves-boom.svg", outputName("scene.geo", "moves.qry", "boom", ".svg"))
}

func TestInputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("base", "a.geo"), inputPath("base", "a.geo"))
	assert.Equal(t, "a.geo", inputPath("", "a.geo"))
	assert.Equal(t, "/abs/a.geo", inputPath("base", "/abs/a.geo"))
	assert.Equal(t, "", queryPath("base", ""))
}

func TestLegacyArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"-f", "a.geo", "--to", "m", "--in=4", "--to", "-o", "out"},
		legacyArgs([]string{"-f", "a.geo", "-to", "m", "-in=4", "--to", "-o", "out"}))
	assert.Equal(t, []string{"--", "-to"}, legacyArgs([]string{"--", "-to"}))

	// The rewritten arguments parse
	args := []string{"render", "-f", "a.geo", "-o", "out", "-to", "m", "-in", "3"}
	_, err := app.Parse(legacyArgs(args))
	require.NoError(t, err)
	assert.Equal(t, "m", *sortFlag)
	assert.Equal(t, "3", *threshold)
}

func TestLoadSettings(t *testing.T) {
	c, err := loadSettings("", "", "")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sort: m\nthreshold: 4\n"), 0644))
	c, err = loadSettings(path, "", "7")
	require.NoError(t, err)
	assert.Equal(t, "m", c.Sort)
	assert.Equal(t, 7, c.Threshold)

	c, err = loadSettings(path, "q", "")
	require.NoError(t, err)
	assert.Equal(t, "q", c.Sort)
	assert.Equal(t, 4, c.Threshold)

	_, err = loadSettings("", "x", "")
	assert.Error(t, err)
	_, err = loadSettings("", "", "many")
	assert.EqualError(t, err, `--in: "many" is not an integer`)
}

func TestRender(t *testing.T) {
	in := writeInputs(t)
	out := filepath.Join(t.TempDir(), "out")
	r := &renderer{
		settings: config.Default(),
		logger:   log.New(io.Discard, "", 0),
		outDir:   out,
		png:      true,
	}
	require.NoError(t, r.run(filepath.Join(in, "scene.geo"), filepath.Join(in, "moves.qry")))

	for _, name := range []string{"scene.svg", "scene.png", "scene-moves.svg", "scene-moves.png", "scene-moves-boom.svg", "scene-moves.txt"} {
		assert.FileExists(t, filepath.Join(out, name))
	}

	report, err := os.ReadFile(filepath.Join(out, "scene-moves.txt"))
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"p: painted circle 1 red",
		"p: painted rectangle 2 red",
		"d: destroyed circle 1",
		"d: destroyed rectangle 2",
	}, "\n")+"\n", string(report))

	// The main drawing loads back as the scene from before the queries
	f, err := os.Open(filepath.Join(out, "scene-moves.svg"))
	require.NoError(t, err)
	defer f.Close()
	s, err := scene.LoadSVG(f)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
}

func TestRenderWithoutQueries(t *testing.T) {
	in := writeInputs(t)
	out := t.TempDir()
	r := &renderer{settings: config.Default(), logger: log.New(io.Discard, "", 0), outDir: out}
	require.NoError(t, r.run(filepath.Join(in, "scene.geo"), ""))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "scene.svg", entries[0].Name())
}

func TestRenderErrors(t *testing.T) {
	in := writeInputs(t)
	require.NoError(t, os.WriteFile(filepath.Join(in, "bad.qry"), []byte("p 0 50\n"), 0644))
	r := &renderer{settings: config.Default(), logger: log.New(io.Discard, "", 0), outDir: t.TempDir()}

	err := r.run(filepath.Join(in, "scene.geo"), filepath.Join(in, "bad.qry"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1: p: missing argument 3")

	err = r.run(filepath.Join(in, "missing.geo"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading scene")
}

func TestPrintPolygon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.geo")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	out := &bytes.Buffer{}
	require.NoError(t, printPolygon(out, config.Default(), path, 3, 4))
	path = strings.TrimSpace(out.String())
	// Out from the observer, round the four corners and back
	assert.True(t, strings.HasPrefix(path, "M 3 4 L "), path)
	assert.True(t, strings.HasSuffix(path, " Z"), path)
	assert.GreaterOrEqual(t, strings.Count(path, " L "), 5, path)
}
