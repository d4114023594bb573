package internal

import (
	"embed"
	"log"

	"github.com/osuushi/visibility/scene"
	"github.com/osuushi/visibility/shape"
)

// Fixtures are SVG scenes in the fixtures/ directory, loaded by name sans
// extension. If anything goes wrong, the test binary dies.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) []shape.Shape {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}
	defer fixture.Close()

	s, err := scene.LoadSVG(fixture)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}
	if s.Len() == 0 {
		log.Fatalf("No shapes found in fixture %q", name)
	}
	return s.Shapes
}

var fixtureNames = []string{"pillars", "room", "crossing"}
