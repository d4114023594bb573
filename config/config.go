// Package config holds the settings of the visibility command: how the sweep
// runs and how its output looks. Settings come from a YAML file and are
// overridden by command line flags.
package config

import (
	"os"

	"github.com/osuushi/visibility"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Sort strategy of the sweep events, "q" or "m"
	Sort string `yaml:"sort"`
	// Run length below which the merge strategy uses insertion sort
	Threshold int `yaml:"threshold"`
	// Space around the scene before the visibility region is cut off
	Margin float64 `yaml:"margin"`
	// Edge budget of one computation
	MaxSegments int `yaml:"maxSegments"`

	Region Region `yaml:"region"`
	PNG    PNG    `yaml:"png"`
}

// How visibility regions are painted
type Region struct {
	Fill    string  `yaml:"fill"`
	Opacity float64 `yaml:"opacity"`
}

// Raster output next to every SVG
type PNG struct {
	Enabled bool    `yaml:"enabled"`
	Scale   float64 `yaml:"scale"`
}

func Default() Config {
	return Config{
		Sort:        "q",
		Threshold:   visibility.DefaultThreshold,
		Margin:      20,
		MaxSegments: 1000000,
		Region:      Region{Fill: "yellow", Opacity: 0.5},
		PNG:         PNG{Enabled: false, Scale: 1},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config")
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return c, nil
}

func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrap(err, "invalid YAML")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if _, err := c.SortStrategy(); err != nil {
		return err
	}
	if c.Margin <= 0 {
		return errors.Errorf("margin must be positive, got %g", c.Margin)
	}
	if c.MaxSegments <= 0 {
		return errors.Errorf("maxSegments must be positive, got %d", c.MaxSegments)
	}
	if c.Region.Opacity < 0 || c.Region.Opacity > 1 {
		return errors.Errorf("region opacity must be between 0 and 1, got %g", c.Region.Opacity)
	}
	if c.PNG.Scale <= 0 {
		return errors.Errorf("png scale must be positive, got %g", c.PNG.Scale)
	}
	return nil
}

func (c Config) SortStrategy() (visibility.SortStrategy, error) {
	return visibility.ParseSortStrategy(c.Sort)
}

// Options for the visibility computations this configuration describes
func (c Config) Options() []visibility.Option {
	return []visibility.Option{
		visibility.WithMargin(c.Margin),
		visibility.WithMaxSegments(c.MaxSegments),
	}
}
