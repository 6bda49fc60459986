package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/GeoscienceAustralia/Georegulation/internal/enc"
	"github.com/GeoscienceAustralia/Georegulation/pkg/extract"
)

// Config holds a full extraction run read from a YAML file.
type Config struct {
	Root         string          `yaml:"root"`
	Output       string          `yaml:"output"`
	ApplyUpdates *bool           `yaml:"applyUpdates"`
	Features     []FeatureConfig `yaml:"features"`
	Region       *RegionConfig   `yaml:"region"`
	Catalog      CatalogConfig   `yaml:"catalog"`
}

// FeatureConfig pairs an S-57 object class acronym with a geometry type
// token (POINT, MULTIPOINT, LINESTRING or POLYGON).
type FeatureConfig struct {
	Feature  string `yaml:"feature"`
	Geometry string `yaml:"geometry"`
}

// RegionConfig bounds extraction to charts intersecting a lat/lon box.
type RegionConfig struct {
	MinLon float64 `yaml:"minLon"`
	MinLat float64 `yaml:"minLat"`
	MaxLon float64 `yaml:"maxLon"`
	MaxLat float64 `yaml:"maxLat"`
}

// CatalogConfig enables recording run outputs in a SQLite catalog.
type CatalogConfig struct {
	Path string `yaml:"path"`
	Hash bool   `yaml:"hash"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration names a chart root, an output
// directory and at least one feature with a recognised geometry token.
// An unknown geometry token is fatal, never skipped.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("config: root is required")
	}
	if c.Output == "" {
		return fmt.Errorf("config: output is required")
	}
	if len(c.Features) == 0 {
		return fmt.Errorf("config: at least one feature is required")
	}
	for _, f := range c.Features {
		if f.Feature == "" {
			return fmt.Errorf("config: feature acronym is required")
		}
		if _, err := extract.ParseGeometryType(f.Geometry); err != nil {
			return fmt.Errorf("config: feature %s: %w", f.Feature, err)
		}
	}
	if c.Region != nil {
		if c.Region.MinLon >= c.Region.MaxLon || c.Region.MinLat >= c.Region.MaxLat {
			return fmt.Errorf("config: region bounds are inverted or empty")
		}
	}
	return nil
}

// Specs converts the configured features to pipeline specifications.
// Validate must have passed first.
func (c *Config) Specs() []extract.FeatureTypeSpec {
	specs := make([]extract.FeatureTypeSpec, len(c.Features))
	for i, f := range c.Features {
		gt, _ := extract.ParseGeometryType(f.Geometry)
		specs[i] = extract.FeatureTypeSpec{Feature: f.Feature, Geometry: gt}
	}
	return specs
}

// Bounds returns the configured region as chart bounds, or nil when no
// region is set.
func (c *Config) Bounds() *enc.Bounds {
	if c.Region == nil {
		return nil
	}
	return &enc.Bounds{
		MinLon: c.Region.MinLon,
		MinLat: c.Region.MinLat,
		MaxLon: c.Region.MaxLon,
		MaxLat: c.Region.MaxLat,
	}
}

// ShouldApplyUpdates reports whether update files are applied. Updates
// default to on; the configuration has to opt out explicitly.
func (c *Config) ShouldApplyUpdates() bool {
	if c.ApplyUpdates == nil {
		return true
	}
	return *c.ApplyUpdates
}
