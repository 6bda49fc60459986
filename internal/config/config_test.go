package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GeoscienceAustralia/Georegulation/pkg/extract"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoad tests parsing a full configuration file
func TestLoad(t *testing.T) {
	path := writeConfig(t, `
root: /data/ENC_ROOT
output: /data/out
applyUpdates: false
features:
  - feature: SOUNDG
    geometry: MULTIPOINT
  - feature: DEPARE
    geometry: POLYGON
region:
  minLon: 151.0
  minLat: -24.0
  maxLon: 152.0
  maxLat: -23.0
catalog:
  path: /data/catalog.db
  hash: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Root != "/data/ENC_ROOT" {
		t.Errorf("Expected root, got %s", cfg.Root)
	}
	if cfg.ShouldApplyUpdates() {
		t.Error("Expected updates disabled")
	}

	specs := cfg.Specs()
	if len(specs) != 2 {
		t.Fatalf("Expected 2 specs, got %d", len(specs))
	}
	if specs[0].Feature != "SOUNDG" || specs[0].Geometry != extract.GeomMultiPoint {
		t.Errorf("Expected SOUNDG/MULTIPOINT, got %v", specs[0])
	}

	b := cfg.Bounds()
	if b == nil || b.MinLon != 151.0 || b.MaxLat != -23.0 {
		t.Errorf("Expected region bounds, got %+v", b)
	}

	if cfg.Catalog.Path != "/data/catalog.db" || !cfg.Catalog.Hash {
		t.Errorf("Expected catalog settings, got %+v", cfg.Catalog)
	}
}

// TestApplyUpdatesDefault tests that updates default to on when unset
func TestApplyUpdatesDefault(t *testing.T) {
	path := writeConfig(t, `
root: /data/ENC_ROOT
output: /data/out
features:
  - feature: LNDARE
    geometry: POLYGON
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !cfg.ShouldApplyUpdates() {
		t.Error("Expected updates on by default")
	}
	if cfg.Bounds() != nil {
		t.Error("Expected no region bounds")
	}
}

// TestValidate tests rejection of incomplete or malformed configurations
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing root", `
output: /data/out
features:
  - feature: SOUNDG
    geometry: MULTIPOINT
`},
		{"missing output", `
root: /data/ENC_ROOT
features:
  - feature: SOUNDG
    geometry: MULTIPOINT
`},
		{"no features", `
root: /data/ENC_ROOT
output: /data/out
`},
		{"unknown geometry token", `
root: /data/ENC_ROOT
output: /data/out
features:
  - feature: SOUNDG
    geometry: CIRCLE
`},
		{"inverted region", `
root: /data/ENC_ROOT
output: /data/out
features:
  - feature: SOUNDG
    geometry: MULTIPOINT
region:
  minLon: 152.0
  minLat: -23.0
  maxLon: 151.0
  maxLat: -24.0
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

// TestLoadMissingFile tests the error for a nonexistent config path
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
