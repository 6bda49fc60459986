package enc

import (
	"testing"

	"github.com/ctessum/geom"
)

func testChart() *Chart {
	features := []Feature{
		{ID: 1, ObjectClass: "SOUNDG", Geometry: geom.MultiPoint{
			{X: 151.0, Y: -33.0}, {X: 151.5, Y: -33.5},
		}},
		{ID: 2, ObjectClass: "LNDARE", Geometry: geom.Point{X: 152.0, Y: -34.0}},
		{ID: 3, ObjectClass: "SOUNDG", Geometry: geom.MultiPoint{{X: 151.2, Y: -33.2}}},
	}
	return NewChart("AU412345", "20230215", "Approaches to Gladstone", 90000, features)
}

// TestChartLayers tests layer indexing and lookup
func TestChartLayers(t *testing.T) {
	chart := testChart()

	names := chart.LayerNames()
	if len(names) != 2 {
		t.Fatalf("Expected 2 layers, got %d", len(names))
	}
	if names[0] != "LNDARE" || names[1] != "SOUNDG" {
		t.Errorf("Expected sorted layer names, got %v", names)
	}

	soundings := chart.Layer("SOUNDG")
	if len(soundings) != 2 {
		t.Errorf("Expected 2 SOUNDG features, got %d", len(soundings))
	}

	if chart.Layer("DEPARE") != nil {
		t.Error("Expected nil for absent layer")
	}
}

// TestChartMetadata tests identification accessors
func TestChartMetadata(t *testing.T) {
	chart := testChart()

	if !chart.HasIdentification() {
		t.Fatal("Expected identification present")
	}
	if chart.DatasetName() != "AU412345" {
		t.Errorf("Expected DatasetName=AU412345, got %s", chart.DatasetName())
	}
	if chart.IssueDate() != "20230215" {
		t.Errorf("Expected IssueDate=20230215, got %s", chart.IssueDate())
	}
	if chart.Comment() != "Approaches to Gladstone" {
		t.Errorf("Expected coverage comment, got %s", chart.Comment())
	}
	if chart.CompilationScale() != 90000 {
		t.Errorf("Expected CompilationScale=90000, got %d", chart.CompilationScale())
	}
}

// TestChartBounds tests coverage computation over all geometry
func TestChartBounds(t *testing.T) {
	chart := testChart()
	b := chart.Bounds()

	if b.MinLon != 151.0 || b.MaxLon != 152.0 {
		t.Errorf("Expected lon range [151, 152], got [%v, %v]", b.MinLon, b.MaxLon)
	}
	if b.MinLat != -34.0 || b.MaxLat != -33.0 {
		t.Errorf("Expected lat range [-34, -33], got [%v, %v]", b.MinLat, b.MaxLat)
	}
}

// TestChartIntersects tests coverage overlap checks
func TestChartIntersects(t *testing.T) {
	chart := testChart()

	tests := []struct {
		name     string
		bounds   Bounds
		expected bool
	}{
		{"overlapping", Bounds{MinLon: 151.2, MinLat: -33.6, MaxLon: 151.8, MaxLat: -33.1}, true},
		{"containing", Bounds{MinLon: 140, MinLat: -40, MaxLon: 160, MaxLat: -30}, true},
		{"touching edge", Bounds{MinLon: 152.0, MinLat: -34.0, MaxLon: 153.0, MaxLat: -33.5}, true},
		{"disjoint", Bounds{MinLon: 110, MinLat: -20, MaxLon: 115, MaxLat: -15}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chart.Intersects(tt.bounds); got != tt.expected {
				t.Errorf("Expected Intersects=%v, got %v", tt.expected, got)
			}
		})
	}
}

// TestChartBoundsSkipsNilGeometry tests that meta features without geometry
// do not disturb coverage
func TestChartBoundsSkipsNilGeometry(t *testing.T) {
	chart := NewChart("AU4", "", "", 0, []Feature{
		{ID: 1, ObjectClass: "M_COVR", Geometry: nil},
		{ID: 2, ObjectClass: "LNDARE", Geometry: geom.Point{X: 151.0, Y: -33.0}},
	})

	b := chart.Bounds()
	if b.MinLon != 151.0 || b.MaxLon != 151.0 {
		t.Errorf("Expected point bounds, got %+v", b)
	}
}
