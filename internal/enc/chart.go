package enc

import (
	"sort"

	"github.com/ctessum/geom"
)

// Feature is one navigational object extracted from a chart.
type Feature struct {
	// ID is the feature record identifier (RCID).
	ID int64
	// ObjectClass is the S-57 object class acronym, e.g. "SOUNDG", "LNDARE".
	ObjectClass string
	// Geometry is the assembled shape; nil for meta features without
	// geometry (PRIM=255).
	Geometry geom.Geom
	// Attributes holds decoded attribute values keyed by acronym. Values
	// are int, float64, string, []string or []int per the declared
	// catalogue type.
	Attributes map[string]interface{}
}

// Bounds is a geographic bounding box in degrees.
type Bounds struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

// Chart is a parsed S-57 Electronic Navigational Chart.
type Chart struct {
	// Features holds every extracted feature in record order.
	Features []Feature

	path   string
	ident  *identification
	params datasetParams
	layers map[string][]Feature
}

// NewChart builds a chart from already-decoded parts. Intended for
// constructing synthetic charts in tests and tooling; production charts
// come from Parser.Parse.
func NewChart(name, issueDate, comment string, scale int, features []Feature) *Chart {
	c := &Chart{
		Features: features,
		ident:    &identification{Name: name, IssueDate: issueDate, Comment: comment},
		params:   datasetParams{CSCL: int32(scale)},
	}
	c.indexLayers()
	return c
}

// NewBareChart builds a chart carrying no identification record and no
// dataset parameters, as parsed from a cell whose DSID and DSPM records
// are absent.
func NewBareChart(features []Feature) *Chart {
	c := &Chart{Features: features}
	c.indexLayers()
	return c
}

func (c *Chart) indexLayers() {
	c.layers = make(map[string][]Feature)
	for _, f := range c.Features {
		c.layers[f.ObjectClass] = append(c.layers[f.ObjectClass], f)
	}
}

// Path returns the file the chart was parsed from, empty for synthetic charts.
func (c *Chart) Path() string { return c.path }

// DatasetName returns the DSID dataset name, empty when absent.
func (c *Chart) DatasetName() string {
	if c.ident == nil {
		return ""
	}
	return c.ident.Name
}

// IssueDate returns the DSID issue date (YYYYMMDD), empty when absent.
func (c *Chart) IssueDate() string {
	if c.ident == nil {
		return ""
	}
	return c.ident.IssueDate
}

// Edition returns the DSID edition number, empty when absent.
func (c *Chart) Edition() string {
	if c.ident == nil {
		return ""
	}
	return c.ident.Edition
}

// UpdateNumber returns the DSID cumulative update count, empty when absent.
func (c *Chart) UpdateNumber() string {
	if c.ident == nil {
		return ""
	}
	return c.ident.UpdateNumber
}

// Comment returns the DSID comment field, empty when absent.
func (c *Chart) Comment() string {
	if c.ident == nil {
		return ""
	}
	return c.ident.Comment
}

// HasIdentification reports whether the chart carried a DSID record.
func (c *Chart) HasIdentification() bool { return c.ident != nil }

// CompilationScale returns the DSPM compilation scale denominator, 0 when
// the dataset carries no DSPM record.
func (c *Chart) CompilationScale() int { return int(c.params.CSCL) }

// LayerNames returns the distinct object classes present, sorted.
func (c *Chart) LayerNames() []string {
	names := make([]string, 0, len(c.layers))
	for name := range c.layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Layer returns the features of one object class. A nil result means the
// chart has no layer of that name.
func (c *Chart) Layer(name string) []Feature {
	return c.layers[name]
}

// Bounds returns the chart's coverage computed over all feature geometry.
func (c *Chart) Bounds() Bounds {
	var b Bounds
	first := true
	for _, f := range c.Features {
		for _, p := range geometryPoints(f.Geometry) {
			if first {
				b = Bounds{MinLon: p.X, MinLat: p.Y, MaxLon: p.X, MaxLat: p.Y}
				first = false
				continue
			}
			if p.X < b.MinLon {
				b.MinLon = p.X
			}
			if p.X > b.MaxLon {
				b.MaxLon = p.X
			}
			if p.Y < b.MinLat {
				b.MinLat = p.Y
			}
			if p.Y > b.MaxLat {
				b.MaxLat = p.Y
			}
		}
	}
	return b
}

// Intersects reports whether the chart's coverage overlaps b.
func (c *Chart) Intersects(b Bounds) bool {
	cb := c.Bounds()
	return cb.MinLon <= b.MaxLon && cb.MaxLon >= b.MinLon &&
		cb.MinLat <= b.MaxLat && cb.MaxLat >= b.MinLat
}

func geometryPoints(g geom.Geom) []geom.Point {
	switch v := g.(type) {
	case geom.Point:
		return []geom.Point{v}
	case geom.MultiPoint:
		return []geom.Point(v)
	case geom.LineString:
		return []geom.Point(v)
	case geom.Polygon:
		var pts []geom.Point
		for _, ring := range v {
			pts = append(pts, ring...)
		}
		return pts
	default:
		return nil
	}
}
