package extract

import (
	"fmt"

	"github.com/ctessum/geom"
	goshp "github.com/jonas-p/go-shp"
)

// GeometryType is the shape category a FeatureTypeSpec selects. S-57
// feature layers routinely mix representations (e.g. LNDARE generalized to
// points at small scale), so extraction always pins one geometry type.
type GeometryType int

const (
	GeomPoint GeometryType = iota
	GeomMultiPoint
	GeomLineString
	GeomPolygon
)

var geometryTokens = map[string]GeometryType{
	"POINT":      GeomPoint,
	"MULTIPOINT": GeomMultiPoint,
	"LINESTRING": GeomLineString,
	"POLYGON":    GeomPolygon,
}

func (t GeometryType) String() string {
	switch t {
	case GeomPoint:
		return "POINT"
	case GeomMultiPoint:
		return "MULTIPOINT"
	case GeomLineString:
		return "LINESTRING"
	case GeomPolygon:
		return "POLYGON"
	}
	return fmt.Sprintf("GeometryType(%d)", int(t))
}

// ParseGeometryType parses a geometry-type token. An unrecognized token is
// a configuration error; callers must abort before touching any chart.
func ParseGeometryType(token string) (GeometryType, error) {
	if t, ok := geometryTokens[token]; ok {
		return t, nil
	}
	return 0, &ErrUnknownGeometryType{Token: token}
}

// Matches reports whether g is exactly of this geometry type. Compatible
// but unequal types (a Point against MULTIPOINT) do not match; coercion
// would silently mix representations in the output.
func (t GeometryType) Matches(g geom.Geom) bool {
	switch g.(type) {
	case geom.Point:
		return t == GeomPoint
	case geom.MultiPoint:
		return t == GeomMultiPoint
	case geom.LineString:
		return t == GeomLineString
	case geom.Polygon:
		return t == GeomPolygon
	}
	return false
}

// shapeType maps the geometry type to its ESRI shapefile shape type.
func (t GeometryType) shapeType() goshp.ShapeType {
	switch t {
	case GeomMultiPoint:
		return goshp.MULTIPOINT
	case GeomLineString:
		return goshp.POLYLINE
	case GeomPolygon:
		return goshp.POLYGON
	default:
		return goshp.POINT
	}
}

// FeatureTypeSpec is one (feature type, geometry type) combination the
// pipeline extracts.
type FeatureTypeSpec struct {
	Feature  string // S-57 object class acronym, e.g. "SOUNDG"
	Geometry GeometryType
}

func (s FeatureTypeSpec) String() string {
	return s.Feature + "/" + s.Geometry.String()
}

// CompositeName is the base name of the combination's composite output,
// e.g. "global_SOUNDG_MULTIPOINT".
func (s FeatureTypeSpec) CompositeName() string {
	return "global_" + s.Feature + "_" + s.Geometry.String()
}
