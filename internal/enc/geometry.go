package enc

import (
	"github.com/ctessum/geom"
)

// constructGeometry builds a geometry from a feature record and the
// dataset's spatial records.
//
// PRIM selects the shape: 1=point (a single isolated node, or a node
// cluster such as SOUNDG soundings, which becomes a multipoint), 2=line,
// 3=area, 255=no geometry (meta features like M_COVR relations' C_AGGR).
func constructGeometry(rec *featureRecord, spatials map[spatialKey]*spatialRecord) (geom.Geom, error) {
	if rec.GeomPrim == 255 {
		return nil, nil
	}
	if len(rec.SpatialRefs) == 0 {
		return nil, &ErrMissingSpatialRecord{FeatureID: rec.RCID}
	}

	switch rec.GeomPrim {
	case 1:
		return constructPointGeometry(rec, spatials)
	case 3:
		return constructPolygonGeometry(rec, spatials)
	default:
		return constructLineGeometry(rec, spatials)
	}
}

// lookupSpatial resolves an FSPT reference. FSPT carries only the RCID, so
// every spatial RCNM is tried: 130=edge first (most common target), then
// 120=connected node, 110=isolated node, 140=face.
func lookupSpatial(spatials map[spatialKey]*spatialRecord, rcid int64) *spatialRecord {
	for _, rcnm := range []spatialType{spatialTypeEdge, spatialTypeConnectedNode, spatialTypeIsolatedNode, spatialTypeFace} {
		if sp, ok := spatials[spatialKey{RCNM: int(rcnm), RCID: rcid}]; ok {
			return sp
		}
	}
	return nil
}

// constructPointGeometry collects coordinates from all referenced nodes.
// One coordinate yields a Point; several yield a MultiPoint (SOUNDG
// clusters reference hundreds of soundings through SG3D).
func constructPointGeometry(rec *featureRecord, spatials map[spatialKey]*spatialRecord) (geom.Geom, error) {
	var points geom.MultiPoint
	for _, ref := range rec.SpatialRefs {
		spatial := lookupSpatial(spatials, ref.RCID)
		if spatial == nil {
			continue
		}
		for _, c := range spatial.Coordinates {
			// Depth values from SG3D are dropped: staging geometry is 2-D.
			points = append(points, geom.Point{X: c[0], Y: c[1]})
		}
	}

	if len(points) == 0 {
		return nil, &ErrMissingSpatialRecord{FeatureID: rec.RCID, SpatialID: rec.SpatialRefs[0].RCID}
	}
	if len(points) == 1 {
		return points[0], nil
	}
	return points, nil
}

// constructLineGeometry concatenates edge coordinates over all spatial
// references, honoring the FSPT orientation flag.
func constructLineGeometry(rec *featureRecord, spatials map[spatialKey]*spatialRecord) (geom.Geom, error) {
	var line geom.LineString
	for _, ref := range rec.SpatialRefs {
		spatial := lookupSpatial(spatials, ref.RCID)
		if spatial == nil {
			continue
		}
		for _, c := range edgeCoordinates(spatial, spatials, ref.Orientation) {
			line = append(line, geom.Point{X: c[0], Y: c[1]})
		}
	}

	if len(line) < 2 {
		return nil, &ErrInvalidGeometry{FeatureID: rec.RCID, Reason: "line with fewer than 2 coordinates"}
	}
	return line, nil
}

// constructPolygonGeometry assembles rings from the feature's edges.
// Exterior and interior usage flags partition the references; within each
// partition rings are closed where the coordinate walk returns to its
// starting point.
func constructPolygonGeometry(rec *featureRecord, spatials map[spatialKey]*spatialRecord) (geom.Geom, error) {
	exterior := assembleRings(rec, spatials, false)
	interior := assembleRings(rec, spatials, true)

	if len(exterior) == 0 {
		return nil, &ErrInvalidGeometry{FeatureID: rec.RCID, Reason: "area without exterior ring"}
	}

	poly := make(geom.Polygon, 0, len(exterior)+len(interior))
	for _, ring := range append(exterior, interior...) {
		poly = append(poly, nil)
		i := len(poly) - 1
		for _, c := range ring {
			poly[i] = append(poly[i], geom.Point{X: c[0], Y: c[1]})
		}
	}
	return poly, nil
}

// assembleRings walks the edges with the requested usage (interior or
// exterior) in FSPT order, closing a ring whenever the walk returns to the
// ring's first coordinate.
func assembleRings(rec *featureRecord, spatials map[spatialKey]*spatialRecord, interior bool) [][][]float64 {
	var rings [][][]float64
	var current [][]float64

	for _, ref := range rec.SpatialRefs {
		isInterior := ref.Usage == 2
		if isInterior != interior {
			continue
		}
		spatial := lookupSpatial(spatials, ref.RCID)
		if spatial == nil {
			continue
		}
		for _, c := range edgeCoordinates(spatial, spatials, ref.Orientation) {
			if len(current) > 0 && c[0] == current[len(current)-1][0] && c[1] == current[len(current)-1][1] {
				continue // collapse duplicated join vertices
			}
			current = append(current, c)
		}
		// The ring is complete once the walk returns to its first coordinate.
		if len(current) >= 4 && current[0][0] == current[len(current)-1][0] && current[0][1] == current[len(current)-1][1] {
			rings = append(rings, current)
			current = nil
		}
	}

	if len(current) >= 3 {
		// Unclosed remainder, close it explicitly.
		current = append(current, []float64{current[0][0], current[0][1]})
		rings = append(rings, current)
	}
	return rings
}

// edgeCoordinates returns the full coordinate run of a spatial record. For
// edges the bounding connected nodes referenced through VRPT (topology
// 1=begin, 2=end) are prepended and appended; orientation 2 reverses the run.
func edgeCoordinates(spatial *spatialRecord, spatials map[spatialKey]*spatialRecord, orientation int) [][]float64 {
	coords := make([][]float64, 0, len(spatial.Coordinates)+2)

	if spatial.RecordType == spatialTypeEdge {
		if begin := nodeCoordinate(spatial, spatials, 1); begin != nil {
			coords = append(coords, begin)
		}
		coords = append(coords, spatial.Coordinates...)
		if end := nodeCoordinate(spatial, spatials, 2); end != nil {
			coords = append(coords, end)
		}
	} else {
		coords = append(coords, spatial.Coordinates...)
	}

	if orientation == 2 {
		reversed := make([][]float64, len(coords))
		for i, c := range coords {
			reversed[len(coords)-1-i] = c
		}
		return reversed
	}
	return coords
}

// nodeCoordinate resolves the begin or end connected node of an edge.
func nodeCoordinate(edge *spatialRecord, spatials map[spatialKey]*spatialRecord, topology int) []float64 {
	for _, ptr := range edge.VectorPointers {
		if ptr.Topology != topology {
			continue
		}
		key := spatialKey{RCNM: ptr.TargetRCNM, RCID: ptr.TargetRCID}
		if node, ok := spatials[key]; ok && len(node.Coordinates) > 0 {
			return node.Coordinates[0]
		}
	}
	return nil
}
