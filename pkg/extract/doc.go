// Package extract turns S-57 ENC base cells into shapefiles.
//
// A run is driven by a list of feature type specifications, each pairing
// an S-57 object class acronym with an exact geometry type:
//
//	specs := []extract.FeatureTypeSpec{
//		{Feature: "SOUNDG", Geometry: extract.GeomMultiPoint},
//		{Feature: "DEPARE", Geometry: extract.GeomPolygon},
//	}
//	pipe := extract.New(extract.DefaultOptions("/data/ENC_ROOT", "/data/out"))
//	result, err := pipe.Run(specs)
//
// For every specification the pipeline extracts the matching layer from
// each chart into a per-chart shapefile, then merges those into a single
// composite shapefile. Per-chart schemas are normalized before writing:
// list-typed S-57 attributes become comma-joined strings, and four
// enrichment fields identifying the source cell, its issue date, comment
// and compilation scale are appended to every record.
package extract
