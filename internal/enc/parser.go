// Package enc reads IHO S-57 Electronic Navigational Chart files into a
// layer-oriented model suitable for feature extraction: object-class
// layers, typed attributes per the S-57 attribute catalogue, and dataset
// identification metadata (DSID/DSPM).
package enc

import (
	"fmt"
	"strings"

	iso8211 "github.com/beetlebugorg/iso8211/pkg/iso8211"
)

// Parser parses S-57 ENC files.
type Parser interface {
	// Parse reads an S-57 base cell and returns the chart, with update
	// files applied per DefaultParseOptions.
	Parse(filename string) (*Chart, error)

	// ParseWithOptions parses with explicit options.
	ParseWithOptions(filename string, opts ParseOptions) (*Chart, error)
}

// ParseOptions configures parsing behavior.
type ParseOptions struct {
	// ApplyUpdates controls whether sequential update files (.001, .002,
	// ...) next to the base cell are discovered and applied before
	// geometry construction. Default true.
	ApplyUpdates bool

	// ObjectClassFilter restricts extraction to the named object classes.
	// Empty means extract everything.
	ObjectClassFilter []string

	// SkipBrokenGeometry drops features whose geometry cannot be
	// assembled instead of failing the whole chart. Default true: one
	// malformed feature should not sink a batch extraction.
	SkipBrokenGeometry bool
}

// DefaultParseOptions returns the defaults described on ParseOptions.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		ApplyUpdates:       true,
		SkipBrokenGeometry: true,
	}
}

type defaultParser struct{}

// NewParser creates an S-57 parser.
func NewParser() Parser {
	return &defaultParser{}
}

func (p *defaultParser) Parse(filename string) (*Chart, error) {
	return p.ParseWithOptions(filename, DefaultParseOptions())
}

func (p *defaultParser) ParseWithOptions(filename string, opts ParseOptions) (*Chart, error) {
	// Update cells (.001+) are only ever read through the base cell.
	if !strings.HasSuffix(filename, ".000") {
		return nil, &ErrNotBaseCell{Path: filename}
	}

	data, params, ident, err := parseBaseFile(filename)
	if err != nil {
		return nil, err
	}

	if opts.ApplyUpdates {
		updateFiles, err := findUpdateFiles(filename)
		if err != nil {
			return nil, fmt.Errorf("discovering update files: %w", err)
		}
		if len(updateFiles) > 0 {
			if err := applyUpdates(data, updateFiles, params); err != nil {
				return nil, err
			}
		}
	}

	chart, err := buildChart(data, ident, params, opts)
	if err != nil {
		return nil, err
	}
	chart.path = filename
	return chart, nil
}

// parseBaseFile reads the ISO 8211 structure and extracts raw feature and
// spatial records, leaving geometry construction until after updates.
func parseBaseFile(filename string) (*chartData, datasetParams, *identification, error) {
	reader, err := iso8211.NewReader(filename)
	if err != nil {
		return nil, datasetParams{}, nil, fmt.Errorf("opening file: %w", err)
	}
	defer reader.Close()

	isoFile, err := reader.Parse()
	if err != nil {
		return nil, datasetParams{}, nil, fmt.Errorf("parsing ISO 8211: %w", err)
	}

	params := extractDatasetParams(isoFile)
	ident := extractIdentification(isoFile)

	data := &chartData{
		spatials:     make(map[spatialKey]*spatialRecord),
		featuresByID: make(map[featureID]*featureRecord),
	}
	for _, record := range isoFile.Records {
		if featureRec := parseFeatureRecord(record); featureRec != nil {
			data.features = append(data.features, featureRec)
			data.featuresByID[data.key(featureRec)] = featureRec
			continue
		}
		if spatialRec := parseSpatialRecord(record, params); spatialRec != nil {
			key := spatialKey{RCNM: int(spatialRec.RecordType), RCID: spatialRec.ID}
			data.spatials[key] = spatialRec
		}
	}

	return data, params, ident, nil
}

// buildChart assembles geometries and the final feature list from merged
// records.
func buildChart(data *chartData, ident *identification, params datasetParams, opts ParseOptions) (*Chart, error) {
	var features []Feature

	for _, rec := range data.features {
		objClass := objectClassName(rec.ObjectClass)
		if len(opts.ObjectClassFilter) > 0 && !containsString(opts.ObjectClassFilter, objClass) {
			continue
		}

		geometry, err := constructGeometry(rec, data.spatials)
		if err != nil {
			if opts.SkipBrokenGeometry {
				continue
			}
			return nil, fmt.Errorf("feature RCID=%d class=%s: %w", rec.RCID, objClass, err)
		}

		features = append(features, Feature{
			ID:          rec.RCID,
			ObjectClass: objClass,
			Geometry:    geometry,
			Attributes:  mergeHeaderAttributes(rec),
		})
	}

	chart := &Chart{
		Features: features,
		ident:    ident,
		params:   params,
	}
	chart.indexLayers()
	return chart, nil
}

// mergeHeaderAttributes combines decoded ATTF attributes with the
// synthesized per-feature header fields the OGR S57 driver also exposes.
func mergeHeaderAttributes(rec *featureRecord) map[string]interface{} {
	attrs := make(map[string]interface{}, len(rec.Attributes)+11)
	for k, v := range rec.Attributes {
		attrs[k] = v
	}

	attrs["RCID"] = int(rec.RCID)
	attrs["PRIM"] = rec.GeomPrim
	attrs["GRUP"] = rec.Group
	attrs["OBJL"] = rec.ObjectClass
	attrs["RVER"] = rec.RecordVersion
	attrs["AGEN"] = int(rec.AGEN)
	attrs["FIDN"] = int(rec.FIDN)
	attrs["FIDS"] = int(rec.FIDS)
	attrs["LNAM"] = rec.lnam()

	if len(rec.Links) > 0 {
		refs := make([]string, 0, len(rec.Links))
		rinds := make([]int, 0, len(rec.Links))
		for _, link := range rec.Links {
			refs = append(refs, link.LNAM)
			rinds = append(rinds, link.RIND)
		}
		attrs["LNAM_REFS"] = refs
		attrs["FFPT_RIND"] = rinds
	}

	return attrs
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
