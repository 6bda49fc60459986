package extract

import (
	"strconv"
	"strings"

	"github.com/ctessum/geom"

	"github.com/GeoscienceAustralia/Georegulation/internal/enc"
)

// StagedFeature is one output row: geometry copied from the source feature
// plus normalized field values in staging-schema order. A nil value means
// the source attribute was absent; the distinction from an empty string is
// preserved through staging.
type StagedFeature struct {
	Geometry geom.Geom
	Values   []interface{}
}

// StageLayer builds the staging rows for one chart's layer: features whose
// geometry exactly matches the requested type, with list values serialized
// to comma-joined text and the enrichment record stamped onto every row.
func StageLayer(features []enc.Feature, schema StagingSchema, rec EnrichmentRecord, gt GeometryType) []StagedFeature {
	var staged []StagedFeature

	for _, f := range features {
		if f.Geometry == nil || !gt.Matches(f.Geometry) {
			continue
		}

		values := make([]interface{}, len(schema))
		for i, fd := range schema {
			switch fd.Name {
			case FieldSourceName:
				values[i] = rec.Name
			case FieldIssueDate:
				values[i] = rec.IssueDate
			case FieldComment:
				values[i] = rec.Comment
			case FieldScale:
				values[i] = rec.Scale
			default:
				v, ok := f.Attributes[fd.Name]
				if !ok {
					values[i] = nil // absent stays null, not ""
					continue
				}
				values[i] = normalizeValue(v)
			}
		}

		staged = append(staged, StagedFeature{Geometry: f.Geometry, Values: values})
	}
	return staged
}

// normalizeValue serializes list values to comma-joined text; scalar
// values pass through unchanged.
func normalizeValue(v interface{}) interface{} {
	switch list := v.(type) {
	case []string:
		return strings.Join(list, ",")
	case []int:
		parts := make([]string, len(list))
		for i, n := range list {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ",")
	default:
		return v
	}
}
