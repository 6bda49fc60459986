package extract

import (
	"sort"

	"github.com/GeoscienceAustralia/Georegulation/internal/enc"
)

// FieldDescriptor describes one attribute field of a layer schema.
type FieldDescriptor struct {
	Name      string
	Type      enc.FieldType
	Width     int
	Precision int
}

// StagingSchema is the derived field list written to output containers:
// the source schema with list types downgraded to string, plus the
// enrichment fields.
type StagingSchema []FieldDescriptor

// Enrichment field names stamped onto every staged feature. Names stay
// within the 10-character DBF limit.
const (
	FieldSourceName = "ENCSource"
	FieldIssueDate  = "ENCissDate"
	FieldComment    = "ENCComment"
	FieldScale      = "ENCScale"
)

// headerFields is the fixed leading part of every layer schema, mirroring
// the per-feature header fields the S-57 reader synthesizes.
var headerFields = []string{"RCID", "PRIM", "GRUP", "OBJL", "RVER", "AGEN", "FIDN", "FIDS", "LNAM"}

// LayerSchema derives the source schema of one layer: the fixed header
// fields followed by every attribute observed across the layer's features,
// in sorted order so the result is stable for a given chart.
func LayerSchema(features []enc.Feature) []FieldDescriptor {
	seen := make(map[string]bool, len(headerFields))
	fields := make([]FieldDescriptor, 0, len(headerFields)+8)

	for _, name := range headerFields {
		seen[name] = true
		fields = append(fields, describeField(name))
	}

	var attrs []string
	for _, f := range features {
		for name := range f.Attributes {
			if !seen[name] {
				seen[name] = true
				attrs = append(attrs, name)
			}
		}
	}
	sort.Strings(attrs)

	for _, name := range attrs {
		fields = append(fields, describeField(name))
	}
	return fields
}

func describeField(name string) FieldDescriptor {
	t, _ := enc.AttributeType(name)
	fd := FieldDescriptor{Name: name, Type: t}
	fd.Width, fd.Precision = defaultWidth(t)
	return fd
}

func defaultWidth(t enc.FieldType) (width, precision int) {
	switch t {
	case enc.FieldInteger:
		return 10, 0
	case enc.FieldReal:
		return 20, 8
	case enc.FieldDate:
		return 8, 0
	case enc.FieldIntegerList, enc.FieldStringList:
		// Lists serialize to comma-joined text; leave room.
		return 160, 0
	default:
		return 80, 0
	}
}

// BuildStagingSchema derives the staging schema from a source schema:
//
//  1. every field descriptor is copied,
//  2. list-typed fields are retyped to string (their values are written as
//     comma-joined text),
//  3. a field literally named STATUS is retyped to string when present
//     (skipped silently otherwise),
//  4. the four enrichment fields are appended.
//
// Retyping happens here, before any feature is transferred: the output
// format does not support altering a field's type once data is loaded.
// The function is a pure derivation, so running it twice on the same
// source yields identical schemas.
func BuildStagingSchema(source []FieldDescriptor) StagingSchema {
	schema := make(StagingSchema, 0, len(source)+4)

	for _, fd := range source {
		if fd.Type.IsList() {
			fd.Type = enc.FieldString
		}
		if fd.Name == "STATUS" {
			fd.Type = enc.FieldString
		}
		schema = append(schema, fd)
	}

	schema = append(schema,
		FieldDescriptor{Name: FieldSourceName, Type: enc.FieldString, Width: 80},
		FieldDescriptor{Name: FieldIssueDate, Type: enc.FieldString, Width: 80},
		FieldDescriptor{Name: FieldComment, Type: enc.FieldString, Width: 254},
		FieldDescriptor{Name: FieldScale, Type: enc.FieldInteger, Width: 10},
	)
	return schema
}

// FieldNames returns the schema's field names in order, truncated to the
// 10-character DBF limit the shapefile writer applies.
func (s StagingSchema) FieldNames() []string {
	names := make([]string, len(s))
	for i, fd := range s {
		names[i] = dbfName(fd.Name)
	}
	return names
}

// dbfName truncates a field name to the DBF 10-character limit.
func dbfName(name string) string {
	if len(name) > 10 {
		return name[:10]
	}
	return name
}
