package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
)

// compositeRow is one decoded per-chart record staged for re-encoding
// into the composite.
type compositeRow struct {
	geometry geom.Geom
	values   []interface{}
}

// AssembleComposite merges per-chart shapefiles into a single composite
// shapefile named after the feature/geometry pair. The per-chart files are
// re-read from disk rather than merged from in-memory rows, so the
// composite holds its own copies of every record.
//
// A chart file that cannot be read is dropped from the composite and
// reported in the skipped slice; the remaining files are still appended.
// Only a failure to create or write the composite itself is fatal, and a
// fatal failure removes the partial composite from disk. Returns the total
// number of features in the composite.
func AssembleComposite(dir string, spec FeatureTypeSpec, schema StagingSchema, chartFiles []string) (total int, skipped []error, err error) {
	base := filepath.Join(dir, spec.CompositeName())
	encoder, err := shp.NewEncoderFromFields(base, spec.Geometry.shapeType(), shapeFields(schema)...)
	if err != nil {
		return 0, nil, fmt.Errorf("creating composite %s: %w", base, err)
	}

	names := schema.FieldNames()
	for _, file := range chartFiles {
		rows, err := readChartRows(file, names)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		for _, row := range rows {
			if err := encoder.EncodeFields(row.geometry, row.values...); err != nil {
				encoder.Close()
				removeShapefile(base)
				return 0, skipped, fmt.Errorf("writing composite %s: %w", base, err)
			}
		}
		total += len(rows)
	}
	encoder.Close()

	if total == 0 {
		removeShapefile(base)
		return 0, skipped, fmt.Errorf("composite %s: no per-chart file could be read", base)
	}
	if err := writePrj(base); err != nil {
		removeShapefile(base)
		return 0, skipped, err
	}
	return total, skipped, nil
}

// readChartRows decodes one per-chart shapefile into composite rows. The
// file is decoded by the template fields it actually carries; template
// fields absent from the file's DBF become empty cells, so a chart whose
// features never had an attribute still appends cleanly.
func readChartRows(file string, names []string) ([]compositeRow, error) {
	decoder, err := shp.NewDecoder(file)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", file, err)
	}
	defer decoder.Close()

	present := make(map[string]bool)
	for _, f := range decoder.Fields() {
		present[f.String()] = true
	}
	have := make([]string, 0, len(names))
	for _, name := range names {
		if present[name] {
			have = append(have, name)
		}
	}

	var rows []compositeRow
	for {
		g, fields, more := decoder.DecodeRowFields(have...)
		if !more {
			break
		}
		// DBF stores every cell as padded ASCII, so values round-trip
		// as trimmed strings regardless of the declared field type.
		values := make([]interface{}, len(names))
		for i, name := range names {
			values[i] = strings.TrimSpace(fields[name])
		}
		rows = append(rows, compositeRow{geometry: g, values: values})
	}
	if err := decoder.Error(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	return rows, nil
}

// removeShapefile deletes the sidecar set of a shapefile base path.
func removeShapefile(base string) {
	for _, ext := range []string{".shp", ".shx", ".dbf", ".prj"} {
		os.Remove(base + ext)
	}
}
