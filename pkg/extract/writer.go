package extract

import (
	"fmt"
	"os"

	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"

	"github.com/GeoscienceAustralia/Georegulation/internal/enc"
)

// ESRI WKT for WGS 84 geographic coordinates. S-57 data is always WGS 84
// lat/lon, and EPSG:4326 is the fixed CRS of composite outputs, so one
// definition covers both per-chart and composite .prj files.
const wgs84WKT = `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`

// WriteChartShapefile writes one chart's staged features to a standalone
// shapefile. basePath carries no extension; the .shp/.shx/.dbf triplet and
// a .prj are written next to each other. Returns the number of features
// written.
func WriteChartShapefile(basePath string, gt GeometryType, schema StagingSchema, staged []StagedFeature) (int, error) {
	encoder, err := shp.NewEncoderFromFields(basePath, gt.shapeType(), shapeFields(schema)...)
	if err != nil {
		return 0, fmt.Errorf("creating shapefile %s: %w", basePath, err)
	}

	count := 0
	for _, f := range staged {
		if err := encoder.EncodeFields(f.Geometry, encodeValues(schema, f.Values)...); err != nil {
			encoder.Close()
			return count, fmt.Errorf("writing feature to %s: %w", basePath, err)
		}
		count++
	}
	encoder.Close()

	if err := writePrj(basePath); err != nil {
		return count, err
	}
	return count, nil
}

// shapeFields converts the staging schema to DBF field definitions. Field
// names are truncated to the 10-character DBF limit.
func shapeFields(schema StagingSchema) []goshp.Field {
	fields := make([]goshp.Field, len(schema))
	for i, fd := range schema {
		name := dbfName(fd.Name)
		switch fd.Type {
		case enc.FieldInteger:
			fields[i] = goshp.NumberField(name, uint8(fd.Width))
		case enc.FieldReal:
			fields[i] = goshp.FloatField(name, uint8(fd.Width), uint8(fd.Precision))
		default:
			fields[i] = goshp.StringField(name, uint8(fd.Width))
		}
	}
	return fields
}

// encodeValues prepares staged values for the DBF writer. DBF has no null,
// so nil values become empty cells at this point; the null distinction
// only matters up to the staging layer.
func encodeValues(schema StagingSchema, values []interface{}) []interface{} {
	out := make([]interface{}, len(schema))
	for i := range schema {
		if i < len(values) && values[i] != nil {
			out[i] = values[i]
		} else {
			out[i] = ""
		}
	}
	return out
}

func writePrj(basePath string) error {
	if err := os.WriteFile(basePath+".prj", []byte(wgs84WKT), 0o644); err != nil {
		return fmt.Errorf("writing prj: %w", err)
	}
	return nil
}
