package enc

import (
	"encoding/binary"

	iso8211 "github.com/beetlebugorg/iso8211/pkg/iso8211"
)

// spatialType is the RCNM value of a spatial (vector) record.
type spatialType int

const (
	spatialTypeIsolatedNode  spatialType = 110 // VI
	spatialTypeConnectedNode spatialType = 120 // VC
	spatialTypeEdge          spatialType = 130 // VE
	spatialTypeFace          spatialType = 140 // VF
)

// spatialKey uniquely identifies a spatial record. RCID values are only
// unique within one RCNM, so both are needed.
type spatialKey struct {
	RCNM int
	RCID int64
}

// vectorPointer is a VRPT entry referencing another spatial record.
// S-57 §7.7.1.4, 9 bytes per pointer.
type vectorPointer struct {
	TargetRCNM  int
	TargetRCID  int64
	Orientation int
	Usage       int
	Topology    int // 1=begin node, 2=end node, 3=left face, 4=right face
	Mask        int
}

// spatialRecord is one parsed S-57 vector record.
type spatialRecord struct {
	ID             int64
	RecordType     spatialType
	Coordinates    [][]float64 // [lon, lat] or [lon, lat, depth]
	VectorPointers []vectorPointer
	RecordVersion  int
	UpdateInstr    int
}

// parseSpatialRecord extracts spatial data from an ISO 8211 record.
// Returns nil when the record carries no VRID field.
//
// VRID layout per S-57 §7.7.1.1 (8 bytes):
// RCNM(1), RCID(4, uint32 LE), RVER(2, uint16 LE), RUIN(1).
func parseSpatialRecord(record *iso8211.DataRecord, params datasetParams) *spatialRecord {
	vridData, hasVRID := record.Fields["VRID"]
	if !hasVRID || len(vridData) < 8 {
		return nil
	}

	rec := &spatialRecord{
		RecordType:    spatialType(vridData[0]),
		ID:            int64(binary.LittleEndian.Uint32(vridData[1:5])),
		RecordVersion: int(binary.LittleEndian.Uint16(vridData[5:7])),
		UpdateInstr:   int(vridData[7]),
	}

	if sg2d, ok := record.Fields["SG2D"]; ok {
		rec.Coordinates = parseCoordinates2D(sg2d, params.COMF)
	}
	if sg3d, ok := record.Fields["SG3D"]; ok {
		rec.Coordinates = parseCoordinates3D(sg3d, params.COMF, params.SOMF)
	}
	if vrpt, ok := record.Fields["VRPT"]; ok {
		rec.VectorPointers = parseVectorPointers(vrpt)
	}

	return rec
}

// parseCoordinates2D decodes SG2D coordinate pairs. Values are int32 LE
// scaled by the dataset's COMF factor (S-57 §7.3.2.1).
func parseCoordinates2D(data []byte, comf int32) [][]float64 {
	coords := make([][]float64, 0, len(data)/8)
	for offset := 0; offset+8 <= len(data); offset += 8 {
		x := int32(binary.LittleEndian.Uint32(data[offset : offset+4]))
		y := int32(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		coords = append(coords, []float64{scaleCoordinate(x, comf), scaleCoordinate(y, comf)})
	}
	return coords
}

// parseCoordinates3D decodes SG3D coordinate triples (soundings).
// X/Y scale by COMF, the third value (depth) by SOMF.
func parseCoordinates3D(data []byte, comf, somf int32) [][]float64 {
	coords := make([][]float64, 0, len(data)/12)
	for offset := 0; offset+12 <= len(data); offset += 12 {
		x := int32(binary.LittleEndian.Uint32(data[offset : offset+4]))
		y := int32(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		z := int32(binary.LittleEndian.Uint32(data[offset+8 : offset+12]))
		coords = append(coords, []float64{
			scaleCoordinate(x, comf),
			scaleCoordinate(y, comf),
			scaleCoordinate(z, somf),
		})
	}
	return coords
}

func scaleCoordinate(v, factor int32) float64 {
	if factor == 0 {
		return float64(v)
	}
	return float64(v) / float64(factor)
}

// parseVectorPointers decodes the VRPT repeating group, 9 bytes per entry:
// NAME (RCNM 1 + RCID 4) + ORNT(1) + USAG(1) + TOPI(1) + MASK(1).
func parseVectorPointers(data []byte) []vectorPointer {
	ptrs := make([]vectorPointer, 0, len(data)/9)
	for i := 0; i+8 < len(data); i += 9 {
		ptrs = append(ptrs, vectorPointer{
			TargetRCNM:  int(data[i]),
			TargetRCID:  int64(binary.LittleEndian.Uint32(data[i+1 : i+5])),
			Orientation: int(data[i+5]),
			Usage:       int(data[i+6]),
			Topology:    int(data[i+7]),
			Mask:        int(data[i+8]),
		})
	}
	return ptrs
}
