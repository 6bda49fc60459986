package enc

import (
	"encoding/binary"
	"fmt"

	iso8211 "github.com/beetlebugorg/iso8211/pkg/iso8211"
)

// spatialRef is a feature-to-spatial pointer from the FSPT field.
// S-57 §7.6.8: NAME (RCNM+RCID) + ORNT + USAG + MASK, 8 bytes per pointer.
type spatialRef struct {
	RCID        int64
	Orientation int // 1=forward, 2=reverse, 255=null
	Usage       int // 1=exterior, 2=interior, 3=exterior truncated
	Mask        int // 1=mask, 2=show, 255=null
}

// featureLink is a feature-to-feature pointer from the FFPT field.
// S-57 §7.6.9: LNAM (8 bytes) + RIND (1 byte) + COMT (0x1F terminated).
type featureLink struct {
	LNAM string // formatted AGEN+FIDN+FIDS, 16 hex chars
	RIND int    // relationship indicator: 1=master, 2=slave, 3=peer
}

// featureRecord is one parsed S-57 feature record before geometry assembly.
type featureRecord struct {
	RCID          int64
	AGEN          uint16
	FIDN          uint32
	FIDS          uint16
	ObjectClass   int // OBJL code
	GeomPrim      int // 1=point, 2=line, 3=area, 255=none
	Group         int
	RecordVersion int
	UpdateInstr   int
	Attributes    map[string]interface{}
	SpatialRefs   []spatialRef
	Links         []featureLink
}

// lnam formats the feature object identifier the way the OGR S57 driver
// renders its LNAM field.
func (r *featureRecord) lnam() string {
	return fmt.Sprintf("%04X%08X%04X", r.AGEN, r.FIDN, r.FIDS)
}

// parseFeatureRecord extracts feature data from an ISO 8211 record.
// Returns nil when the record carries no FRID field (not a feature record).
//
// FRID layout per S-57 §7.6.1 (12 bytes):
// RCNM(1)=100, RCID(4, uint32 LE), PRIM(1), GRUP(1), OBJL(2, uint16 LE),
// RVER(2, uint16 LE), RUIN(1).
func parseFeatureRecord(record *iso8211.DataRecord) *featureRecord {
	fridData, hasFRID := record.Fields["FRID"]
	if !hasFRID || len(fridData) < 12 {
		return nil
	}
	if fridData[0] != 100 {
		return nil
	}

	rec := &featureRecord{
		RCID:          int64(binary.LittleEndian.Uint32(fridData[1:5])),
		GeomPrim:      int(fridData[5]),
		Group:         int(fridData[6]),
		ObjectClass:   int(binary.LittleEndian.Uint16(fridData[7:9])),
		RecordVersion: int(binary.LittleEndian.Uint16(fridData[9:11])),
		UpdateInstr:   int(fridData[11]),
		Attributes:    make(map[string]interface{}),
	}

	// FOID per S-57 §7.6.2: AGEN(2) + FIDN(4) + FIDS(2).
	if foid, ok := record.Fields["FOID"]; ok && len(foid) >= 8 {
		rec.AGEN = binary.LittleEndian.Uint16(foid[0:2])
		rec.FIDN = binary.LittleEndian.Uint32(foid[2:6])
		rec.FIDS = binary.LittleEndian.Uint16(foid[6:8])
	}

	if attf, ok := record.Fields["ATTF"]; ok {
		rec.Attributes = parseAttributes(attf)
	}
	if fspt, ok := record.Fields["FSPT"]; ok {
		rec.SpatialRefs = parseSpatialPointers(fspt)
	}
	if ffpt, ok := record.Fields["FFPT"]; ok {
		rec.Links = parseFeatureLinks(ffpt)
	}

	return rec
}

// parseAttributes extracts typed attribute values from the ATTF field.
// ATTF is a repeating [ATTL(2, uint16 LE), ATVL(0x1F terminated)] group;
// values are decoded per the attribute catalogue's declared type.
func parseAttributes(data []byte) map[string]interface{} {
	attributes := make(map[string]interface{})

	offset := 0
	for offset+2 <= len(data) {
		code := binary.LittleEndian.Uint16(data[offset : offset+2])
		offset += 2

		valueEnd := offset
		for valueEnd < len(data) && data[valueEnd] != 0x1F {
			valueEnd++
		}

		name := AttributeName(int(code))
		attributes[name] = decodeAttributeValue(name, string(data[offset:valueEnd]))

		offset = valueEnd + 1
	}

	return attributes
}

// parseSpatialPointers extracts spatial record references from the FSPT
// field, fixed 8-byte stride in binary mode.
func parseSpatialPointers(data []byte) []spatialRef {
	refs := make([]spatialRef, 0, len(data)/8)
	for i := 0; i+7 < len(data); i += 8 {
		refs = append(refs, spatialRef{
			RCID:        int64(binary.LittleEndian.Uint32(data[i+1 : i+5])),
			Orientation: int(data[i+5]),
			Usage:       int(data[i+6]),
			Mask:        int(data[i+7]),
		})
	}
	return refs
}

// parseFeatureLinks extracts feature-to-feature pointers from the FFPT
// field: LNAM (AGEN 2 + FIDN 4 + FIDS 2) + RIND(1) + COMT terminated by 0x1F.
func parseFeatureLinks(data []byte) []featureLink {
	links := make([]featureLink, 0)
	offset := 0
	for offset+9 <= len(data) {
		agen := binary.LittleEndian.Uint16(data[offset : offset+2])
		fidn := binary.LittleEndian.Uint32(data[offset+2 : offset+6])
		fids := binary.LittleEndian.Uint16(data[offset+6 : offset+8])
		rind := int(data[offset+8])
		offset += 9

		// Skip the comment subfield up to its unit separator.
		for offset < len(data) && data[offset] != 0x1F {
			offset++
		}
		if offset < len(data) {
			offset++
		}

		links = append(links, featureLink{
			LNAM: fmt.Sprintf("%04X%08X%04X", agen, fidn, fids),
			RIND: rind,
		})
	}
	return links
}
