package enc

import (
	_ "embed"
	"encoding/csv"
	"strconv"
	"strings"
	"sync"
)

// S-57 attribute catalogue, GDAL CSV layout: Code,Attribute,Acronym,Attributetype,Class.
// Attributetype codes per the catalogue: E=enumerated, L=list, F=float, I=integer,
// A=coded string, S=free text.
//
//go:embed s57attributes.csv
var s57AttributesCSV string

type attributeDef struct {
	Code    int
	Acronym string
	Type    FieldType
}

var (
	attrByCode    map[int]attributeDef
	attrByAcronym map[string]attributeDef
	attrOnce      sync.Once
)

func loadAttributeCatalogue() {
	attrByCode = make(map[int]attributeDef)
	attrByAcronym = make(map[string]attributeDef)

	reader := csv.NewReader(strings.NewReader(s57AttributesCSV))
	records, err := reader.ReadAll()
	if err != nil {
		return
	}

	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		code, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		def := attributeDef{
			Code:    code,
			Acronym: record[2],
			Type:    fieldTypeFromCatalogue(record[3]),
		}
		attrByCode[code] = def
		if _, seen := attrByAcronym[def.Acronym]; !seen {
			attrByAcronym[def.Acronym] = def
		}
	}
}

// fieldTypeFromCatalogue maps catalogue value-domain codes to field types.
// List attributes ("L") carry comma-separated enumerants in ATVL; the OGR
// driver exposes them as string lists and so do we.
func fieldTypeFromCatalogue(code string) FieldType {
	switch code {
	case "I", "E":
		return FieldInteger
	case "F":
		return FieldReal
	case "L":
		return FieldStringList
	default: // "A", "S" and anything unrecognized
		return FieldString
	}
}

// AttributeName converts an S-57 numeric attribute code to its acronym.
// Unknown codes map to a generic ATTR_<code> name.
func AttributeName(code int) string {
	attrOnce.Do(loadAttributeCatalogue)
	if def, ok := attrByCode[code]; ok {
		return def.Acronym
	}
	return "ATTR_" + strconv.Itoa(code)
}

// AttributeType returns the declared field type for an attribute acronym.
// The second result is false for attributes not in the catalogue; callers
// should treat those as plain strings.
func AttributeType(acronym string) (FieldType, bool) {
	attrOnce.Do(loadAttributeCatalogue)
	if def, ok := attrByAcronym[acronym]; ok {
		return def.Type, true
	}
	if t, ok := headerFieldTypes[acronym]; ok {
		return t, true
	}
	return FieldString, false
}

// headerFieldTypes covers the synthesized per-feature fields that do not
// come from the attribute catalogue (FRID/FOID header values and feature
// link fields).
var headerFieldTypes = map[string]FieldType{
	"RCID":      FieldInteger,
	"PRIM":      FieldInteger,
	"GRUP":      FieldInteger,
	"OBJL":      FieldInteger,
	"RVER":      FieldInteger,
	"AGEN":      FieldInteger,
	"FIDN":      FieldInteger,
	"FIDS":      FieldInteger,
	"LNAM":      FieldString,
	"LNAM_REFS": FieldStringList,
	"FFPT_RIND": FieldIntegerList,
}

// decodeAttributeValue converts the raw ATVL text into a typed value
// according to the declared catalogue type. Undecodable numerics fall back
// to the raw string rather than being dropped.
func decodeAttributeValue(acronym, raw string) interface{} {
	t, _ := AttributeType(acronym)
	switch t {
	case FieldInteger:
		if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			return v
		}
		return raw
	case FieldReal:
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return v
		}
		return raw
	case FieldStringList:
		return strings.Split(raw, ",")
	case FieldIntegerList:
		parts := strings.Split(raw, ",")
		vals := make([]int, 0, len(parts))
		for _, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return strings.Split(raw, ",")
			}
			vals = append(vals, v)
		}
		return vals
	default:
		return raw
	}
}
