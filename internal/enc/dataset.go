package enc

import (
	"encoding/binary"
	"strings"

	iso8211 "github.com/beetlebugorg/iso8211/pkg/iso8211"
)

// datasetParams holds dataset-level parameters from the DSPM record.
// S-57 §7.3.2: Data Set Parameter field.
type datasetParams struct {
	COMF int32 // coordinate multiplication factor, typically 10^7
	SOMF int32 // sounding multiplication factor, typically 10
	CSCL int32 // compilation scale denominator
}

func defaultDatasetParams() datasetParams {
	return datasetParams{COMF: 10000000, SOMF: 10}
}

// identification holds the dataset identification metadata from the DSID
// record that the extraction pipeline stamps onto output features.
type identification struct {
	Name         string // DSNM - dataset name, e.g. "AU412345"
	Edition      string // EDTN
	UpdateNumber string // UPDN
	IssueDate    string // ISDT, YYYYMMDD
	Comment      string // COMT - free text, often a coverage description
}

// extractDatasetParams finds and parses the DSPM record.
func extractDatasetParams(isoFile *iso8211.ISO8211File) datasetParams {
	for _, record := range isoFile.Records {
		if dspm, ok := record.Fields["DSPM"]; ok {
			return parseDSPM(dspm)
		}
	}
	return defaultDatasetParams()
}

// parseDSPM decodes the DSPM field per S-57 §7.3.2.1:
// RCNM(1)=20, RCID(4), HDAT(1), VDAT(1), SDAT(1), CSCL(4, uint32 LE),
// DUNI(1), HUNI(1), PUNI(1), COUN(1), COMF(4, int32 LE), SOMF(4, int32 LE),
// COMT(variable).
func parseDSPM(data []byte) datasetParams {
	params := defaultDatasetParams()

	if len(data) < 24 || data[0] != 20 {
		return params
	}

	params.CSCL = int32(binary.LittleEndian.Uint32(data[8:12]))
	params.COMF = int32(binary.LittleEndian.Uint32(data[16:20]))
	params.SOMF = int32(binary.LittleEndian.Uint32(data[20:24]))

	if params.COMF <= 0 {
		params.COMF = 10000000
	}
	if params.SOMF <= 0 {
		params.SOMF = 10
	}
	return params
}

// extractIdentification finds and parses the DSID record. Returns nil when
// the dataset carries no identification record; callers substitute defaults.
func extractIdentification(isoFile *iso8211.ISO8211File) *identification {
	for _, record := range isoFile.Records {
		if dsid, ok := record.Fields["DSID"]; ok {
			return parseDSID(dsid)
		}
	}
	return nil
}

// parseDSID decodes the DSID field per S-57 §7.3.1.1. Fixed binary fields
// come first (RCNM(1)=10, RCID(4), EXPP(1), INTU(1)), followed by
// variable-length ASCII subfields terminated by 0x1F, with UADT, ISDT and
// STED as fixed-width ASCII in between.
func parseDSID(data []byte) *identification {
	id := &identification{}
	if len(data) < 7 {
		return id
	}

	offset := 7 // skip RCNM + RCID + EXPP + INTU

	ascii := func() string {
		if offset >= len(data) {
			return ""
		}
		start := offset
		for offset < len(data) && data[offset] != 0x1F {
			offset++
		}
		s := string(data[start:offset])
		if offset < len(data) {
			offset++ // skip unit separator
		}
		return s
	}
	fixed := func(n int) string {
		if offset+n > len(data) {
			return ""
		}
		s := strings.TrimRight(string(data[offset:offset+n]), "\x00 ")
		offset += n
		return s
	}

	id.Name = ascii()
	id.Edition = ascii()
	id.UpdateNumber = ascii()
	fixed(8) // UADT - update application date
	id.IssueDate = fixed(8)
	fixed(4) // STED - S-57 edition

	// PRSP(1), then PSDN and PRED ASCII, PROF(1), AGEN(2) precede the
	// trailing comment.
	offset++
	ascii()
	ascii()
	offset += 3

	id.Comment = ascii()
	return id
}
