package enc

import (
	"encoding/binary"
	"testing"
)

func buildDSPM(rcnm byte, cscl, comf, somf uint32) []byte {
	data := make([]byte, 24)
	data[0] = rcnm
	binary.LittleEndian.PutUint32(data[8:12], cscl)
	binary.LittleEndian.PutUint32(data[16:20], comf)
	binary.LittleEndian.PutUint32(data[20:24], somf)
	return data
}

// TestParseDSPM tests dataset parameter extraction
func TestParseDSPM(t *testing.T) {
	params := parseDSPM(buildDSPM(20, 90000, 10000000, 10))

	if params.CSCL != 90000 {
		t.Errorf("Expected CSCL=90000, got %d", params.CSCL)
	}
	if params.COMF != 10000000 {
		t.Errorf("Expected COMF=10000000, got %d", params.COMF)
	}
	if params.SOMF != 10 {
		t.Errorf("Expected SOMF=10, got %d", params.SOMF)
	}
}

// TestParseDSPMDefaults tests fallback behavior for malformed DSPM data
func TestParseDSPMDefaults(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"truncated", []byte{20, 0, 0}},
		{"wrong record type", buildDSPM(10, 90000, 10000000, 10)},
		{"zero factors", buildDSPM(20, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := parseDSPM(tt.data)
			if params.COMF != 10000000 {
				t.Errorf("Expected default COMF=10000000, got %d", params.COMF)
			}
			if params.SOMF != 10 {
				t.Errorf("Expected default SOMF=10, got %d", params.SOMF)
			}
		})
	}
}

func buildDSID(dsnm, edtn, updn, uadt, isdt, sted, psdn, pred, comt string) []byte {
	data := make([]byte, 7)
	data[0] = 10
	appendASCII := func(s string) {
		data = append(data, []byte(s)...)
		data = append(data, 0x1F)
	}
	appendASCII(dsnm)
	appendASCII(edtn)
	appendASCII(updn)
	data = append(data, []byte(uadt)...) // fixed 8
	data = append(data, []byte(isdt)...) // fixed 8
	data = append(data, []byte(sted)...) // fixed 4
	data = append(data, 1)               // PRSP
	appendASCII(psdn)
	appendASCII(pred)
	data = append(data, 1, 0x50, 0x02) // PROF + AGEN
	appendASCII(comt)
	return data
}

// TestParseDSID tests identification metadata extraction
func TestParseDSID(t *testing.T) {
	data := buildDSID("AU412345.000", "3", "2", "20230101", "20230215", "03.1",
		"", "", "Approaches to Gladstone")

	id := parseDSID(data)

	if id.Name != "AU412345.000" {
		t.Errorf("Expected Name=AU412345.000, got %q", id.Name)
	}
	if id.Edition != "3" {
		t.Errorf("Expected Edition=3, got %q", id.Edition)
	}
	if id.UpdateNumber != "2" {
		t.Errorf("Expected UpdateNumber=2, got %q", id.UpdateNumber)
	}
	if id.IssueDate != "20230215" {
		t.Errorf("Expected IssueDate=20230215, got %q", id.IssueDate)
	}
	if id.Comment != "Approaches to Gladstone" {
		t.Errorf("Expected coverage comment, got %q", id.Comment)
	}
}

// TestParseDSIDTruncated tests that short DSID data yields empty metadata
func TestParseDSIDTruncated(t *testing.T) {
	id := parseDSID([]byte{10, 0, 0})

	if id == nil {
		t.Fatal("Expected non-nil identification")
	}
	if id.Name != "" || id.IssueDate != "" {
		t.Errorf("Expected empty fields, got Name=%q IssueDate=%q", id.Name, id.IssueDate)
	}
}
