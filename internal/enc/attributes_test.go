package enc

import (
	"testing"
)

// TestAttributeName tests code-to-acronym resolution
func TestAttributeName(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{75, "COLOUR"},
		{87, "DRVAL1"},
		{148, "STATUS"},
		{99999, "ATTR_99999"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := AttributeName(tt.code); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

// TestAttributeType tests catalogue type resolution
func TestAttributeType(t *testing.T) {
	tests := []struct {
		acronym  string
		expected FieldType
		known    bool
	}{
		{"COLOUR", FieldStringList, true},
		{"STATUS", FieldStringList, true},
		{"DRVAL1", FieldReal, true},
		{"OBJNAM", FieldString, true},
		{"SCAMIN", FieldInteger, true},
		{"RCID", FieldInteger, true},
		{"LNAM_REFS", FieldStringList, true},
		{"FFPT_RIND", FieldIntegerList, true},
		{"NOSUCH", FieldString, false},
	}

	for _, tt := range tests {
		t.Run(tt.acronym, func(t *testing.T) {
			got, known := AttributeType(tt.acronym)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if known != tt.known {
				t.Errorf("Expected known=%v, got %v", tt.known, known)
			}
		})
	}
}

// TestDecodeAttributeValue tests typed conversion of raw ATVL text
func TestDecodeAttributeValue(t *testing.T) {
	tests := []struct {
		name    string
		acronym string
		raw     string
		check   func(interface{}) bool
	}{
		{"integer", "SCAMIN", "45000", func(v interface{}) bool {
			n, ok := v.(int)
			return ok && n == 45000
		}},
		{"real", "DRVAL1", "2.5", func(v interface{}) bool {
			f, ok := v.(float64)
			return ok && f == 2.5
		}},
		{"string list", "COLOUR", "1,3,4", func(v interface{}) bool {
			l, ok := v.([]string)
			return ok && len(l) == 3 && l[1] == "3"
		}},
		{"single-element list", "STATUS", "2", func(v interface{}) bool {
			l, ok := v.([]string)
			return ok && len(l) == 1 && l[0] == "2"
		}},
		{"string", "OBJNAM", "North Channel", func(v interface{}) bool {
			s, ok := v.(string)
			return ok && s == "North Channel"
		}},
		{"bad numeric falls back to raw", "SCAMIN", "n/a", func(v interface{}) bool {
			s, ok := v.(string)
			return ok && s == "n/a"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeAttributeValue(tt.acronym, tt.raw)
			if !tt.check(got) {
				t.Errorf("Unexpected value for %s(%q): %v", tt.acronym, tt.raw, got)
			}
		})
	}
}

// TestFieldTypeFromCatalogue tests value-domain code mapping
func TestFieldTypeFromCatalogue(t *testing.T) {
	tests := []struct {
		code     string
		expected FieldType
	}{
		{"I", FieldInteger},
		{"E", FieldInteger},
		{"F", FieldReal},
		{"L", FieldStringList},
		{"A", FieldString},
		{"S", FieldString},
		{"?", FieldString},
	}

	for _, tt := range tests {
		if got := fieldTypeFromCatalogue(tt.code); got != tt.expected {
			t.Errorf("Expected %s -> %v, got %v", tt.code, tt.expected, got)
		}
	}
}
